package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"image"

	"github.com/ironsheep/scan-diagrams/internal/diagram"
	"github.com/ironsheep/scan-diagrams/internal/errors"
	"github.com/ironsheep/scan-diagrams/internal/evaluate"
	"github.com/ironsheep/scan-diagrams/internal/geometry"
	"github.com/ironsheep/scan-diagrams/internal/imaging"
	"github.com/ironsheep/scan-diagrams/internal/model"
	"github.com/ironsheep/scan-diagrams/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "diagram_overview").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// and the error code and message as data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", toolError{
			Code:    string(errors.GetCode(err)),
			Message: errors.UserMessage(err),
		})
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

type toolError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Diagrams
	case "diagram_dimensions":
		return s.handleDiagramDimensions(args)
	case "diagram_overview":
		return s.handleDiagramOverview(args)
	case "diagram_rules":
		return s.handleDiagramRules(args)

	// Regions
	case "region_rescale":
		return s.handleRegionRescale(args)
	case "region_bounds":
		return s.handleRegionBounds(args)
	case "region_text":
		return s.handleRegionText(args)
	case "rules_evaluate":
		return s.handleRulesEvaluate(args)

	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = []byte("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid arguments")
	}
	return nil
}

// === Diagram Handlers ===

// skipped is an element a renderer left out.
type skipped struct {
	Element string `json:"element"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// diagramResult is an encoded diagram plus what was left out of it.
type diagramResult struct {
	*imaging.EncodedImage
	Path    string    `json:"path,omitempty"`
	Skipped []skipped `json:"skipped,omitempty"`
}

type outputArgs struct {
	Format string `json:"format"`
	Save   bool   `json:"save"`
}

// style returns the configured style with skips collected into *got.
func (s *Server) style(got *[]skipped) diagram.Style {
	style, err := s.cfg.Style(func(element string, err error) {
		s.logger.Warn("skipped", "element", element, "err", err)
		*got = append(*got, skipped{
			Element: element,
			Code:    string(errors.GetCode(err)),
			Message: errors.UserMessage(err),
		})
	})
	if err != nil {
		s.logger.Warn("using fallback font", "font", s.cfg.FontPath, "err", err)
	}
	return style
}

func (s *Server) render(img image.Image, out outputArgs, skips []skipped) (*diagramResult, error) {
	o, err := s.cfg.Output(out.Format, out.Save)
	if err != nil {
		return nil, err
	}
	r, err := diagram.Render(img, o)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	encoded := &imaging.EncodedImage{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(r.Data),
		MimeType:    o.Format.MimeType(),
	}
	return &diagramResult{EncodedImage: encoded, Path: r.Path, Skipped: skips}, nil
}

type diagramDimensionsArgs struct {
	Project string  `json:"project"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Scale   float64 `json:"scale"`
	outputArgs
}

func (s *Server) handleDiagramDimensions(args json.RawMessage) (interface{}, error) {
	var a diagramDimensionsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	project, err := model.LoadProject(a.Project)
	if err != nil {
		return nil, err
	}

	var skips []skipped
	img, err := diagram.Dimensions(project, diagram.DimensionsOptions{
		Style:  s.style(&skips),
		Width:  a.Width,
		Height: a.Height,
		Scale:  a.Scale,
	})
	if err != nil {
		return nil, err
	}
	return s.render(img, a.outputArgs, skips)
}

type diagramOverviewArgs struct {
	Project     string `json:"project"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Orientation string `json:"orientation"`
	StepOffset  int    `json:"step_offset"`
	Texturing   []int  `json:"texturing"`
	ColorKey    bool   `json:"color_key"`
	outputArgs
}

func (s *Server) handleDiagramOverview(args json.RawMessage) (interface{}, error) {
	a := diagramOverviewArgs{Width: 800, Height: 50}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	orientation, err := diagram.ParseOrientation(a.Orientation)
	if err != nil {
		return nil, err
	}
	project, err := model.LoadProject(a.Project)
	if err != nil {
		return nil, err
	}

	var skips []skipped
	img, err := diagram.Overview(project, diagram.OverviewOptions{
		Style:       s.style(&skips),
		Width:       a.Width,
		Height:      a.Height,
		Orientation: orientation,
		StepOffset:  a.StepOffset,
		Texturing:   a.Texturing,
		ColorKey:    a.ColorKey,
	})
	if err != nil {
		return nil, err
	}
	return s.render(img, a.outputArgs, skips)
}

type diagramRulesArgs struct {
	RuleSet string `json:"ruleset"`
	outputArgs
}

func (s *Server) handleDiagramRules(args json.RawMessage) (interface{}, error) {
	var a diagramRulesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	set, err := model.LoadRuleSet(a.RuleSet)
	if err != nil {
		return nil, err
	}

	var skips []skipped
	img, err := diagram.Rules(set.Rules, set.Groups, diagram.RuleOptions{Style: s.style(&skips)})
	if err != nil {
		return nil, err
	}
	return s.render(img, a.outputArgs, skips)
}

// === Region Handlers ===

type regionRescaleArgs struct {
	Region *geometry.Region     `json:"region"`
	Source geometry.SourceSpace `json:"source"`
	Dest   geometry.DestSpace   `json:"dest"`
}

type regionRescaleResult struct {
	Rescaled *geometry.Rescaled `json:"rescaled"`
	Rect     *image.Rectangle   `json:"rect,omitempty"`
}

func (s *Server) handleRegionRescale(args json.RawMessage) (interface{}, error) {
	var a regionRescaleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	out, err := geometry.Rescale(a.Region, a.Source, a.Dest)
	if err != nil {
		return nil, err
	}
	res := regionRescaleResult{Rescaled: out}
	if out != nil {
		r := out.Normalized()
		res.Rect = &r
	}
	return res, nil
}

type regionBoundsArgs struct {
	RuleSet    string `json:"ruleset"`
	Scan       string `json:"scan"`
	Grid       int    `json:"grid"`
	ShowHidden bool   `json:"show_hidden"`
	outputArgs
}

type regionBoundsResult struct {
	Groups  []diagram.GroupBox `json:"groups"`
	Skipped []skipped          `json:"skipped,omitempty"`
	Image   *diagramResult     `json:"image,omitempty"`
}

func (s *Server) handleRegionBounds(args json.RawMessage) (interface{}, error) {
	var a regionBoundsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	set, err := model.LoadRuleSet(a.RuleSet)
	if err != nil {
		return nil, err
	}

	if a.Scan == "" {
		res := regionBoundsResult{Groups: []diagram.GroupBox{}}
		for _, g := range set.Groups {
			if g.Hide && !a.ShowHidden {
				continue
			}
			box, err := g.ScaledBoundingRectangle()
			if err != nil {
				res.Skipped = append(res.Skipped, skipped{
					Element: g.Name,
					Code:    string(errors.GetCode(err)),
					Message: errors.UserMessage(err),
				})
				continue
			}
			if box != nil {
				res.Groups = append(res.Groups, diagram.GroupBox{Group: g.Name, Box: *box})
			}
		}
		return res, nil
	}

	scan, err := s.cache.Load(a.Scan)
	if err != nil {
		return nil, err
	}
	groups := make([]model.Group, len(set.Groups))
	for i, g := range set.Groups {
		groups[i] = evaluate.FitToScan(g, scan.Bounds())
	}

	var skips []skipped
	img, boxes := diagram.Groups(scan, groups, diagram.GroupsOptions{
		Style:      s.style(&skips),
		Grid:       a.Grid,
		ShowHidden: a.ShowHidden,
	})
	encoded, err := s.render(img, a.outputArgs, nil)
	if err != nil {
		return nil, err
	}
	if boxes == nil {
		boxes = []diagram.GroupBox{}
	}
	return regionBoundsResult{Groups: boxes, Skipped: skips, Image: encoded}, nil
}

type regionTextArgs struct {
	Scan       string `json:"scan"`
	X1         int    `json:"x1"`
	Y1         int    `json:"y1"`
	X2         int    `json:"x2"`
	Y2         int    `json:"y2"`
	RuleSet    string `json:"ruleset"`
	Group      string `json:"group"`
	Language   string `json:"language"`
	SingleLine bool   `json:"single_line"`
}

func (s *Server) handleRegionText(args json.RawMessage) (interface{}, error) {
	var a regionTextArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	scan, err := s.cache.Load(a.Scan)
	if err != nil {
		return nil, err
	}

	rect := image.Rect(a.X1, a.Y1, a.X2, a.Y2)
	if a.Group != "" {
		rect, err = s.groupRect(a.RuleSet, a.Group, scan.Bounds())
		if err != nil {
			return nil, err
		}
	}

	engine := *s.engine
	engine.SingleLine = a.SingleLine
	return engine.ReadRegion(scan, rect, a.Language)
}

// groupRect locates a named group of a rule set on a scan.
func (s *Server) groupRect(ruleset, name string, bounds image.Rectangle) (image.Rectangle, error) {
	if ruleset == "" {
		return image.Rectangle{}, errors.New(errors.ErrCodeInvalidInput, "group %q given without a ruleset", name)
	}
	set, err := model.LoadRuleSet(ruleset)
	if err != nil {
		return image.Rectangle{}, err
	}
	g, ok := set.Group(name)
	if !ok {
		return image.Rectangle{}, errors.New(errors.ErrCodeInvalidInput, "no group named %q in %s", name, ruleset)
	}
	fitted := evaluate.FitToScan(*g, bounds)
	box, err := fitted.ScaledBoundingRectangle()
	if err != nil {
		return image.Rectangle{}, err
	}
	if box == nil {
		return image.Rectangle{}, errors.New(errors.ErrCodeMalformedRegion, "group %q has no regions", name)
	}
	return box.Normalized(), nil
}

type rulesEvaluateArgs struct {
	RuleSet  string `json:"ruleset"`
	Scan     string `json:"scan"`
	Language string `json:"language"`
}

type ruleOutcome struct {
	Rule    string          `json:"rule"`
	Group   string          `json:"group"`
	Region  image.Rectangle `json:"region"`
	Text    string          `json:"text"`
	Matched bool            `json:"matched"`
	Error   *toolError      `json:"error,omitempty"`
}

func (s *Server) handleRulesEvaluate(args json.RawMessage) (interface{}, error) {
	var a rulesEvaluateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	set, err := model.LoadRuleSet(a.RuleSet)
	if err != nil {
		return nil, err
	}
	scan, err := s.cache.Load(a.Scan)
	if err != nil {
		return nil, err
	}

	results, err := evaluate.Evaluate(context.Background(), set.Rules, set.Groups, scan, s.engine, evaluate.Options{Language: a.Language})
	if err != nil {
		return nil, err
	}
	return outcomes(results), nil
}

func outcomes(results []evaluate.Result) []ruleOutcome {
	out := make([]ruleOutcome, len(results))
	for i, r := range results {
		out[i] = ruleOutcome{
			Rule:    r.Rule.String(),
			Group:   r.Group,
			Region:  r.Region,
			Text:    r.Text,
			Matched: r.Matched,
		}
		if r.Err != nil {
			out[i].Error = &toolError{Code: string(errors.GetCode(r.Err)), Message: errors.UserMessage(r.Err)}
		}
	}
	return out
}

// compile-time check that the engine satisfies the evaluator.
var _ evaluate.TextReader = (*ocr.Engine)(nil)
