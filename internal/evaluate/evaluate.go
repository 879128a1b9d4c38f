// Package evaluate applies a rule set to a page scan: every rule's source
// field is located through its group, read, and matched.
package evaluate

import (
	"context"
	"image"

	"github.com/ironsheep/scan-diagrams/internal/errors"
	"github.com/ironsheep/scan-diagrams/internal/model"
	"github.com/ironsheep/scan-diagrams/internal/ocr"
)

// TextReader reads the text inside a rectangle of a scan.
// *ocr.Engine satisfies it.
type TextReader interface {
	ReadRegion(img image.Image, rect image.Rectangle, language string) (*ocr.Result, error)
}

// Result is the outcome of one rule.
type Result struct {
	Rule  model.Rule `json:"rule"`
	Group string     `json:"group"`

	// Region is the part of the scan that was read. It is empty when the
	// rule failed before reading.
	Region image.Rectangle `json:"region"`

	Text    string `json:"text"`
	Matched bool   `json:"matched"`

	// Err is set when the rule could not be applied. Matched is then false.
	Err error `json:"-"`
}

// Options tunes a pass.
type Options struct {
	// Language is handed to the reader. Empty leaves the choice to it.
	Language string
}

// Evaluate runs every rule against scan and returns one result per rule in
// order. A rule that fails records its error and the pass continues.
//
// A group whose SourceWidth or SourceHeight is zero is taken to describe
// this scan, and the scan's own size is used.
//
// The only error returned is ctx's, after which the results cover the
// rules handled so far.
func Evaluate(ctx context.Context, rules []model.Rule, groups []model.Group, scan image.Image, reader TextReader, opts Options) ([]Result, error) {
	if scan == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no scan to evaluate")
	}
	if reader == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no text reader")
	}

	set := model.RuleSet{Groups: groups}
	results := make([]Result, 0, len(rules))
	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, evaluateRule(rule, &set, scan, reader, opts))
	}
	return results, nil
}

func evaluateRule(rule model.Rule, set *model.RuleSet, scan image.Image, reader TextReader, opts Options) Result {
	res := Result{Rule: rule, Group: rule.SourceField}

	if err := rule.Validate(); err != nil {
		res.Err = err
		return res
	}

	group, ok := set.Group(rule.SourceField)
	if !ok {
		res.Err = errors.New(errors.ErrCodeInvalidInput, "no group named %q", rule.SourceField)
		return res
	}

	rect, err := scanRect(*group, scan.Bounds())
	if err != nil {
		res.Err = err
		return res
	}
	res.Region = rect

	read, err := reader.ReadRegion(scan, rect, opts.Language)
	if err != nil {
		res.Err = err
		return res
	}
	res.Text = read.Text

	res.Matched, res.Err = rule.Match(read.Text)
	return res
}

// FitToScan returns g with a zero SourceWidth or SourceHeight replaced by
// the size of the scan it is applied to.
func FitToScan(g model.Group, bounds image.Rectangle) model.Group {
	if g.SourceWidth == 0 {
		g.SourceWidth = bounds.Dx()
	}
	if g.SourceHeight == 0 {
		g.SourceHeight = bounds.Dy()
	}
	return g
}

// scanRect locates g's regions in scan pixels.
func scanRect(g model.Group, bounds image.Rectangle) (image.Rectangle, error) {
	g = FitToScan(g, bounds)

	box, err := g.ScaledBoundingRectangle()
	if err != nil {
		return image.Rectangle{}, err
	}
	if box == nil {
		return image.Rectangle{}, errors.New(errors.ErrCodeMalformedRegion, "group %q has no regions", g.Name)
	}

	rect := box.Normalized().Intersect(bounds)
	if rect.Empty() {
		return image.Rectangle{}, errors.New(errors.ErrCodeMalformedRegion,
			"group %q maps to (%d,%d)-(%d,%d), outside the scan", g.Name, box.X, box.Y, box.X2, box.Y2)
	}
	return rect, nil
}

// Matched returns the results whose rule matched.
func Matched(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Matched {
			out = append(out, r)
		}
	}
	return out
}
