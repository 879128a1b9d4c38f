package diagram

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/colornames"

	"github.com/ironsheep/scan-diagrams/internal/errors"
	"github.com/ironsheep/scan-diagrams/internal/geometry"
	"github.com/ironsheep/scan-diagrams/internal/imaging"
	"github.com/ironsheep/scan-diagrams/internal/model"
)

// Rule panel geometry.
const (
	RulePanelWidth  = 400
	RulePanelHeight = 200

	// GroupScale shrinks group canvas coordinates into the panel.
	GroupScale = 0.15

	fieldX      = 250
	fieldY      = 25
	fieldWidth  = 50
	fieldHeight = 100
)

// RuleOptions configures Rules and DrawRule.
type RuleOptions struct {
	Style
}

// RulePanel is the computed layout of one rule panel.
type RulePanel struct {
	// Field is the box standing in for the source field.
	Field geometry.Region

	// Highlight marks the group's first region inside Field, nil when the
	// rule names no drawable group.
	Highlight      *geometry.Region
	HighlightColor color.NRGBA
}

// LayoutRule sizes the field box from the group named by rule.SourceField
// and places the highlight for its first region.
//
// The group canvas uses a lower-left origin, so the scaled region is moved
// left by its own width and down so that its top sits fieldHeight - h below
// the field top.
func LayoutRule(rule model.Rule, groups []model.Group, skip SkipFunc) RulePanel {
	panel := RulePanel{Field: geometry.Region{X1: fieldX, Y1: fieldY, X2: fieldX + fieldWidth, Y2: fieldY + fieldHeight}}

	var group *model.Group
	for i := range groups {
		if groups[i].Name == rule.SourceField {
			group = &groups[i]
			break
		}
	}
	if group == nil {
		return panel
	}
	report := func(what string, err error) {
		if skip != nil {
			skip(fmt.Sprintf("rule %q: %s", rule.String(), what), err)
		}
	}

	fw, fh := float64(fieldWidth), float64(fieldHeight)
	if src, err := group.SourceSpace(); err != nil {
		report("field size", err)
	} else if !positive(src.Width) || !positive(src.Height) {
		report("field size", errors.New(errors.ErrCodeInvalidDimension,
			"group %q: source_dimensions must be positive, got %v", group.Name, group.SourceDimensions))
	} else {
		fw, fh = src.Width*GroupScale, src.Height*GroupScale
	}
	panel.Field.X2 = fieldX + fw
	panel.Field.Y2 = fieldY + fh

	if len(group.Regions) == 0 {
		return panel
	}
	r := group.Regions[0]
	if !finiteRegion(r) {
		report("highlight", errors.New(errors.ErrCodeMalformedRegion, "group %q: region has a non-numeric coordinate: %+v", group.Name, r))
		return panel
	}

	hl := r.Scale(GroupScale).Translate(fieldX, fieldY)
	w := math.Abs(hl.X1 - hl.X2)
	h := math.Abs(hl.Y1 - hl.Y2)
	hl = hl.Translate(-w, fh-h)

	panel.Highlight = &hl
	panel.HighlightColor = group.DisplayColor()
	return panel
}

// DrawRule renders one 400x200 rule panel.
func DrawRule(rule model.Rule, groups []model.Group, opts RuleOptions) *image.NRGBA {
	style := opts.Style.withRuleFace()
	panel := LayoutRule(rule, groups, style.Skip)
	face := style.RuleFace

	c := imaging.NewCanvas(RulePanelWidth, RulePanelHeight, *style.Background)

	f := panel.Field
	fx, fy := px(f.X1), px(f.Y1)
	fw, fh := px(f.X2)-fx, px(f.Y2)-fy

	above := func(text string) image.Point {
		tw, th := imaging.MeasureText(text, face)
		return image.Pt(fx+middle(fw)-middle(tw), fy-th)
	}
	below := func(text string) image.Point {
		tw, _ := imaging.MeasureText(text, face)
		return image.Pt(fx+middle(fw)-middle(tw), fy+fh)
	}
	left := func(text string) image.Point {
		tw, _ := imaging.MeasureText(text, face)
		return image.Pt(fx-tw, fy+middle(fh))
	}
	right := image.Pt(fx+fw, fy+middle(fh))
	farLeft := image.Pt(0, fy+middle(fh))

	subtle := rgba(colornames.Lightgray)
	c.DrawText(above(rule.SourceField), rule.SourceField, face, subtle)

	border, fill := rgba(colornames.Black), rgba(colornames.White)
	c.DrawRectangle(fx, fy, fx+fw, fy+fh, &border, &fill)

	ink := func(pt image.Point, text string) {
		c.DrawText(pt, text, face, textBlack)
	}
	ink(farLeft, fmt.Sprintf("%s %s", rule.DestField, rule.RuleResult))
	ink(below(rule.ComparatorSymbol), rule.ComparatorSymbol)
	if p := rule.Param(0); p != "" {
		ink(left(p), p)
	}
	if p := rule.Param(1); p != "" {
		ink(right, p)
	}

	if hl := panel.Highlight; hl != nil {
		col := panel.HighlightColor
		c.DrawRectangle(px(hl.X1), px(hl.Y1), px(hl.X2), px(hl.Y2), nil, &col)
	}
	return c.Image()
}

// Rules stacks one panel per rule from top to bottom.
func Rules(rules []model.Rule, groups []model.Group, opts RuleOptions) (*image.NRGBA, error) {
	if len(rules) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no rules to draw")
	}
	if err := imaging.CheckCanvasSize(RulePanelWidth, float64(RulePanelHeight)*float64(len(rules))); err != nil {
		return nil, err
	}
	opts.Style = opts.Style.withRuleFace()

	panels := make([]*image.NRGBA, len(rules))
	width, height := 0, 0
	for i, r := range rules {
		panels[i] = DrawRule(r, groups, opts)
		b := panels[i].Bounds()
		if b.Dx() > width {
			width = b.Dx()
		}
		height += b.Dy()
	}

	c := imaging.NewCanvas(width, height, *opts.Background)
	y := 0
	for _, p := range panels {
		c.Paste(p, image.Pt(0, y))
		y += p.Bounds().Dy()
	}
	return c.Image(), nil
}

func middle(v int) int { return v / 2 }

func rgba(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func finiteRegion(r geometry.Region) bool {
	for _, v := range []float64{r.X1, r.Y1, r.X2, r.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
