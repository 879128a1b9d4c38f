package diagram

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/image/font/basicfont"

	"github.com/ironsheep/scan-diagrams/internal/errors"
	"github.com/ironsheep/scan-diagrams/internal/geometry"
	"github.com/ironsheep/scan-diagrams/internal/model"
	"github.com/ironsheep/scan-diagrams/internal/palette"
)

// testStyle uses the bitmap face everywhere so pixel positions do not
// depend on installed fonts.
func testStyle() Style {
	return Style{Face: basicfont.Face7x13, RuleFace: basicfont.Face7x13}
}

type skipped struct {
	element string
	err     error
}

func recordSkips(s *Style) *[]skipped {
	var got []skipped
	s.Skip = func(element string, err error) {
		got = append(got, skipped{element, err})
	}
	return &got
}

func pixel(img *image.NRGBA, x, y int) color.NRGBA {
	return img.NRGBAAt(x, y)
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func TestRender(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	dir := t.TempDir()

	r, err := Render(img, Output{Save: true, Dir: dir})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(r.Data) == 0 {
		t.Error("no encoded data")
	}
	if r.Path == "" {
		t.Fatal("Save did not set a path")
	}

	r, err = Render(img, Output{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if r.Path != "" {
		t.Errorf("unsaved render has path %q", r.Path)
	}
}

func TestRules_Empty(t *testing.T) {
	if _, err := Rules(nil, nil, RuleOptions{Style: testStyle()}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("got %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestRules_TooMany(t *testing.T) {
	rules := make([]model.Rule, 2000)
	for i := range rules {
		rules[i] = model.Rule{SourceField: "center"}
	}
	if _, err := Rules(rules, nil, RuleOptions{Style: testStyle()}); !errors.Is(err, errors.ErrCodeInvalidDimension) {
		t.Errorf("got %v, want %s", err, errors.ErrCodeInvalidDimension)
	}
}

func TestRules_Stacks(t *testing.T) {
	rules := []model.Rule{
		{SourceField: "center", ComparatorSymbol: "is", ComparatorParams: []string{"int"}, DestField: "chapter", RuleResult: "bar"},
		{SourceField: "left_corner", ComparatorSymbol: "between", ComparatorParams: []string{"6", "10"}, DestField: "chapter", RuleResult: "bar"},
		{SourceField: "header", ComparatorSymbol: "~~", ComparatorParams: []string{"index"}, DestField: "section", RuleResult: "back"},
	}
	img, err := Rules(rules, nil, RuleOptions{Style: testStyle()})
	if err != nil {
		t.Fatalf("Rules failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != RulePanelWidth || b.Dy() != 3*RulePanelHeight {
		t.Errorf("size: got %dx%d, want %dx%d", b.Dx(), b.Dy(), RulePanelWidth, 3*RulePanelHeight)
	}

	// every panel has its white field box
	for i := 0; i < 3; i++ {
		if got := pixel(img, 275, i*RulePanelHeight+75); got != (color.NRGBA{255, 255, 255, 255}) {
			t.Errorf("panel %d field interior: got %v, want white", i, got)
		}
	}
}

func TestLayoutRule_NoGroup(t *testing.T) {
	panel := LayoutRule(model.Rule{SourceField: "center"}, nil, nil)
	want := geometry.Region{X1: 250, Y1: 25, X2: 300, Y2: 125}
	if panel.Field != want {
		t.Errorf("field: got %+v, want %+v", panel.Field, want)
	}
	if panel.Highlight != nil {
		t.Errorf("highlight: got %+v, want nil", panel.Highlight)
	}
}

func TestLayoutRule_WithGroup(t *testing.T) {
	groups := []model.Group{
		{Name: "other", SourceDimensions: []float64{1000, 1000}},
		{
			Name:             "center",
			Regions:          []geometry.Region{{X1: 100, Y1: 100, X2: 200, Y2: 150}, {X1: 0, Y1: 0, X2: 10, Y2: 10}},
			SourceDimensions: []float64{400, 300},
			Color:            palette.NewColor(0, 200, 0, 255),
		},
	}
	panel := LayoutRule(model.Rule{SourceField: "center"}, groups, nil)

	approx := cmpopts.EquateApprox(0, 1e-9)
	wantField := geometry.Region{X1: 250, Y1: 25, X2: 310, Y2: 70}
	if diff := cmp.Diff(wantField, panel.Field, approx); diff != "" {
		t.Errorf("field mismatch (-want +got):\n%s", diff)
	}
	if panel.Highlight == nil {
		t.Fatal("expected a highlight")
	}

	// first region * 0.15 = (15,15,30,22.5), shifted by the field origin,
	// then left by its width and down by field height minus its height
	want := geometry.Region{X1: 250, Y1: 77.5, X2: 265, Y2: 85}
	if diff := cmp.Diff(want, *panel.Highlight, approx); diff != "" {
		t.Errorf("highlight mismatch (-want +got):\n%s", diff)
	}
	if panel.HighlightColor != (color.NRGBA{0, 200, 0, 255}) {
		t.Errorf("highlight colour: got %v", panel.HighlightColor)
	}
}

func TestLayoutRule_BadGroupIsSkipped(t *testing.T) {
	style := testStyle()
	skips := recordSkips(&style)

	groups := []model.Group{{
		Name:             "center",
		Regions:          []geometry.Region{{X1: 1, Y1: 1, X2: 2, Y2: 2}},
		SourceDimensions: []float64{400},
	}}
	panel := LayoutRule(model.Rule{SourceField: "center", ComparatorSymbol: "is", ComparatorParams: []string{"int"}}, groups, style.Skip)

	if len(*skips) != 1 || !errors.Is((*skips)[0].err, errors.ErrCodeInvalidDimension) {
		t.Fatalf("skips: got %+v, want one INVALID_DIMENSION", *skips)
	}
	if panel.Field.X2 != 300 || panel.Field.Y2 != 125 {
		t.Errorf("field should keep its default size, got %+v", panel.Field)
	}
	if panel.Highlight == nil {
		t.Error("highlight should still be drawn from the region")
	}
}

func TestDrawRule_SingleParamStillHighlights(t *testing.T) {
	groups := []model.Group{{
		Name:             "center",
		Regions:          []geometry.Region{{X1: 100, Y1: 100, X2: 200, Y2: 150}},
		SourceDimensions: []float64{400, 300},
		Color:            palette.NewColor(0, 0, 255, 255),
	}}
	rule := model.Rule{SourceField: "center", ComparatorSymbol: "is", ComparatorParams: []string{"int"}}
	img := DrawRule(rule, groups, RuleOptions{Style: testStyle()})

	// field is 60x45; highlight = (250,77.5)-(265,85) rounded
	if got := pixel(img, 257, 80); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("highlight pixel: got %v, want blue", got)
	}
}

func TestDrawRule_Background(t *testing.T) {
	img := DrawRule(model.Rule{SourceField: "x"}, nil, RuleOptions{Style: testStyle()})
	if b := img.Bounds(); b.Dx() != RulePanelWidth || b.Dy() != RulePanelHeight {
		t.Fatalf("size: got %dx%d", b.Dx(), b.Dy())
	}
	if got := pixel(img, 399, 199); got != DefaultBackground {
		t.Errorf("corner: got %v, want background", got)
	}
	if got := pixel(img, 250, 25); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("field border: got %v, want black", got)
	}
}
