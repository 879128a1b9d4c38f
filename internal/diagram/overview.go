package diagram

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/scan-diagrams/internal/errors"
	"github.com/ironsheep/scan-diagrams/internal/imaging"
	"github.com/ironsheep/scan-diagrams/internal/model"
	"github.com/ironsheep/scan-diagrams/internal/palette"
)

// Orientation is the axis an overview strip runs along.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Texture values for OverviewOptions.Texturing.
const (
	TextureContinuous    = 0
	TextureDiscontinuous = -1
)

const (
	runLabelInset   = 25
	keyPadding      = 20
	keyOffset       = 5
	keySwatch       = 10
	keyHPadding     = 10
	textureDivision = 8
	textureWidth    = 2
)

// ParseOrientation accepts "horizontal" or "vertical". Empty means horizontal.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case "", Horizontal:
		return Horizontal, nil
	case Vertical:
		return Vertical, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "orientation must be horizontal or vertical, got %q", s)
	}
}

// Segment is one step of an overview strip.
type Segment struct {
	Index    int
	Category string

	// X1, Y1, X2, Y2 are the segment corners in pixels, upper-left origin.
	X1, Y1, X2, Y2 float64

	// RunEnd is set on the last step of a run of equal categories, and
	// RunLength then holds the number of steps in that run.
	RunEnd    bool
	RunLength int
}

// Layout divides a width x height strip into one equal segment per step.
func Layout(steps []string, width, height int, o Orientation) ([]Segment, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDimension, "overview size must be positive, got %dx%d", width, height)
	}
	if err := imaging.CheckCanvasSize(float64(width), float64(height)); err != nil {
		return nil, err
	}
	if o != Horizontal && o != Vertical {
		return nil, errors.New(errors.ErrCodeInvalidInput, "orientation must be horizontal or vertical, got %q", o)
	}
	if len(steps) == 0 {
		return nil, nil
	}

	extent := float64(width)
	if o == Vertical {
		extent = float64(height)
	}
	stepwise := extent / float64(len(steps))

	segs := make([]Segment, len(steps))
	run := 0
	for i, step := range steps {
		start := stepwise * float64(i)
		s := Segment{Index: i, Category: step}
		if o == Vertical {
			s.X1, s.Y1, s.X2, s.Y2 = 0, start, float64(width), start+stepwise
		} else {
			s.X1, s.Y1, s.X2, s.Y2 = start, 0, start+stepwise, float64(height)
		}

		run++
		if i == len(steps)-1 || steps[i+1] != step {
			s.RunEnd = true
			s.RunLength = run
			run = 0
		}
		segs[i] = s
	}
	return segs, nil
}

// OverviewOptions configures Overview.
type OverviewOptions struct {
	Style

	Width       int
	Height      int
	Orientation Orientation

	// StepOffset is added to the step numbers printed at each run end.
	StepOffset int

	// Texturing holds one value per step; TextureContinuous draws vertical
	// hatching over that step. Missing entries draw nothing.
	Texturing []int

	// Palette replaces the project palette when set.
	Palette *palette.Palette

	// ColorKey adds a band under the strip naming each category colour.
	ColorKey bool
}

// KeyEntry is one swatch of the colour key.
type KeyEntry struct {
	Category string
	Fill     color.NRGBA
}

// Overview draws the category sequence of p as a proportional strip.
func Overview(p *model.Project, opts OverviewOptions) (*image.NRGBA, error) {
	style := opts.Style.withDefaults()
	if opts.Orientation == "" {
		opts.Orientation = Horizontal
	}

	segs, err := Layout(p.Steps(), opts.Width, opts.Height, opts.Orientation)
	if err != nil {
		return nil, err
	}

	pal := p.EffectivePalette()
	if opts.Palette != nil {
		pal = *opts.Palette
	}

	canvasHeight := opts.Height
	if opts.ColorKey {
		canvasHeight += keyPadding
	}
	if err := imaging.CheckCanvasSize(float64(opts.Width), float64(canvasHeight)); err != nil {
		return nil, err
	}
	c := imaging.NewCanvas(opts.Width, canvasHeight, *style.Background)

	var keys []KeyEntry
	seen := make(map[string]bool)
	for _, s := range segs {
		st := pal.Resolve(s.Category)
		if !seen[s.Category] {
			seen[s.Category] = true
			keys = append(keys, KeyEntry{Category: s.Category, Fill: st.Fill})
		}

		c.DrawRectangle(px(s.X1), px(s.Y1), px(s.X2), px(s.Y2), &st.Border, &st.Fill)
		if opts.Orientation == Vertical {
			c.DrawLine([]image.Point{{0, px(s.Y1)}, {opts.Width, px(s.Y1)}}, separator, 1)
		} else {
			c.DrawLine([]image.Point{{px(s.X1), 0}, {px(s.X1), opts.Height}}, separator, 1)
		}

		if s.RunEnd {
			n := s.Index + opts.StepOffset
			label := fmt.Sprintf("%d\n%d\n%d", n, n+1, s.RunLength)
			c.DrawText(image.Pt(px(s.X2)-runLabelInset, px(s.Y1)), label, style.Face, runLabel)
		}

		if s.Index < len(opts.Texturing) && opts.Texturing[s.Index] == TextureContinuous {
			drawTexture(c, s)
		}
	}

	if opts.ColorKey {
		drawColorKey(c, keys, opts.Width, opts.Height, style)
	}
	return c.Image(), nil
}

// drawTexture hatches the segment with vertical lines, textureDivision
// across its width.
func drawTexture(c *imaging.Canvas, s Segment) {
	x1, x2 := px(s.X1), px(s.X2)
	spacing := int(math.Round(float64(x2-x1) / textureDivision))
	if spacing < 1 {
		spacing = 1
	}
	top, bottom := px(s.Y1), px(s.Y2)
	for x := x1; x < x2; x += spacing {
		c.DrawLine([]image.Point{{x, top}, {x, bottom}}, textureInk, textureWidth)
	}
}

// drawColorKey lays swatches left to right below the strip, starting a new
// row once an entry passes the right edge.
func drawColorKey(c *imaging.Canvas, keys []KeyEntry, width, height int, style Style) {
	x, y := 0, height+keyOffset
	for _, k := range keys {
		fill := k.Fill
		c.DrawRectangle(x, y, x+keySwatch, y+keySwatch, nil, &fill)

		name := k.Category
		if palette.IsUncategorized(name) {
			name = palette.KeyDefault
		}
		c.DrawText(image.Pt(x+keySwatch, y), name, style.Face, textWhite)

		tw, _ := imaging.MeasureText(name, style.Face)
		keyWidth := tw + keySwatch + keyHPadding
		if x+keyWidth > width {
			y += keyOffset * 3
			x = 0
		} else {
			x += keyWidth
		}
	}
}
