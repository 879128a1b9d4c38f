package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/ironsheep/scan-diagrams/internal/errors"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

var (
	black = color.NRGBA{0, 0, 0, 255}
	white = color.NRGBA{255, 255, 255, 255}
	red   = color.NRGBA{255, 0, 0, 255}
)

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(20, 10, color.NRGBA{155, 155, 155, 255})
	if c.Width() != 20 || c.Height() != 10 {
		t.Fatalf("size: got %dx%d, want 20x10", c.Width(), c.Height())
	}
	if got := c.Image().NRGBAAt(19, 9); got != (color.NRGBA{155, 155, 155, 255}) {
		t.Errorf("background: got %v", got)
	}
}

func TestCanvasFrom_Copies(t *testing.T) {
	src := createPatternImage(10, 10)
	c := CanvasFrom(src)
	c.Fill(c.Bounds(), black)
	if r, _, _, _ := src.At(0, 0).RGBA(); r>>8 != 255 {
		t.Error("CanvasFrom shares pixels with its source")
	}
}

func TestDrawRectangle_InclusiveCorners(t *testing.T) {
	c := NewCanvas(10, 10, black)
	c.DrawRectangle(5, 5, 2, 2, &white, &red)

	img := c.Image()
	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{2, 2, white},
		{5, 5, white},
		{5, 2, white},
		{2, 4, white},
		{3, 3, red},
		{4, 4, red},
		{6, 6, black},
		{1, 1, black},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawRectangle_NilFill(t *testing.T) {
	c := NewCanvas(10, 10, black)
	c.DrawRectangle(1, 1, 8, 8, &white, nil)
	if got := c.Image().NRGBAAt(4, 4); got != black {
		t.Errorf("interior: got %v, want untouched", got)
	}
	if got := c.Image().NRGBAAt(8, 4); got != white {
		t.Errorf("right edge: got %v, want white", got)
	}
}

func TestDrawRectangle_FillOnly(t *testing.T) {
	c := NewCanvas(10, 10, black)
	c.DrawRectangle(0, 0, 9, 9, nil, &red)
	if got := c.Image().NRGBAAt(0, 0); got != red {
		t.Errorf("corner: got %v, want red", got)
	}
	if got := c.Image().NRGBAAt(9, 9); got != red {
		t.Errorf("far corner: got %v, want red", got)
	}
}

func TestDrawRectangle_SinglePixel(t *testing.T) {
	c := NewCanvas(5, 5, black)
	c.DrawRectangle(2, 2, 2, 2, &white, &red)
	if got := c.Image().NRGBAAt(2, 2); got != white {
		t.Errorf("got %v, want white", got)
	}
	if got := c.Image().NRGBAAt(3, 2); got != black {
		t.Errorf("neighbour: got %v, want black", got)
	}
}

func TestDrawRectangle_AlphaBlend(t *testing.T) {
	c := NewCanvas(4, 4, black)
	half := color.NRGBA{255, 255, 255, 128}
	c.DrawRectangle(0, 0, 3, 3, nil, &half)

	got := c.Image().NRGBAAt(1, 1)
	if !near(got.R, 128) || !near(got.G, 128) || got.A != 255 {
		t.Errorf("blended pixel: got %v, want about (128,128,128,255)", got)
	}
}

func TestDrawRectangle_Clipped(t *testing.T) {
	c := NewCanvas(5, 5, black)
	c.DrawRectangle(-5, -5, 20, 20, &white, &red)
	if got := c.Image().NRGBAAt(2, 2); got != red {
		t.Errorf("interior: got %v, want red", got)
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(10, 10, black)
	c.DrawLine([]image.Point{{1, 5}, {8, 5}}, white, 1)

	img := c.Image()
	for x := 1; x <= 8; x++ {
		if got := img.NRGBAAt(x, 5); got != white {
			t.Errorf("pixel (%d,5): got %v, want white", x, got)
		}
	}
	if got := img.NRGBAAt(4, 4); got != black {
		t.Errorf("pixel above line: got %v, want black", got)
	}
	if got := img.NRGBAAt(9, 5); got != black {
		t.Errorf("pixel past end: got %v, want black", got)
	}
}

func TestDrawLine_Width(t *testing.T) {
	c := NewCanvas(10, 10, black)
	c.DrawLine([]image.Point{{5, 0}, {5, 9}}, white, 2)

	img := c.Image()
	if img.NRGBAAt(5, 3) != white || img.NRGBAAt(6, 3) != white {
		t.Error("width 2 line should cover columns 5 and 6")
	}
	if img.NRGBAAt(4, 3) != black || img.NRGBAAt(7, 3) != black {
		t.Error("width 2 line is too wide")
	}
}

func TestDrawLine_TranslucentJoint(t *testing.T) {
	c := NewCanvas(10, 10, black)
	col := color.NRGBA{255, 255, 255, 128}
	c.DrawLine([]image.Point{{1, 1}, {5, 1}, {5, 5}}, col, 1)

	img := c.Image()
	if joint, mid := img.NRGBAAt(5, 1), img.NRGBAAt(3, 1); joint != mid {
		t.Errorf("joint blended twice: joint %v, segment %v", joint, mid)
	}
}

func TestDrawLine_Empty(t *testing.T) {
	c := NewCanvas(4, 4, black)
	c.DrawLine(nil, white, 3)
	c.DrawLine([]image.Point{{20, 20}, {30, 30}}, white, 1)
	if got := c.Image().NRGBAAt(3, 3); got != black {
		t.Errorf("got %v, want untouched canvas", got)
	}
}

func TestMeasureText(t *testing.T) {
	face := basicfont.Face7x13

	w, h := MeasureText("ab", face)
	if w != 14 || h != 13 {
		t.Errorf("single line: got %dx%d, want 14x13", w, h)
	}

	w, h = MeasureText("a\nlonger", face)
	if w != 42 || h != 13*2+LineSpacing {
		t.Errorf("two lines: got %dx%d, want 42x%d", w, h, 13*2+LineSpacing)
	}
}

func TestDrawText(t *testing.T) {
	c := NewCanvas(60, 40, black)
	c.DrawText(image.Pt(2, 2), "XY\nZ", basicfont.Face7x13, white)

	img := c.Image()
	var first, second bool
	for y := 2; y < 15; y++ {
		for x := 2; x < 16; x++ {
			if img.NRGBAAt(x, y) != black {
				first = true
			}
		}
	}
	for y := 19; y < 32; y++ {
		for x := 2; x < 9; x++ {
			if img.NRGBAAt(x, y) != black {
				second = true
			}
		}
	}
	if !first || !second {
		t.Errorf("text lines drawn: first=%v second=%v", first, second)
	}
	if got := img.NRGBAAt(50, 35); got != black {
		t.Errorf("pixel far from text: got %v", got)
	}
}

func TestPaste(t *testing.T) {
	c := NewCanvas(10, 10, black)
	c.Paste(createInMemoryImage(3, 3, color.RGBA{255, 0, 0, 255}), image.Pt(4, 4))
	if got := c.Image().NRGBAAt(5, 5); got != red {
		t.Errorf("pasted pixel: got %v, want red", got)
	}
	if got := c.Image().NRGBAAt(3, 3); got != black {
		t.Errorf("outside paste: got %v, want black", got)
	}
}

func TestCheckCanvasSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		ok            bool
	}{
		{"typical", 800, 50, true},
		{"at limit", MaxCanvasPixels, 1, true},
		{"over limit", MaxCanvasPixels, 2, false},
		{"huge width", 1e12, 10, false},
		{"infinite", math.Inf(1), 10, false},
		{"zero", 0, 10, false},
		{"sub pixel", 0.5, 10, false},
		{"nan", math.NaN(), 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCanvasSize(tt.width, tt.height)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidDimension) {
				t.Errorf("got %v, want %s", err, errors.ErrCodeInvalidDimension)
			}
		})
	}
}
