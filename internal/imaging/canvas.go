package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/scan-diagrams/internal/errors"
)

// LineSpacing is the gap in pixels between lines of multi-line text.
const LineSpacing = 4

// MaxCanvasPixels is the largest area, in pixels, of any canvas or resized
// crop. At four bytes per pixel that is 256 MiB.
const MaxCanvasPixels = 1 << 26

// CheckCanvasSize returns an INVALID_DIMENSION error unless a width x height
// image is at least one pixel each way and no larger than MaxCanvasPixels.
// Sizes are taken as floats so layouts can be checked before converting.
func CheckCanvasSize(width, height float64) error {
	if !(width >= 1) || !(height >= 1) {
		return errors.New(errors.ErrCodeInvalidDimension, "canvas size must be positive, got %vx%v", width, height)
	}
	if width*height > MaxCanvasPixels {
		return errors.New(errors.ErrCodeInvalidDimension,
			"canvas %vx%v exceeds the %d pixel limit", width, height, MaxCanvasPixels)
	}
	return nil
}

// Canvas is a mutable NRGBA drawing surface.
type Canvas struct {
	img *image.NRGBA
}

// NewCanvas allocates a width x height canvas filled with bg. Callers
// taking sizes from input check them with CheckCanvasSize first.
func NewCanvas(width, height int, bg color.Color) *Canvas {
	return &Canvas{img: imaging.New(width, height, bg)}
}

// CanvasFrom copies img into a new canvas anchored at (0,0).
func CanvasFrom(img image.Image) *Canvas {
	return &Canvas{img: imaging.Clone(img)}
}

// Image returns the backing image. Further drawing is visible through it.
func (c *Canvas) Image() *image.NRGBA { return c.img }

// Bounds returns the canvas bounds.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Bounds().Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Fill composites col over the half-open rectangle r.
func (c *Canvas) Fill(r image.Rectangle, col color.NRGBA) {
	r = r.Canon().Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// DrawRectangle draws the rectangle with corners (x0,y0) and (x1,y1), both
// included. The corners may be given in either order.
//
// A nil fill leaves the interior untouched and a nil outline draws no
// border. The outline is one pixel wide and drawn after the fill.
func (c *Canvas) DrawRectangle(x0, y0, x1, y1 int, outline, fill *color.NRGBA) {
	r := image.Rect(x0, y0, x1, y1).Canon()
	outer := image.Rect(r.Min.X, r.Min.Y, r.Max.X+1, r.Max.Y+1)

	if fill != nil {
		inner := outer
		if outline != nil {
			inner = outer.Inset(1)
		}
		c.Fill(inner, *fill)
	}
	if outline == nil {
		return
	}

	c.Fill(image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, outer.Min.Y+1), *outline)
	if outer.Dy() > 1 {
		c.Fill(image.Rect(outer.Min.X, outer.Max.Y-1, outer.Max.X, outer.Max.Y), *outline)
	}
	if outer.Dy() > 2 {
		c.Fill(image.Rect(outer.Min.X, outer.Min.Y+1, outer.Min.X+1, outer.Max.Y-1), *outline)
		if outer.Dx() > 1 {
			c.Fill(image.Rect(outer.Max.X-1, outer.Min.Y+1, outer.Max.X, outer.Max.Y-1), *outline)
		}
	}
}

// DrawLine draws a polyline through points with the given stroke width.
//
// Pixels covered by several segments are composited once, so a translucent
// stroke keeps a uniform tint at the joints.
func (c *Canvas) DrawLine(points []image.Point, col color.NRGBA, width int) {
	if len(points) == 0 {
		return
	}
	if width < 1 {
		width = 1
	}
	lo := (width - 1) / 2
	hi := width / 2

	area := image.Rectangle{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		area = area.Union(image.Rectangle{Min: p, Max: p})
	}
	area = image.Rect(area.Min.X-lo, area.Min.Y-lo, area.Max.X+hi+1, area.Max.Y+hi+1)
	area = area.Intersect(c.img.Bounds())
	if area.Empty() {
		return
	}

	mask := image.NewAlpha(area)
	stamp := func(x, y int) {
		for dy := -lo; dy <= hi; dy++ {
			for dx := -lo; dx <= hi; dx++ {
				p := image.Pt(x+dx, y+dy)
				if p.In(area) {
					mask.SetAlpha(p.X, p.Y, color.Alpha{A: 0xff})
				}
			}
		}
	}

	if len(points) == 1 {
		stamp(points[0].X, points[0].Y)
	}
	for i := 1; i < len(points); i++ {
		bresenham(points[i-1], points[i], stamp)
	}

	draw.DrawMask(c.img, area, image.NewUniform(col), image.Point{}, mask, area.Min, draw.Over)
}

// bresenham calls plot for every pixel on the segment a-b.
func bresenham(a, b image.Point, plot func(x, y int)) {
	dx := absInt(b.X - a.X)
	dy := -absInt(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	x, y := a.X, a.Y
	for {
		plot(x, y)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// DrawText draws text with its top-left corner at pt. Lines are split on
// "\n" and separated by the face height plus LineSpacing.
func (c *Canvas) DrawText(pt image.Point, text string, face font.Face, col color.NRGBA) {
	metrics := face.Metrics()
	lineHeight := metrics.Ascent.Ceil() + metrics.Descent.Ceil() + LineSpacing

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	for i, line := range strings.Split(text, "\n") {
		d.Dot = fixed.P(pt.X, pt.Y+i*lineHeight+metrics.Ascent.Ceil())
		d.DrawString(line)
	}
}

// MeasureText returns the size of the box DrawText would cover.
func MeasureText(text string, face font.Face) (width, height int) {
	metrics := face.Metrics()
	lineHeight := metrics.Ascent.Ceil() + metrics.Descent.Ceil()

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	height = len(lines)*lineHeight + (len(lines)-1)*LineSpacing
	return width, height
}

// Paste draws img onto the canvas with its top-left corner at pt. The
// backing image is replaced, so images returned by Image before the call
// no longer track the canvas.
func (c *Canvas) Paste(img image.Image, pt image.Point) {
	c.img = imaging.Paste(c.img, img, pt)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
