package imaging

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// DefaultGridColor is semi-transparent red.
var DefaultGridColor = color.NRGBA{255, 0, 0, 128}

// GridOverlay draws a coordinate grid every spacing pixels. When face is
// non-nil each intersection is labelled "x,y" on a dark backing box.
func GridOverlay(c *Canvas, spacing int, gridColor color.NRGBA, face font.Face) {
	if spacing <= 0 {
		return
	}
	w, h := c.Width(), c.Height()

	for x := spacing; x < w; x += spacing {
		c.Fill(image.Rect(x, 0, x+1, h), gridColor)
	}
	for y := spacing; y < h; y += spacing {
		c.Fill(image.Rect(0, y, w, y+1), gridColor)
	}

	if face == nil {
		return
	}
	labelColor := color.NRGBA{255, 255, 255, 255}
	bgColor := color.NRGBA{0, 0, 0, 180}
	for y := spacing; y < h; y += spacing {
		for x := spacing; x < w; x += spacing {
			label := fmt.Sprintf("%d,%d", x, y)
			lw, lh := MeasureText(label, face)
			c.Fill(image.Rect(x+1, y+1, x+lw+3, y+lh+3), bgColor)
			c.DrawText(image.Pt(x+2, y+2), label, face, labelColor)
		}
	}
}

// OutlineRegion draws r on c with a border of the given thickness,
// growing inward.
func OutlineRegion(c *Canvas, r image.Rectangle, col color.NRGBA, thickness int) {
	r = r.Canon()
	for i := 0; i < thickness && r.Dx() > 2*i && r.Dy() > 2*i; i++ {
		c.DrawRectangle(r.Min.X+i, r.Min.Y+i, r.Max.X-1-i, r.Max.Y-1-i, &col, nil)
	}
}
