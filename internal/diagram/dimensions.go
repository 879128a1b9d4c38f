package diagram

import (
	"fmt"
	"image"
	"math"
	"strconv"

	"github.com/ironsheep/scan-diagrams/internal/imaging"
	"github.com/ironsheep/scan-diagrams/internal/model"
)

const (
	dimOffset     = 10
	figureSpacing = 20
	foreShorten   = 0.5
	captionHeight = 50
)

// DimensionsOptions configures Dimensions.
type DimensionsOptions struct {
	Style

	// Width and Height are the minimum canvas size; the canvas grows to
	// fit the figures. Zero means 200.
	Width  int
	Height int

	// Scale multiplies the project dimensions into pixels. Zero means 1.
	Scale float64
}

// DimensionsLayout is the computed geometry of a dimensions diagram.
type DimensionsLayout struct {
	Width, Height int

	Facing, Side, Front [4]float64 // x1, y1, x2, y2
	Lines               [][2][2]float64
	CaptionAt           image.Point
	Caption             string
}

// LayoutDimensions computes the figures for p without drawing them. A
// canvas larger than imaging.MaxCanvasPixels is INVALID_DIMENSION.
func LayoutDimensions(p *model.Project, opts DimensionsOptions) (DimensionsLayout, error) {
	scale := opts.Scale
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	uw, uh, ud := p.Dimensions()
	w, h, d := uw*scale, uh*scale, ud*scale

	minW, minH := opts.Width, opts.Height
	if minW <= 0 {
		minW = 200
	}
	if minH <= 0 {
		minH = 200
	}
	neededW := w*3 + d*3 + figureSpacing*2 + dimOffset
	neededH := h + d*foreShorten + dimOffset + captionHeight

	width := math.Max(float64(minW), math.Trunc(neededW))
	height := math.Max(float64(minH), math.Trunc(neededH))
	if err := imaging.CheckCanvasSize(width, height); err != nil {
		return DimensionsLayout{}, err
	}
	l := DimensionsLayout{Width: int(width), Height: int(height)}

	var drawn float64
	l.Facing = [4]float64{dimOffset + drawn, dimOffset, dimOffset + drawn + w, dimOffset + h}
	drawn += dimOffset + w + figureSpacing

	l.Side = [4]float64{dimOffset + drawn, dimOffset, dimOffset + drawn + d, dimOffset + h}
	drawn += dimOffset + d + figureSpacing

	left := dimOffset + drawn
	shift := d * foreShorten
	backUL := [2]float64{left, dimOffset}
	backLL := [2]float64{left, dimOffset + h}
	backUR := [2]float64{left + w, dimOffset}
	foreUL := [2]float64{left + shift, dimOffset + shift}
	foreLL := [2]float64{left + shift, dimOffset + h + shift}
	foreUR := [2]float64{left + w + shift, dimOffset + shift}

	l.Lines = [][2][2]float64{
		{foreUL, backUL},
		{foreLL, backLL},
		{foreUR, backUR},
		{backUL, backLL},
		{backUL, backUR},
	}
	l.Front = [4]float64{foreUL[0], foreUL[1], foreUL[0] + w, foreUL[1] + h}

	l.CaptionAt = image.Pt(dimOffset, px(dimOffset+h+10))
	l.Caption = fmt.Sprintf("%s x %s x %s \nunits: %s\ntag: %s",
		formatDimension(uw), formatDimension(ud), formatDimension(uh), p.UnitName(), p.Name)
	return l, nil
}

// Dimensions draws the facing, side and perspective outlines of p.
func Dimensions(p *model.Project, opts DimensionsOptions) (*image.NRGBA, error) {
	style := opts.Style.withDefaults()
	l, err := LayoutDimensions(p, opts)
	if err != nil {
		return nil, err
	}

	c := imaging.NewCanvas(l.Width, l.Height, *style.Background)
	outline := textWhite
	for _, r := range [][4]float64{l.Facing, l.Side} {
		c.DrawRectangle(px(r[0]), px(r[1]), px(r[2]), px(r[3]), &outline, nil)
	}
	for _, seg := range l.Lines {
		c.DrawLine([]image.Point{
			image.Pt(px(seg[0][0]), px(seg[0][1])),
			image.Pt(px(seg[1][0]), px(seg[1][1])),
		}, textWhite, 1)
	}
	c.DrawRectangle(px(l.Front[0]), px(l.Front[1]), px(l.Front[2]), px(l.Front[3]), &outline, nil)
	c.DrawText(l.CaptionAt, l.Caption, style.Face, textWhite)
	return c.Image(), nil
}

// formatDimension prints whole numbers with one decimal place ("20.0"),
// the way the caption has always shown them.
func formatDimension(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func px(v float64) int {
	return int(math.Round(v))
}
