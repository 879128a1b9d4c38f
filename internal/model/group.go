package model

import (
	"image/color"

	"github.com/ironsheep/scan-diagrams/internal/errors"
	"github.com/ironsheep/scan-diagrams/internal/geometry"
	"github.com/ironsheep/scan-diagrams/internal/palette"
)

// Group is a named set of regions drawn on the authoring canvas over a
// scanned page.
//
// Regions are in canvas units with a lower-left origin and include the
// canvas display offset. SourceDimensions is the canvas size the regions
// were drawn against; SourceWidth and SourceHeight are the pixel size of the
// scan named by Source.
type Group struct {
	Name             string            `json:"name" toml:"name"`
	Regions          []geometry.Region `json:"regions" toml:"regions"`
	Color            *palette.Color    `json:"color,omitempty" toml:"color"`
	Hide             bool              `json:"hide" toml:"hide"`
	SourceDimensions []float64         `json:"source_dimensions" toml:"source_dimensions"`
	Source           string            `json:"source" toml:"source"`
	DisplayOffsetX   float64           `json:"display_offset_x" toml:"display_offset_x"`
	DisplayOffsetY   float64           `json:"display_offset_y" toml:"display_offset_y"`
	SourceWidth      int               `json:"source_width" toml:"source_width"`
	SourceHeight     int               `json:"source_height" toml:"source_height"`
}

// DisplayColor returns the group colour, picking a stable one from the name
// when none is set.
func (g *Group) DisplayColor() color.NRGBA {
	if g.Color != nil {
		return g.Color.NRGBA
	}
	return palette.PickFor(g.Name)
}

// RegionRectangle returns the bounding rectangle of all regions, or false
// when the group has none.
func (g *Group) RegionRectangle() (geometry.Region, bool) {
	return geometry.UnionBounds(g.Regions)
}

// BoundingRectangle returns the region rectangle as x, y, width, height.
func (g *Group) BoundingRectangle() (x, y, w, h float64, ok bool) {
	r, ok := g.RegionRectangle()
	if !ok {
		return 0, 0, 0, 0, false
	}
	x, y, w, h = r.XYWH()
	return x, y, w, h, true
}

// ContainsPoint reports whether (x, y) is strictly inside the region rectangle.
func (g *Group) ContainsPoint(x, y float64) bool {
	r, ok := g.RegionRectangle()
	if !ok {
		return false
	}
	return geometry.ContainsPoint(&r, x, y)
}

// SourceSpace returns the canvas space the regions were authored in.
func (g *Group) SourceSpace() (geometry.SourceSpace, error) {
	if len(g.SourceDimensions) < 2 {
		return geometry.SourceSpace{}, errors.New(errors.ErrCodeInvalidDimension,
			"group %q: source_dimensions needs width and height, got %v", g.Name, g.SourceDimensions)
	}
	return geometry.SourceSpace{
		Width:   g.SourceDimensions[0],
		Height:  g.SourceDimensions[1],
		OffsetX: g.DisplayOffsetX,
		OffsetY: g.DisplayOffsetY,
	}, nil
}

// ScaledBoundingRectangle maps the region rectangle into scan pixels with
// the display offset removed and the origin moved to the upper left.
//
// A group without regions gives nil and no error.
func (g *Group) ScaledBoundingRectangle() (*geometry.Rescaled, error) {
	r, ok := g.RegionRectangle()
	if !ok {
		return nil, nil
	}
	src, err := g.SourceSpace()
	if err != nil {
		return nil, err
	}
	return geometry.Rescale(&r, src, geometry.DestSpace{Width: g.SourceWidth, Height: g.SourceHeight})
}
