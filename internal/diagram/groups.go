package diagram

import (
	"fmt"
	"image"

	"github.com/ironsheep/scan-diagrams/internal/geometry"
	"github.com/ironsheep/scan-diagrams/internal/imaging"
	"github.com/ironsheep/scan-diagrams/internal/model"
)

// GroupsOptions configures Groups.
type GroupsOptions struct {
	Style

	// Thickness of the region outline in pixels. Zero means 3.
	Thickness int

	// Grid draws a labelled coordinate grid every Grid pixels when > 0.
	Grid int

	// ShowHidden also draws groups marked hidden.
	ShowHidden bool
}

// GroupBox is where a group landed on the scan.
type GroupBox struct {
	Group string           `json:"group"`
	Box   geometry.Rescaled `json:"box"`
}

// Groups outlines the scaled bounding rectangle of every group on a copy of
// scan and labels it with the group name. Groups without regions are
// skipped silently; groups whose geometry fails are reported through Skip.
func Groups(scan image.Image, groups []model.Group, opts GroupsOptions) (*image.NRGBA, []GroupBox) {
	style := opts.Style.withDefaults()
	thickness := opts.Thickness
	if thickness <= 0 {
		thickness = 3
	}

	c := imaging.CanvasFrom(scan)
	if opts.Grid > 0 {
		imaging.GridOverlay(c, opts.Grid, imaging.DefaultGridColor, style.Face)
	}

	var boxes []GroupBox
	for i := range groups {
		g := &groups[i]
		if g.Hide && !opts.ShowHidden {
			continue
		}
		box, err := g.ScaledBoundingRectangle()
		if err != nil {
			style.skip(fmt.Sprintf("group %q", g.Name), err)
			continue
		}
		if box == nil {
			continue
		}
		boxes = append(boxes, GroupBox{Group: g.Name, Box: *box})

		col := g.DisplayColor()
		r := box.Normalized()
		imaging.OutlineRegion(c, r, col, thickness)

		_, th := imaging.MeasureText(g.Name, style.Face)
		label := image.Pt(r.Min.X, r.Min.Y-th-2)
		if label.Y < 0 {
			label.Y = r.Min.Y + thickness + 2
		}
		c.DrawText(label, g.Name, style.Face, col)
	}
	return c.Image(), boxes
}
