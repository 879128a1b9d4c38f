package geometry

import "math"

// Region is an axis-aligned rectangle in canvas units with a lower-left
// origin. (X1, Y1) is the minimum corner and (X2, Y2) the maximum corner
// for regions produced by the region collector; nothing here enforces it.
type Region struct {
	X1 float64 `json:"x1" toml:"x1"`
	Y1 float64 `json:"y1" toml:"y1"`
	X2 float64 `json:"x2" toml:"x2"`
	Y2 float64 `json:"y2" toml:"y2"`
}

// Width returns X2 - X1.
func (r Region) Width() float64 { return r.X2 - r.X1 }

// Height returns Y2 - Y1.
func (r Region) Height() float64 { return r.Y2 - r.Y1 }

// XYWH returns the region as an origin plus size.
func (r Region) XYWH() (x, y, w, h float64) {
	return r.X1, r.Y1, r.X2 - r.X1, r.Y2 - r.Y1
}

// Scale returns the region with every coordinate multiplied by f.
func (r Region) Scale(f float64) Region {
	return Region{X1: r.X1 * f, Y1: r.Y1 * f, X2: r.X2 * f, Y2: r.Y2 * f}
}

// Translate returns the region shifted by (dx, dy).
func (r Region) Translate(dx, dy float64) Region {
	return Region{X1: r.X1 + dx, Y1: r.Y1 + dy, X2: r.X2 + dx, Y2: r.Y2 + dy}
}

// finite reports whether all four coordinates are real numbers.
func (r Region) finite() bool {
	return isFinite(r.X1) && isFinite(r.Y1) && isFinite(r.X2) && isFinite(r.Y2)
}

// UnionBounds returns the smallest rectangle containing every region.
//
// The second result is false when regions is empty, in which case there is
// nothing to bound. Coordinates are combined with a running min/max over
// X1, Y1 (minimum) and X2, Y2 (maximum), so a single region comes back
// unchanged.
func UnionBounds(regions []Region) (Region, bool) {
	if len(regions) == 0 {
		return Region{}, false
	}

	u := regions[0]
	for _, r := range regions[1:] {
		if r.X1 < u.X1 {
			u.X1 = r.X1
		}
		if r.Y1 < u.Y1 {
			u.Y1 = r.Y1
		}
		if r.X2 > u.X2 {
			u.X2 = r.X2
		}
		if r.Y2 > u.Y2 {
			u.Y2 = r.Y2
		}
	}
	return u, true
}

// ContainsPoint reports whether (x, y) lies strictly inside bounds.
// Points on an edge are outside. A nil bounds contains nothing.
func ContainsPoint(bounds *Region, x, y float64) bool {
	if bounds == nil {
		return false
	}
	return bounds.X1 < x && x < bounds.X2 && bounds.Y1 < y && y < bounds.Y2
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
