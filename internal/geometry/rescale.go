package geometry

import (
	"image"
	"math"

	"github.com/ironsheep/scan-diagrams/internal/errors"
)

// SourceSpace describes the canvas a region was authored on.
type SourceSpace struct {
	// Width and Height are the logical canvas size. Both must be > 0.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// OffsetX and OffsetY are the display offsets of the authoring surface.
	// Only OffsetX is removed before scaling.
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// DestSpace describes the target raster, upper-left origin, one unit per pixel.
type DestSpace struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MaxCoordinate is the largest magnitude of any coordinate Rescale returns.
const MaxCoordinate = math.MaxInt32

// Rescaled is a region expressed in destination pixel coordinates.
//
// The pairs (X, X2) and (Y, Y2) are not ordered: the y-flip usually leaves
// Y > Y2. Use Normalized for a min/max rectangle.
type Rescaled struct {
	X  int `json:"x"`
	Y  int `json:"y"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns |X2 - X|.
func (r Rescaled) Width() int { return absInt(r.X2 - r.X) }

// Height returns |Y2 - Y|.
func (r Rescaled) Height() int { return absInt(r.Y2 - r.Y) }

// Normalized returns the rescaled corners as a well-formed image.Rectangle.
func (r Rescaled) Normalized() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X2, r.Y2).Canon()
}

// Rescale maps region from the source canvas into destination pixels.
//
// Parameters:
//   - region: The region in canvas units. nil means no sub-regions were
//     recorded; the result is nil with no error.
//   - src: Canvas size and display offset. Width and Height must be > 0.
//   - dst: Target raster size. Width and Height must be > 0.
//
// Returns:
//   - *Rescaled: A new value; region is never modified.
//   - error: errors.ErrCodeInvalidDimension for a non-positive or non-finite
//     dimension, errors.ErrCodeMalformedRegion for a NaN or infinite
//     coordinate or offset, or for a result beyond MaxCoordinate.
//
// # Algorithm
//
//	x1, x2 := region.X1 - src.OffsetX, region.X2 - src.OffsetX
//	xScale, yScale := dst.Width/src.Width, dst.Height/src.Height
//	x  = roundEven(x1 * xScale)      y  = |dst.Height - roundEven(region.Y1 * yScale)|
//	x2 = roundEven(x2 * xScale)      y2 = |dst.Height - roundEven(region.Y2 * yScale)|
//
// src.OffsetY is not subtracted. Rounding is half to even, so 2.5 becomes 2
// and 3.5 becomes 4.
//
// # Example
//
//	r := &Region{X1: 10, Y1: 10, X2: 50, Y2: 60}
//	out, _ := Rescale(r, SourceSpace{Width: 100, Height: 100}, DestSpace{Width: 200, Height: 200})
//	// out == &Rescaled{X: 20, Y: 180, X2: 100, Y2: 80}
func Rescale(region *Region, src SourceSpace, dst DestSpace) (*Rescaled, error) {
	if region == nil {
		return nil, nil
	}

	if !isFinite(src.Width) || src.Width <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDimension, "source width must be positive, got %v", src.Width)
	}
	if !isFinite(src.Height) || src.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDimension, "source height must be positive, got %v", src.Height)
	}
	if dst.Width <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDimension, "destination width must be positive, got %d", dst.Width)
	}
	if dst.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDimension, "destination height must be positive, got %d", dst.Height)
	}
	if !region.finite() {
		return nil, errors.New(errors.ErrCodeMalformedRegion, "region has a non-numeric coordinate: %+v", *region)
	}
	if !isFinite(src.OffsetX) || !isFinite(src.OffsetY) {
		return nil, errors.New(errors.ErrCodeMalformedRegion, "display offset is not numeric: (%v, %v)", src.OffsetX, src.OffsetY)
	}

	x1 := region.X1 - src.OffsetX
	x2 := region.X2 - src.OffsetX

	xScale := float64(dst.Width) / src.Width
	yScale := float64(dst.Height) / src.Height

	height := float64(dst.Height)
	out := [4]float64{
		math.RoundToEven(x1 * xScale),
		math.Abs(height - math.RoundToEven(region.Y1*yScale)),
		math.RoundToEven(x2 * xScale),
		math.Abs(height - math.RoundToEven(region.Y2*yScale)),
	}
	for _, v := range out {
		// also rejects the NaN and Inf an overflowing product leaves
		if !(math.Abs(v) <= MaxCoordinate) {
			return nil, errors.New(errors.ErrCodeMalformedRegion,
				"region %+v rescales beyond the %d pixel coordinate limit", *region, MaxCoordinate)
		}
	}

	return &Rescaled{
		X:  int(out[0]),
		Y:  int(out[1]),
		X2: int(out[2]),
		Y2: int(out[3]),
	}, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
