package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/scan-diagrams/internal/errors"
)

// CropRegion extracts r from img and optionally resizes it by scale.
//
// r is clipped to the image bounds first, so a region that slightly
// overhangs the scan still yields its visible part. A scale of 0 or 1
// keeps the cropped size.
func CropRegion(img image.Image, r image.Rectangle, scale float64) (*image.NRGBA, error) {
	bounds := img.Bounds()
	clipped := r.Canon().Intersect(bounds)
	if clipped.Empty() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"crop region (%d,%d)-(%d,%d) does not overlap image bounds (%d,%d)-(%d,%d)",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if scale < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale must not be negative, got %v", scale)
	}

	resize := scale != 1.0 && scale > 0
	fw := math.Max(1, math.Trunc(float64(clipped.Dx())*scale))
	fh := math.Max(1, math.Trunc(float64(clipped.Dy())*scale))
	if resize {
		if err := CheckCanvasSize(fw, fh); err != nil {
			return nil, err
		}
	}

	cropped := imaging.Crop(img, clipped)
	if resize {
		cropped = imaging.Resize(cropped, int(fw), int(fh), imaging.Lanczos)
	}
	return cropped, nil
}
