// Package imaging provides the raster surface the diagram renderers draw on
// and the image I/O around it.
//
// This package implements a small drawing canvas (rectangles, polylines and
// multi-line text), font loading, loading and caching of scanned pages,
// cropping of rescaled regions, a coordinate grid for debugging region
// placement, and JPEG/PNG encoding. Canvases are *image.NRGBA values
// allocated with github.com/disintegration/imaging.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with (0,0) at the
// top-left corner, X increasing rightward and Y increasing downward:
//   - Rectangles passed to DrawRectangle include both corners, matching the
//     way the diagrams are specified
//   - Crop rectangles are half-open image.Rectangle values
//
// Regions authored on the lower-left-origin canvas must go through
// geometry.Rescale before they reach this package.
//
// # Blending
//
// Every draw operation composites with draw.Over, so a colour with alpha
// below 255 tints rather than replaces what is underneath.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. A Canvas is not; callers
// drawing on the same canvas from several goroutines must synchronize.
package imaging
