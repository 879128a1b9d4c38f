// Package geometry converts group regions between the two coordinate
// conventions used by the labeling tool.
//
// # Coordinate Systems
//
// Regions are authored on a canvas whose origin is the lower-left corner,
// X increasing rightward and Y increasing upward, measured in logical canvas
// units. The canvas is displayed with an additive offset, so raw region
// coordinates include that offset.
//
// Scanned page images use the raster convention: origin at the upper-left
// corner, X rightward, Y downward, one unit per pixel.
//
// # Rescaling
//
// Rescale maps a Region from the canvas into scan pixels. The steps are
// fixed and order-dependent:
//
//  1. Subtract the display offset from the x-coordinates only.
//  2. Compute independent scale factors per axis.
//  3. Scale and round each coordinate (round half to even).
//  4. Flip y with |destHeight - y|.
//
// The vertical display offset is accepted but deliberately not applied, and
// the absolute value in step 4 can hide sign errors when the source space
// and offsets disagree. Both behaviours are kept as-is and covered by tests;
// callers that need min <= max must use Rescaled.Normalized.
//
// # Error Handling
//
// A nil region means no sub-regions were recorded and yields a nil result
// without error. Non-positive or non-finite dimensions fail with
// errors.ErrCodeInvalidDimension; NaN or infinite coordinates fail with
// errors.ErrCodeMalformedRegion. Both are recoverable: the caller skips the
// element and carries on.
//
// # Thread Safety
//
// All functions are pure and operate on values; they are safe for
// concurrent use.
package geometry
