// Package diagram renders the figures shown next to a scanning project.
//
// There are four renderers, each returning a fresh *image.NRGBA:
//
//   - Dimensions draws the facing, side and perspective views of the object
//     with a size caption.
//   - Overview lays the expected page categories out along one axis as
//     proportional coloured segments, with run labels and an optional key.
//   - Rules stacks one panel per rule, showing the source field, comparator
//     and result around a box that mirrors the group's region.
//   - Groups outlines each group's region on the scan it was drawn over.
//
// Renderers only fail on input that leaves nothing to draw. An element
// whose geometry cannot be computed is left out and reported through
// Style.Skip, and the rest of the diagram is still drawn.
package diagram
