// Package server implements a stdio JSON-RPC 2.0 tool server over the
// diagram renderers, the region rescaler and region OCR.
//
// # Protocol
//
// One JSON-RPC request per line on stdin, one response per line on stdout:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Tools
//
// Diagrams, returned as base64 images (JPEG by default):
//   - diagram_dimensions: facing, side and perspective figures of a book
//   - diagram_overview: steps coloured by category
//   - diagram_rules: one panel per rule
//
// Regions:
//   - region_rescale: map a canvas region into scan pixels
//   - region_bounds: every group's box in scan pixels, optionally drawn
//   - region_text: OCR inside a rectangle or a named group
//   - rules_evaluate: read and match every rule of a rule set
//
// Elements a renderer skips are listed under "skipped" in the result
// instead of failing the call.
//
// # Image Caching
//
// Page scans are cached by path for the lifetime of the server, so
// repeated region calls on one scan decode it once.
//
// # Error Handling
//
// Tool failures are JSON-RPC errors with code -32000. Their data carries
// the error code (e.g. FILE_NOT_FOUND, INVALID_DIMENSION) and message.
package server
