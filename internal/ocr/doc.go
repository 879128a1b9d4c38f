// Package ocr reads the text inside a rectangle of a page scan using
// Tesseract (via gosseract/v2).
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// The default language is English ("eng"). Any installed Tesseract
// language code may be passed instead, e.g. "deu" or "lat".
//
// # Coordinates
//
// ReadRegion crops the region before recognition, so Tesseract only sees
// the field a rule is interested in. Word bounds in the result are shifted
// back into scan coordinates, and divided by the upscale factor when one
// is configured:
//
//	word found at (10,20) in a crop starting at (100,50) -> (110,70)
//
// # Concurrency
//
// Each call creates and closes its own Tesseract client, so an Engine may
// be shared between goroutines.
package ocr
