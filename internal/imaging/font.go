package imaging

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFontSize is the point size used when none is configured.
const DefaultFontSize = 20

// fontDirs are searched when a font is named without a directory.
var fontDirs = []string{
	"/usr/share/fonts/truetype/dejavu",
	"/usr/share/fonts/dejavu",
	"/usr/share/fonts/TTF",
	"/usr/local/share/fonts",
	"/Library/Fonts",
	"/System/Library/Fonts/Supplemental",
}

// ParseFace loads a TrueType or OpenType face from path at size points,
// 72 DPI. A bare file name is also looked up in the usual system font
// directories.
func ParseFace(path string, size float64) (font.Face, error) {
	data, err := readFont(path)
	if err != nil {
		return nil, err
	}
	return newFace(data, size)
}

// LoadFace returns the face at path, or the embedded Go Regular face when
// path is empty or cannot be loaded. basicfont.Face7x13 is the last resort.
// The returned error reports why path was not used and is informational.
func LoadFace(path string, size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultFontSize
	}

	var loadErr error
	if path != "" {
		face, err := ParseFace(path, size)
		if err == nil {
			return face, nil
		}
		loadErr = err
	}

	face, err := newFace(goregular.TTF, size)
	if err != nil {
		return basicfont.Face7x13, fmt.Errorf("failed to load embedded font: %w", err)
	}
	return face, loadErr
}

func newFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

func readFont(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if filepath.Base(path) != path {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	for _, dir := range fontDirs {
		if data, derr := os.ReadFile(filepath.Join(dir, path)); derr == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("failed to read font: %w", err)
}
