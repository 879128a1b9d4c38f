package diagram

import (
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/ironsheep/scan-diagrams/internal/imaging"
)

// DefaultBackground is the canvas colour of every diagram.
var DefaultBackground = color.NRGBA{155, 155, 155, 255}

// DefaultRuleFont is looked up for rule panels before falling back to the
// embedded face.
const DefaultRuleFont = "DejaVuSerif-Bold.ttf"

var (
	textWhite  = color.NRGBA{255, 255, 255, 255}
	textBlack  = color.NRGBA{0, 0, 0, 255}
	separator  = color.NRGBA{255, 255, 255, 55}
	runLabel   = color.NRGBA{230, 230, 230, 128}
	textureInk = color.NRGBA{255, 255, 255, 128}
)

// SkipFunc is told about an element left undrawn because its geometry
// could not be computed. It is never called for fatal errors.
type SkipFunc func(element string, err error)

// Style holds what all renderers share.
type Style struct {
	// Background is the canvas colour. nil selects DefaultBackground; any
	// other value is used as given, fully transparent included.
	Background *color.NRGBA

	// Face draws captions, run labels and the colour key. nil selects
	// basicfont.Face7x13.
	Face font.Face

	// RuleFace draws the text of rule panels. nil selects a face loaded
	// from DefaultRuleFont at imaging.DefaultFontSize.
	RuleFace font.Face

	// Skip receives recoverable per-element failures. May be nil.
	Skip SkipFunc
}

func (s Style) withDefaults() Style {
	if s.Background == nil {
		bg := DefaultBackground
		s.Background = &bg
	}
	if s.Face == nil {
		s.Face = basicfont.Face7x13
	}
	return s
}

func (s Style) withRuleFace() Style {
	s = s.withDefaults()
	if s.RuleFace == nil {
		s.RuleFace, _ = imaging.LoadFace(DefaultRuleFont, imaging.DefaultFontSize)
	}
	return s
}

func (s Style) skip(element string, err error) {
	if s.Skip != nil {
		s.Skip(element, err)
	}
}
