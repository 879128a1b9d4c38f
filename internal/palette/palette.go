// Package palette resolves fill and border colours for overview categories.
//
// A Palette has three tiers looked up in order: an exact entry for the
// category name, the default entry for uncategorised steps, and the wildcard
// entry for anything else. Palettes written for the older flat format, with
// "None" and "*" keys among the entries, are read as the default and
// wildcard tiers respectively.
package palette

import "image/color"

// Reserved entry keys from the flat palette format.
const (
	KeyDefault  = "None"
	KeyWildcard = "*"
)

// Built-in fallbacks. The borders are almost fully transparent.
var (
	BuiltinDefaultFill    = MustParse("darkgray")
	BuiltinDefaultBorder  = color.NRGBA{R: 135, G: 135, B: 135, A: 1}
	BuiltinWildcardFill   = MustParse("lightgray")
	BuiltinWildcardBorder = color.NRGBA{R: 223, G: 223, B: 223, A: 1}
)

// Entry is one palette row. Either colour may be omitted.
type Entry struct {
	Fill   *Color `json:"fill,omitempty" toml:"fill"`
	Border *Color `json:"border,omitempty" toml:"border"`
}

// Style is a fully resolved pair of colours.
type Style struct {
	Fill   color.NRGBA
	Border color.NRGBA
}

// Palette maps category names to colours.
type Palette struct {
	Entries  map[string]Entry `json:"entries,omitempty" toml:"entries"`
	Default  Entry            `json:"default" toml:"default"`
	Wildcard Entry            `json:"wildcard" toml:"wildcard"`
}

// Resolve returns the style for category. The empty string and KeyDefault
// both name an uncategorised step.
func (p Palette) Resolve(category string) Style {
	wildcard := p.wildcardStyle()

	if category != KeyDefault && category != KeyWildcard {
		if e, ok := p.Entries[category]; ok {
			return e.over(wildcard)
		}
	}
	if IsUncategorized(category) {
		return p.defaultStyle()
	}
	return wildcard
}

// IsUncategorized reports whether category names the uncategorised step.
func IsUncategorized(category string) bool {
	return category == "" || category == KeyDefault
}

func (p Palette) defaultStyle() Style {
	base := Style{Fill: BuiltinDefaultFill, Border: BuiltinDefaultBorder}
	if legacy, ok := p.Entries[KeyDefault]; ok {
		base = legacy.over(base)
	}
	return p.Default.over(base)
}

func (p Palette) wildcardStyle() Style {
	base := Style{Fill: BuiltinWildcardFill, Border: BuiltinWildcardBorder}
	if legacy, ok := p.Entries[KeyWildcard]; ok {
		base = legacy.over(base)
	}
	return p.Wildcard.over(base)
}

// over fills missing colours of e from base.
func (e Entry) over(base Style) Style {
	s := base
	if e.Fill != nil {
		s.Fill = e.Fill.NRGBA
	}
	if e.Border != nil {
		s.Border = e.Border.NRGBA
	}
	return s
}
