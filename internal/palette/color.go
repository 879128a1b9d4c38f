package palette

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a palette colour that decodes from configuration files.
//
// Accepted forms in TOML and JSON:
//   - CSS colour names: "darkgray", "white"
//   - Hex strings: "#rgb", "#rrggbb", "#rrggbbaa"
//   - Arrays of 8-bit components: [r, g, b] or [r, g, b, a]
type Color struct {
	color.NRGBA
}

// NewColor builds a Color from 8-bit components.
func NewColor(r, g, b, a uint8) *Color {
	return &Color{color.NRGBA{R: r, G: g, B: b, A: a}}
}

// Hex returns the colour as "#RRGGBB", alpha excluded.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (c *Color) UnmarshalTOML(v interface{}) error {
	parsed, err := colorFromValue(v)
	if err != nil {
		return err
	}
	c.NRGBA = parsed
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Color) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := colorFromValue(v)
	if err != nil {
		return err
	}
	c.NRGBA = parsed
	return nil
}

// MarshalJSON writes the colour as an [r, g, b, a] array.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal([]uint8{c.R, c.G, c.B, c.A})
}

func colorFromValue(v interface{}) (color.NRGBA, error) {
	switch val := v.(type) {
	case string:
		return ParseColor(val)
	case []interface{}:
		return colorFromComponents(val)
	default:
		return color.NRGBA{}, fmt.Errorf("unsupported color value %v (%T)", v, v)
	}
}

func colorFromComponents(vals []interface{}) (color.NRGBA, error) {
	if len(vals) != 3 && len(vals) != 4 {
		return color.NRGBA{}, fmt.Errorf("color array must have 3 or 4 components, got %d", len(vals))
	}

	comps := [4]uint8{0, 0, 0, 255}
	for i, raw := range vals {
		var n float64
		switch x := raw.(type) {
		case int64:
			n = float64(x)
		case float64:
			n = x
		case int:
			n = float64(x)
		default:
			return color.NRGBA{}, fmt.Errorf("color component %d is not a number: %v", i, raw)
		}
		if n < 0 || n > 255 {
			return color.NRGBA{}, fmt.Errorf("color component %d out of range: %v", i, n)
		}
		comps[i] = uint8(n)
	}
	return color.NRGBA{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}, nil
}

// ParseColor parses a CSS colour name or a hex string.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}

	if strings.HasPrefix(s, "#") {
		if len(s) == 9 {
			val, err := strconv.ParseUint(s[1:], 16, 32)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
			}
			return color.NRGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	}

	named, ok := colornames.Map[s]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("unknown color name %q", s)
	}
	return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, nil
}

// MustParse is ParseColor for compile-time constants.
func MustParse(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// PickFor returns a stable colour for name, used for groups created without
// one. The name is hashed onto the hue wheel at fixed saturation and lightness.
func PickFor(name string) color.NRGBA {
	h := fnv.New32a()
	h.Write([]byte(name))
	hue := float64(h.Sum32() % 360)

	r, g, b := colorful.Hsl(hue, 0.55, 0.6).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
