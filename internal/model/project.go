package model

import (
	"math"
	"sort"

	"github.com/ironsheep/scan-diagrams/internal/palette"
)

// DefaultUnit is reported when a project does not name its unit.
const DefaultUnit = "None"

// Project describes a scanned object: its physical size and the expected
// sequence of page categories.
type Project struct {
	Name  string  `json:"name" toml:"name"`
	Width float64 `json:"width" toml:"width"`
	// Height and Depth share Width's unit.
	Height float64 `json:"height" toml:"height"`
	Depth  float64 `json:"depth" toml:"depth"`
	Unit   string  `json:"unit" toml:"unit"`

	// Categories in declaration order.
	Categories []Category `json:"categories" toml:"categories"`

	// Order overrides category order: categories are visited by ascending
	// value, and categories without a value are left out of the sequence.
	Order map[string]float64 `json:"order,omitempty" toml:"order"`

	Palette palette.Palette `json:"palette" toml:"palette"`
}

// Dimensions returns width, height and depth with missing or invalid values
// (negative, NaN, infinite) reported as 0.
func (p *Project) Dimensions() (width, height, depth float64) {
	return cleanDimension(p.Width), cleanDimension(p.Height), cleanDimension(p.Depth)
}

// UnitName returns the project unit or DefaultUnit.
func (p *Project) UnitName() string {
	if p.Unit == "" {
		return DefaultUnit
	}
	return p.Unit
}

// Steps expands the categories into one entry per expected page.
//
// When an order is present (the Order map, or RoughOrder on categories, with
// Order taking precedence) categories are visited by ascending order value,
// ties keeping declaration order, and categories without an order value are
// skipped. Order keys naming unknown categories are ignored. Without any
// order, declaration order is used.
func (p *Project) Steps() []string {
	order := p.effectiveOrder()

	cats := make([]Category, 0, len(p.Categories))
	if len(order) == 0 {
		cats = append(cats, p.Categories...)
	} else {
		for _, c := range p.Categories {
			if _, ok := order[c.Name]; ok {
				cats = append(cats, c)
			}
		}
		sort.SliceStable(cats, func(i, j int) bool {
			return order[cats[i].Name] < order[cats[j].Name]
		})
	}

	var steps []string
	for _, c := range cats {
		for i := 0; i < c.RoughAmount; i++ {
			steps = append(steps, c.Name)
		}
	}
	return steps
}

func (p *Project) effectiveOrder() map[string]float64 {
	order := make(map[string]float64)
	for _, c := range p.Categories {
		if c.RoughOrder != nil {
			order[c.Name] = *c.RoughOrder
		}
	}
	for k, v := range p.Order {
		order[k] = v
	}
	return order
}

// EffectivePalette returns the project palette with category colours added
// as exact entries where the palette has none.
func (p *Project) EffectivePalette() palette.Palette {
	out := palette.Palette{
		Entries:  make(map[string]palette.Entry, len(p.Palette.Entries)+len(p.Categories)),
		Default:  p.Palette.Default,
		Wildcard: p.Palette.Wildcard,
	}
	for k, v := range p.Palette.Entries {
		out.Entries[k] = v
	}
	for _, c := range p.Categories {
		if c.Color == nil {
			continue
		}
		e := out.Entries[c.Name]
		if e.Fill == nil {
			e.Fill = c.Color
		}
		out.Entries[c.Name] = e
	}
	return out
}

func (p *Project) normalize() {
	for i := range p.Categories {
		p.Categories[i].ensureName()
	}
}

func cleanDimension(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
