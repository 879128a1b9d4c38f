package model

import (
	"github.com/google/uuid"

	"github.com/ironsheep/scan-diagrams/internal/palette"
)

// Category is a named kind of page in a scanned sequence.
//
// RoughAmount is the expected number of pages. RoughOrder positions the
// category within the sequence and may be negative or fractional.
type Category struct {
	Name             string         `json:"name" toml:"name"`
	Color            *palette.Color `json:"color,omitempty" toml:"color"`
	RoughAmount      int            `json:"rough_amount" toml:"rough_amount"`
	RoughAmountStart *int           `json:"rough_amount_start,omitempty" toml:"rough_amount_start"`
	RoughAmountEnd   *int           `json:"rough_amount_end,omitempty" toml:"rough_amount_end"`
	RoughOrder       *float64       `json:"rough_order,omitempty" toml:"rough_order"`
}

// NewCategory returns a category called name, or a random uuid name when
// name is empty.
func NewCategory(name string, amount int) Category {
	c := Category{Name: name, RoughAmount: amount}
	c.ensureName()
	return c
}

func (c *Category) ensureName() {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}
}
