package model

import (
	"fmt"
	"math"
	"time"

	"github.com/gerow/go-color"
)

type CompanyCreate struct {
	Name       string
	CustomerID *string
	Color      color.RGB
}

type Company struct {
	ID        string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	CompanyCreate
}

type CompanyFilter struct {
	ActiveOnly bool
	Page
}

// ColorHex renders c as #rrggbb, rounding channels so stored colors survive
// a parse and render cycle unchanged.
func ColorHex(c color.RGB) string {
	channel := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}
