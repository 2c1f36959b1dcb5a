package catalog

import (
	"math"
	"sort"
	"strings"

	"jetset_booking/internal/domain"
)

// SortCriterion orders the visible catalog by nightly price.
type SortCriterion string

const (
	PriceLowToHigh SortCriterion = "priceLowToHigh"
	PriceHighToLow SortCriterion = "priceHighToLow"
)

// ParseSort maps a query value to a criterion; anything unknown is ascending.
func ParseSort(s string) SortCriterion {
	if SortCriterion(s) == PriceHighToLow {
		return PriceHighToLow
	}
	return PriceLowToHigh
}

// PriceLimits bound the price ceiling slider.
type PriceLimits struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func DefaultPriceLimits() PriceLimits { return PriceLimits{Min: 1000, Max: 5000} }

// Clamp keeps a ceiling inside the slider range. NaN maps to Max.
func (l PriceLimits) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return l.Max
	}
	if v < l.Min {
		return l.Min
	}
	if v > l.Max {
		return l.Max
	}
	return v
}

// Filter is the catalog page's current search state.
type Filter struct {
	Query        string
	PriceCeiling float64
	Amenities    []string // selected labels; all must be present
	Sort         SortCriterion
}

// FilterAndSort returns the visible, ordered subset of hotels. The input
// slice is not modified and the result shares no backing array with it.
func FilterAndSort(hotels []domain.Hotel, f Filter) []domain.Hotel {
	q := strings.ToLower(f.Query)
	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if q != "" && !matchesQuery(h, q) {
			continue
		}
		if h.Price > f.PriceCeiling {
			continue
		}
		if !hasAll(h.Amenities, f.Amenities) {
			continue
		}
		out = append(out, h)
	}

	switch f.Sort {
	case PriceHighToLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	}
	return out
}

func matchesQuery(h domain.Hotel, q string) bool {
	return strings.Contains(strings.ToLower(h.Name), q) ||
		strings.Contains(strings.ToLower(h.Location), q)
}

// hasAll reports whether have is a superset of want.
func hasAll(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, a := range have {
		set[a] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}
