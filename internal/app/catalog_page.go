package app

import (
	"context"
	"errors"

	"jetset_booking/internal/catalog"
	"jetset_booking/internal/domain"
)

var ErrNotLoaded = errors.New("page data not loaded")

// CatalogPage is the hotel list: one catalog fetch, then synchronous
// re-filtering on every input change.
type CatalogPage struct {
	source    domain.CatalogReader
	limits    catalog.PriceLimits
	hotels    []domain.Hotel
	amenities *catalog.AmenitySelection
	query     string
	ceiling   float64
	sort      catalog.SortCriterion
}

func NewCatalogPage(src domain.CatalogReader, limits catalog.PriceLimits) *CatalogPage {
	return &CatalogPage{
		source:  src,
		limits:  limits,
		ceiling: limits.Max,
		sort:    catalog.PriceLowToHigh,
	}
}

// Load fetches the catalog and fixes the amenity key set. Calling it again
// is a no-op once a snapshot is held.
func (p *CatalogPage) Load(ctx context.Context) error {
	if p.amenities != nil {
		return nil
	}
	hs, err := p.source.FetchCatalog(ctx)
	if err != nil {
		return err
	}
	p.hotels = hs
	p.amenities = catalog.NewAmenitySelection(hs)
	return nil
}

func (p *CatalogPage) SetQuery(q string) { p.query = q }

// SetPriceCeiling stores v clamped to the slider limits and returns it.
func (p *CatalogPage) SetPriceCeiling(v float64) float64 {
	p.ceiling = p.limits.Clamp(v)
	return p.ceiling
}

func (p *CatalogPage) SetSort(s catalog.SortCriterion) { p.sort = s }

func (p *CatalogPage) ToggleAmenity(label string) error {
	if p.amenities == nil {
		return ErrNotLoaded
	}
	return p.amenities.Toggle(label)
}

func (p *CatalogPage) SetAmenity(label string, on bool) error {
	if p.amenities == nil {
		return ErrNotLoaded
	}
	return p.amenities.Set(label, on)
}

func (p *CatalogPage) Amenities() []catalog.Entry {
	if p.amenities == nil {
		return nil
	}
	return p.amenities.Entries()
}

func (p *CatalogPage) Filter() catalog.Filter {
	var sel []string
	if p.amenities != nil {
		sel = p.amenities.Selected()
	}
	return catalog.Filter{Query: p.query, PriceCeiling: p.ceiling, Amenities: sel, Sort: p.sort}
}

// Visible returns the filtered, sorted hotels for the current state.
func (p *CatalogPage) Visible() []domain.Hotel {
	return catalog.FilterAndSort(p.hotels, p.Filter())
}
