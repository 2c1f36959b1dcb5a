package app

import "jetset_booking/internal/catalog"

// Limits are the page-level bounds shared by the detail and booking pages.
type Limits struct {
	MaxRooms   int // 0 = unbounded
	MaxPersons int // 0 = unbounded
	Price      catalog.PriceLimits
}

func DefaultLimits() Limits {
	return Limits{MaxRooms: 5, MaxPersons: 10, Price: catalog.DefaultPriceLimits()}
}
