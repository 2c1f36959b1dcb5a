package pricing

import (
	"math"

	"jetset_booking/internal/domain"
)

// TotalPolicy decides what happens when discounts exceed room cost plus tax.
type TotalPolicy int

const (
	// AllowNegativeTotal passes the raw total through, even below zero.
	AllowNegativeTotal TotalPolicy = iota
	// ClampTotalAtZero floors the total payable at zero.
	ClampTotalAtZero
)

// Rates are the booking-wide constants applied to every stay.
type Rates struct {
	InstantDiscount float64
	CouponDiscount  float64
	TaxRate         float64
	Policy          TotalPolicy
}

func DefaultRates() Rates {
	return Rates{
		InstantDiscount: 1000,
		CouponDiscount:  500,
		TaxRate:         0.18,
		Policy:          AllowNegativeTotal,
	}
}

type Calculator struct{ rates Rates }

func NewCalculator(r Rates) *Calculator { return &Calculator{rates: r} }

func (c *Calculator) Rates() Rates { return c.rates }

// Quote prices a stay with the calculator's configured rates.
func (c *Calculator) Quote(nights int, nightlyPrice float64, rooms int) domain.PriceBreakdown {
	return ComputeTotal(nights, nightlyPrice, rooms,
		c.rates.InstantDiscount, c.rates.CouponDiscount, c.rates.TaxRate, c.rates.Policy)
}

// RoomCost is nights × nightly price × rooms, rounded to cents.
func RoomCost(nights int, nightlyPrice float64, rooms int) float64 {
	return roundCents(float64(nights) * nightlyPrice * float64(rooms))
}

// ComputeTaxes applies taxRate to the room cost. Amounts are rounded to cents.
func ComputeTaxes(nights int, nightlyPrice float64, rooms int, taxRate float64) float64 {
	return roundCents(RoomCost(nights, nightlyPrice, rooms) * taxRate)
}

// ComputeTotal builds the full breakdown:
//
//	total = roomCost - (instant + coupon) + taxes
//
// Room cost and taxes are rounded to cents before the total is formed.
func ComputeTotal(nights int, nightlyPrice float64, rooms int, instant, coupon, taxRate float64, policy TotalPolicy) domain.PriceBreakdown {
	cost := RoomCost(nights, nightlyPrice, rooms)
	taxes := ComputeTaxes(nights, nightlyPrice, rooms, taxRate)
	total := roundCents(cost - (instant + coupon) + taxes)
	if policy == ClampTotalAtZero && total < 0 {
		total = 0
	}
	return domain.PriceBreakdown{
		Nights:          nights,
		NightlyPrice:    nightlyPrice,
		Rooms:           rooms,
		RoomCost:        cost,
		InstantDiscount: instant,
		CouponDiscount:  coupon,
		Taxes:           taxes,
		TotalPayable:    total,
	}
}

// half away from zero
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
