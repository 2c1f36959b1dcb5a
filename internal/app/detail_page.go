package app

import (
	"context"

	"jetset_booking/internal/carousel"
	"jetset_booking/internal/domain"
	"jetset_booking/internal/pricing"
)

// Shown when a hotel has no photos of its own.
var fallbackImages = []string{
	"https://w0.peakpx.com/wallpaper/205/649/HD-wallpaper-hotel-room-interior-design-luxury-hotel-apartments-modern-interior-design-classic-style-luxury-chandelier.jpg",
	"https://w0.peakpx.com/wallpaper/39/403/HD-wallpaper-modern-interior-design-living-room-classic-style-white-marble-floor-stylish-interior-luxury-apartments.jpg",
	"https://media.istockphoto.com/id/1300135335/photo/luxurious-bedroom-interior-at-nigh-with-messy-bed-leather-armchairs-closet-and-garden-view.jpg",
}

// DetailPage holds one hotel, the carousel and the stay selectors.
type DetailPage struct {
	source   domain.CatalogReader
	hotel    *domain.Hotel
	images   *carousel.Cursor
	checkIn  string
	checkOut string
	rooms    pricing.Counter
	persons  pricing.Counter
}

func NewDetailPage(src domain.CatalogReader, l Limits) *DetailPage {
	return &DetailPage{
		source:  src,
		images:  carousel.New(nil),
		rooms:   pricing.NewCounter(1, l.MaxRooms),
		persons: pricing.NewCounter(1, l.MaxPersons),
	}
}

func (p *DetailPage) Load(ctx context.Context, id int64) error {
	h, err := p.source.FetchHotel(ctx, id)
	if err != nil {
		return err
	}
	p.hotel = &h
	imgs := h.Images
	if len(imgs) == 0 {
		imgs = fallbackImages
	}
	p.images = carousel.New(imgs)
	return nil
}

func (p *DetailPage) Hotel() (domain.Hotel, bool) {
	if p.hotel == nil {
		return domain.Hotel{}, false
	}
	return *p.hotel, true
}

func (p *DetailPage) SetDates(checkIn, checkOut string) {
	p.checkIn, p.checkOut = checkIn, checkOut
}

func (p *DetailPage) AdjustRooms(d pricing.Direction) int {
	p.rooms.Adjust(d)
	return p.rooms.Value()
}

func (p *DetailPage) AdjustPersons(d pricing.Direction) int {
	p.persons.Adjust(d)
	return p.persons.Value()
}

func (p *DetailPage) NextImage() { p.images.Next() }
func (p *DetailPage) PrevImage() { p.images.Prev() }

func (p *DetailPage) CurrentImage() (string, int) {
	img, _ := p.images.Current()
	return img, p.images.Index()
}

func (p *DetailPage) Parameters() domain.BookingParameters {
	return domain.BookingParameters{
		CheckInDate:  p.checkIn,
		CheckOutDate: p.checkOut,
		Rooms:        p.rooms.Value(),
		Persons:      p.persons.Value(),
	}
}

// Preview returns nights and the room cost for the current selection. Both
// are zero until the hotel is loaded and both dates are set.
func (p *DetailPage) Preview() (nights int, total float64) {
	if p.hotel == nil || p.checkIn == "" || p.checkOut == "" {
		return 0, 0
	}
	nights = pricing.ComputeNights(p.checkIn, p.checkOut)
	return nights, pricing.RoomCost(nights, p.hotel.Price, p.rooms.Value())
}

// CanBook reports whether both dates are set and the preview is positive.
func (p *DetailPage) CanBook() bool {
	_, total := p.Preview()
	return p.checkIn != "" && p.checkOut != "" && total > 0
}

// CarryOver is what the "Book now" link hands to the booking page.
func (p *DetailPage) CarryOver() CarryOver {
	return CarryOver{
		CheckInDate:  p.checkIn,
		CheckOutDate: p.checkOut,
		Persons:      p.persons.Value(),
		Rooms:        p.rooms.Value(),
	}
}
