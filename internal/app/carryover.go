package app

import (
	"net/url"
	"strconv"
	"time"

	"jetset_booking/internal/domain"
)

// Query keys used to hand booking parameters from the detail page to the
// booking page.
const (
	paramCheckIn  = "checkInDate"
	paramCheckOut = "checkOutDate"
	paramPersons  = "selectedPersons"
	paramRooms    = "selectedRooms"
)

// CarryOver is the read-once copy of booking parameters passed by navigation.
type CarryOver struct {
	CheckInDate  string
	CheckOutDate string
	Persons      int
	Rooms        int
}

// ParseCarryOver reads navigation query parameters. Missing dates default to
// today; missing, zero or non-numeric counts default to 1.
func ParseCarryOver(q url.Values, today time.Time) CarryOver {
	day := today.Format(time.DateOnly)
	return CarryOver{
		CheckInDate:  orDefault(q.Get(paramCheckIn), day),
		CheckOutDate: orDefault(q.Get(paramCheckOut), day),
		Persons:      positiveOr(q.Get(paramPersons), 1),
		Rooms:        positiveOr(q.Get(paramRooms), 1),
	}
}

func (c CarryOver) Values() url.Values {
	v := url.Values{}
	if c.CheckInDate != "" {
		v.Set(paramCheckIn, c.CheckInDate)
	}
	if c.CheckOutDate != "" {
		v.Set(paramCheckOut, c.CheckOutDate)
	}
	v.Set(paramPersons, strconv.Itoa(c.Persons))
	v.Set(paramRooms, strconv.Itoa(c.Rooms))
	return v
}

// BookingPath is the booking page location for hotelID carrying c.
func (c CarryOver) BookingPath(hotelID int64) string {
	return "/booking/" + strconv.FormatInt(hotelID, 10) + "?" + c.Values().Encode()
}

func (c CarryOver) Parameters() domain.BookingParameters {
	return domain.BookingParameters{
		CheckInDate:  c.CheckInDate,
		CheckOutDate: c.CheckOutDate,
		Rooms:        c.Rooms,
		Persons:      c.Persons,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func positiveOr(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
