package pricing

import (
	"fmt"
	"strings"
	"time"

	"jetset_booking/internal/domain"
)

const day = 24 * time.Hour

// Accepted date inputs: plain calendar dates from <input type="date"> and
// full timestamps from clients that send ISO strings.
var dateLayouts = []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04"}

// ParseDate parses a user-entered stay date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ComputeNights returns the number of nights between two dates, rounded up.
// Order does not matter. It returns 0 when either date fails to parse.
func ComputeNights(checkIn, checkOut string) int {
	n, err := StayNights(checkIn, checkOut)
	if err != nil {
		return 0
	}
	return n
}

// StayNights is the strict form of ComputeNights: unparseable dates are
// reported as a ValidationError keyed by the booking form field.
func StayNights(checkIn, checkOut string) (int, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return 0, domain.NewValidationError("checkInDate", "invalid date")
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return 0, domain.NewValidationError("checkOutDate", "invalid date")
	}
	return nightsBetween(in, out), nil
}

func nightsBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int((d + day - 1) / day)
}
