package app_test

import (
	"net/url"
	"testing"
	"time"

	"jetset_booking/internal/app"
)

func TestParseCarryOver(t *testing.T) {
	today := time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC)

	co := app.ParseCarryOver(url.Values{}, today)
	if co.CheckInDate != "2026-10-17" || co.CheckOutDate != "2026-10-17" || co.Rooms != 1 || co.Persons != 1 {
		t.Fatalf("defaults: %+v", co)
	}

	co = app.ParseCarryOver(url.Values{
		"checkInDate":     {"2024-05-01"},
		"checkOutDate":    {"2024-05-04"},
		"selectedPersons": {"abc"},
		"selectedRooms":   {"0"},
	}, today)
	if co.CheckInDate != "2024-05-01" || co.CheckOutDate != "2024-05-04" || co.Persons != 1 || co.Rooms != 1 {
		t.Fatalf("parsed: %+v", co)
	}

	back := app.ParseCarryOver(app.CarryOver{CheckInDate: "2024-05-01", CheckOutDate: "2024-05-02", Persons: 4, Rooms: 2}.Values(), today)
	if back.Persons != 4 || back.Rooms != 2 || back.CheckOutDate != "2024-05-02" {
		t.Fatalf("round trip: %+v", back)
	}
}
