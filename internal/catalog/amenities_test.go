package catalog_test

import (
	"reflect"
	"testing"

	"jetset_booking/internal/catalog"
	"jetset_booking/internal/domain"
)

func TestDeriveAmenityKeys_FirstSeenOrder(t *testing.T) {
	got := catalog.DeriveAmenityKeys(sample())
	want := []string{"wifi", "pool", "spa", "parking"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestDeriveAmenityKeys_Duplicates(t *testing.T) {
	got := catalog.DeriveAmenityKeys([]domain.Hotel{
		{Amenities: []string{"wifi", "wifi", ""}},
		{Amenities: nil},
		{Amenities: []string{"gym", "wifi"}},
	})
	if !reflect.DeepEqual(got, []string{"wifi", "gym"}) {
		t.Fatalf("got %v", got)
	}
}

func TestAmenitySelection_FixedKeySet(t *testing.T) {
	sel := catalog.NewAmenitySelection(sample())
	if len(sel.Selected()) != 0 {
		t.Fatalf("expected nothing selected")
	}
	if err := sel.Toggle("pool"); err != nil {
		t.Fatal(err)
	}
	if err := sel.Set("wifi", true); err != nil {
		t.Fatal(err)
	}
	if err := sel.Toggle("sauna"); err == nil {
		t.Fatalf("unknown amenity must be rejected")
	}
	// selection comes back in key order, not toggle order
	if got := sel.Selected(); !reflect.DeepEqual(got, []string{"wifi", "pool"}) {
		t.Fatalf("selected %v", got)
	}
	if got := sel.Keys(); !reflect.DeepEqual(got, []string{"wifi", "pool", "spa", "parking"}) {
		t.Fatalf("keys changed: %v", got)
	}
	_ = sel.Toggle("pool")
	if sel.IsSelected("pool") {
		t.Fatalf("toggle off failed")
	}
	if n := len(sel.Entries()); n != 4 {
		t.Fatalf("entries=%d", n)
	}
}
