package catalog

import (
	"fmt"

	"jetset_booking/internal/domain"
)

// DeriveAmenityKeys unions every hotel's amenity labels in first-seen order.
// Empty labels are skipped.
func DeriveAmenityKeys(hotels []domain.Hotel) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, h := range hotels {
		for _, a := range h.Amenities {
			if a == "" {
				continue
			}
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			keys = append(keys, a)
		}
	}
	return keys
}

// AmenitySelection is an insertion-ordered label → selected mapping.
// Its key set is fixed when it is built; labels are never added or removed.
type AmenitySelection struct {
	keys     []string
	selected map[string]bool
}

// NewAmenitySelection builds the selection from a catalog with every
// amenity unchecked.
func NewAmenitySelection(hotels []domain.Hotel) *AmenitySelection {
	keys := DeriveAmenityKeys(hotels)
	sel := make(map[string]bool, len(keys))
	for _, k := range keys {
		sel[k] = false
	}
	return &AmenitySelection{keys: keys, selected: sel}
}

// Keys returns the labels in discovery order.
func (s *AmenitySelection) Keys() []string {
	return append([]string(nil), s.keys...)
}

func (s *AmenitySelection) IsSelected(label string) bool { return s.selected[label] }

// Set marks label on or off. Unknown labels are rejected.
func (s *AmenitySelection) Set(label string, on bool) error {
	if _, ok := s.selected[label]; !ok {
		return fmt.Errorf("unknown amenity %q", label)
	}
	s.selected[label] = on
	return nil
}

func (s *AmenitySelection) Toggle(label string) error {
	return s.Set(label, !s.selected[label])
}

// Selected returns the checked labels in key order.
func (s *AmenitySelection) Selected() []string {
	var out []string
	for _, k := range s.keys {
		if s.selected[k] {
			out = append(out, k)
		}
	}
	return out
}

// Entry is one row of the amenity checklist.
type Entry struct {
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

func (s *AmenitySelection) Entries() []Entry {
	out := make([]Entry, len(s.keys))
	for i, k := range s.keys {
		out[i] = Entry{Label: k, Selected: s.selected[k]}
	}
	return out
}
