package jetset

import (
	"strconv"
	"strings"

	"jetset_booking/internal/domain"
)

/********** alias registry **********/

var hotelAliases = map[string][]string{
	"id":        {"id", "hotelId", "hotel_id"},
	"name":      {"name", "hotelName", "hotel_name", "title"},
	"location":  {"location", "city", "address.city", "address"},
	"price":     {"price", "pricePerNight", "price_per_night", "nightlyPrice", "rate.amount"},
	"rating":    {"rating", "stars", "score", "rating.value"},
	"amenities": {"amenities", "facilities"},
	"images":    {"images", "photos", "imageUrls"},
}

/********** helpers **********/

// lookupAny: nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func firstNonEmpty(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func firstInt64Flexible(m map[string]any, paths ...string) *int64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int64(v)
			return &x
		case int:
			x := int64(v)
			return &x
		case int64:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

// firstSliceStrings: accept []any with either strings or {name/url/src}.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		if raw, ok := lookupAny(m, k).([]any); ok {
			out := make([]string, 0, len(raw))
			for _, it := range raw {
				switch t := it.(type) {
				case string:
					if t != "" {
						out = append(out, t)
					}
				case map[string]any:
					for _, key := range []string{"name", "label", "url", "src"} {
						if s, ok := t[key].(string); ok && s != "" {
							out = append(out, s)
							break
						}
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

/********** hotel mapper **********/

func mapHotel(p map[string]any) domain.Hotel {
	var h domain.Hotel
	if v := firstInt64Flexible(p, hotelAliases["id"]...); v != nil {
		h.ID = *v
	}
	h.Name = firstNonEmpty(p, hotelAliases["name"]...)
	h.Location = firstNonEmpty(p, hotelAliases["location"]...)
	if f := getFloatFlexible(p, hotelAliases["price"]...); f != nil && *f > 0 {
		h.Price = *f
	}
	h.Rating = getFloatFlexible(p, hotelAliases["rating"]...)
	h.Amenities = firstSliceStrings(p, hotelAliases["amenities"]...)
	h.Images = firstSliceStrings(p, hotelAliases["images"]...)
	return h
}

func mapHotels(in []map[string]any) []domain.Hotel {
	out := make([]domain.Hotel, 0, len(in))
	for _, p := range in {
		out = append(out, mapHotel(p))
	}
	return out
}
