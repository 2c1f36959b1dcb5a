package domain

// Hotel is a catalog record as served by the remote hotel service.
// The front end treats it as an immutable snapshot.
type Hotel struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Price     float64  `json:"price"`
	Amenities []string `json:"amenities"`
	Rating    *float64 `json:"rating,omitempty"`
	Images    []string `json:"images,omitempty"`
}

// Clone returns a copy that shares no slices with h.
func (h Hotel) Clone() Hotel {
	out := h
	if h.Amenities != nil {
		out.Amenities = append([]string(nil), h.Amenities...)
	}
	if h.Images != nil {
		out.Images = append([]string(nil), h.Images...)
	}
	if h.Rating != nil {
		r := *h.Rating
		out.Rating = &r
	}
	return out
}

// CloneHotels deep-copies a catalog snapshot.
func CloneHotels(in []Hotel) []Hotel {
	if in == nil {
		return nil
	}
	out := make([]Hotel, len(in))
	for i, h := range in {
		out[i] = h.Clone()
	}
	return out
}
