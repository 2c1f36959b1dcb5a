package domain

// BookingParameters are the user-editable inputs of a stay.
type BookingParameters struct {
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Rooms        int    `json:"rooms"`
	Persons      int    `json:"persons"`
}

// PriceBreakdown is derived from a hotel's nightly price and the booking
// parameters. It is recomputed on every change and never stored.
type PriceBreakdown struct {
	Nights          int     `json:"nights"`
	NightlyPrice    float64 `json:"nightlyPrice"`
	Rooms           int     `json:"rooms"`
	RoomCost        float64 `json:"roomCost"`
	InstantDiscount float64 `json:"instantDiscount"`
	CouponDiscount  float64 `json:"couponDiscount"`
	Taxes           float64 `json:"taxes"`
	TotalPayable    float64 `json:"totalPayable"`
}

// ContactDetails are the booking form fields filled in by the guest.
type ContactDetails struct {
	FullName      string `json:"fullName" validate:"required,min=3"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,phone10"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// BookingSummary is the payload posted to the remote booking collection.
// Contact fields are flattened into the top-level object.
type BookingSummary struct {
	UserID            int64   `json:"userId"`
	HotelID           int64   `json:"hotelId"`
	HotelName         string  `json:"hotelName"`
	Location          string  `json:"location"`
	CheckInDate       string  `json:"checkInDate"`
	CheckOutDate      string  `json:"checkOutDate"`
	NumberOfNights    int     `json:"numberOfNights"`
	RoomPricePerNight float64 `json:"roomPricePerNight"`
	InstantDiscount   float64 `json:"instantDiscount"`
	CouponDiscount    float64 `json:"couponDiscount"`
	Taxes             float64 `json:"taxes"`
	TotalPayable      float64 `json:"totalPayable"`
	NumberOfPersons   int     `json:"numberOfPersons"`
	NumberOfRooms     int     `json:"numberOfRooms"`
	ContactDetails
}

// BookingReceipt is what the remote service returns for an accepted booking.
type BookingReceipt struct {
	BookingID string         `json:"bookingId"`
	Details   map[string]any `json:"details,omitempty"`
}
