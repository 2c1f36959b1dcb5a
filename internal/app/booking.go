package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"jetset_booking/internal/domain"
	"jetset_booking/internal/pricing"
)

// BookingState is the lifecycle of one booking page session.
type BookingState string

const (
	StateUninitialized    BookingState = "uninitialized"
	StateParametersLoaded BookingState = "parameters_loaded"
	StateParametersEdited BookingState = "parameters_edited"
	StateSubmittable      BookingState = "submittable"
	StateSubmitting       BookingState = "submitting"
	StateConfirmed        BookingState = "confirmed"
	StateSubmissionFailed BookingState = "submission_failed"
)

var (
	ErrSessionClosed = errors.New("booking already confirmed")
	ErrInvalidState  = errors.New("booking not ready")
)

// BookingSession owns the booking page's parameters and derived breakdown.
type BookingSession struct {
	source   domain.CatalogReader
	gateway  domain.BookingGateway
	sessions domain.SessionReader
	calc     *pricing.Calculator

	state     BookingState
	hotel     *domain.Hotel
	checkIn   string
	checkOut  string
	rooms     pricing.Counter
	persons   pricing.Counter
	breakdown domain.PriceBreakdown
	receipt   *domain.BookingReceipt
	lastErr   error
	history   []BookingState
}

func NewBookingSession(src domain.CatalogReader, gw domain.BookingGateway, sr domain.SessionReader, calc *pricing.Calculator, l Limits) *BookingSession {
	s := &BookingSession{
		source:   src,
		gateway:  gw,
		sessions: sr,
		calc:     calc,
		state:    StateUninitialized,
		rooms:    pricing.NewCounter(1, l.MaxRooms),
		persons:  pricing.NewCounter(1, l.MaxPersons),
	}
	s.history = []BookingState{StateUninitialized}
	return s
}

// Open seeds parameters from the carry-over values and fetches the hotel.
// A failed fetch leaves the session uninitialized.
func (s *BookingSession) Open(ctx context.Context, hotelID int64, co CarryOver) error {
	if s.state != StateUninitialized {
		return fmt.Errorf("%w: session already open", ErrInvalidState)
	}
	s.checkIn, s.checkOut = co.CheckInDate, co.CheckOutDate
	s.rooms = pricing.NewCounter(co.Rooms, s.rooms.Ceiling())
	s.persons = pricing.NewCounter(co.Persons, s.persons.Ceiling())

	h, err := s.source.FetchHotel(ctx, hotelID)
	if err != nil {
		return err
	}
	s.hotel = &h
	s.recalculate()
	s.transition(StateParametersLoaded)
	return nil
}

func (s *BookingSession) State() BookingState { return s.state }

// History lists every state the session has passed through, oldest first.
func (s *BookingSession) History() []BookingState {
	return append([]BookingState(nil), s.history...)
}

func (s *BookingSession) Hotel() (domain.Hotel, bool) {
	if s.hotel == nil {
		return domain.Hotel{}, false
	}
	return *s.hotel, true
}

func (s *BookingSession) Breakdown() domain.PriceBreakdown { return s.breakdown }

func (s *BookingSession) Receipt() (domain.BookingReceipt, bool) {
	if s.receipt == nil {
		return domain.BookingReceipt{}, false
	}
	return *s.receipt, true
}

// LastError is the most recent submission failure, if any.
func (s *BookingSession) LastError() error { return s.lastErr }

func (s *BookingSession) Parameters() domain.BookingParameters {
	return domain.BookingParameters{
		CheckInDate:  s.checkIn,
		CheckOutDate: s.checkOut,
		Rooms:        s.rooms.Value(),
		Persons:      s.persons.Value(),
	}
}

func (s *BookingSession) SetDates(checkIn, checkOut string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.checkIn, s.checkOut = checkIn, checkOut
	s.edited()
	return nil
}

func (s *BookingSession) AdjustRooms(d pricing.Direction) (int, error) {
	if err := s.editable(); err != nil {
		return 0, err
	}
	if s.rooms.Adjust(d) {
		s.edited()
	}
	return s.rooms.Value(), nil
}

func (s *BookingSession) AdjustPersons(d pricing.Direction) (int, error) {
	if err := s.editable(); err != nil {
		return 0, err
	}
	if s.persons.Adjust(d) {
		s.edited()
	}
	return s.persons.Value(), nil
}

// Submit validates the form, resolves the user from sessionID, checks the
// stay is at least one night and posts the booking. Validation and authentication failures never reach the remote
// service. A remote failure returns the session to StateSubmittable.
func (s *BookingSession) Submit(ctx context.Context, sessionID string, contact domain.ContactDetails) (domain.BookingReceipt, error) {
	if s.state == StateConfirmed {
		return domain.BookingReceipt{}, ErrSessionClosed
	}
	if s.hotel == nil {
		return domain.BookingReceipt{}, fmt.Errorf("%w: hotel details not loaded", ErrInvalidState)
	}
	if err := validateForm(contact); err != nil {
		return domain.BookingReceipt{}, err
	}
	userID, ok, err := s.sessions.ReadSessionUserID(ctx, sessionID)
	if err != nil {
		return domain.BookingReceipt{}, fmt.Errorf("read session: %w", err)
	}
	if !ok || userID == 0 {
		return domain.BookingReceipt{}, domain.ErrUnauthenticated
	}

	nights, err := pricing.StayNights(s.checkIn, s.checkOut)
	if err != nil {
		return domain.BookingReceipt{}, err
	}
	if nights == 0 {
		return domain.BookingReceipt{}, domain.NewValidationError("checkOutDate", "stay must be at least one night")
	}

	s.breakdown = s.calc.Quote(nights, s.hotel.Price, s.rooms.Value())
	s.transition(StateSubmittable)
	summary := s.summary(userID, contact)

	s.transition(StateSubmitting)
	rc, err := s.gateway.SubmitBooking(ctx, summary)
	if err != nil {
		log.Warn().Err(err).Int64("hotel", s.hotel.ID).Msg("booking submission failed")
		s.lastErr = err
		s.transition(StateSubmissionFailed)
		s.transition(StateSubmittable)
		return domain.BookingReceipt{}, err
	}

	s.lastErr = nil
	s.receipt = &rc
	s.transition(StateConfirmed)
	log.Info().Int64("hotel", s.hotel.ID).Str("booking", rc.BookingID).Msg("booking confirmed")
	return rc, nil
}

func (s *BookingSession) summary(userID int64, c domain.ContactDetails) domain.BookingSummary {
	b := s.breakdown
	return domain.BookingSummary{
		UserID:            userID,
		HotelID:           s.hotel.ID,
		HotelName:         s.hotel.Name,
		Location:          s.hotel.Location,
		CheckInDate:       s.checkIn,
		CheckOutDate:      s.checkOut,
		NumberOfNights:    b.Nights,
		RoomPricePerNight: s.hotel.Price,
		InstantDiscount:   b.InstantDiscount,
		CouponDiscount:    b.CouponDiscount,
		Taxes:             b.Taxes,
		TotalPayable:      b.TotalPayable,
		NumberOfPersons:   s.persons.Value(),
		NumberOfRooms:     s.rooms.Value(),
		ContactDetails:    c,
	}
}

func (s *BookingSession) editable() error {
	switch s.state {
	case StateConfirmed:
		return ErrSessionClosed
	case StateUninitialized, StateSubmitting:
		return fmt.Errorf("%w: %s", ErrInvalidState, s.state)
	}
	return nil
}

func (s *BookingSession) edited() {
	s.recalculate()
	if s.state != StateParametersEdited {
		s.transition(StateParametersEdited)
	}
}

// recalculate uses the soft nights rule: unparseable dates price as 0 nights.
func (s *BookingSession) recalculate() {
	var price float64
	if s.hotel != nil {
		price = s.hotel.Price
	}
	nights := pricing.ComputeNights(s.checkIn, s.checkOut)
	s.breakdown = s.calc.Quote(nights, price, s.rooms.Value())
}

func (s *BookingSession) transition(to BookingState) {
	s.state = to
	s.history = append(s.history, to)
}
