package app_test

import (
	"context"
	"encoding/json"
	"fmt"

	"jetset_booking/internal/domain"
)

// ---- fakes ----

type fakeRemote struct {
	catalog      []domain.Hotel
	hotels       map[int64]domain.Hotel
	fetchErr     error
	submitErr    error
	submitted    []domain.BookingSummary
	catalogCalls int
	hotelCalls   int
	userID       int64
	authErr      error
	registered   []domain.SignupForm
}

func (f *fakeRemote) FetchCatalog(ctx context.Context) ([]domain.Hotel, error) {
	f.catalogCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return domain.CloneHotels(f.catalog), nil
}

func (f *fakeRemote) FetchHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	f.hotelCalls++
	if f.fetchErr != nil {
		return domain.Hotel{}, f.fetchErr
	}
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, &domain.RemoteError{Op: "fetchHotel", Status: 404, Err: domain.ErrNotFound}
	}
	return h.Clone(), nil
}

func (f *fakeRemote) SubmitBooking(ctx context.Context, s domain.BookingSummary) (domain.BookingReceipt, error) {
	f.submitted = append(f.submitted, s)
	if f.submitErr != nil {
		return domain.BookingReceipt{}, f.submitErr
	}
	return domain.BookingReceipt{BookingID: fmt.Sprintf("B-%d", len(f.submitted))}, nil
}

func (f *fakeRemote) Authenticate(ctx context.Context, c domain.Credentials) (int64, error) {
	if f.authErr != nil {
		return 0, f.authErr
	}
	return f.userID, nil
}

func (f *fakeRemote) Register(ctx context.Context, s domain.SignupForm) (string, error) {
	f.registered = append(f.registered, s)
	return "Signup successful", nil
}

// fakeCache round-trips through JSON like the redis adapter does.
type fakeCache struct {
	store map[string][]byte
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

type fakeSessions struct {
	users map[string]int64
	next  int
}

func (s *fakeSessions) ReadSessionUserID(ctx context.Context, id string) (int64, bool, error) {
	uid, ok := s.users[id]
	return uid, ok, nil
}

func (s *fakeSessions) CreateSession(ctx context.Context, userID int64) (string, error) {
	if s.users == nil {
		s.users = map[string]int64{}
	}
	s.next++
	id := fmt.Sprintf("sess-%d", s.next)
	s.users[id] = userID
	return id, nil
}

func (s *fakeSessions) DeleteSession(ctx context.Context, id string) error {
	delete(s.users, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func sampleHotels() []domain.Hotel {
	return []domain.Hotel{
		{ID: 1, Name: "Sea Breeze", Location: "Goa", Price: 1000, Amenities: []string{"wifi", "pool"}, Rating: ptr(4.2)},
		{ID: 2, Name: "Hill Top", Location: "Shimla", Price: 2000, Amenities: []string{"wifi"}},
		{ID: 3, Name: "Grand Palace", Location: "Jaipur", Price: 4800, Amenities: []string{"spa", "pool"},
			Images: []string{"a.jpg", "b.jpg"}},
	}
}

func newRemote() *fakeRemote {
	hs := sampleHotels()
	byID := make(map[int64]domain.Hotel, len(hs))
	for _, h := range hs {
		byID[h.ID] = h
	}
	return &fakeRemote{catalog: hs, hotels: byID, userID: 42}
}
