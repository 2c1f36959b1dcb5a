package domain

import "context"

// CatalogReader is the read side of the remote hotel service.
type CatalogReader interface {
	FetchCatalog(ctx context.Context) ([]Hotel, error)
	FetchHotel(ctx context.Context, id int64) (Hotel, error)
}

type BookingGateway interface {
	SubmitBooking(ctx context.Context, s BookingSummary) (BookingReceipt, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, c Credentials) (userID int64, err error)
	Register(ctx context.Context, f SignupForm) (message string, err error)
}

// HotelService is everything the front end consumes from the remote origin.
type HotelService interface {
	CatalogReader
	BookingGateway
	Authenticator
}

// SessionReader resolves a browser session to the logged-in user.
// ok is false when the session is unknown or expired.
type SessionReader interface {
	ReadSessionUserID(ctx context.Context, sessionID string) (userID int64, ok bool, err error)
}

type SessionStore interface {
	SessionReader
	CreateSession(ctx context.Context, userID int64) (sessionID string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
