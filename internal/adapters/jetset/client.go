// internal/adapters/jetset/client.go
package jetset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"jetset_booking/internal/adapters/observability"
	"jetset_booking/internal/domain"
)

// Client talks to the remote hotel/booking origin. Every request is issued
// once: failures are reported to the caller and never retried here.
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int, timeout time.Duration) (*Client, error) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return nil, fmt.Errorf("remote base URL is required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: timeout},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

func (c *Client) FetchCatalog(ctx context.Context) ([]domain.Hotel, error) {
	var raw []map[string]any
	if err := c.do(ctx, "fetchCatalog", http.MethodGet, "/hotels", nil, &raw); err != nil {
		return nil, err
	}
	return mapHotels(raw), nil
}

func (c *Client) FetchHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	var raw map[string]any
	if err := c.do(ctx, "fetchHotel", http.MethodGet, fmt.Sprintf("/hotels/%d", id), nil, &raw); err != nil {
		return domain.Hotel{}, err
	}
	h := mapHotel(raw)
	if h.ID == 0 {
		h.ID = id
	}
	return h, nil
}

func (c *Client) SubmitBooking(ctx context.Context, s domain.BookingSummary) (domain.BookingReceipt, error) {
	var raw map[string]any
	if err := c.do(ctx, "submitBooking", http.MethodPost, "/bookings", s, &raw); err != nil {
		return domain.BookingReceipt{}, err
	}
	return mapReceipt(raw), nil
}

func (c *Client) Authenticate(ctx context.Context, cr domain.Credentials) (int64, error) {
	var raw map[string]any
	if err := c.do(ctx, "authenticate", http.MethodPost, "/api/auth/login", cr, &raw); err != nil {
		return 0, err
	}
	id := firstInt64Flexible(raw, "userId", "user_id", "user.id", "id")
	if id == nil || *id == 0 {
		return 0, &domain.RemoteError{Op: "authenticate", Message: "response carries no userId"}
	}
	return *id, nil
}

func (c *Client) Register(ctx context.Context, f domain.SignupForm) (string, error) {
	var raw map[string]any
	if err := c.do(ctx, "register", http.MethodPost, "/api/auth/signup", f, &raw); err != nil {
		return "", err
	}
	if msg := lookupStr(raw, "message"); msg != "" {
		return msg, nil
	}
	return "Signup successful! You can now log in.", nil
}

// ---- Internals ----

// do sends one JSON request and decodes a 2xx body into out.
// Non-2xx answers become *domain.RemoteError.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return &domain.RemoteError{Op: op, Err: err}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "jetset-booking/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("jetset", op, 0, time.Since(start))
		return &domain.RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("jetset", op, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNoContent:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return &domain.RemoteError{Op: op, Status: resp.StatusCode, Message: "malformed response", Err: err}
		}
		return nil

	case resp.StatusCode == http.StatusNotFound:
		return &domain.RemoteError{Op: op, Status: resp.StatusCode, Message: errorMessage(resp.Body), Err: domain.ErrNotFound}

	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return &domain.RemoteError{Op: op, Status: resp.StatusCode, Message: errorMessage(resp.Body), Err: domain.ErrUnauthorized}

	default:
		return &domain.RemoteError{Op: op, Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
}

// errorMessage prefers the payload's "message" field, else a trimmed body.
func errorMessage(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	var payload map[string]any
	if json.Unmarshal(b, &payload) == nil {
		if m := firstNonEmpty(payload, "message", "error", "error.message"); m != "" {
			return m
		}
	}
	return strings.TrimSpace(string(b))
}

func mapReceipt(raw map[string]any) domain.BookingReceipt {
	r := domain.BookingReceipt{Details: raw}
	if s := firstNonEmpty(raw, "bookingId", "booking_id", "id"); s != "" {
		r.BookingID = s
	} else if n := firstInt64Flexible(raw, "bookingId", "booking_id", "id"); n != nil {
		r.BookingID = strconv.FormatInt(*n, 10)
	}
	return r
}

var _ domain.HotelService = (*Client)(nil)
