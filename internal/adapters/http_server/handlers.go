// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"jetset_booking/internal/adapters/observability"
	"jetset_booking/internal/app"
	"jetset_booking/internal/catalog"
	"jetset_booking/internal/domain"
	"jetset_booking/internal/pricing"
)

const sessionCookie = "jetset_session"

type Handlers struct {
	Catalog       domain.CatalogReader
	Gateway       domain.BookingGateway
	Sessions      domain.SessionReader
	Auth          *app.AuthService
	Calc          *pricing.Calculator
	Limits        app.Limits
	Details       *app.Registry[app.DetailPage]
	Bookings      *app.Registry[app.BookingSession]
	SessionTTL    time.Duration
	SecureCookies bool
	Now           func() time.Time
}

type problem struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/catalog", h.listCatalog)

		r.Get("/hotels/{id}/preview", h.previewStay)
		r.Post("/hotels/{id}/details", h.openDetail)
		r.Get("/details/{page}", h.getDetail)
		r.Post("/details/{page}/actions", h.detailAction)

		r.Get("/booking/{id}/quote", h.quoteBooking)
		r.Post("/booking/{id}", h.openBooking)
		r.Get("/bookings/{page}", h.getBooking)
		r.Post("/bookings/{page}/actions", h.bookingAction)
		r.Post("/bookings/{page}/submit", h.submitBooking)

		r.Post("/auth/login", h.login)
		r.Post("/auth/signup", h.signup)
		r.Post("/auth/logout", h.logout)
	})
}

/********** responses **********/

func writeProblem(w http.ResponseWriter, p problem) {
	if p.Type == "" {
		p.Type = "about:blank"
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	var re *domain.RemoteError
	switch {
	case errors.As(err, &ve):
		writeProblem(w, problem{Title: "Validation Failed", Status: http.StatusBadRequest,
			Detail: "Please fill in all required fields.", Errors: ve.Fields})
	case errors.Is(err, domain.ErrUnauthenticated):
		writeProblem(w, problem{Title: "Unauthenticated", Status: http.StatusUnauthorized,
			Detail: "User not logged in!", Redirect: "/login"})
	case errors.Is(err, app.ErrPageNotFound):
		writeProblem(w, problem{Title: "Not Found", Status: http.StatusNotFound, Detail: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, problem{Title: "Not Found", Status: http.StatusNotFound, Detail: "hotel not found"})
	case errors.Is(err, app.ErrSessionClosed), errors.Is(err, app.ErrInvalidState), errors.Is(err, app.ErrNotLoaded):
		writeProblem(w, problem{Title: "Conflict", Status: http.StatusConflict, Detail: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized) && errors.As(err, &re):
		writeProblem(w, problem{Title: "Unauthorized", Status: http.StatusUnauthorized, Detail: re.Message})
	case errors.As(err, &re):
		log.Warn().Err(err).Str("op", re.Op).Msg("remote call failed")
		writeProblem(w, problem{Title: "Remote Error", Status: http.StatusBadGateway, Detail: re.Message})
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, problem{Title: "Internal Server Error", Status: http.StatusInternalServerError})
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", "malformed JSON")
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "id must be a positive number")
	}
	return id, nil
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

/********** catalog **********/

type catalogResponse struct {
	Amenities    []catalog.Entry       `json:"amenities"`
	PriceCeiling float64               `json:"priceCeiling"`
	PriceLimits  catalog.PriceLimits   `json:"priceLimits"`
	Sort         catalog.SortCriterion `json:"sort"`
	Hotels       []domain.Hotel        `json:"hotels"`
}

// listCatalog is the stateless form of the hotel list page:
// ?q=&maxPrice=&amenities=wifi,pool&sort=priceHighToLow
func (h *Handlers) listCatalog(w http.ResponseWriter, r *http.Request) {
	page := app.NewCatalogPage(h.Catalog, h.Limits.Price)
	if err := page.Load(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	page.SetQuery(strings.TrimSpace(q.Get("q")))
	ceiling := h.Limits.Price.Max
	if v := q.Get("maxPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			writeError(w, domain.NewValidationError("maxPrice", "must be a number"))
			return
		}
		ceiling = f
	}
	ceiling = page.SetPriceCeiling(ceiling)
	for _, a := range strings.Split(q.Get("amenities"), ",") {
		if a = strings.TrimSpace(a); a == "" {
			continue
		}
		if err := page.SetAmenity(a, true); err != nil {
			writeError(w, domain.NewValidationError("amenities", err.Error()))
			return
		}
	}
	sortBy := catalog.ParseSort(q.Get("sort"))
	page.SetSort(sortBy)

	resp := catalogResponse{
		Amenities:    page.Amenities(),
		PriceCeiling: ceiling,
		PriceLimits:  h.Limits.Price,
		Sort:         sortBy,
		Hotels:       page.Visible(),
	}
	etag, body := calcETagAndBody(resp)
	if body == nil {
		writeProblem(w, problem{Title: "Internal Server Error", Status: http.StatusInternalServerError})
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write catalog body")
	}
}

/********** detail page **********/

type actionRequest struct {
	Action       string `json:"action"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

type detailView struct {
	PageID      string                   `json:"pageId"`
	Hotel       domain.Hotel             `json:"hotel"`
	Image       string                   `json:"image"`
	ImageIndex  int                      `json:"imageIndex"`
	Parameters  domain.BookingParameters `json:"parameters"`
	Nights      int                      `json:"nights"`
	TotalPrice  float64                  `json:"totalPrice"`
	CanBook     bool                     `json:"canBook"`
	BookingLink string                   `json:"bookingLink,omitempty"`
}

func viewDetail(id string, p *app.DetailPage) detailView {
	hotel, _ := p.Hotel()
	img, idx := p.CurrentImage()
	nights, total := p.Preview()
	v := detailView{
		PageID:     id,
		Hotel:      hotel,
		Image:      img,
		ImageIndex: idx,
		Parameters: p.Parameters(),
		Nights:     nights,
		TotalPrice: total,
		CanBook:    p.CanBook(),
	}
	if v.CanBook {
		v.BookingLink = p.CarryOver().BookingPath(hotel.ID)
	}
	observability.ObserveQuote("detail")
	return v
}

type previewView struct {
	HotelID     int64                    `json:"hotelId"`
	Parameters  domain.BookingParameters `json:"parameters"`
	Nights      int                      `json:"nights"`
	TotalPrice  float64                  `json:"totalPrice"`
	CanBook     bool                     `json:"canBook"`
	BookingLink string                   `json:"bookingLink,omitempty"`
}

// previewStay is the stateless detail preview. Counts above the configured
// ceilings are clamped.
func (h *Handlers) previewStay(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	hotel, err := h.Catalog.FetchHotel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	co := app.ParseCarryOver(q, h.now())
	co.CheckInDate, co.CheckOutDate = q.Get("checkInDate"), q.Get("checkOutDate")
	co.Rooms = pricing.NewCounter(co.Rooms, h.Limits.MaxRooms).Value()
	co.Persons = pricing.NewCounter(co.Persons, h.Limits.MaxPersons).Value()

	v := previewView{HotelID: hotel.ID, Parameters: co.Parameters()}
	if co.CheckInDate != "" && co.CheckOutDate != "" {
		v.Nights = pricing.ComputeNights(co.CheckInDate, co.CheckOutDate)
		v.TotalPrice = pricing.RoomCost(v.Nights, hotel.Price, co.Rooms)
		v.CanBook = v.TotalPrice > 0
	}
	if v.CanBook {
		v.BookingLink = co.BookingPath(hotel.ID)
	}
	observability.ObserveQuote("preview")
	writeJSON(w, http.StatusOK, v)
}

func (h *Handlers) openDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page := app.NewDetailPage(h.Catalog, h.Limits)
	if err := page.Load(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	pageID := h.Details.Put(page)
	writeJSON(w, http.StatusCreated, viewDetail(pageID, page))
}

func (h *Handlers) getDetail(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "page")
	var v detailView
	if err := h.Details.With(pageID, func(p *app.DetailPage) error {
		v = viewDetail(pageID, p)
		return nil
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handlers) detailAction(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "page")
	var req actionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	var v detailView
	err := h.Details.With(pageID, func(p *app.DetailPage) error {
		switch req.Action {
		case "nextImage":
			p.NextImage()
		case "prevImage":
			p.PrevImage()
		case "setDates":
			p.SetDates(req.CheckInDate, req.CheckOutDate)
		default:
			target, dir, ok := parseAdjust(req.Action)
			if !ok {
				return domain.NewValidationError("action", fmt.Sprintf("unknown action %q", req.Action))
			}
			if target == "rooms" {
				p.AdjustRooms(dir)
			} else {
				p.AdjustPersons(dir)
			}
		}
		v = viewDetail(pageID, p)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// parseAdjust understands incrementRooms, decrementPersons and friends.
func parseAdjust(action string) (target string, dir pricing.Direction, ok bool) {
	var verb string
	switch {
	case strings.HasSuffix(action, "Rooms"):
		target, verb = "rooms", strings.TrimSuffix(action, "Rooms")
	case strings.HasSuffix(action, "Persons"):
		target, verb = "persons", strings.TrimSuffix(action, "Persons")
	default:
		return "", 0, false
	}
	switch verb {
	case "increment", "increase":
		return target, pricing.Up, true
	case "decrement", "decrease":
		return target, pricing.Down, true
	}
	return "", 0, false
}

/********** booking page **********/

type bookingView struct {
	PageID     string                   `json:"pageId"`
	State      app.BookingState         `json:"state"`
	Hotel      domain.Hotel             `json:"hotel"`
	Parameters domain.BookingParameters `json:"parameters"`
	Breakdown  domain.PriceBreakdown    `json:"breakdown"`
	Receipt    *domain.BookingReceipt   `json:"receipt,omitempty"`
	LastError  string                   `json:"lastError,omitempty"`
}

func viewBooking(id string, s *app.BookingSession) bookingView {
	hotel, _ := s.Hotel()
	v := bookingView{
		PageID:     id,
		State:      s.State(),
		Hotel:      hotel,
		Parameters: s.Parameters(),
		Breakdown:  s.Breakdown(),
	}
	if rc, ok := s.Receipt(); ok {
		v.Receipt = &rc
	}
	if err := s.LastError(); err != nil {
		v.LastError = err.Error()
	}
	observability.ObserveQuote("booking")
	return v
}

// quoteBooking prices a carry-over without opening a booking page.
func (h *Handlers) quoteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s := app.NewBookingSession(h.Catalog, h.Gateway, h.Sessions, h.Calc, h.Limits)
	if err := s.Open(r.Context(), id, app.ParseCarryOver(r.URL.Query(), h.now())); err != nil {
		writeError(w, err)
		return
	}
	observability.ObserveQuote("quote")
	writeJSON(w, http.StatusOK, s.Breakdown())
}

func (h *Handlers) openBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	co := app.ParseCarryOver(r.URL.Query(), h.now())
	s := app.NewBookingSession(h.Catalog, h.Gateway, h.Sessions, h.Calc, h.Limits)
	if err := s.Open(r.Context(), id, co); err != nil {
		writeError(w, err)
		return
	}
	pageID := h.Bookings.Put(s)
	writeJSON(w, http.StatusCreated, viewBooking(pageID, s))
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "page")
	var v bookingView
	if err := h.Bookings.With(pageID, func(s *app.BookingSession) error {
		v = viewBooking(pageID, s)
		return nil
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handlers) bookingAction(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "page")
	var req actionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	var v bookingView
	err := h.Bookings.With(pageID, func(s *app.BookingSession) error {
		if req.Action == "setDates" {
			if err := s.SetDates(req.CheckInDate, req.CheckOutDate); err != nil {
				return err
			}
		} else {
			target, dir, ok := parseAdjust(req.Action)
			if !ok {
				return domain.NewValidationError("action", fmt.Sprintf("unknown action %q", req.Action))
			}
			var err error
			if target == "rooms" {
				_, err = s.AdjustRooms(dir)
			} else {
				_, err = s.AdjustPersons(dir)
			}
			if err != nil {
				return err
			}
		}
		v = viewBooking(pageID, s)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handlers) submitBooking(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "page")
	var contact domain.ContactDetails
	if err := decodeBody(r, &contact); err != nil {
		writeError(w, err)
		return
	}
	sid := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		sid = c.Value
	}

	var v bookingView
	err := h.Bookings.With(pageID, func(s *app.BookingSession) error {
		if _, err := s.Submit(r.Context(), sid, contact); err != nil {
			return err
		}
		v = viewBooking(pageID, s)
		return nil
	})
	observability.ObserveBooking(bookingOutcome(err))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func bookingOutcome(err error) string {
	var ve *domain.ValidationError
	var re *domain.RemoteError
	switch {
	case err == nil:
		return "confirmed"
	case errors.As(err, &ve):
		return "invalid"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.As(err, &re):
		return "remote_error"
	default:
		return "other"
	}
}

/********** auth **********/

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var cr domain.Credentials
	if err := decodeBody(r, &cr); err != nil {
		writeError(w, err)
		return
	}
	sid, uid, err := h.Auth.Login(r.Context(), cr)
	if err != nil {
		writeError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(h.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"userId": uid})
}

func (h *Handlers) signup(w http.ResponseWriter, r *http.Request) {
	var f domain.SignupForm
	if err := decodeBody(r, &f); err != nil {
		writeError(w, err)
		return
	}
	msg, err := h.Auth.Signup(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": msg})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if err := h.Auth.Logout(r.Context(), c.Value); err != nil {
			writeError(w, err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	w.WriteHeader(http.StatusNoContent)
}
