//go:build integration || !unit

package integration

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	server "jetset_booking/internal/adapters/http_server"
	"jetset_booking/internal/adapters/jetset"
	redisad "jetset_booking/internal/adapters/redis"
	"jetset_booking/internal/app"
	"jetset_booking/internal/pricing"
	mysqlrepo "jetset_booking/internal/storage/mysql"
)

// ---------- helpers ----------

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir()
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker daemon unavailable: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=jetset",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/jetset?parseTime=true&multiStatements=true&loc=UTC",
		resource.GetPort("3306/tcp"))
	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	applyMigrations(t, db)
	return db
}

// ---------- fake origin ----------

type origin struct {
	mu       sync.Mutex
	hotelHit int
	bookings []map[string]any
}

func (o *origin) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/hotels", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Sea Breeze","location":"Goa","price":1000,"amenities":["wifi","pool"]},
			{"id":2,"hotelName":"Hill Top","city":"Shimla","pricePerNight":"2000","amenities":["wifi"]}
		]`))
	})
	r.Get("/hotels/{id}", func(w http.ResponseWriter, r *http.Request) {
		o.mu.Lock()
		o.hotelHit++
		o.mu.Unlock()
		if chi.URLParam(r, "id") != "1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Hotel not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"name":"Sea Breeze","location":"Goa","price":1000,"amenities":["wifi","pool"],"images":[]}`))
	})
	r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"userId":42,"token":"ignored"}`))
	})
	r.Post("/bookings", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		o.mu.Lock()
		o.bookings = append(o.bookings, body)
		n := len(o.bookings)
		o.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = fmt.Fprintf(w, `{"bookingId":%d,"status":"CONFIRMED"}`, 100+n)
	})
	return r
}

// ---------- the test ----------

func TestHTTP_EndToEnd_LoginDetailBook(t *testing.T) {
	db := startMySQL(t)

	o := &origin{}
	originSrv := httptest.NewServer(o.router())
	defer originSrv.Close()

	mr := miniredis.RunT(t)
	cache := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "e2e:")

	remote, err := jetset.New(originSrv.URL, 50, 5*time.Second)
	if err != nil {
		t.Fatalf("jetset.New: %v", err)
	}
	sessions := mysqlrepo.New(db, time.Hour)

	srv := server.New([]string{"http://localhost:3000"})
	srv.MountHandlers(&server.Handlers{
		Catalog:    app.NewHotelQueries(remote, cache, 5*time.Minute),
		Gateway:    remote,
		Sessions:   sessions,
		Auth:       app.NewAuthService(remote, sessions),
		Calc:       pricing.NewCalculator(pricing.DefaultRates()),
		Limits:     app.DefaultLimits(),
		Details:    app.NewRegistry[app.DetailPage](time.Minute),
		Bookings:   app.NewRegistry[app.BookingSession](time.Minute),
		SessionTTL: time.Hour,
	})
	bff := httptest.NewServer(srv.Mux())
	defer bff.Close()

	jar, _ := cookiejar.New(nil)
	c := &http.Client{Jar: jar}

	post := func(path string, body string, out any) int {
		t.Helper()
		res, err := c.Post(bff.URL+path, "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		defer res.Body.Close()
		if out != nil {
			if err := json.NewDecoder(res.Body).Decode(out); err != nil {
				t.Fatalf("decode %s: %v", path, err)
			}
		}
		return res.StatusCode
	}

	// catalog goes through the remote and the alias mapper
	res, err := c.Get(bff.URL + "/v1/catalog?sort=priceHighToLow")
	if err != nil {
		t.Fatalf("GET catalog: %v", err)
	}
	var cat struct {
		Hotels []struct {
			ID    int64   `json:"id"`
			Name  string  `json:"name"`
			Price float64 `json:"price"`
		} `json:"hotels"`
	}
	_ = json.NewDecoder(res.Body).Decode(&cat)
	res.Body.Close()
	if len(cat.Hotels) != 2 || cat.Hotels[0].Name != "Hill Top" || cat.Hotels[0].Price != 2000 {
		t.Fatalf("catalog: %+v", cat.Hotels)
	}

	if code := post("/v1/auth/login", `{"username":"asha","password":"wrong"}`, nil); code != http.StatusUnauthorized {
		t.Fatalf("bad login status %d", code)
	}
	if code := post("/v1/auth/login", `{"username":"asha","password":"secret"}`, nil); code != http.StatusOK {
		t.Fatalf("login status %d", code)
	}

	// detail page: fallback images, dates, rooms
	var detail struct {
		PageID      string `json:"pageId"`
		Image       string `json:"image"`
		BookingLink string `json:"bookingLink"`
		CanBook     bool   `json:"canBook"`
	}
	if code := post("/v1/hotels/1/details", "", &detail); code != http.StatusCreated {
		t.Fatalf("open detail status %d", code)
	}
	if !strings.HasPrefix(detail.Image, "https://") {
		t.Fatalf("expected fallback image, got %q", detail.Image)
	}
	actions := "/v1/details/" + detail.PageID + "/actions"
	post(actions, `{"action":"incrementRooms"}`, &detail)
	post(actions, `{"action":"setDates","checkInDate":"2026-11-01","checkOutDate":"2026-11-03"}`, &detail)
	if !detail.CanBook || detail.BookingLink == "" {
		t.Fatalf("detail not bookable: %+v", detail)
	}

	// booking page opened from the detail page's link
	var booking struct {
		PageID    string `json:"pageId"`
		State     string `json:"state"`
		Breakdown struct {
			TotalPayable float64 `json:"totalPayable"`
		} `json:"breakdown"`
		Receipt *struct {
			BookingID string `json:"bookingId"`
		} `json:"receipt"`
	}
	link := strings.Replace(detail.BookingLink, "/booking/", "/v1/booking/", 1)
	if code := post(link, "", &booking); code != http.StatusCreated {
		t.Fatalf("open booking status %d", code)
	}
	if booking.Breakdown.TotalPayable != 3220 {
		t.Fatalf("total %v", booking.Breakdown.TotalPayable)
	}

	contact := `{"fullName":"Asha Rao","email":"asha@example.com","phone":"9876543210","paymentMethod":"upi"}`
	if code := post("/v1/bookings/"+booking.PageID+"/submit", contact, &booking); code != http.StatusCreated {
		t.Fatalf("submit status %d", code)
	}
	if booking.State != "confirmed" || booking.Receipt == nil || booking.Receipt.BookingID != "101" {
		t.Fatalf("booking %+v", booking)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.bookings) != 1 {
		t.Fatalf("origin saw %d bookings", len(o.bookings))
	}
	got := o.bookings[0]
	if got["userId"] != float64(42) || got["numberOfRooms"] != float64(2) || got["totalPayable"] != float64(3220) {
		t.Fatalf("booking payload %+v", got)
	}
	// detail and booking page both read hotel 1; the second comes from redis
	if o.hotelHit != 1 {
		t.Fatalf("origin hotel hits = %d, want 1", o.hotelHit)
	}
}
