package main

import (
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "jetset_booking/internal/adapters/http_server"
	"jetset_booking/internal/adapters/jetset"
	"jetset_booking/internal/adapters/observability"
	redisad "jetset_booking/internal/adapters/redis"
	"jetset_booking/internal/app"
	"jetset_booking/internal/catalog"
	"jetset_booking/internal/pricing"
	"jetset_booking/internal/shared"
	mysqlrepo "jetset_booking/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	sessions := mysqlrepo.New(db, cfg.SessionTTL)
	remote, err := jetset.New(cfg.APIBase, cfg.APIRPS, cfg.APITimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize remote client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	q := app.NewHotelQueries(remote, cache, cfg.CacheTTL)

	policy := pricing.AllowNegativeTotal
	if cfg.ClampNegative {
		policy = pricing.ClampTotalAtZero
	}
	calc := pricing.NewCalculator(pricing.Rates{
		InstantDiscount: cfg.InstantDiscount,
		CouponDiscount:  cfg.CouponDiscount,
		TaxRate:         cfg.TaxRate,
		Policy:          policy,
	})
	limits := app.Limits{
		MaxRooms:   cfg.MaxRooms,
		MaxPersons: cfg.MaxPersons,
		Price:      catalog.PriceLimits{Min: cfg.MinPriceLimit, Max: cfg.MaxPriceLimit},
	}

	// http
	srv := server.New(cfg.AllowedOrigins)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Catalog:       q,
		Gateway:       remote,
		Sessions:      sessions,
		Auth:          app.NewAuthService(remote, sessions),
		Calc:          calc,
		Limits:        limits,
		Details:       app.NewRegistry[app.DetailPage](cfg.PageTTL),
		Bookings:      app.NewRegistry[app.BookingSession](cfg.PageTTL),
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.SecureCookies,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Str("remote", cfg.APIBase).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
