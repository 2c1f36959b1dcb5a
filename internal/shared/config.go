package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	LogLevel       string
	HTTPAddr       string
	MetricsAddr    string
	AllowedOrigins []string
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	APIBase        string
	APIRPS         int
	APITimeout     time.Duration
	CacheTTL       time.Duration
	SessionTTL     time.Duration
	PageTTL        time.Duration
	WarmWorkers    int

	MaxRooms        int
	MaxPersons      int
	MinPriceLimit   float64
	MaxPriceLimit   float64
	InstantDiscount float64
	CouponDiscount  float64
	TaxRate         float64
	ClampNegative   bool
	SecureCookies   bool
}

// Load reads the environment, after applying an optional .env file.
// Variables already set in the environment win over .env entries.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env not loaded")
	}

	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "info"),
		HTTPAddr:       env("HTTP_ADDR", ":8090"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		AllowedOrigins: list("ALLOWED_ORIGINS", "http://localhost:3000"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/jetset?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		APIBase:        env("JETSET_API_BASE", "http://localhost:8080"),
		APIRPS:         atoi("JETSET_API_RPS", 10),
		APITimeout:     time.Duration(atoi("JETSET_API_TIMEOUT_SECONDS", 10)) * time.Second,
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		SessionTTL:     time.Duration(atoi("SESSION_TTL_SECONDS", 86400)) * time.Second,
		PageTTL:        time.Duration(atoi("PAGE_TTL_SECONDS", 1800)) * time.Second,
		WarmWorkers:    atoi("WARM_WORKERS", 8),

		MaxRooms:        atoi("MAX_ROOMS", 5),
		MaxPersons:      atoi("MAX_PERSONS", 10),
		MinPriceLimit:   atof("MIN_PRICE_LIMIT", 1000),
		MaxPriceLimit:   atof("MAX_PRICE_LIMIT", 5000),
		InstantDiscount: atof("INSTANT_DISCOUNT", 1000),
		CouponDiscount:  atof("COUPON_DISCOUNT", 500),
		TaxRate:         atof("TAX_RATE", 0.18),
		ClampNegative:   atob("CLAMP_NEGATIVE_TOTAL", false),
		SecureCookies:   atob("SECURE_COOKIES", false),
	}
	if c.MinPriceLimit > c.MaxPriceLimit {
		log.Warn().Float64("min", c.MinPriceLimit).Float64("max", c.MaxPriceLimit).Msg("price limits inverted, swapping")
		c.MinPriceLimit, c.MaxPriceLimit = c.MaxPriceLimit, c.MinPriceLimit
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

func atof(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
	}
	return def
}

func atob(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func list(k, def string) []string {
	var out []string
	for _, p := range strings.Split(env(k, def), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
