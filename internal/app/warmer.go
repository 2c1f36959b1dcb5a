package app

import (
	"context"
	"errors"
	"time"

	"jetset_booking/internal/domain"
)

// Warmer primes the snapshot cache from the remote service.
type Warmer struct {
	remote   domain.CatalogReader
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewWarmer(r domain.CatalogReader, c domain.Cache, ttl time.Duration) *Warmer {
	return &Warmer{remote: r, cache: c, cacheTTL: ttl}
}

// WarmCatalog stores the catalog snapshot and returns the hotel ids in it.
func (w *Warmer) WarmCatalog(ctx context.Context) ([]int64, error) {
	hs, err := w.remote.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.cache.Set(ctx, catalogKey, hs, w.ttlSec()); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(hs))
	for _, h := range hs {
		if h.ID != 0 {
			ids = append(ids, h.ID)
		}
	}
	return ids, nil
}

// WarmHotel refreshes one hotel record. A hotel the remote no longer knows
// (404) or refuses (401/403) is evicted and not treated as a failure.
func (w *Warmer) WarmHotel(ctx context.Context, id int64) error {
	h, err := w.remote.FetchHotel(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			_ = w.cache.Del(ctx, hotelKey(id))
			return nil
		}
		return err
	}
	return w.cache.Set(ctx, hotelKey(id), h, w.ttlSec())
}

func (w *Warmer) ttlSec() int { return int(w.cacheTTL.Seconds()) }
