package app

import (
	"context"
	"fmt"
	"time"

	"jetset_booking/internal/domain"
)

const catalogKey = "catalog"

func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }

// HotelQueries reads the remote catalog through the snapshot cache.
// It satisfies domain.CatalogReader so pages can use it in place of the client.
type HotelQueries struct {
	remote   domain.CatalogReader
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewHotelQueries(r domain.CatalogReader, c domain.Cache, ttl time.Duration) *HotelQueries {
	return &HotelQueries{remote: r, cache: c, cacheTTL: ttl}
}

func (s *HotelQueries) FetchHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := hotelKey(id)
	if s.cache != nil {
		var cached domain.Hotel
		// a snapshot that fails to decode counts as a miss
		if ok, err := s.cache.Get(ctx, key, &cached); ok && err == nil {
			return cached, nil
		}
	}
	h, err := s.remote.FetchHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h.Clone(), nil
}

func (s *HotelQueries) FetchCatalog(ctx context.Context) ([]domain.Hotel, error) {
	if s.cache != nil {
		var cached []domain.Hotel
		if ok, err := s.cache.Get(ctx, catalogKey, &cached); ok && err == nil {
			return cached, nil
		}
	}
	hs, err := s.remote.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	// copy so callers never alias the slice handed to the cache
	out := domain.CloneHotels(hs)
	if s.cache != nil {
		_ = s.cache.Set(ctx, catalogKey, hs, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}
