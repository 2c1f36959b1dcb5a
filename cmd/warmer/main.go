package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"jetset_booking/internal/adapters/jetset"
	"jetset_booking/internal/adapters/observability"
	redisad "jetset_booking/internal/adapters/redis"
	"jetset_booking/internal/app"
	"jetset_booking/internal/shared"
	mysqlrepo "jetset_booking/internal/storage/mysql"
)

// warmer primes the snapshot cache with the catalog and every hotel in it,
// then purges expired login sessions. Run it from cron.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("base", cfg.APIBase).
		Int("workers", cfg.WarmWorkers).
		Msg("warmer starting")

	client, err := jetset.New(cfg.APIBase, cfg.APIRPS, cfg.APITimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize remote client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}
	w := app.NewWarmer(client, cache, cfg.CacheTTL)

	ids, err := w.WarmCatalog(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog warm failed")
	}
	log.Info().Int("hotels", len(ids)).Msg("catalog cached")

	workers := cfg.WarmWorkers
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var g errgroup.Group
	failed := make(chan int64, len(ids))

	for _, id := range ids {
		id := id
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		g.Go(func() error {
			defer sem.Release(1)
			if err := w.WarmHotel(ctx, id); err != nil {
				log.Warn().Int64("id", id).Err(err).Msg("warm failed")
				failed <- id
				return err
			}
			log.Debug().Int64("id", id).Msg("warm ok")
			return nil
		})
	}
	err = g.Wait()
	close(failed)
	log.Info().Int("failed", len(failed)).Int("total", len(ids)).Err(err).Msg("warming completed")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	n, err := mysqlrepo.New(db, cfg.SessionTTL).Purge(ctx)
	if err != nil {
		log.Error().Err(err).Msg("session purge failed")
		return
	}
	log.Info().Int64("purged", n).Msg("expired sessions purged")
}
