package worker

// expiry_cron.go
// Background goroutine that periodically scans for stores whose plan expires
// within the next 7 days and enqueues a notification email. A redis SETNX
// key dedups notices to one per store per day.

import (
	"context"
	"fmt"
	"time"

	"sellerhub/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	expiryTickInterval = time.Hour
	expiryNoticeDays   = 7
	expiryDedupTTL     = 24 * time.Hour
)

// ExpiryCronConfig holds all dependencies for the plan-expiry goroutine.
type ExpiryCronConfig struct {
	Stores     repository.StoreRepository
	RDB        *redis.Client
	Dispatcher *Dispatcher
}

// StartPlanExpiryCron launches a background goroutine that ticks hourly and
// notifies owners of soon-expiring plans. It respects the context for
// graceful shutdown.
func StartPlanExpiryCron(ctx context.Context, cfg ExpiryCronConfig) {
	go func() {
		ticker := time.NewTicker(expiryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("expiry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("expiry_cron: shutting down")
				return
			case <-ticker.C:
				processExpiries(ctx, cfg)
			}
		}
	}()
}

func processExpiries(ctx context.Context, cfg ExpiryCronConfig) {
	until := time.Now().AddDate(0, 0, expiryNoticeDays)
	stores, err := cfg.Stores.ListExpiringPlans(ctx, until)
	if err != nil {
		log.Error().Err(err).Msg("expiry_cron: failed to query expiring plans")
		return
	}
	if len(stores) == 0 {
		return
	}

	today := time.Now().Format("2006-01-02")
	for i := range stores {
		store := &stores[i]
		if store.Owner == nil || store.PlanExpiresAt == nil {
			continue
		}

		dedupKey := fmt.Sprintf("notified:plan_expiry:%s:%s", store.ID, today)
		set, err := cfg.RDB.SetNX(ctx, dedupKey, 1, expiryDedupTTL).Result()
		if err != nil {
			log.Error().Err(err).Str("store_id", store.ID.String()).Msg("expiry_cron: dedup check failed")
			continue
		}
		if !set {
			continue // already notified today
		}

		payload := EmailJobPayload{
			ToEmail: store.Owner.Email,
			Subject: "Your plan is about to expire",
			Body: fmt.Sprintf("Hi %s, the %s plan for %s expires on %s. Renew to keep your listings active.",
				store.Owner.Name, store.Plan, store.Name, store.PlanExpiresAt.Format("2006-01-02")),
		}
		if err := cfg.Dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Error().Err(err).Str("store_id", store.ID.String()).Msg("expiry_cron: enqueue failed")
			continue
		}
		log.Info().Str("store_id", store.ID.String()).Msg("expiry_cron: notice enqueued")
	}
}
