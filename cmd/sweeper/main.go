package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"innkeeper/config"
	"innkeeper/di"
	"innkeeper/shared/logger"
)

// The sweeper expires lapsed booking holds on a fixed interval. It runs as
// its own process so a slow sweep never competes with request traffic.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	bookingService := di.InitializeSweeper()

	interval := time.Duration(cfg.Booking.SweepIntervalSecs) * time.Second

	log.Info().Dur("interval", interval).Msg("Starting up hold sweeper.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Received shutdown signal. Stopping hold sweeper.")

			return
		case <-ticker.C:
			expired, err := bookingService.ExpireHolds(ctx)
			if err != nil {
				log.Error().Err(err).Msg("failed to expire holds")

				continue
			}

			if expired > 0 {
				log.Info().Int("expired", expired).Msg("expired lapsed booking holds")
			}
		}
	}
}
