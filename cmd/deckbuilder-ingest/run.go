package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redjoy12/MTGA-deck-builder/pkg/scryfall"
	"github.com/robfig/cron/v3"
)

// runScheduled syncs the catalog on the given cron schedule until the
// process receives an interrupt. An immediate sync runs first so a fresh
// deployment does not wait for the first tick.
func runScheduled(ctx context.Context, logger *slog.Logger, syncer *scryfall.Syncer, format, schedule string) error {
	if _, err := syncer.Sync(ctx, format); err != nil {
		logger.ErrorContext(ctx, "Initial catalog sync failed", "error", err)
	}

	scheduler := cron.New()

	_, err := scheduler.AddFunc(schedule, func() {
		if _, err := syncer.Sync(ctx, format); err != nil {
			logger.ErrorContext(ctx, "Scheduled catalog sync failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	scheduler.Start()
	logger.InfoContext(ctx, "Catalog sync scheduled", "schedule", schedule, "format", format)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
	case <-signals:
	}

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()

	logger.InfoContext(ctx, "Catalog sync stopped")

	return nil
}
