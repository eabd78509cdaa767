// Package main provides the card catalog ingest command. It pulls
// format-legal cards from Scryfall into the card repository, either once or
// on a cron schedule.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redjoy12/MTGA-deck-builder/pkg/cmd"
	"github.com/redjoy12/MTGA-deck-builder/pkg/log"
	"github.com/redjoy12/MTGA-deck-builder/pkg/scryfall"
	"github.com/robfig/cron/v3"
	cli "github.com/urfave/cli/v3"
)

func main() {
	logger := log.WithModule("ingest")

	command := &cli.Command{
		Name:                  "deckbuilder-ingest",
		Usage:                 "Sync the card catalog from Scryfall",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Database connection URL for persistence (empty for in-memory)",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "format",
				Usage:   "Game format whose legal cards are ingested",
				Value:   "standard",
				Sources: cli.EnvVars("INGEST_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "scryfall-url",
				Usage:   "Scryfall API base URL",
				Value:   scryfall.DefaultBaseURL,
				Sources: cli.EnvVars("SCRYFALL_BASE_URL"),
			},
			&cli.StringFlag{
				Name:    "schedule",
				Usage:   "Cron expression for recurring syncs (empty runs once and exits)",
				Sources: cli.EnvVars("INGEST_SCHEDULE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			persistence, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			client := scryfall.NewClient(command.String("scryfall-url"), logger)
			syncer := scryfall.NewSyncer(client, persistence.Cards(), logger)
			format := command.String("format")

			schedule := command.String("schedule")
			if schedule == "" {
				_, err := syncer.Sync(ctx, format)

				return err
			}

			if _, err := cron.ParseStandard(schedule); err != nil {
				return fmt.Errorf("invalid cron expression '%s': %w", schedule, err)
			}

			return runScheduled(ctx, logger, syncer, format, schedule)
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
