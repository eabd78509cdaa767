package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redjoy12/MTGA-deck-builder/pkg/cmd"
	"github.com/redjoy12/MTGA-deck-builder/pkg/llm"
	"github.com/redjoy12/MTGA-deck-builder/pkg/log"
	"github.com/redjoy12/MTGA-deck-builder/pkg/otelhelper"
	"github.com/redjoy12/MTGA-deck-builder/pkg/workflow"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "deckbuilder-api",
		Usage:                 "Build and manage Magic: The Gathering decks",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Database connection URL for persistence (empty for in-memory)",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis connection URL for the card search cache",
				Sources: cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (kafka, gochannel)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
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

			logger.InfoContext(ctx, "Initializing deck builder API")

			tracer, err := otelhelper.NewTracer(ctx, "deckbuilder-api")
			if err != nil {
				return fmt.Errorf("failed to initialize tracer: %w", err)
			}

			persistence, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			cards, err := cmd.NewCardRepository(ctx, logger, persistence.Cards(), command.String("redis-url"))
			if err != nil {
				return err
			}

			client, err := llm.NewClient(llm.ConfigFromEnv())
			if err != nil {
				return err
			}

			eventBus := cmd.NewEventBus(command.String("event-bus"), logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			api := NewAPI(
				logger,
				persistence,
				cards,
				workflow.NewClientCapability(client),
				eventBus,
				tracer,
			)

			if err := api.Start(command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
