// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/redjoy12/MTGA-deck-builder/pkg/channels/gochannel"
	"github.com/redjoy12/MTGA-deck-builder/pkg/channels/kafka"
	"github.com/redjoy12/MTGA-deck-builder/pkg/eventbus"
)

// NewEventBus creates an event bus instance based on the provider. Kafka
// carries build progress events across processes; the gochannel provider
// keeps them in-process for development and tests.
func NewEventBus(provider string, logger *slog.Logger) eventbus.EventBus {
	switch provider {
	case "kafka":
		pub, sub, err := kafka.CreateChannel(watermill.NewSlogLogger(logger), "deckbuilder")
		if err != nil {
			panic(fmt.Errorf("failed to create Kafka pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub)
	case "", "gochannel":
		pub, sub, err := gochannel.CreateChannel(watermill.NewSlogLogger(logger))
		if err != nil {
			panic(fmt.Errorf("failed to create in-memory pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub)
	default:
		panic("Unsupported event bus provider: " + provider)
	}
}
