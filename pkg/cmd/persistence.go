package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence/memory"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence/postgresql"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence/rediscache"
)

// NewPersistence creates a persistence layer based on the database URL
// scheme. An empty URL selects the in-memory store, which suits development
// and tests but loses data on restart.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (persistence.Persistence, error) {
	switch parseProvider(databaseURL) {
	case "postgres", "postgresql":
		return postgresql.NewPersistence(ctx, logger, databaseURL)
	default:
		logger.WarnContext(ctx, "No database URL configured, using in-memory persistence")

		return memory.NewPersistence(), nil
	}
}

// NewCardRepository decorates the card repository with a Redis read-through
// cache when a Redis URL is configured.
func NewCardRepository(
	ctx context.Context,
	logger *slog.Logger,
	cards persistence.CardRepository,
	redisURL string,
) (persistence.CardRepository, error) {
	if redisURL == "" {
		return cards, nil
	}

	return rediscache.NewCachedCardRepository(ctx, cards, redisURL, logger)
}

func parseProvider(databaseURL string) string {
	scheme, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return ""
	}

	return scheme
}
