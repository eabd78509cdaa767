package scryfall

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
)

const logBatchSize = 100

// Syncer pulls format-legal cards from Scryfall and upserts them into the
// card catalog.
type Syncer struct {
	client *Client
	cards  persistence.CardRepository
	logger *slog.Logger
}

func NewSyncer(client *Client, cards persistence.CardRepository, logger *slog.Logger) *Syncer {
	return &Syncer{
		client: client,
		cards:  cards,
		logger: logger.With("module", "scryfall_syncer"),
	}
}

// Sync ingests every card legal in the given format. Cards that fail to
// convert are skipped and counted; repository errors abort the run.
func (s *Syncer) Sync(ctx context.Context, format string) (int, error) {
	s.logger.InfoContext(ctx, "Starting card catalog sync", "format", format)

	var processed, skipped int

	err := s.client.LegalCards(ctx, format, func(card Card) error {
		record, convertErr := card.ToModel()
		if convertErr != nil {
			skipped++
			s.logger.WarnContext(ctx, "Skipping malformed card", "error", convertErr)

			return nil
		}

		if saveErr := s.cards.Save(ctx, record); saveErr != nil {
			return fmt.Errorf("saving card %s: %w", record.Name, saveErr)
		}

		processed++
		if processed%logBatchSize == 0 {
			s.logger.InfoContext(ctx, "Sync progress", "cards", processed)
		}

		return nil
	})
	if err != nil {
		return processed, fmt.Errorf("card catalog sync failed: %w", err)
	}

	s.logger.InfoContext(ctx, "Card catalog sync completed",
		"cards", processed, "skipped", skipped)

	return processed, nil
}
