package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Card provides catalog operations over a card repository. It accepts the
// repository interface so the cached decorator can slot in unchanged.
type Card struct {
	cards persistence.CardRepository
}

// NewCard creates a new card service.
func NewCard(cards persistence.CardRepository) *Card {
	return &Card{cards: cards}
}

// ListCardsRequest contains options for searching the card catalog.
type ListCardsRequest struct {
	Text         string
	Colors       []string
	MaxManaValue *float64
	TypeLine     string
	Format       string
	Limit        int
}

// ListCards searches the catalog with the given filters.
func (c *Card) ListCards(ctx context.Context, req ListCardsRequest) ([]*models.Card, error) {
	colors, err := parseColors(req.Colors)
	if err != nil {
		return nil, err
	}

	if req.Limit < 0 {
		return nil, NewValidationError(
			"ListCards",
			"INVALID_LIMIT",
			fmt.Sprintf("limit must be non-negative, got %d", req.Limit),
			ErrInvalidLimit,
		)
	}

	if req.Limit == 0 {
		req.Limit = defaultListLimit
	}

	if req.Limit > maxListLimit {
		req.Limit = maxListLimit
	}

	cards, err := c.cards.Search(ctx, persistence.CardFilters{
		Text:         req.Text,
		Colors:       colors,
		MaxManaValue: req.MaxManaValue,
		TypeLine:     req.TypeLine,
		Format:       req.Format,
		Limit:        req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}

	return cards, nil
}

// FetchByID retrieves a card by its identifier.
func (c *Card) FetchByID(ctx context.Context, id string) (*models.Card, error) {
	return c.cards.GetByID(ctx, id)
}

// FetchByName resolves a card by its exact name, case-insensitively.
func (c *Card) FetchByName(ctx context.Context, name string) (*models.Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCardNameQty
	}

	return c.cards.ResolveByName(ctx, name)
}

// Create adds a new card to the catalog.
func (c *Card) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	if strings.TrimSpace(card.Name) == "" {
		return nil, ErrCardNameQty
	}

	if card.ID == "" {
		card.ID = uuid.New().String()
	}

	if err := c.cards.Save(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return card, nil
}

// Update replaces an existing catalog record.
func (c *Card) Update(ctx context.Context, id string, card *models.Card) (*models.Card, error) {
	existing, err := c.cards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	card.ID = existing.ID

	if strings.TrimSpace(card.Name) == "" {
		return nil, ErrCardNameQty
	}

	if err := c.cards.Save(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return card, nil
}

// Delete removes a card from the catalog.
func (c *Card) Delete(ctx context.Context, id string) error {
	if _, err := c.cards.GetByID(ctx, id); err != nil {
		return err
	}

	if err := c.cards.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	return nil
}

// parseColors converts color query parameters into the typed color slice.
func parseColors(symbols []string) ([]models.Color, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	colors := make([]models.Color, 0, len(symbols))

	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if !models.IsValidColor(symbol) {
			return nil, NewValidationError(
				"parseColors",
				"INVALID_COLOR",
				fmt.Sprintf("invalid color symbol '%s', allowed: W, U, B, R, G", symbol),
				ErrInvalidColor,
			)
		}

		colors = append(colors, models.Color(symbol))
	}

	return colors, nil
}
