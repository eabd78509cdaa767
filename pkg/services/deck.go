package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redjoy12/MTGA-deck-builder/pkg/deck"
	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
)

// Deck provides CRUD and validation operations over stored decks.
type Deck struct {
	persistence persistence.Persistence
}

// NewDeck creates a new deck service.
func NewDeck(persistence persistence.Persistence) *Deck {
	return &Deck{persistence: persistence}
}

// HealthCheck checks the health of the persistence layer.
func (d *Deck) HealthCheck(ctx context.Context) (string, bool) {
	if d.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := d.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// ListDecksRequest contains options for listing stored decks.
type ListDecksRequest struct {
	Format    string
	Archetype string
	Colors    []string
	OwnerID   string
	Limit     int
	Offset    int
}

// ListDecks retrieves decks matching the given filters.
func (d *Deck) ListDecks(ctx context.Context, req ListDecksRequest) ([]*models.Deck, error) {
	colors, err := parseColors(req.Colors)
	if err != nil {
		return nil, err
	}

	if req.Limit < 0 || req.Offset < 0 {
		return nil, NewValidationError(
			"ListDecks",
			"INVALID_LIMIT",
			"limit and offset must be non-negative",
			ErrInvalidLimit,
		)
	}

	if req.Limit == 0 {
		req.Limit = defaultListLimit
	}

	if req.Limit > maxListLimit {
		req.Limit = maxListLimit
	}

	decks, err := d.persistence.Decks().List(ctx, persistence.DeckFilters{
		Format:    req.Format,
		Archetype: req.Archetype,
		Colors:    colors,
		OwnerID:   req.OwnerID,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}

	return decks, nil
}

// FetchByID retrieves a deck by its ID.
func (d *Deck) FetchByID(ctx context.Context, id string) (*models.Deck, error) {
	return d.persistence.Decks().GetByID(ctx, id)
}

// Create persists a manually assembled deck. Statistics are recomputed from
// the deck list so that stored derived data never drifts from the entries.
func (d *Deck) Create(ctx context.Context, in *models.Deck) (*models.Deck, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrDeckNameQty
	}

	now := time.Now().UTC()
	in.CreatedAt = now
	in.UpdatedAt = now

	stats := deck.ComputeStatistics(in)
	in.Statistics = &stats

	id, err := d.persistence.Decks().Save(ctx, in, nil)
	if err != nil {
		if persistence.IsDeckAlreadyExists(err) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to create deck: %w", err)
	}

	in.ID = id

	return in, nil
}

// Update modifies an existing deck by its ID.
func (d *Deck) Update(ctx context.Context, deckID string, in *models.Deck) (*models.Deck, error) {
	existing, err := d.persistence.Decks().GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrDeckNameQty
	}

	in.ID = deckID
	in.CreatedAt = existing.CreatedAt
	in.UpdatedAt = time.Now().UTC()

	stats := deck.ComputeStatistics(in)
	in.Statistics = &stats

	if err := d.persistence.Decks().Update(ctx, in); err != nil {
		return nil, fmt.Errorf("failed to update deck: %w", err)
	}

	return in, nil
}

// Delete removes a deck by its ID.
func (d *Deck) Delete(ctx context.Context, deckID string) error {
	if _, err := d.persistence.Decks().GetByID(ctx, deckID); err != nil {
		return err
	}

	if err := d.persistence.Decks().Delete(ctx, deckID); err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}

	return nil
}

// DeckReport bundles a stored deck with its current validation findings.
type DeckReport struct {
	Deck           *models.Deck `json:"deck"`
	Issues         []string     `json:"issues"`
	ManaBaseIssues []string     `json:"mana_base_issues"`
	Legal          bool         `json:"legal"`
}

// Check runs the format validation and mana base heuristics against a
// stored deck.
func (d *Deck) Check(ctx context.Context, deckID string) (*DeckReport, error) {
	stored, err := d.persistence.Decks().GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}

	issues := deck.Validate(stored)
	manaIssues := deck.ValidateManaBase(stored)

	return &DeckReport{
		Deck:           stored,
		Issues:         issues,
		ManaBaseIssues: manaIssues,
		Legal:          len(issues) == 0,
	}, nil
}
