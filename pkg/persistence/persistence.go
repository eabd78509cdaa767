// Package persistence defines the storage abstraction for cards, decks, and
// user resources, plus the standardized error types its implementations use.
package persistence

import (
	"context"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
)

// CardFilters narrows a card search. Zero-valued fields are ignored.
type CardFilters struct {
	// Text matches against card name and oracle text.
	Text string
	// Colors restricts results to cards whose color identity is a subset
	// of the given colors.
	Colors []models.Color
	// MaxManaValue caps the mana value of returned cards.
	MaxManaValue *float64
	// TypeLine is a substring match against the type line.
	TypeLine string
	// Format restricts results to cards legal in the named format.
	Format string
	// Limit caps the number of results; implementations apply a default
	// when zero.
	Limit int
}

// DeckFilters narrows a deck listing. Zero-valued fields are ignored.
type DeckFilters struct {
	Format    string
	Archetype string
	Colors    []models.Color
	OwnerID   string
	Limit     int
	Offset    int
}

// CardRepository is the card catalog lookup boundary consumed by the build
// workflow and the card CRUD API. Implementations must be safe for
// concurrent reads.
type CardRepository interface {
	Search(ctx context.Context, filters CardFilters) ([]*models.Card, error)
	ResolveByName(ctx context.Context, name string) (*models.Card, error)
	GetByID(ctx context.Context, id string) (*models.Card, error)
	Save(ctx context.Context, card *models.Card) error
	Delete(ctx context.Context, id string) error
}

// DeckRepository stores deck artifacts. Save acts as the persistence sink of
// the build workflow: the approved deck plus its provenance metadata.
// Implementations must be safe for concurrent writes.
type DeckRepository interface {
	Save(ctx context.Context, deck *models.Deck, provenance *models.Provenance) (string, error)
	GetByID(ctx context.Context, id string) (*models.Deck, error)
	List(ctx context.Context, filters DeckFilters) ([]*models.Deck, error)
	Update(ctx context.Context, deck *models.Deck) error
	Delete(ctx context.Context, id string) error

	// Similar returns stored decks sharing colors, archetype, or format
	// with the given brief, used as reference material by the strategist.
	Similar(ctx context.Context, colors []models.Color, archetype, format string) ([]*models.Deck, error)
}

// UserResourceRepository stores wildcard and currency balances.
type UserResourceRepository interface {
	Get(ctx context.Context, userID string) (*models.UserResources, error)
	Upsert(ctx context.Context, resources *models.UserResources) error
}

// Persistence bundles the repositories behind a single connection-owning
// implementation.
type Persistence interface {
	Cards() CardRepository
	Decks() DeckRepository
	UserResources() UserResourceRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
