// Package memory provides an in-memory persistence implementation for
// development and tests. All repositories are safe for concurrent use.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
)

const defaultSearchLimit = 50

// Persistence implements persistence.Persistence on top of process memory.
type Persistence struct {
	cards     *CardRepository
	decks     *DeckRepository
	resources *UserResourceRepository
}

// NewPersistence creates an empty in-memory persistence layer.
func NewPersistence() *Persistence {
	return &Persistence{
		cards:     &CardRepository{cards: map[string]*models.Card{}},
		decks:     &DeckRepository{decks: map[string]*deckRecord{}},
		resources: &UserResourceRepository{resources: map[string]*models.UserResources{}},
	}
}

func (p *Persistence) Cards() persistence.CardRepository { return p.cards }

func (p *Persistence) Decks() persistence.DeckRepository { return p.decks }

func (p *Persistence) UserResources() persistence.UserResourceRepository { return p.resources }

func (p *Persistence) HealthCheck(_ context.Context) error { return nil }

func (p *Persistence) Close(_ context.Context) error { return nil }

// CardRepository is the in-memory card catalog.
type CardRepository struct {
	mu    sync.RWMutex
	cards map[string]*models.Card
}

func (r *CardRepository) Save(_ context.Context, card *models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if card.ID == "" {
		card.ID = uuid.New().String()
	}

	copied := *card
	r.cards[card.ID] = &copied

	return nil
}

func (r *CardRepository) GetByID(_ context.Context, id string) (*models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	card, ok := r.cards[id]
	if !ok {
		return nil, persistence.NewCardError("GetByID", id, persistence.ErrCardNotFound)
	}

	copied := *card

	return &copied, nil
}

func (r *CardRepository) ResolveByName(_ context.Context, name string) (*models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, card := range r.cards {
		if strings.EqualFold(card.Name, name) {
			copied := *card

			return &copied, nil
		}
	}

	return nil, persistence.NewCardError("ResolveByName", name, persistence.ErrCardNotFound)
}

func (r *CardRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cards[id]; !ok {
		return persistence.NewCardError("Delete", id, persistence.ErrCardNotFound)
	}

	delete(r.cards, id)

	return nil
}

func (r *CardRepository) Search(_ context.Context, filters persistence.CardFilters) ([]*models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var results []*models.Card

	for _, card := range r.cards {
		if !matches(card, filters) {
			continue
		}

		copied := *card
		results = append(results, &copied)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func matches(card *models.Card, filters persistence.CardFilters) bool {
	if filters.Text != "" {
		text := strings.ToLower(filters.Text)
		if !strings.Contains(strings.ToLower(card.Name), text) &&
			!strings.Contains(strings.ToLower(card.OracleText), text) {
			return false
		}
	}

	if filters.TypeLine != "" &&
		!strings.Contains(strings.ToLower(card.TypeLine), strings.ToLower(filters.TypeLine)) {
		return false
	}

	if filters.MaxManaValue != nil && card.ManaValue > *filters.MaxManaValue {
		return false
	}

	if filters.Format != "" && !card.LegalIn(filters.Format) {
		return false
	}

	if len(filters.Colors) > 0 && !colorSubset(card.ColorIdentity, filters.Colors) {
		return false
	}

	return true
}

func colorSubset(identity, allowed []models.Color) bool {
	allowedSet := make(map[models.Color]bool, len(allowed))
	for _, color := range allowed {
		allowedSet[color] = true
	}

	for _, color := range identity {
		if !allowedSet[color] {
			return false
		}
	}

	return true
}

type deckRecord struct {
	deck       *models.Deck
	provenance *models.Provenance
}

// DeckRepository is the in-memory deck store.
type DeckRepository struct {
	mu    sync.Mutex
	decks map[string]*deckRecord
}

func (r *DeckRepository) Save(_ context.Context, deck *models.Deck, provenance *models.Provenance) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.decks {
		if record.deck.Name == deck.Name {
			return "", persistence.NewDeckError("Save", deck.Name, persistence.ErrDeckAlreadyExists)
		}
	}

	copied := *deck
	if copied.ID == "" {
		copied.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	copied.CreatedAt = now
	copied.UpdatedAt = now

	r.decks[copied.ID] = &deckRecord{deck: &copied, provenance: provenance}

	return copied.ID, nil
}

func (r *DeckRepository) GetByID(_ context.Context, id string) (*models.Deck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.decks[id]
	if !ok {
		return nil, persistence.NewDeckError("GetByID", id, persistence.ErrDeckNotFound)
	}

	copied := *record.deck

	return &copied, nil
}

func (r *DeckRepository) List(_ context.Context, filters persistence.DeckFilters) ([]*models.Deck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []*models.Deck

	for _, record := range r.decks {
		deck := record.deck

		if filters.Format != "" && !strings.EqualFold(deck.Format, filters.Format) {
			continue
		}

		if filters.OwnerID != "" && deck.OwnerID != filters.OwnerID {
			continue
		}

		if filters.Archetype != "" && !hasTag(deck.StrategyTags, filters.Archetype) {
			continue
		}

		if len(filters.Colors) > 0 && !colorSubset(deck.Colors, filters.Colors) {
			continue
		}

		copied := *deck
		results = append(results, &copied)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.After(results[j].CreatedAt) })

	if filters.Offset > 0 {
		if filters.Offset >= len(results) {
			return []*models.Deck{}, nil
		}

		results = results[filters.Offset:]
	}

	if filters.Limit > 0 && len(results) > filters.Limit {
		results = results[:filters.Limit]
	}

	return results, nil
}

func (r *DeckRepository) Update(_ context.Context, deck *models.Deck) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.decks[deck.ID]
	if !ok {
		return persistence.NewDeckError("Update", deck.ID, persistence.ErrDeckNotFound)
	}

	copied := *deck
	copied.CreatedAt = record.deck.CreatedAt
	copied.UpdatedAt = time.Now().UTC()
	record.deck = &copied

	return nil
}

func (r *DeckRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.decks[id]; !ok {
		return persistence.NewDeckError("Delete", id, persistence.ErrDeckNotFound)
	}

	delete(r.decks, id)

	return nil
}

func (r *DeckRepository) Similar(_ context.Context, colors []models.Color, archetype, format string) ([]*models.Deck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	colorSet := make(map[models.Color]bool, len(colors))
	for _, color := range colors {
		colorSet[color] = true
	}

	var results []*models.Deck

	for _, record := range r.decks {
		deck := record.deck

		if format != "" && !strings.EqualFold(deck.Format, format) {
			continue
		}

		shared := hasTag(deck.StrategyTags, archetype)
		for _, color := range deck.Colors {
			if colorSet[color] {
				shared = true
			}
		}

		if !shared {
			continue
		}

		copied := *deck
		results = append(results, &copied)
	}

	return results, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}

	return false
}

// UserResourceRepository is the in-memory resource store.
type UserResourceRepository struct {
	mu        sync.Mutex
	resources map[string]*models.UserResources
}

func (r *UserResourceRepository) Get(_ context.Context, userID string) (*models.UserResources, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resources, ok := r.resources[userID]
	if !ok {
		return nil, persistence.ErrUserResourcesNotFound
	}

	copied := *resources

	return &copied, nil
}

func (r *UserResourceRepository) Upsert(_ context.Context, resources *models.UserResources) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *resources
	copied.UpdatedAt = time.Now().UTC()
	r.resources[resources.UserID] = &copied

	return nil
}
