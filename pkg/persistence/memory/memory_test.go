package memory

import (
	"testing"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCard(t *testing.T, store *Persistence, card *models.Card) *models.Card {
	t.Helper()

	require.NoError(t, store.Cards().Save(t.Context(), card))

	return card
}

func TestCardSearchAppliesFilters(t *testing.T) {
	store := NewPersistence()

	seedCard(t, store, &models.Card{
		Name:          "Shock",
		TypeLine:      "Instant",
		OracleText:    "Shock deals 2 damage to any target.",
		ManaValue:     1,
		ColorIdentity: []models.Color{models.ColorRed},
		Legalities:    map[string]string{"standard": "legal"},
	})
	seedCard(t, store, &models.Card{
		Name:          "Grizzly Bears",
		TypeLine:      "Creature — Bear",
		ManaValue:     2,
		ColorIdentity: []models.Color{models.ColorGreen},
		Legalities:    map[string]string{"standard": "not_legal"},
	})

	results, err := store.Cards().Search(t.Context(), persistence.CardFilters{TypeLine: "Creature"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Grizzly Bears", results[0].Name)

	results, err = store.Cards().Search(t.Context(), persistence.CardFilters{Format: "standard"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Shock", results[0].Name)

	maxManaValue := 1.0
	results, err = store.Cards().Search(t.Context(), persistence.CardFilters{MaxManaValue: &maxManaValue})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Shock", results[0].Name)

	results, err = store.Cards().Search(t.Context(), persistence.CardFilters{Text: "2 damage"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Shock", results[0].Name)
}

func TestCardResolveByNameIgnoresCase(t *testing.T) {
	store := NewPersistence()
	seedCard(t, store, &models.Card{Name: "Lightning Strike", TypeLine: "Instant"})

	card, err := store.Cards().ResolveByName(t.Context(), "LIGHTNING STRIKE")
	require.NoError(t, err)
	assert.Equal(t, "Lightning Strike", card.Name)

	_, err = store.Cards().ResolveByName(t.Context(), "Imaginary Dragon")
	assert.True(t, persistence.IsCardNotFound(err))
}

func TestCardSaveReturnsIndependentCopies(t *testing.T) {
	store := NewPersistence()
	saved := seedCard(t, store, &models.Card{Name: "Shock", TypeLine: "Instant"})

	fetched, err := store.Cards().GetByID(t.Context(), saved.ID)
	require.NoError(t, err)

	fetched.Name = "mutated"

	again, err := store.Cards().GetByID(t.Context(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shock", again.Name)
}

func testDeck(name string) *models.Deck {
	return &models.Deck{
		Name:         name,
		Format:       "standard",
		Colors:       []models.Color{models.ColorRed},
		StrategyTags: []string{"aggro"},
	}
}

func TestDeckSaveRejectsDuplicateNames(t *testing.T) {
	store := NewPersistence()

	_, err := store.Decks().Save(t.Context(), testDeck("mono red"), nil)
	require.NoError(t, err)

	_, err = store.Decks().Save(t.Context(), testDeck("mono red"), nil)
	assert.True(t, persistence.IsDeckAlreadyExists(err))
}

func TestDeckListPagination(t *testing.T) {
	store := NewPersistence()

	for _, name := range []string{"first", "second", "third"} {
		_, err := store.Decks().Save(t.Context(), testDeck(name), nil)
		require.NoError(t, err)
	}

	page, err := store.Decks().List(t.Context(), persistence.DeckFilters{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := store.Decks().List(t.Context(), persistence.DeckFilters{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	none, err := store.Decks().List(t.Context(), persistence.DeckFilters{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeckListFiltersByColors(t *testing.T) {
	store := NewPersistence()

	_, err := store.Decks().Save(t.Context(), testDeck("mono red"), nil)
	require.NoError(t, err)

	monoBlue := &models.Deck{
		Name:         "mono blue",
		Format:       "standard",
		Colors:       []models.Color{models.ColorBlue},
		StrategyTags: []string{"control"},
	}
	_, err = store.Decks().Save(t.Context(), monoBlue, nil)
	require.NoError(t, err)

	izzet := &models.Deck{
		Name:         "izzet tempo",
		Format:       "standard",
		Colors:       []models.Color{models.ColorBlue, models.ColorRed},
		StrategyTags: []string{"tempo"},
	}
	_, err = store.Decks().Save(t.Context(), izzet, nil)
	require.NoError(t, err)

	red, err := store.Decks().List(t.Context(), persistence.DeckFilters{Colors: []models.Color{models.ColorRed}})
	require.NoError(t, err)
	require.Len(t, red, 1)
	assert.Equal(t, "mono red", red[0].Name)

	izzetDecks, err := store.Decks().List(t.Context(), persistence.DeckFilters{
		Colors: []models.Color{models.ColorBlue, models.ColorRed},
	})
	require.NoError(t, err)
	assert.Len(t, izzetDecks, 3)
}

func TestDeckSimilarMatchesColorsOrArchetype(t *testing.T) {
	store := NewPersistence()

	_, err := store.Decks().Save(t.Context(), testDeck("red aggro"), nil)
	require.NoError(t, err)

	blueControl := &models.Deck{
		Name:         "blue control",
		Format:       "standard",
		Colors:       []models.Color{models.ColorBlue},
		StrategyTags: []string{"control"},
	}
	_, err = store.Decks().Save(t.Context(), blueControl, nil)
	require.NoError(t, err)

	similar, err := store.Decks().Similar(t.Context(), []models.Color{models.ColorRed}, "midrange", "standard")
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, "red aggro", similar[0].Name)

	similar, err = store.Decks().Similar(t.Context(), []models.Color{models.ColorGreen}, "control", "standard")
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, "blue control", similar[0].Name)
}

func TestDeckUpdateAndDelete(t *testing.T) {
	store := NewPersistence()

	id, err := store.Decks().Save(t.Context(), testDeck("mono red"), nil)
	require.NoError(t, err)

	updated := testDeck("mono red burn")
	updated.ID = id
	require.NoError(t, store.Decks().Update(t.Context(), updated))

	fetched, err := store.Decks().GetByID(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, "mono red burn", fetched.Name)

	require.NoError(t, store.Decks().Delete(t.Context(), id))

	_, err = store.Decks().GetByID(t.Context(), id)
	assert.True(t, persistence.IsDeckNotFound(err))
}

func TestUserResourcesUpsert(t *testing.T) {
	store := NewPersistence()

	_, err := store.UserResources().Get(t.Context(), "user-1")
	assert.True(t, persistence.IsUserResourcesNotFound(err))

	require.NoError(t, store.UserResources().Upsert(t.Context(), &models.UserResources{
		UserID: "user-1",
		Gold:   250,
	}))

	resources, err := store.UserResources().Get(t.Context(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 250, resources.Gold)
	assert.False(t, resources.UpdatedAt.IsZero())
}
