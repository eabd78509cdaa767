package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeck() *Deck {
	return &Deck{
		Name:   "Izzet Tempo",
		Format: "Standard",
		Colors: []Color{ColorBlue, ColorRed},
		MainDeck: []CardEntry{
			{CardID: "c1", Name: "Consider", ManaValue: 1, ColorIdentity: []Color{ColorBlue}, TypeLine: "Instant", Quantity: 4},
			{CardID: "c2", Name: "Lightning Strike", ManaValue: 2, ColorIdentity: []Color{ColorRed}, TypeLine: "Instant", Quantity: 3},
		},
		Lands: []CardEntry{
			{CardID: "l1", Name: "Island", ColorIdentity: []Color{ColorBlue}, TypeLine: "Basic Land", Quantity: 10},
		},
	}
}

func TestMainboardCount(t *testing.T) {
	assert.Equal(t, 17, testDeck().MainboardCount())
}

func TestRemoveByName(t *testing.T) {
	d := testDeck()

	removed := d.RemoveByName("Consider")
	assert.True(t, removed)
	assert.Len(t, d.MainDeck, 1)

	removed = d.RemoveByName("Not In Deck")
	assert.False(t, removed)
}

func TestRemoveByNameCoversLands(t *testing.T) {
	d := testDeck()

	removed := d.RemoveByName("Island")
	assert.True(t, removed)
	assert.Empty(t, d.Lands)
}

func TestAdjustQuantity(t *testing.T) {
	d := testDeck()

	matched := d.AdjustQuantity("Lightning Strike", 1)
	assert.True(t, matched)
	assert.Equal(t, 4, d.MainDeck[1].Quantity)
}

func TestAdjustQuantityRemovesAtZero(t *testing.T) {
	d := testDeck()

	matched := d.AdjustQuantity("Lightning Strike", -3)
	assert.True(t, matched)
	assert.Len(t, d.MainDeck, 1)
}

func TestAdjustQuantityUnknownName(t *testing.T) {
	d := testDeck()

	matched := d.AdjustQuantity("Not In Deck", 2)
	assert.False(t, matched)
}

func TestAddEntryColorCheck(t *testing.T) {
	d := testDeck()

	err := d.AddEntry(CardEntry{Name: "Cut Down", ColorIdentity: []Color{ColorBlack}, Quantity: 2}, BoardMain)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompatibleColors)

	err = d.AddEntry(CardEntry{Name: "Steam Vents", ColorIdentity: []Color{ColorBlue, ColorRed}, TypeLine: "Land", Quantity: 4}, BoardLands)
	require.NoError(t, err)
	assert.Len(t, d.Lands, 2)
}

func TestIsBasicLandName(t *testing.T) {
	assert.True(t, IsBasicLandName("Mountain"))
	assert.False(t, IsBasicLandName("Steam Vents"))
}

func TestCardLegalIn(t *testing.T) {
	card := &Card{
		Name:       "Counterspell",
		Legalities: map[string]string{"modern": "legal", "standard": "not_legal"},
	}

	assert.True(t, card.LegalIn("Modern"))
	assert.False(t, card.LegalIn("Standard"))
	assert.True(t, card.LegalIn("Vintage"), "unknown formats default to legal")
}

func TestEntryFromCard(t *testing.T) {
	card := &Card{
		ID:            "abc",
		Name:          "Consider",
		ManaValue:     1,
		ColorIdentity: []Color{ColorBlue},
		TypeLine:      "Instant",
	}

	e := EntryFromCard(card, 4, RoleCardAdvantage)
	assert.Equal(t, "abc", e.CardID)
	assert.Equal(t, 4, e.Quantity)
	assert.Equal(t, RoleCardAdvantage, e.Role)
	assert.False(t, e.IsLand())
}
