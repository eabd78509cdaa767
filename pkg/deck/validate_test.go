package deck

import (
	"testing"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, quantity int, manaValue float64, typeLine string, colors ...models.Color) models.CardEntry {
	return models.CardEntry{
		CardID:        name,
		Name:          name,
		ManaValue:     manaValue,
		ColorIdentity: colors,
		TypeLine:      typeLine,
		Quantity:      quantity,
		Role:          models.RoleUtility,
	}
}

func land(name string, quantity int, colors ...models.Color) models.CardEntry {
	e := entry(name, quantity, 0, "Basic Land", colors...)
	e.Role = models.RoleManaSource

	return e
}

// legalDeck builds a mono-red deck that satisfies every structural rule:
// 36 spells across nine names plus 24 Mountains.
func legalDeck() *models.Deck {
	d := &models.Deck{
		Name:   "Mono Red Aggro",
		Format: "Standard",
		Colors: []models.Color{models.ColorRed},
	}

	names := []string{
		"Monastery Swiftspear", "Phoenix Chick", "Kumano Faces Kakkazan",
		"Play with Fire", "Lightning Strike", "Feldon, Ronom Excavator",
		"Squee, Dubious Monarch", "Obliterating Bolt", "Urabrask's Forge",
	}
	for i, name := range names {
		d.MainDeck = append(d.MainDeck, entry(name, 4, float64(1+i%3), "Creature", models.ColorRed))
	}

	d.Lands = append(d.Lands, land("Mountain", 24, models.ColorRed))

	return d
}

func TestValidateLegalDeck(t *testing.T) {
	issues := Validate(legalDeck())
	assert.Empty(t, issues)
}

func TestValidateShortMainboard(t *testing.T) {
	d := legalDeck()
	d.Lands[0].Quantity = 20 // 56 cards total

	issues := Validate(d)
	require.Len(t, issues, 1)
	assert.Equal(t, "Deck must have at least 60 cards (currently 56)", issues[0])
}

func TestValidateTooManyCopies(t *testing.T) {
	d := legalDeck()
	d.MainDeck = append(d.MainDeck, entry("Bolt", 5, 1, "Instant", models.ColorRed))

	issues := Validate(d)
	require.Len(t, issues, 1)
	assert.Equal(t, "Too many copies of Bolt (5/4)", issues[0])
}

func TestValidateCopiesSplitAcrossEntries(t *testing.T) {
	d := legalDeck()
	d.MainDeck = append(d.MainDeck,
		entry("Bolt", 3, 1, "Instant", models.ColorRed),
		entry("Bolt", 2, 1, "Instant", models.ColorRed),
	)

	issues := Validate(d)
	require.Len(t, issues, 1)
	assert.Equal(t, "Too many copies of Bolt (5/4)", issues[0])
}

func TestValidateBasicLandExemption(t *testing.T) {
	issues := Validate(legalDeck())
	assert.Empty(t, issues, "24 Mountains must not trip the copy limit")
}

func TestValidateOversizedSideboard(t *testing.T) {
	d := legalDeck()
	d.Sideboard = append(d.Sideboard,
		entry("Abrade", 4, 2, "Instant", models.ColorRed),
		entry("Lithomantic Barrage", 4, 1, "Instant", models.ColorRed),
		entry("Urabrask", 4, 4, "Creature", models.ColorRed),
		entry("Jaya", 4, 5, "Planeswalker", models.ColorRed),
	)

	issues := Validate(d)
	require.Len(t, issues, 1)
	assert.Equal(t, "Sideboard must have at most 15 cards (currently 16)", issues[0])
}

func TestValidateCollectsAllViolations(t *testing.T) {
	d := &models.Deck{
		Name:   "Broken",
		Format: "Standard",
		Colors: []models.Color{models.ColorRed},
	}
	d.MainDeck = append(d.MainDeck, entry("Bolt", 5, 1, "Instant", models.ColorRed))
	d.Sideboard = append(d.Sideboard,
		entry("Abrade", 4, 2, "Instant", models.ColorRed),
		entry("Urabrask", 4, 4, "Creature", models.ColorRed),
		entry("Jaya", 4, 5, "Planeswalker", models.ColorRed),
		entry("Chandra", 4, 4, "Planeswalker", models.ColorRed),
	)

	issues := Validate(d)
	assert.Len(t, issues, 3, "size, copy, and sideboard violations must all be reported")
}

func TestAddEntryRejectsOffColorCard(t *testing.T) {
	d := legalDeck()

	err := d.AddEntry(entry("Consider", 4, 1, "Instant", models.ColorBlue), models.BoardMain)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrIncompatibleColors)
}

func TestAddEntryAllowsColorlessCard(t *testing.T) {
	d := legalDeck()

	err := d.AddEntry(entry("Mishra's Bauble", 1, 0, "Artifact"), models.BoardMain)
	assert.NoError(t, err)
}
