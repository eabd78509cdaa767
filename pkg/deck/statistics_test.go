package deck

import (
	"testing"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStatisticsAverageManaValue(t *testing.T) {
	d := &models.Deck{Colors: []models.Color{models.ColorRed}}
	d.MainDeck = []models.CardEntry{
		entry("Play with Fire", 4, 1, "Instant", models.ColorRed),
		entry("Lightning Strike", 4, 2, "Instant", models.ColorRed),
	}
	d.Lands = []models.CardEntry{land("Mountain", 20, models.ColorRed)}

	stats := ComputeStatistics(d)
	assert.InDelta(t, 1.5, stats.AverageManaValue, 1e-9)
}

func TestComputeStatisticsAllLandDeck(t *testing.T) {
	d := &models.Deck{Colors: []models.Color{models.ColorGreen}}
	d.Lands = []models.CardEntry{land("Forest", 60, models.ColorGreen)}

	stats := ComputeStatistics(d)
	assert.Zero(t, stats.AverageManaValue)
	assert.Empty(t, stats.ManaCurve)
	assert.Equal(t, 60, stats.ManaSourcesByColor[models.ColorGreen])
}

func TestComputeStatisticsEmptyDeck(t *testing.T) {
	d := &models.Deck{}

	stats := ComputeStatistics(d)
	assert.Zero(t, stats.AverageManaValue)
	assert.Empty(t, stats.ColorDistribution)
}

func TestComputeStatisticsCurveSumsToNonLandQuantity(t *testing.T) {
	d := legalDeck()

	stats := ComputeStatistics(d)

	curveTotal := 0
	for _, count := range stats.ManaCurve {
		curveTotal += count
	}

	nonLand := 0
	for _, e := range d.MainDeck {
		nonLand += e.Quantity
	}

	assert.Equal(t, nonLand, curveTotal)
}

func TestComputeStatisticsMultiColorDoubleCounts(t *testing.T) {
	d := &models.Deck{Colors: []models.Color{models.ColorBlue, models.ColorBlack}}
	d.MainDeck = []models.CardEntry{
		entry("Kaito Shizuki", 4, 3, "Planeswalker", models.ColorBlue, models.ColorBlack),
	}

	stats := ComputeStatistics(d)

	// A single two-color entry contributes its full share to both colors.
	assert.InDelta(t, 1.0, stats.ColorDistribution[models.ColorBlue], 1e-9)
	assert.InDelta(t, 1.0, stats.ColorDistribution[models.ColorBlack], 1e-9)
}

func TestComputeStatisticsIdempotent(t *testing.T) {
	d := legalDeck()

	first := ComputeStatistics(d)
	second := ComputeStatistics(d)

	assert.Equal(t, first, second)
}

func TestComputeStatisticsRoleAndTypeDistribution(t *testing.T) {
	d := &models.Deck{Colors: []models.Color{models.ColorRed}}
	d.MainDeck = []models.CardEntry{
		entry("Phoenix Chick", 4, 1, "Creature", models.ColorRed),
		entry("Obliterating Bolt", 3, 2, "Sorcery", models.ColorRed),
	}
	d.MainDeck[0].Role = models.RoleWinCondition
	d.MainDeck[1].Role = models.RoleRemoval

	stats := ComputeStatistics(d)
	assert.Equal(t, 4, stats.TypeDistribution["Creature"])
	assert.Equal(t, 3, stats.TypeDistribution["Sorcery"])
	assert.Equal(t, 4, stats.RoleDistribution[models.RoleWinCondition])
	assert.Equal(t, 3, stats.RoleDistribution[models.RoleRemoval])
}

func TestValidateManaBaseHealthyDeck(t *testing.T) {
	issues := ValidateManaBase(legalDeck())
	assert.Empty(t, issues)
}

func TestValidateManaBaseTooFewLands(t *testing.T) {
	d := legalDeck()
	d.Lands[0].Quantity = 16

	issues := ValidateManaBase(d)
	require.NotEmpty(t, issues)
	assert.Contains(t, issues, "Too few lands (16, want at least 20)")
}

func TestValidateManaBaseTooManyLands(t *testing.T) {
	d := legalDeck()
	d.Lands[0].Quantity = 30

	issues := ValidateManaBase(d)
	require.NotEmpty(t, issues)
	assert.Contains(t, issues, "Too many lands (30, want at most 28)")
}

func TestValidateManaBaseInsufficientColorSources(t *testing.T) {
	d := legalDeck()

	// Swap the red sources for colorless ones; red spells remain.
	d.Lands = []models.CardEntry{land("Wastes", 24)}

	issues := ValidateManaBase(d)
	assert.Contains(t, issues, "Insufficient R mana sources")
}
