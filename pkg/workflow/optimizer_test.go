package workflow

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	deckpkg "github.com/redjoy12/MTGA-deck-builder/pkg/deck"
	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optimizationWithSuggestions(t *testing.T, suggestions OptimizationSuggestions) string {
	t.Helper()

	output := OptimizationOutput{Suggestions: suggestions}
	output.Analysis.CurveIssues = []string{}
	output.Analysis.ColorIssues = []string{}
	output.Analysis.StrategyIssues = []string{}
	output.Analysis.SideboardIssues = []string{}

	encoded, err := json.Marshal(output)
	require.NoError(t, err)

	return string(encoded)
}

func optimizerTestState(t *testing.T) *BuildState {
	t.Helper()

	state := newBuildState(testRequirements(), DefaultIterationLimit)
	deck := &models.Deck{
		Name:   "aggro R",
		Format: "Standard",
		Colors: []models.Color{models.ColorRed},
	}

	entries := []models.CardEntry{
		{Name: "Raging Goblin", ManaValue: 1, ColorIdentity: []models.Color{models.ColorRed}, TypeLine: "Creature — Goblin Berserker", Quantity: 4, Role: models.RoleWinCondition},
		{Name: "Shock", ManaValue: 1, ColorIdentity: []models.Color{models.ColorRed}, TypeLine: "Instant", Quantity: 4, Role: models.RoleRemoval},
	}
	for _, entry := range entries {
		require.NoError(t, deck.AddEntry(entry, models.BoardMain))
	}

	mountain := models.CardEntry{Name: "Mountain", ColorIdentity: []models.Color{models.ColorRed}, TypeLine: "Basic Land — Mountain", Quantity: 24, Role: models.RoleManaSource}
	require.NoError(t, deck.AddEntry(mountain, models.BoardLands))

	stats := deckpkg.ComputeStatistics(deck)
	deck.Statistics = &stats
	state.Deck = deck

	return state
}

func TestOptimizerAppliesRemovalsBeforeQuantityDeltas(t *testing.T) {
	state := optimizerTestState(t)
	store := seededStore(t)

	// A removal and a positive delta both name Shock; the removal wins and
	// the delta becomes a no-op on the absent entry.
	response := optimizationWithSuggestions(t, OptimizationSuggestions{
		CardsToRemove:       []CardSuggestion{{Name: "Shock", Reason: "too little reach"}},
		CardsToAdd:          []CardSuggestion{},
		QuantityAdjustments: []QuantityAdjustment{{Name: "Shock", Change: 2}},
	})

	capability := &scriptedCapability{responses: []json.RawMessage{json.RawMessage(response)}}
	optimizer := NewOptimizer(capability, store.Cards(), slog.Default())

	require.NoError(t, optimizer.Handle(t.Context(), state))

	for _, entry := range state.Deck.MainDeck {
		assert.NotEqual(t, "Shock", entry.Name)
	}
}

func TestOptimizerResolvesAdditionsAgainstCatalog(t *testing.T) {
	state := optimizerTestState(t)
	store := seededStore(t)

	response := optimizationWithSuggestions(t, OptimizationSuggestions{
		CardsToRemove: []CardSuggestion{},
		CardsToAdd: []CardSuggestion{
			{Name: "Shock", Reason: "more removal"},
			{Name: "Card That Does Not Exist", Reason: "wishful thinking"},
		},
		QuantityAdjustments: []QuantityAdjustment{},
	})

	capability := &scriptedCapability{responses: []json.RawMessage{json.RawMessage(response)}}
	optimizer := NewOptimizer(capability, store.Cards(), slog.Default())

	require.NoError(t, optimizer.Handle(t.Context(), state))

	var shockQuantity int
	for _, entry := range state.Deck.MainDeck {
		if entry.Name == "Shock" {
			shockQuantity += entry.Quantity
		}

		assert.NotEqual(t, "Card That Does Not Exist", entry.Name)
	}

	assert.Equal(t, 5, shockQuantity)
	require.Len(t, state.Omissions, 1)
	assert.Contains(t, state.Omissions[0], "Card That Does Not Exist")
}

func TestOptimizerRecomputesStatisticsAfterMutation(t *testing.T) {
	state := optimizerTestState(t)
	store := seededStore(t)
	before := fmt.Sprintf("%+v", state.Deck.Statistics)

	response := optimizationWithSuggestions(t, OptimizationSuggestions{
		CardsToRemove:       []CardSuggestion{{Name: "Raging Goblin"}},
		CardsToAdd:          []CardSuggestion{},
		QuantityAdjustments: []QuantityAdjustment{},
	})

	capability := &scriptedCapability{responses: []json.RawMessage{json.RawMessage(response)}}
	optimizer := NewOptimizer(capability, store.Cards(), slog.Default())

	require.NoError(t, optimizer.Handle(t.Context(), state))

	after := fmt.Sprintf("%+v", state.Deck.Statistics)
	assert.NotEqual(t, before, after)
}

func TestOptimizerAppliesQuantityDeltas(t *testing.T) {
	state := optimizerTestState(t)
	store := seededStore(t)

	response := optimizationWithSuggestions(t, OptimizationSuggestions{
		CardsToRemove:       []CardSuggestion{},
		CardsToAdd:          []CardSuggestion{},
		QuantityAdjustments: []QuantityAdjustment{{Name: "Mountain", Change: -4, Reason: "flooding"}},
	})

	capability := &scriptedCapability{responses: []json.RawMessage{json.RawMessage(response)}}
	optimizer := NewOptimizer(capability, store.Cards(), slog.Default())

	require.NoError(t, optimizer.Handle(t.Context(), state))

	require.Len(t, state.Deck.Lands, 1)
	assert.Equal(t, 20, state.Deck.Lands[0].Quantity)
}
