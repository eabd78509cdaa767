package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	deckpkg "github.com/redjoy12/MTGA-deck-builder/pkg/deck"
	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
)

const optimizerSystem = `You are a Magic: The Gathering deck optimization expert.
Review the current deck list and suggest improvements for:

1. Mana curve optimization
2. Color consistency
3. Strategic coherence
4. Sideboard effectiveness
5. Common matchup preparation

Respond with a JSON object of this shape:
{
	"analysis": {
		"curve_issues": [string],
		"color_issues": [string],
		"strategy_issues": [string],
		"sideboard_issues": [string]
	},
	"suggestions": {
		"cards_to_remove": [{"name": string, "reason": string}],
		"cards_to_add": [{"name": string, "reason": string}],
		"quantity_adjustments": [{"name": string, "change": int, "reason": string}]
	}
}`

// Optimizer refines the deck using the validation and mana-base issues as
// its steering input, applying the model's removals, additions and quantity
// changes in place.
type Optimizer struct {
	capability ProposalCapability
	cards      persistence.CardRepository
	logger     *slog.Logger
}

func NewOptimizer(capability ProposalCapability, cards persistence.CardRepository, logger *slog.Logger) *Optimizer {
	return &Optimizer{
		capability: capability,
		cards:      cards,
		logger:     logger.With("module", "workflow_optimizer"),
	}
}

func (o *Optimizer) Handle(ctx context.Context, state *BuildState) error {
	issues := deckpkg.Validate(state.Deck)
	manaIssues := deckpkg.ValidateManaBase(state.Deck)

	deckJSON, err := json.Marshal(state.Deck)
	if err != nil {
		return newStageFailure(StageOptimization, FailureConstruction, err)
	}

	var prompt strings.Builder

	prompt.WriteString("Current deck:\n")
	prompt.Write(deckJSON)
	prompt.WriteString("\n\nValidation issues:\n")
	prompt.WriteString(issueList(issues))
	prompt.WriteString("\nMana base issues:\n")
	prompt.WriteString(issueList(manaIssues))
	prompt.WriteString("\nConversation so far:\n")
	prompt.WriteString(state.transcript())

	var output OptimizationOutput

	raw, err := propose(ctx, o.capability, StageOptimization, optimizerSystem, prompt.String(), optimizationSchema, &output)
	if err != nil {
		return err
	}

	if err := o.apply(ctx, state, &output.Suggestions); err != nil {
		return err
	}

	stats := deckpkg.ComputeStatistics(state.Deck)
	state.Deck.Statistics = &stats
	state.appendMessage("optimizer", string(raw))

	return nil
}

// apply mutates the deck: removals first, then additions, then quantity
// deltas. Applying removals first means a removal and a delta naming the
// same card resolve in the removal's favor.
func (o *Optimizer) apply(ctx context.Context, state *BuildState, suggestions *OptimizationSuggestions) error {
	for _, removal := range suggestions.CardsToRemove {
		if !state.Deck.RemoveByName(removal.Name) {
			o.logger.DebugContext(ctx, "Removal target not in deck", "name", removal.Name)
		}
	}

	for _, addition := range suggestions.CardsToAdd {
		card, err := o.cards.ResolveByName(ctx, addition.Name)
		if persistence.IsCardNotFound(err) {
			o.logger.WarnContext(ctx, "Dropping unresolvable addition", "name", addition.Name)
			state.recordOmission(addition.Name, "suggested addition not found in card catalog")

			continue
		}

		if err != nil {
			return newStageFailure(StageOptimization, FailureRepository, err)
		}

		board := models.BoardMain
		role := models.RoleUtility

		if card.IsLand() {
			board = models.BoardLands
			role = models.RoleManaSource
		}

		if err := state.Deck.AddEntry(models.EntryFromCard(card, 1, role), board); err != nil {
			return newStageFailure(StageOptimization, FailureConstruction,
				fmt.Errorf("adding %s: %w", card.Name, err))
		}
	}

	for _, adjustment := range suggestions.QuantityAdjustments {
		if !state.Deck.AdjustQuantity(adjustment.Name, adjustment.Change) {
			o.logger.DebugContext(ctx, "Adjustment target not in deck", "name", adjustment.Name)
		}
	}

	return nil
}

func issueList(issues []string) string {
	if len(issues) == 0 {
		return "- none\n"
	}

	var sb strings.Builder
	for _, issue := range issues {
		sb.WriteString("- ")
		sb.WriteString(issue)
		sb.WriteString("\n")
	}

	return sb.String()
}
