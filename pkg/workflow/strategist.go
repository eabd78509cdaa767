package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
)

const metaContext = "Current Standard meta focuses on midrange value engines and fast aggro strategies"

const strategistSystem = `You are a Magic: The Gathering deck building strategist expert.
Your role is to analyze deck requirements and develop a concrete strategy.

Focus on:
1. Identifying key synergies and themes
2. Determining optimal card ratios
3. Planning the mana curve
4. Identifying critical card categories (removal, card advantage, etc.)
5. Considering the current meta and potential counter-strategies

Respond with a JSON object of this shape:
{
	"main_gameplan": string,
	"key_synergies": [string],
	"card_ratios": {"<category>": {"min": int, "max": int}},
	"mana_curve": {"<mana value>": {"min": int, "max": int}},
	"key_cards": [string],
	"sideboard_focus": [string]
}`

// Strategist develops the deck's game plan from the requirements brief,
// comparable stored decks and a static meta description.
type Strategist struct {
	capability ProposalCapability
	decks      persistence.DeckRepository
	logger     *slog.Logger
}

func NewStrategist(capability ProposalCapability, decks persistence.DeckRepository, logger *slog.Logger) *Strategist {
	return &Strategist{
		capability: capability,
		decks:      decks,
		logger:     logger.With("module", "workflow_strategist"),
	}
}

func (s *Strategist) Handle(ctx context.Context, state *BuildState) error {
	similar := s.similarDecks(ctx, state.Requirements)

	requirementsJSON, err := json.Marshal(state.Requirements)
	if err != nil {
		return newStageFailure(StageStrategy, FailureConstruction, err)
	}

	var prompt strings.Builder

	prompt.WriteString("Requirements:\n")
	prompt.Write(requirementsJSON)
	prompt.WriteString("\n\nCurrent meta: ")
	prompt.WriteString(metaContext)

	if len(similar) > 0 {
		prompt.WriteString("\n\nComparable decks:\n")
		prompt.WriteString(describeDecks(similar))
	}

	if transcript := state.transcript(); transcript != "" {
		prompt.WriteString("\n\nConversation so far:\n")
		prompt.WriteString(transcript)
	}

	var output StrategyOutput

	raw, err := propose(ctx, s.capability, StageStrategy, strategistSystem, prompt.String(), strategySchema, &output)
	if err != nil {
		return err
	}

	state.appendMessage("strategist", string(raw))

	return nil
}

// similarDecks is advisory context only; lookup errors degrade to an empty
// list instead of failing the stage.
func (s *Strategist) similarDecks(ctx context.Context, requirements models.Requirements) []*models.Deck {
	if s.decks == nil {
		return nil
	}

	similar, err := s.decks.Similar(ctx, requirements.Colors, string(requirements.Archetype), requirements.Format)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to fetch comparable decks", "error", err)

		return nil
	}

	return similar
}

func describeDecks(decks []*models.Deck) string {
	var sb strings.Builder

	for _, deck := range decks {
		colors := make([]string, 0, len(deck.Colors))
		for _, color := range deck.Colors {
			colors = append(colors, string(color))
		}

		fmt.Fprintf(&sb, "- %s (%s, %s, tags: %s)\n",
			deck.Name, deck.Format, strings.Join(colors, ""),
			strings.Join(deck.StrategyTags, ", "))
	}

	return sb.String()
}
