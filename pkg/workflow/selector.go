package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	deckpkg "github.com/redjoy12/MTGA-deck-builder/pkg/deck"
	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
)

const candidatePoolSize = 12

const selectorSystem = `You are an expert Magic: The Gathering card selector.
Based on the strategy and requirements, select specific cards for the deck.

Consider:
1. Card synergies and interactions
2. Mana curve optimization
3. Color requirements and mana base needs
4. Format legality and restrictions
5. Budget constraints if specified

Respond with a JSON object of this shape:
{
	"main_deck": {
		"creatures": [{"name": string, "quantity": int, "role": string}],
		"spells": [{"name": string, "quantity": int, "role": string}],
		"other": [{"name": string, "quantity": int, "role": string}]
	},
	"lands": [{"name": string, "quantity": int, "role": string}],
	"sideboard": [{"name": string, "quantity": int, "role": string}]
}
Roles must be one of: win_condition, removal, counter, ramp, card_advantage, utility, protection, mana_source.`

// Selector turns the strategy into a concrete deck artifact. Every card the
// model names is resolved against the catalog for full attributes; names the
// catalog cannot resolve are dropped and recorded as omissions rather than
// failing the stage.
type Selector struct {
	capability ProposalCapability
	cards      persistence.CardRepository
	logger     *slog.Logger
}

func NewSelector(capability ProposalCapability, cards persistence.CardRepository, logger *slog.Logger) *Selector {
	return &Selector{
		capability: capability,
		cards:      cards,
		logger:     logger.With("module", "workflow_selector"),
	}
}

func (s *Selector) Handle(ctx context.Context, state *BuildState) error {
	strategy, err := lastStrategy(state)
	if err != nil {
		return newStageFailure(StageCardSelection, FailureConstruction, err)
	}

	pools, err := s.searchCandidates(ctx, state.Requirements, strategy)
	if err != nil {
		return newStageFailure(StageCardSelection, FailureRepository, err)
	}

	var prompt strings.Builder

	prompt.WriteString("Conversation so far:\n")
	prompt.WriteString(state.transcript())
	prompt.WriteString("\nAvailable cards by category:\n")
	prompt.WriteString(pools)

	var output SelectionOutput

	raw, err := propose(ctx, s.capability, StageCardSelection, selectorSystem, prompt.String(), selectionSchema, &output)
	if err != nil {
		return err
	}

	deck, err := s.buildDeck(ctx, state, strategy, &output)
	if err != nil {
		return err
	}

	stats := deckpkg.ComputeStatistics(deck)
	deck.Statistics = &stats
	state.Deck = deck
	state.appendMessage("selector", string(raw))

	return nil
}

// lastStrategy decodes the most recent strategist output from the
// conversation.
func lastStrategy(state *BuildState) (*StrategyOutput, error) {
	for i := len(state.Conversation) - 1; i >= 0; i-- {
		if state.Conversation[i].Role != "strategist" {
			continue
		}

		var strategy StrategyOutput
		if err := json.Unmarshal([]byte(state.Conversation[i].Content), &strategy); err != nil {
			return nil, fmt.Errorf("failed to decode strategy output: %w", err)
		}

		return &strategy, nil
	}

	return nil, errors.New("no strategy output in conversation")
}

// searchCandidates queries the catalog once per strategy category and
// renders compact candidate pools for the prompt.
func (s *Selector) searchCandidates(ctx context.Context, requirements models.Requirements, strategy *StrategyOutput) (string, error) {
	categories := make([]string, 0, len(strategy.CardRatios))
	for category := range strategy.CardRatios {
		categories = append(categories, category)
	}

	sort.Strings(categories)

	// A single synergy theme is usable as an oracle-text filter; the full
	// game plan sentence is not.
	synergy := ""
	if len(strategy.KeySynergies) > 0 {
		synergy = strategy.KeySynergies[0]
	}

	var sb strings.Builder

	for _, category := range categories {
		cards, err := s.cards.Search(ctx, persistence.CardFilters{
			Colors:   requirements.Colors,
			Format:   requirements.Format,
			TypeLine: typeHint(category),
			Text:     synergy,
			Limit:    candidatePoolSize,
		})
		if err != nil {
			return "", fmt.Errorf("card search for category %s: %w", category, err)
		}

		fmt.Fprintf(&sb, "%s:\n", category)

		for _, card := range cards {
			fmt.Fprintf(&sb, "- %s (%.0f mana, %s)\n", card.Name, card.ManaValue, card.TypeLine)
		}
	}

	return sb.String(), nil
}

func typeHint(category string) string {
	if category == "creatures" {
		return "Creature"
	}

	return ""
}

func (s *Selector) buildDeck(ctx context.Context, state *BuildState, strategy *StrategyOutput, output *SelectionOutput) (*models.Deck, error) {
	deck := &models.Deck{
		Name:         deckName(state.Requirements),
		Format:       state.Requirements.Format,
		Description:  strategy.MainGameplan,
		Colors:       state.Requirements.Colors,
		StrategyTags: []string{string(state.Requirements.Archetype)},
	}

	mainboard := make([]SelectionEntry, 0,
		len(output.MainDeck.Creatures)+len(output.MainDeck.Spells)+len(output.MainDeck.Other))
	mainboard = append(mainboard, output.MainDeck.Creatures...)
	mainboard = append(mainboard, output.MainDeck.Spells...)
	mainboard = append(mainboard, output.MainDeck.Other...)

	if err := s.addEntries(ctx, state, deck, mainboard, models.BoardMain); err != nil {
		return nil, err
	}

	if err := s.addEntries(ctx, state, deck, output.Lands, models.BoardLands); err != nil {
		return nil, err
	}

	if err := s.addEntries(ctx, state, deck, output.Sideboard, models.BoardSideboard); err != nil {
		return nil, err
	}

	return deck, nil
}

func (s *Selector) addEntries(ctx context.Context, state *BuildState, deck *models.Deck, entries []SelectionEntry, board models.Board) error {
	for _, entry := range entries {
		card, err := s.cards.ResolveByName(ctx, entry.Name)
		if persistence.IsCardNotFound(err) {
			s.logger.WarnContext(ctx, "Dropping unresolvable card", "name", entry.Name)
			state.recordOmission(entry.Name, "not found in card catalog")

			continue
		}

		if err != nil {
			return newStageFailure(StageCardSelection, FailureRepository, err)
		}

		role := models.CardRole(entry.Role)
		if board == models.BoardLands {
			role = models.RoleManaSource
		}

		if err := deck.AddEntry(models.EntryFromCard(card, entry.Quantity, role), board); err != nil {
			return newStageFailure(StageCardSelection, FailureConstruction,
				fmt.Errorf("adding %s: %w", card.Name, err))
		}
	}

	return nil
}

func deckName(requirements models.Requirements) string {
	colors := make([]string, 0, len(requirements.Colors))
	for _, color := range requirements.Colors {
		colors = append(colors, string(color))
	}

	return fmt.Sprintf("%s %s", requirements.Archetype, strings.Join(colors, "-"))
}
