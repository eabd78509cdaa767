package workflow

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
)

const reviewerSystem = `You are a Magic: The Gathering final deck reviewer.
Perform a comprehensive review of the deck, checking:

1. Adherence to format rules and restrictions
2. Strategic coherence and game plan clarity
3. Mana base stability
4. Sideboard effectiveness
5. Budget constraints (if applicable)

Respond with a JSON object of this shape:
{
	"review": {
		"rating": int,
		"strengths": [string],
		"weaknesses": [string],
		"matchups": {"favorable": [string], "unfavorable": [string]}
	},
	"decision": "APPROVE" | "REVISE_STRATEGY" | "NEEDS_OPTIMIZATION",
	"reasons": [string]
}`

const forcedApprovalReason = "Maximum iteration limit reached"

// Reviewer rates the deck and decides whether it ships, goes back through
// card selection, or restarts from strategy. It owns the iteration counter:
// the counter is incremented before the forced-override rule is evaluated,
// so a run terminates in at most the configured number of review passes.
type Reviewer struct {
	capability ProposalCapability
	logger     *slog.Logger
}

func NewReviewer(capability ProposalCapability, logger *slog.Logger) *Reviewer {
	return &Reviewer{
		capability: capability,
		logger:     logger.With("module", "workflow_reviewer"),
	}
}

func (r *Reviewer) Handle(ctx context.Context, state *BuildState) (*ReviewOutput, bool, error) {
	deckJSON, err := json.Marshal(state.Deck)
	if err != nil {
		return nil, false, newStageFailure(StageReview, FailureConstruction, err)
	}

	requirementsJSON, err := json.Marshal(state.Requirements)
	if err != nil {
		return nil, false, newStageFailure(StageReview, FailureConstruction, err)
	}

	var prompt strings.Builder

	prompt.WriteString("Requirements:\n")
	prompt.Write(requirementsJSON)
	prompt.WriteString("\n\nFinal deck:\n")
	prompt.Write(deckJSON)
	prompt.WriteString("\n\nConversation so far:\n")
	prompt.WriteString(state.transcript())

	var output ReviewOutput

	if _, err := propose(ctx, r.capability, StageReview, reviewerSystem, prompt.String(), reviewSchema, &output); err != nil {
		return nil, false, err
	}

	state.Iteration++

	forced := false
	if state.Iteration >= state.Limit && output.Decision != DecisionApprove {
		output.Decision = DecisionApprove
		output.Reasons = append(output.Reasons, forcedApprovalReason)
		forced = true

		state.appendMessage("system", "Iteration limit reached after "+
			"this review pass; the deck is approved as-is despite the reviewer's verdict.")
		r.logger.InfoContext(ctx, "Forcing approval at iteration limit",
			"iteration", state.Iteration, "limit", state.Limit)
	}

	// The conversation carries the effective decision, including a forced
	// override.
	effective, err := json.Marshal(output)
	if err != nil {
		return nil, false, newStageFailure(StageReview, FailureConstruction, err)
	}

	state.appendMessage("reviewer", string(effective))

	return &output, forced, nil
}
