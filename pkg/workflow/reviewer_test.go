package workflow

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewerIncrementsIteration(t *testing.T) {
	state := optimizerTestState(t)
	capability := &scriptedCapability{
		responses: []json.RawMessage{json.RawMessage(stubReviewJSON(DecisionNeedsOptimization))},
	}
	reviewer := NewReviewer(capability, slog.Default())

	output, forced, err := reviewer.Handle(t.Context(), state)
	require.NoError(t, err)

	assert.Equal(t, 1, state.Iteration)
	assert.False(t, forced)
	assert.Equal(t, DecisionNeedsOptimization, output.Decision)
}

func TestReviewerForcesApprovalAtLimit(t *testing.T) {
	state := optimizerTestState(t)
	state.Iteration = state.Limit - 1

	capability := &scriptedCapability{
		responses: []json.RawMessage{json.RawMessage(stubReviewJSON(DecisionReviseStrategy))},
	}
	reviewer := NewReviewer(capability, slog.Default())

	output, forced, err := reviewer.Handle(t.Context(), state)
	require.NoError(t, err)

	assert.True(t, forced)
	assert.Equal(t, DecisionApprove, output.Decision)
	assert.Contains(t, output.Reasons, forcedApprovalReason)
	assert.Equal(t, state.Limit, state.Iteration)

	// The conversation carries both the synthetic note and the effective
	// decision.
	transcript := state.transcript()
	assert.Contains(t, transcript, "Iteration limit reached")
	assert.Contains(t, transcript, string(DecisionApprove))
}

func TestReviewerDoesNotForceNaturalApproval(t *testing.T) {
	state := optimizerTestState(t)
	state.Iteration = state.Limit - 1

	capability := &scriptedCapability{
		responses: []json.RawMessage{json.RawMessage(stubReviewJSON(DecisionApprove))},
	}
	reviewer := NewReviewer(capability, slog.Default())

	output, forced, err := reviewer.Handle(t.Context(), state)
	require.NoError(t, err)

	assert.False(t, forced)
	assert.Equal(t, DecisionApprove, output.Decision)
	assert.NotContains(t, output.Reasons, forcedApprovalReason)
}
