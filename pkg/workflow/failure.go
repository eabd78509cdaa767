package workflow

import (
	"errors"
	"fmt"
)

// FailureCategory classifies why a stage aborted the run.
type FailureCategory string

const (
	// FailureSchema marks generative output that failed schema validation
	// after the retry.
	FailureSchema FailureCategory = "schema_violation"

	// FailureCapability marks a generative capability timeout or transport
	// error.
	FailureCapability FailureCategory = "capability_unavailable"

	// FailureConstruction marks an internally inconsistent deck artifact,
	// such as a card outside the declared colors.
	FailureConstruction FailureCategory = "structural_violation"

	// FailureRepository marks a card or deck repository error other than a
	// recoverable single-card miss.
	FailureRepository FailureCategory = "repository_error"

	// FailurePersistence marks a save error at the approved transition. The
	// build itself succeeded logically.
	FailurePersistence FailureCategory = "persistence_error"
)

// StageFailure aborts a build run, carrying the originating stage and
// failure category. No partial deck is persisted once a StageFailure is
// raised.
type StageFailure struct {
	Stage    Stage
	Category FailureCategory
	Err      error
}

func newStageFailure(stage Stage, category FailureCategory, err error) *StageFailure {
	return &StageFailure{Stage: stage, Category: category, Err: err}
}

func (f *StageFailure) Error() string {
	return fmt.Sprintf("stage %s failed (%s): %v", f.Stage, f.Category, f.Err)
}

func (f *StageFailure) Unwrap() error {
	return f.Err
}

// AsStageFailure extracts a StageFailure from an error chain.
func AsStageFailure(err error) (*StageFailure, bool) {
	var failure *StageFailure
	if errors.As(err, &failure) {
		return failure, true
	}

	return nil, false
}
