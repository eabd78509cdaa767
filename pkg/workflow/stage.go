// Package workflow implements the iterative deck construction engine: a
// bounded state machine that drives four cooperating stages (strategy, card
// selection, optimization, review) over a shared build state until the
// reviewer approves the deck or the iteration limit forces termination.
package workflow

// Stage enumerates the states of the build state machine.
type Stage int

const (
	StageStrategy Stage = iota
	StageCardSelection
	StageOptimization
	StageReview
	StageApproved
	StageAborted
)

var stageNames = map[Stage]string{
	StageStrategy:      "Strategy",
	StageCardSelection: "CardSelection",
	StageOptimization:  "Optimization",
	StageReview:        "Review",
	StageApproved:      "Approved",
	StageAborted:       "Aborted",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}

	return "Unknown"
}

// Decision is the reviewer's verdict on the current deck.
type Decision string

const (
	DecisionApprove           Decision = "APPROVE"
	DecisionReviseStrategy    Decision = "REVISE_STRATEGY"
	DecisionNeedsOptimization Decision = "NEEDS_OPTIMIZATION"
)

// routeAfterReview maps the reviewer's decision to the next stage. Any
// decision other than an explicit approve or strategy revision sends the
// deck back through card selection.
func routeAfterReview(decision Decision) Stage {
	switch decision {
	case DecisionApprove:
		return StageApproved
	case DecisionReviseStrategy:
		return StageStrategy
	default:
		return StageCardSelection
	}
}
