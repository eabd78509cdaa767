package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	deckpkg "github.com/redjoy12/MTGA-deck-builder/pkg/deck"
	"github.com/redjoy12/MTGA-deck-builder/pkg/events"
	"github.com/redjoy12/MTGA-deck-builder/pkg/eventbus"
	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/otelhelper"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Config wires the orchestrator's collaborators. Capability and Cards are
// required; Decks enables comparable-deck context and persistence of
// approved builds; Publisher enables progress events; Tracer enables
// per-stage spans (the global tracer is used when nil).
type Config struct {
	Capability     ProposalCapability
	Cards          persistence.CardRepository
	Decks          persistence.DeckRepository
	Publisher      eventbus.EventPublisher
	Logger         *slog.Logger
	Tracer         trace.Tracer
	IterationLimit int
}

// Result is the outcome of an approved build run.
type Result struct {
	BuildID      string             `json:"build_id"`
	DeckID       string             `json:"deck_id,omitempty"`
	Deck         *models.Deck       `json:"deck"`
	Provenance   *models.Provenance `json:"provenance"`
	Conversation []Message          `json:"conversation"`
	Iterations   int                `json:"iterations"`
	Forced       bool               `json:"forced"`
	Omissions    []string           `json:"omissions,omitempty"`
}

// Orchestrator drives one deck build through the stage graph to a terminal
// outcome. It owns the build state exclusively for the duration of a run;
// concurrent runs are independent and share only the repositories.
type Orchestrator struct {
	strategist *Strategist
	selector   *Selector
	optimizer  *Optimizer
	reviewer   *Reviewer
	sink       persistence.DeckRepository
	publisher  eventbus.EventPublisher
	tracer     trace.Tracer
	logger     *slog.Logger
	limit      int
}

func NewOrchestrator(config Config) *Orchestrator {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	limit := config.IterationLimit
	if limit <= 0 {
		limit = DefaultIterationLimit
	}

	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer("deckbuilder.workflow")
	}

	return &Orchestrator{
		strategist: NewStrategist(config.Capability, config.Decks, logger),
		selector:   NewSelector(config.Capability, config.Cards, logger),
		optimizer:  NewOptimizer(config.Capability, config.Cards, logger),
		reviewer:   NewReviewer(config.Capability, logger),
		sink:       config.Decks,
		publisher:  config.Publisher,
		tracer:     tracer,
		logger:     logger.With("module", "workflow_orchestrator"),
		limit:      limit,
	}
}

// Run executes the build workflow and persists the approved deck. The
// returned result carries the stored deck identifier.
func (o *Orchestrator) Run(ctx context.Context, requirements models.Requirements) (*Result, error) {
	return o.execute(ctx, requirements, true)
}

// Build executes the workflow without persisting the approved deck.
func (o *Orchestrator) Build(ctx context.Context, requirements models.Requirements) (*Result, error) {
	return o.execute(ctx, requirements, false)
}

func (o *Orchestrator) execute(ctx context.Context, requirements models.Requirements, persist bool) (*Result, error) {
	buildID := uuid.New().String()
	state := newBuildState(requirements, o.limit)
	logger := o.logger.With("build_id", buildID)

	brief, err := json.Marshal(requirements)
	if err != nil {
		return nil, newStageFailure(StageStrategy, FailureConstruction, err)
	}

	state.appendMessage("brief", string(brief))

	logger.InfoContext(ctx, "Starting deck build",
		"format", requirements.Format, "archetype", requirements.Archetype)

	startEvent := events.BuildStarted{
		BaseEvent:    events.NewBaseEvent(events.BuildStartedEvent, buildID),
		Status:       events.StatusStarted,
		Requirements: requirements,
	}
	o.publish(ctx, buildID, startEvent)

	var (
		lastReview *ReviewOutput
		forced     bool
	)

	for state.Stage != StageApproved {
		stage := state.Stage

		stageCtx, span := otelhelper.StartSpan(ctx, o.tracer, "workflow.stage",
			attribute.String(otelhelper.BuildIDKey, buildID),
			attribute.String(otelhelper.StageKey, stage.String()),
			attribute.Int(otelhelper.IterationKey, state.Iteration),
		)

		next, stageErr := o.runStage(stageCtx, stage, state, &lastReview, &forced)
		if stageErr != nil {
			failure := ensureStageFailure(stage, stageErr)
			otelhelper.SetError(span, failure)
			span.End()

			logger.ErrorContext(ctx, "Deck build aborted",
				"stage", failure.Stage.String(), "category", string(failure.Category), "error", failure.Err)
			o.publishFailed(ctx, buildID, failure)

			state.Stage = StageAborted

			return nil, failure
		}

		span.End()
		o.publishStageCompleted(ctx, buildID, stage, state)
		state.Stage = next
	}

	provenance := buildProvenance(lastReview, forced, state)
	result := &Result{
		BuildID:      buildID,
		Deck:         state.Deck,
		Provenance:   provenance,
		Conversation: state.Conversation,
		Iterations:   state.Iteration,
		Forced:       forced,
		Omissions:    state.Omissions,
	}

	if persist {
		if o.sink == nil {
			failure := newStageFailure(StageApproved, FailurePersistence,
				errors.New("no deck repository configured"))
			o.publishFailed(ctx, buildID, failure)

			return nil, failure
		}

		deckID, err := o.sink.Save(ctx, state.Deck, provenance)
		if err != nil {
			// The build itself converged; only the save failed. The
			// distinct category lets callers report that difference.
			failure := newStageFailure(StageApproved, FailurePersistence, err)
			o.publishFailed(ctx, buildID, failure)

			return nil, failure
		}

		state.Deck.ID = deckID
		result.DeckID = deckID
	}

	logger.InfoContext(ctx, "Deck build approved",
		"deck_id", result.DeckID, "iterations", state.Iteration, "forced", forced)

	completedEvent := events.BuildCompleted{
		BaseEvent:  events.NewBaseEvent(events.BuildCompletedEvent, buildID),
		Status:     events.StatusCompleted,
		Message:    "Deck build approved",
		Deck:       state.Deck,
		DeckID:     result.DeckID,
		Iterations: state.Iteration,
		Forced:     forced,
	}
	o.publish(ctx, buildID, completedEvent)

	return result, nil
}

func (o *Orchestrator) runStage(ctx context.Context, stage Stage, state *BuildState, lastReview **ReviewOutput, forced *bool) (Stage, error) {
	switch stage {
	case StageStrategy:
		return StageCardSelection, o.strategist.Handle(ctx, state)
	case StageCardSelection:
		return StageOptimization, o.selector.Handle(ctx, state)
	case StageOptimization:
		return StageReview, o.optimizer.Handle(ctx, state)
	case StageReview:
		review, wasForced, err := o.reviewer.Handle(ctx, state)
		if err != nil {
			return StageAborted, err
		}

		*lastReview = review
		*forced = wasForced

		return routeAfterReview(review.Decision), nil
	default:
		return StageAborted, newStageFailure(stage, FailureConstruction,
			fmt.Errorf("no handler for stage %s", stage))
	}
}

func buildProvenance(review *ReviewOutput, forced bool, state *BuildState) *models.Provenance {
	caveats := deckpkg.Validate(state.Deck)
	caveats = append(caveats, deckpkg.ValidateManaBase(state.Deck)...)

	return &models.Provenance{
		Rating:              review.Review.Rating,
		Decision:            string(review.Decision),
		Strengths:           review.Review.Strengths,
		Weaknesses:          review.Review.Weaknesses,
		FavorableMatchups:   review.Review.Matchups.Favorable,
		UnfavorableMatchups: review.Review.Matchups.Unfavorable,
		Reasons:             review.Reasons,
		Forced:              forced,
		Caveats:             caveats,
		Iterations:          state.Iteration,
	}
}

func ensureStageFailure(stage Stage, err error) *StageFailure {
	if failure, ok := AsStageFailure(err); ok {
		return failure
	}

	return newStageFailure(stage, FailureCapability, err)
}

// publish failures are logged and swallowed: a disconnected or unhealthy
// consumer never aborts a build run.
func (o *Orchestrator) publish(ctx context.Context, buildID string, event eventbus.Event) {
	if o.publisher == nil {
		return
	}

	if err := o.publisher.Publish(ctx, buildID, event); err != nil {
		o.logger.WarnContext(ctx, "Failed to publish build event",
			"build_id", buildID, "event_type", string(event.GetType()), "error", err)
	}
}

func (o *Orchestrator) publishStageCompleted(ctx context.Context, buildID string, stage Stage, state *BuildState) {
	event := events.BuildStageCompleted{
		BaseEvent: events.NewBaseEvent(events.BuildStageCompletedEvent, buildID),
		Status:    events.StatusProcessing,
		Stage:     stage.String(),
		Iteration: state.Iteration,
		Message:   fmt.Sprintf("%s stage completed", stage),
		Deck:      state.Deck,
	}
	o.publish(ctx, buildID, event)
}

func (o *Orchestrator) publishFailed(ctx context.Context, buildID string, failure *StageFailure) {
	event := events.BuildFailed{
		BaseEvent: events.NewBaseEvent(events.BuildFailedEvent, buildID),
		Status:    events.StatusError,
		Stage:     failure.Stage.String(),
		Message:   failure.Error(),
	}
	o.publish(ctx, buildID, event)
}
