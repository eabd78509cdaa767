package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/workflow"
)

// BuildRunner is the workflow entry point consumed by the builder service.
type BuildRunner interface {
	Run(ctx context.Context, requirements models.Requirements) (*workflow.Result, error)
	Build(ctx context.Context, requirements models.Requirements) (*workflow.Result, error)
}

// Builder validates deck-building briefs and hands them to the workflow.
type Builder struct {
	runner BuildRunner
}

// NewBuilder creates a new builder service.
func NewBuilder(runner BuildRunner) *Builder {
	return &Builder{runner: runner}
}

// Generate runs the full build workflow and persists the approved deck.
func (b *Builder) Generate(ctx context.Context, requirements models.Requirements) (*workflow.Result, error) {
	if err := b.validateRequirements(&requirements); err != nil {
		return nil, err
	}

	return b.runner.Run(ctx, requirements)
}

// Build runs the build workflow without persisting the result.
func (b *Builder) Build(ctx context.Context, requirements models.Requirements) (*workflow.Result, error) {
	if err := b.validateRequirements(&requirements); err != nil {
		return nil, err
	}

	return b.runner.Build(ctx, requirements)
}

var supportedArchetypes = []models.Archetype{
	models.ArchetypeAggro,
	models.ArchetypeControl,
	models.ArchetypeMidrange,
	models.ArchetypeCombo,
	models.ArchetypeTempo,
	models.ArchetypeRamp,
}

// validateRequirements normalizes and validates the brief before a run
// starts. The brief is immutable once the workflow takes it.
func (b *Builder) validateRequirements(req *models.Requirements) error {
	if len(req.Colors) == 0 {
		return NewValidationError(
			"validateRequirements",
			"COLORS_REQUIRED",
			"at least one color is required",
			ErrInvalidRequest,
		)
	}

	for i, color := range req.Colors {
		normalized := models.Color(strings.ToUpper(strings.TrimSpace(string(color))))
		if !models.IsValidColor(string(normalized)) {
			return NewValidationError(
				"validateRequirements",
				"INVALID_COLOR",
				fmt.Sprintf("invalid color symbol '%s', allowed: W, U, B, R, G", color),
				ErrInvalidColor,
			)
		}

		req.Colors[i] = normalized
	}

	req.Format = strings.TrimSpace(req.Format)
	if req.Format == "" {
		return NewValidationError(
			"validateRequirements",
			"FORMAT_REQUIRED",
			"format is required",
			ErrInvalidRequest,
		)
	}

	req.Archetype = models.Archetype(strings.ToLower(strings.TrimSpace(string(req.Archetype))))
	if !slices.Contains(supportedArchetypes, req.Archetype) {
		return NewValidationError(
			"validateRequirements",
			"INVALID_ARCHETYPE",
			fmt.Sprintf("invalid archetype '%s', allowed: aggro, control, midrange, combo, tempo, ramp", req.Archetype),
			ErrInvalidRequest,
		)
	}

	if err := validateBounds("creatures", req.MinCreatures, req.MaxCreatures); err != nil {
		return err
	}

	if err := validateBounds("lands", req.MinLands, req.MaxLands); err != nil {
		return err
	}

	if req.BudgetLimit != nil && *req.BudgetLimit < 0 {
		return NewValidationError(
			"validateRequirements",
			"INVALID_BUDGET",
			"budget limit must be non-negative",
			ErrInvalidRequest,
		)
	}

	return nil
}

func validateBounds(what string, minBound, maxBound *int) error {
	if minBound != nil && *minBound < 0 {
		return NewValidationError(
			"validateRequirements",
			"INVALID_BOUNDS",
			fmt.Sprintf("minimum %s must be non-negative", what),
			ErrInvalidRequest,
		)
	}

	if maxBound != nil && *maxBound < 0 {
		return NewValidationError(
			"validateRequirements",
			"INVALID_BOUNDS",
			fmt.Sprintf("maximum %s must be non-negative", what),
			ErrInvalidRequest,
		)
	}

	if minBound != nil && maxBound != nil && *minBound > *maxBound {
		return NewValidationError(
			"validateRequirements",
			"INVALID_BOUNDS",
			fmt.Sprintf("minimum %s exceeds maximum %s", what, what),
			ErrInvalidRequest,
		)
	}

	return nil
}
