package services

import (
	"context"
	"testing"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	runs   int
	builds int
	seen   models.Requirements
}

func (s *stubRunner) Run(_ context.Context, requirements models.Requirements) (*workflow.Result, error) {
	s.runs++
	s.seen = requirements

	return &workflow.Result{BuildID: "run"}, nil
}

func (s *stubRunner) Build(_ context.Context, requirements models.Requirements) (*workflow.Result, error) {
	s.builds++
	s.seen = requirements

	return &workflow.Result{BuildID: "build"}, nil
}

func validRequirements() models.Requirements {
	return models.Requirements{
		Colors:    []models.Color{models.ColorRed},
		Format:    "standard",
		Archetype: models.ArchetypeAggro,
	}
}

func TestGenerateDelegatesToRun(t *testing.T) {
	runner := &stubRunner{}
	service := NewBuilder(runner)

	result, err := service.Generate(t.Context(), validRequirements())
	require.NoError(t, err)
	assert.Equal(t, "run", result.BuildID)
	assert.Equal(t, 1, runner.runs)
	assert.Zero(t, runner.builds)
}

func TestBuildDelegatesToBuild(t *testing.T) {
	runner := &stubRunner{}
	service := NewBuilder(runner)

	result, err := service.Build(t.Context(), validRequirements())
	require.NoError(t, err)
	assert.Equal(t, "build", result.BuildID)
	assert.Equal(t, 1, runner.builds)
	assert.Zero(t, runner.runs)
}

func TestGenerateNormalizesBrief(t *testing.T) {
	runner := &stubRunner{}
	service := NewBuilder(runner)

	req := models.Requirements{
		Colors:    []models.Color{"r", " u "},
		Format:    " standard ",
		Archetype: "AGGRO",
	}

	_, err := service.Generate(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, []models.Color{models.ColorRed, models.ColorBlue}, runner.seen.Colors)
	assert.Equal(t, "standard", runner.seen.Format)
	assert.Equal(t, models.ArchetypeAggro, runner.seen.Archetype)
}

func TestGenerateRejectsInvalidBrief(t *testing.T) {
	runner := &stubRunner{}
	service := NewBuilder(runner)

	cases := []struct {
		name string
		edit func(*models.Requirements)
	}{
		{"no colors", func(r *models.Requirements) { r.Colors = nil }},
		{"bad color", func(r *models.Requirements) { r.Colors = []models.Color{"X"} }},
		{"no format", func(r *models.Requirements) { r.Format = "  " }},
		{"bad archetype", func(r *models.Requirements) { r.Archetype = "landfall" }},
		{"negative budget", func(r *models.Requirements) {
			budget := -1.0
			r.BudgetLimit = &budget
		}},
		{"inverted creature bounds", func(r *models.Requirements) {
			minCreatures, maxCreatures := 20, 10
			r.MinCreatures = &minCreatures
			r.MaxCreatures = &maxCreatures
		}},
		{"inverted land bounds", func(r *models.Requirements) {
			minLands, maxLands := 26, 22
			r.MinLands = &minLands
			r.MaxLands = &maxLands
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequirements()
			tc.edit(&req)

			_, err := service.Generate(t.Context(), req)
			require.Error(t, err)
			assert.True(t, IsValidationError(err), "expected validation error, got %v", err)
		})
	}

	assert.Zero(t, runner.runs)
}
