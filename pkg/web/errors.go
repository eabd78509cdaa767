package web

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
	"github.com/redjoy12/MTGA-deck-builder/pkg/services"
	"github.com/redjoy12/MTGA-deck-builder/pkg/workflow"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleServiceError provides typed error handling for service layer errors.
func handleServiceError(c fiber.Ctx, err error) error {
	switch {
	case services.IsValidationError(err):
		problem := problems.NewStatusProblem(400).
			WithInstance(c.Path()).
			WithType("validation_error").
			WithDetail(err.Error())

		return c.Status(fiber.StatusBadRequest).JSON(problem)

	case services.IsNotFoundError(err):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("not_found").
			WithDetail(err.Error())

		return c.Status(fiber.StatusNotFound).JSON(problem)

	case services.IsConflictError(err):
		problem := problems.NewStatusProblem(409).
			WithInstance(c.Path()).
			WithType("conflict").
			WithDetail(err.Error())

		return c.Status(fiber.StatusConflict).JSON(problem)

	default:
		problem := problems.NewStatusProblem(500).
			WithInstance(c.Path()).
			WithType("internal_error").
			WithError(err)

		return c.Status(fiber.StatusInternalServerError).JSON(problem)
	}
}

// handleBuildError maps aborted build runs onto HTTP statuses. Failures of
// the generative capability or its output schema surface as 502 because the
// fault lies upstream of this service; storage failures stay 500.
func handleBuildError(c fiber.Ctx, err error) error {
	failure, ok := workflow.AsStageFailure(err)
	if !ok {
		return handleServiceError(c, err)
	}

	status := fiber.StatusBadGateway
	if failure.Category == workflow.FailureRepository || failure.Category == workflow.FailurePersistence {
		status = fiber.StatusInternalServerError
	}

	detail := fmt.Sprintf("build aborted at %s stage (%s): %v",
		failure.Stage, failure.Category, failure.Err)

	problem := problems.NewStatusProblem(status).
		WithInstance(c.Path()).
		WithType("build_failed").
		WithDetail(detail)

	return c.Status(status).JSON(problem)
}
