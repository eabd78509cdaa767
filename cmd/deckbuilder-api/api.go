// Package main provides the deck builder API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/redjoy12/MTGA-deck-builder/pkg/eventbus"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
	"github.com/redjoy12/MTGA-deck-builder/pkg/services"
	"github.com/redjoy12/MTGA-deck-builder/pkg/web"
	"github.com/redjoy12/MTGA-deck-builder/pkg/workflow"
	"go.opentelemetry.io/otel/trace"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	cards       persistence.CardRepository
	capability  workflow.ProposalCapability
	eventBus    eventbus.EventBus
	tracer      trace.Tracer
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	cards persistence.CardRepository,
	capability workflow.ProposalCapability,
	eventBus eventbus.EventBus,
	tracer trace.Tracer,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		cards:       cards,
		capability:  capability,
		eventBus:    eventBus,
		tracer:      tracer,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	orchestrator := workflow.NewOrchestrator(workflow.Config{
		Capability: a.capability,
		Cards:      a.cards,
		Decks:      a.persistence.Decks(),
		Publisher:  a.eventBus,
		Logger:     a.logger,
		Tracer:     a.tracer,
	})

	handlers := web.NewAPIHandlers(
		services.NewCard(a.cards),
		services.NewDeck(a.persistence),
		services.NewBuilder(orchestrator),
		services.NewResources(a.persistence.UserResources()),
		a.validate,
	)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Deck Builder API")
	})

	api := app.Group("/api")

	d := api.Group("/decks")
	d.Get("/", handlers.GetDecks)
	d.Post("/", handlers.CreateDeck)
	d.Post("/generate", handlers.GenerateDeck)
	d.Post("/build", handlers.BuildDeck)
	d.Get("/:id", handlers.GetDeck)
	d.Put("/:id", handlers.UpdateDeck)
	d.Delete("/:id", handlers.DeleteDeck)
	d.Get("/:id/check", handlers.CheckDeck)

	c := api.Group("/cards")
	c.Get("/", handlers.GetCards)
	c.Post("/", handlers.CreateCard)
	c.Get("/named", handlers.GetCardByName)
	c.Get("/:id", handlers.GetCard)
	c.Put("/:id", handlers.UpdateCard)
	c.Delete("/:id", handlers.DeleteCard)

	api.Get("/users/:userId/resources", handlers.GetUserResources)
	api.Put("/users/:userId/resources", handlers.PutUserResources)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
