package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/services"
)

type APIHandlers struct {
	cardService     *services.Card
	deckService     *services.Deck
	builderService  *services.Builder
	resourceService *services.Resources
	validator       *validator.Validate
}

func NewAPIHandlers(
	cardService *services.Card,
	deckService *services.Deck,
	builderService *services.Builder,
	resourceService *services.Resources,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		cardService:     cardService,
		deckService:     deckService,
		builderService:  builderService,
		resourceService: resourceService,
		validator:       validator,
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.deckService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Deck builder API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "Deck builder API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

// GenerateDeck runs the full build workflow and persists the approved deck.
func (h *APIHandlers) GenerateDeck(c fiber.Ctx) error {
	var req models.Requirements
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.builderService.Generate(c.Context(), req)
	if err != nil {
		return handleBuildError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// BuildDeck runs the build workflow without persisting the result.
func (h *APIHandlers) BuildDeck(c fiber.Ctx) error {
	var req models.Requirements
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.builderService.Build(c.Context(), req)
	if err != nil {
		return handleBuildError(c, err)
	}

	return c.JSON(result)
}

func (h *APIHandlers) GetDecks(c fiber.Ctx) error {
	req := services.ListDecksRequest{
		Format:    c.Query("format"),
		Archetype: c.Query("archetype"),
		Colors:    splitColors(c.Query("colors")),
		OwnerID:   c.Query("owner_id"),
	}

	var err error

	req.Limit, req.Offset, err = parsePagination(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	decks, err := h.deckService.ListDecks(c.Context(), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"decks": decks,
		"count": len(decks),
	})
}

func (h *APIHandlers) GetDeck(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Deck ID is required")
	}

	deck, err := h.deckService.FetchByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(deck)
}

func (h *APIHandlers) CreateDeck(c fiber.Ctx) error {
	var req CreateDeckRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.deckService.Create(c.Context(), req.ToModel())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateDeck(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Deck ID is required")
	}

	var req CreateDeckRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.deckService.Update(c.Context(), id, req.ToModel())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteDeck(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Deck ID is required")
	}

	if err := h.deckService.Delete(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CheckDeck reports the validation findings for a stored deck.
func (h *APIHandlers) CheckDeck(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Deck ID is required")
	}

	report, err := h.deckService.Check(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(report)
}

func (h *APIHandlers) GetCards(c fiber.Ctx) error {
	req := services.ListCardsRequest{
		Text:     c.Query("text"),
		Colors:   splitColors(c.Query("colors")),
		TypeLine: c.Query("type"),
		Format:   c.Query("format"),
	}

	if maxStr := c.Query("max_mana_value"); maxStr != "" {
		maxManaValue, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			return badRequest(c, "Invalid query parameters: "+err.Error())
		}

		req.MaxManaValue = &maxManaValue
	}

	var err error

	req.Limit, _, err = parsePagination(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	cards, err := h.cardService.ListCards(c.Context(), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"cards": cards,
		"count": len(cards),
	})
}

// GetCardByName resolves a card by its exact name, for deck import flows.
func (h *APIHandlers) GetCardByName(c fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return badRequest(c, "Card name is required")
	}

	card, err := h.cardService.FetchByName(c.Context(), name)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(card)
}

func (h *APIHandlers) GetCard(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Card ID is required")
	}

	card, err := h.cardService.FetchByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(card)
}

func (h *APIHandlers) CreateCard(c fiber.Ctx) error {
	var card models.Card
	if err := c.Bind().JSON(&card); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(card); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.cardService.Create(c.Context(), &card)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateCard(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Card ID is required")
	}

	var card models.Card
	if err := c.Bind().JSON(&card); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(card); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.cardService.Update(c.Context(), id, &card)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteCard(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Card ID is required")
	}

	if err := h.cardService.Delete(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetUserResources(c fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return badRequest(c, "User ID is required")
	}

	resources, err := h.resourceService.Fetch(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(resources)
}

func (h *APIHandlers) PutUserResources(c fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return badRequest(c, "User ID is required")
	}

	var req PutResourcesRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	stored, err := h.resourceService.Put(c.Context(), req.ToModel(userID))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(stored)
}

// parsePagination parses the limit and offset query parameters.
func parsePagination(c fiber.Ctx) (int, int, error) {
	var limit, offset int

	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return 0, 0, err
		}

		limit = parsed
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil {
			return 0, 0, err
		}

		offset = parsed
	}

	return limit, offset, nil
}

// splitColors parses a comma-separated color list query parameter.
func splitColors(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	colors := make([]string, 0, len(parts))

	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			colors = append(colors, part)
		}
	}

	return colors
}
