package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/gofiber/fiber/v3"
	"github.com/redjoy12/MTGA-deck-builder/pkg/channels/gochannel"
	"github.com/redjoy12/MTGA-deck-builder/pkg/eventbus"
	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence/memory"
	"github.com/redjoy12/MTGA-deck-builder/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type unavailableCapability struct{}

func (unavailableCapability) Propose(_ context.Context, _ workflow.ProposalRequest) (json.RawMessage, error) {
	return nil, errors.New("model endpoint unreachable")
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := memory.NewPersistence()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NewSlogLogger(slog.Default()))
	require.NoError(t, err)

	api := NewAPI(
		slog.Default(),
		store,
		store.Cards(),
		unavailableCapability{},
		eventbus.NewWatermillEventBus(pub, sub),
		noop.NewTracerProvider().Tracer("test"),
	)

	return api.App()
}

func TestAPI_RootEndpoint(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Deck Builder API", string(body))
}

func TestAPI_Liveness(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_HealthCheck(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "healthy")
}

func TestAPI_GetDecks_Empty(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/decks/", nil)
	req.Header.Set("Accept", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Decks []models.Deck `json:"decks"`
		Count int           `json:"count"`
	}

	err = json.NewDecoder(resp.Body).Decode(&listing)
	require.NoError(t, err)
	assert.Empty(t, listing.Decks)
	assert.Zero(t, listing.Count)
}

func TestAPI_GenerateDeck_CapabilityDown(t *testing.T) {
	app := setupTestApp(t)

	requirements := models.Requirements{
		Colors:    []models.Color{models.ColorRed},
		Format:    "standard",
		Archetype: models.ArchetypeAggro,
	}

	payload, err := json.Marshal(requirements)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/decks/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "capability_unavailable")
}
