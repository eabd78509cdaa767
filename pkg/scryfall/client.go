// Package scryfall provides a rate-limited client for the Scryfall card API,
// used to ingest the card catalog. API documentation:
// https://scryfall.com/docs/api
package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
)

const (
	DefaultBaseURL = "https://api.scryfall.com"

	// Scryfall asks clients to stay under 10 requests per second.
	requestInterval = 100 * time.Millisecond

	requestTimeout = 30 * time.Second
)

// APIError is a non-2xx response from the Scryfall API.
type APIError struct {
	StatusCode int
	Details    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scryfall api error (status %d): %s", e.StatusCode, e.Details)
}

// Client is a rate-limited Scryfall API client, safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	mu       sync.Mutex
	lastCall time.Time
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger.With("module", "scryfall"),
	}
}

// Card is the subset of Scryfall's card object the catalog stores.
type Card struct {
	ID              string            `json:"id"`
	OracleID        string            `json:"oracle_id"`
	Name            string            `json:"name"`
	ManaCost        string            `json:"mana_cost"`
	CMC             float64           `json:"cmc"`
	ColorIdentity   []string          `json:"color_identity"`
	TypeLine        string            `json:"type_line"`
	OracleText      string            `json:"oracle_text"`
	Power           string            `json:"power"`
	Toughness       string            `json:"toughness"`
	Loyalty         string            `json:"loyalty"`
	Rarity          string            `json:"rarity"`
	Set             string            `json:"set"`
	CollectorNumber string            `json:"collector_number"`
	Keywords        []string          `json:"keywords"`
	Legalities      map[string]string `json:"legalities"`
	ProducedMana    []string          `json:"produced_mana"`
	ReleasedAt      string            `json:"released_at"`
	Layout          string            `json:"layout"`
	ImageURIs       map[string]string `json:"image_uris"`
	Prices          map[string]string `json:"prices"`
	CardFaces       []Card            `json:"card_faces"`
}

type searchPage struct {
	Data     []Card `json:"data"`
	HasMore  bool   `json:"has_more"`
	NextPage string `json:"next_page"`
}

type apiErrorBody struct {
	Details string `json:"details"`
}

// SearchCards runs a Scryfall full-text search and calls fn for every card
// across all result pages. Iteration stops at the first error fn returns.
func (c *Client) SearchCards(ctx context.Context, query string, fn func(Card) error) error {
	next := c.baseURL + "/cards/search?q=" + url.QueryEscape(query)

	for next != "" {
		var page searchPage
		if err := c.get(ctx, next, &page); err != nil {
			return err
		}

		for _, card := range page.Data {
			if err := fn(card); err != nil {
				return err
			}
		}

		next = ""
		if page.HasMore {
			next = page.NextPage
		}
	}

	return nil
}

// GetCardByName fetches a card by exact or fuzzy name.
func (c *Client) GetCardByName(ctx context.Context, name string, exact bool) (*Card, error) {
	mode := "exact"
	if !exact {
		mode = "fuzzy"
	}

	endpoint := c.baseURL + "/cards/named?" + mode + "=" + url.QueryEscape(name)

	var card Card
	if err := c.get(ctx, endpoint, &card); err != nil {
		return nil, err
	}

	return &card, nil
}

// LegalCards iterates every card legal in the given format.
func (c *Client) LegalCards(ctx context.Context, format string, fn func(Card) error) error {
	return c.SearchCards(ctx, "legal:"+format, fn)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	c.throttle()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("scryfall request failed: %w", err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Error("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := time.Second
		if header := resp.Header.Get("Retry-After"); header != "" {
			if seconds, parseErr := strconv.Atoi(header); parseErr == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryAfter):
		}

		return c.get(ctx, endpoint, out)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body apiErrorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil || body.Details == "" {
			body.Details = "unknown error occurred"
		}

		return &APIError{StatusCode: resp.StatusCode, Details: body.Details}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// throttle enforces the minimum interval between requests.
func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elapsed := time.Since(c.lastCall); elapsed < requestInterval {
		time.Sleep(requestInterval - elapsed)
	}

	c.lastCall = time.Now()
}

// ToModel converts a Scryfall card object into a catalog record. Double
// faced cards use their front face's image.
func (card Card) ToModel() (*models.Card, error) {
	if card.ID == "" || card.Name == "" {
		return nil, errors.New("scryfall card missing id or name")
	}

	imageURI := card.ImageURIs["normal"]
	if imageURI == "" && len(card.CardFaces) > 0 {
		imageURI = card.CardFaces[0].ImageURIs["normal"]
	}

	var price float64
	if usd := card.Prices["usd"]; usd != "" {
		if parsed, err := strconv.ParseFloat(usd, 64); err == nil {
			price = parsed
		}
	}

	return &models.Card{
		ID:              card.ID,
		ScryfallID:      card.ID,
		OracleID:        card.OracleID,
		Name:            card.Name,
		ManaCost:        card.ManaCost,
		ManaValue:       card.CMC,
		ColorIdentity:   toColors(card.ColorIdentity),
		TypeLine:        card.TypeLine,
		OracleText:      card.OracleText,
		Power:           card.Power,
		Toughness:       card.Toughness,
		Loyalty:         card.Loyalty,
		Rarity:          card.Rarity,
		SetCode:         card.Set,
		CollectorNumber: card.CollectorNumber,
		ImageURI:        imageURI,
		Keywords:        card.Keywords,
		Legalities:      card.Legalities,
		Price:           price,
		ProducedMana:    toColors(card.ProducedMana),
		ReleasedAt:      card.ReleasedAt,
		Layout:          card.Layout,
	}, nil
}

func toColors(symbols []string) []models.Color {
	colors := make([]models.Color, 0, len(symbols))

	for _, symbol := range symbols {
		if models.IsValidColor(symbol) {
			colors = append(colors, models.Color(symbol))
		}
	}

	return colors
}
