package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
)

const defaultListLimit = 20

// DeckRepository handles deck database operations, including acting as the
// persistence sink for approved workflow builds.
type DeckRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewDeckRepository creates a new deck repository.
func NewDeckRepository(db *sql.DB, logger *slog.Logger) *DeckRepository {
	return &DeckRepository{db: db, logger: logger}
}

const deckColumns = `id, name, format, description, colors, strategy_tags,
	main_deck, lands, sideboard, statistics, provenance, owner_id,
	created_at, updated_at`

// Save inserts a new deck together with its build provenance.
func (r *DeckRepository) Save(ctx context.Context, deck *models.Deck, provenance *models.Provenance) (string, error) {
	id := deck.ID
	if id == "" {
		id = uuid.New().String()
	}

	fields, err := marshalDeckFields(deck)
	if err != nil {
		return "", persistence.NewDeckError("Save", deck.Name, err)
	}

	provenanceJSON, err := json.Marshal(provenance)
	if err != nil {
		return "", persistence.NewDeckError("Save", deck.Name, err)
	}

	now := time.Now().UTC()

	query := `
		INSERT INTO decks (` + deckColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.db.ExecContext(ctx, query,
		id, deck.Name, deck.Format, deck.Description, fields.colors,
		fields.strategyTags, fields.mainDeck, fields.lands, fields.sideboard,
		fields.statistics, provenanceJSON, deck.OwnerID, now, now,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return "", persistence.NewDeckError("Save", deck.Name, persistence.ErrDeckAlreadyExists)
		}

		return "", persistence.NewDeckError("Save", deck.Name, err)
	}

	return id, nil
}

// GetByID fetches a deck by its identifier.
func (r *DeckRepository) GetByID(ctx context.Context, id string) (*models.Deck, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+deckColumns+" FROM decks WHERE id = $1", id)

	deck, err := scanDeck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.NewDeckError("GetByID", id, persistence.ErrDeckNotFound)
	}

	if err != nil {
		return nil, persistence.NewDeckError("GetByID", id, err)
	}

	return deck, nil
}

// List returns decks matching the given filters, newest first.
func (r *DeckRepository) List(ctx context.Context, filters persistence.DeckFilters) ([]*models.Deck, error) {
	var (
		conditions []string
		args       []any
	)

	arg := func(value any) string {
		args = append(args, value)

		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Format != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(format) = LOWER(%s)", arg(filters.Format)))
	}

	if filters.OwnerID != "" {
		conditions = append(conditions, fmt.Sprintf("owner_id = %s", arg(filters.OwnerID)))
	}

	if filters.Archetype != "" {
		tag, err := json.Marshal([]string{filters.Archetype})
		if err != nil {
			return nil, persistence.NewDeckError("List", "", err)
		}

		conditions = append(conditions, fmt.Sprintf("strategy_tags @> %s::jsonb", arg(string(tag))))
	}

	if len(filters.Colors) > 0 {
		colors, err := json.Marshal(filters.Colors)
		if err != nil {
			return nil, persistence.NewDeckError("List", "", err)
		}

		conditions = append(conditions, fmt.Sprintf("colors <@ %s::jsonb", arg(string(colors))))
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := "SELECT " + deckColumns + " FROM decks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT %s OFFSET %s", arg(limit), arg(filters.Offset))

	return r.queryDecks(ctx, query, args...)
}

// Update replaces the stored deck lists and metadata for an existing deck.
func (r *DeckRepository) Update(ctx context.Context, deck *models.Deck) error {
	fields, err := marshalDeckFields(deck)
	if err != nil {
		return persistence.NewDeckError("Update", deck.ID, err)
	}

	query := `
		UPDATE decks SET
			name = $2, format = $3, description = $4, colors = $5,
			strategy_tags = $6, main_deck = $7, lands = $8, sideboard = $9,
			statistics = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		deck.ID, deck.Name, deck.Format, deck.Description, fields.colors,
		fields.strategyTags, fields.mainDeck, fields.lands, fields.sideboard,
		fields.statistics, time.Now().UTC(),
	)
	if err != nil {
		return persistence.NewDeckError("Update", deck.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewDeckError("Update", deck.ID, err)
	}

	if affected == 0 {
		return persistence.NewDeckError("Update", deck.ID, persistence.ErrDeckNotFound)
	}

	return nil
}

// Delete removes a deck.
func (r *DeckRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM decks WHERE id = $1", id)
	if err != nil {
		return persistence.NewDeckError("Delete", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewDeckError("Delete", id, err)
	}

	if affected == 0 {
		return persistence.NewDeckError("Delete", id, persistence.ErrDeckNotFound)
	}

	return nil
}

// Similar returns stored decks sharing a color, the archetype tag, or the
// format with the given brief.
func (r *DeckRepository) Similar(ctx context.Context, colors []models.Color, archetype, format string) ([]*models.Deck, error) {
	colorsJSON, err := json.Marshal(colors)
	if err != nil {
		return nil, persistence.NewDeckError("Similar", "", err)
	}

	tagJSON, err := json.Marshal([]string{archetype})
	if err != nil {
		return nil, persistence.NewDeckError("Similar", "", err)
	}

	// jsonb arrays have no overlap operator, so shared colors are checked
	// through jsonb_array_elements_text.
	query := `
		SELECT ` + deckColumns + ` FROM decks
		WHERE LOWER(format) = LOWER($1)
		  AND (
			EXISTS (
				SELECT 1 FROM jsonb_array_elements_text(colors) AS deck_color
				WHERE deck_color IN (SELECT jsonb_array_elements_text($2::jsonb))
			)
			OR strategy_tags @> $3::jsonb
		  )
		ORDER BY created_at DESC
		LIMIT $4
	`

	return r.queryDecks(ctx, query, format, string(colorsJSON), string(tagJSON), defaultListLimit)
}

func (r *DeckRepository) queryDecks(ctx context.Context, query string, args ...any) ([]*models.Deck, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistence.NewDeckError("Query", "", err)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", closeErr)
		}
	}()

	var decks []*models.Deck

	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, persistence.NewDeckError("Query", "", err)
		}

		decks = append(decks, deck)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewDeckError("Query", "", err)
	}

	return decks, nil
}

type deckFields struct {
	colors       []byte
	strategyTags []byte
	mainDeck     []byte
	lands        []byte
	sideboard    []byte
	statistics   []byte
}

func marshalDeckFields(deck *models.Deck) (*deckFields, error) {
	var (
		fields deckFields
		err    error
	)

	if fields.colors, err = json.Marshal(deck.Colors); err != nil {
		return nil, err
	}

	if fields.strategyTags, err = json.Marshal(deck.StrategyTags); err != nil {
		return nil, err
	}

	if fields.mainDeck, err = json.Marshal(deck.MainDeck); err != nil {
		return nil, err
	}

	if fields.lands, err = json.Marshal(deck.Lands); err != nil {
		return nil, err
	}

	if fields.sideboard, err = json.Marshal(deck.Sideboard); err != nil {
		return nil, err
	}

	if fields.statistics, err = json.Marshal(deck.Statistics); err != nil {
		return nil, err
	}

	return &fields, nil
}

func scanDeck(row rowScanner) (*models.Deck, error) {
	var (
		deck         models.Deck
		description  sql.NullString
		ownerID      sql.NullString
		colors       []byte
		strategyTags []byte
		mainDeck     []byte
		lands        []byte
		sideboard    []byte
		statistics   []byte
		provenance   []byte
	)

	err := row.Scan(
		&deck.ID, &deck.Name, &deck.Format, &description, &colors,
		&strategyTags, &mainDeck, &lands, &sideboard, &statistics,
		&provenance, &ownerID, &deck.CreatedAt, &deck.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	deck.Description = description.String
	deck.OwnerID = ownerID.String

	for field, target := range map[string]struct {
		data []byte
		dest any
	}{
		"colors":        {colors, &deck.Colors},
		"strategy_tags": {strategyTags, &deck.StrategyTags},
		"main_deck":     {mainDeck, &deck.MainDeck},
		"lands":         {lands, &deck.Lands},
		"sideboard":     {sideboard, &deck.Sideboard},
	} {
		if err := json.Unmarshal(target.data, target.dest); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", field, err)
		}
	}

	if len(statistics) > 0 {
		if err := json.Unmarshal(statistics, &deck.Statistics); err != nil {
			return nil, fmt.Errorf("failed to decode statistics: %w", err)
		}
	}

	return &deck, nil
}
