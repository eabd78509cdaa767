package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
)

const defaultSearchLimit = 50

// CardRepository handles card catalog database operations.
type CardRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewCardRepository creates a new card repository.
func NewCardRepository(db *sql.DB, logger *slog.Logger) *CardRepository {
	return &CardRepository{db: db, logger: logger}
}

const cardColumns = `id, scryfall_id, oracle_id, name, mana_cost, mana_value,
	color_identity, type_line, oracle_text, power, toughness, loyalty, rarity,
	set_code, collector_number, image_uri, keywords, legalities, price,
	produced_mana, released_at, layout`

// Save upserts a card by its identifier.
func (r *CardRepository) Save(ctx context.Context, card *models.Card) error {
	colorIdentity, err := json.Marshal(card.ColorIdentity)
	if err != nil {
		return persistence.NewCardError("Save", card.Name, err)
	}

	keywords, err := json.Marshal(card.Keywords)
	if err != nil {
		return persistence.NewCardError("Save", card.Name, err)
	}

	legalities, err := json.Marshal(card.Legalities)
	if err != nil {
		return persistence.NewCardError("Save", card.Name, err)
	}

	producedMana, err := json.Marshal(card.ProducedMana)
	if err != nil {
		return persistence.NewCardError("Save", card.Name, err)
	}

	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (id) DO UPDATE SET
			scryfall_id = EXCLUDED.scryfall_id,
			oracle_id = EXCLUDED.oracle_id,
			name = EXCLUDED.name,
			mana_cost = EXCLUDED.mana_cost,
			mana_value = EXCLUDED.mana_value,
			color_identity = EXCLUDED.color_identity,
			type_line = EXCLUDED.type_line,
			oracle_text = EXCLUDED.oracle_text,
			power = EXCLUDED.power,
			toughness = EXCLUDED.toughness,
			loyalty = EXCLUDED.loyalty,
			rarity = EXCLUDED.rarity,
			set_code = EXCLUDED.set_code,
			collector_number = EXCLUDED.collector_number,
			image_uri = EXCLUDED.image_uri,
			keywords = EXCLUDED.keywords,
			legalities = EXCLUDED.legalities,
			price = EXCLUDED.price,
			produced_mana = EXCLUDED.produced_mana,
			released_at = EXCLUDED.released_at,
			layout = EXCLUDED.layout
	`

	_, err = r.db.ExecContext(ctx, query,
		card.ID, card.ScryfallID, card.OracleID, card.Name, card.ManaCost,
		card.ManaValue, colorIdentity, card.TypeLine, card.OracleText,
		card.Power, card.Toughness, card.Loyalty, card.Rarity, card.SetCode,
		card.CollectorNumber, card.ImageURI, keywords, legalities, card.Price,
		producedMana, card.ReleasedAt, card.Layout,
	)
	if err != nil {
		return persistence.NewCardError("Save", card.Name, err)
	}

	return nil
}

// GetByID fetches a card by its identifier.
func (r *CardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE id = $1", id)

	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.NewCardError("GetByID", id, persistence.ErrCardNotFound)
	}

	if err != nil {
		return nil, persistence.NewCardError("GetByID", id, err)
	}

	return card, nil
}

// ResolveByName fetches a card by its exact name, case-insensitively.
func (r *CardRepository) ResolveByName(ctx context.Context, name string) (*models.Card, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE LOWER(name) = LOWER($1)", name)

	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.NewCardError("ResolveByName", name, persistence.ErrCardNotFound)
	}

	if err != nil {
		return nil, persistence.NewCardError("ResolveByName", name, err)
	}

	return card, nil
}

// Delete removes a card from the catalog.
func (r *CardRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM cards WHERE id = $1", id)
	if err != nil {
		return persistence.NewCardError("Delete", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewCardError("Delete", id, err)
	}

	if affected == 0 {
		return persistence.NewCardError("Delete", id, persistence.ErrCardNotFound)
	}

	return nil
}

// Search queries the catalog with attribute filters.
func (r *CardRepository) Search(ctx context.Context, filters persistence.CardFilters) ([]*models.Card, error) {
	var (
		conditions []string
		args       []any
	)

	arg := func(value any) string {
		args = append(args, value)

		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Text != "" {
		placeholder := arg("%" + filters.Text + "%")
		conditions = append(conditions,
			fmt.Sprintf("(name ILIKE %s OR oracle_text ILIKE %s)", placeholder, placeholder))
	}

	if filters.TypeLine != "" {
		conditions = append(conditions, fmt.Sprintf("type_line ILIKE %s", arg("%"+filters.TypeLine+"%")))
	}

	if filters.MaxManaValue != nil {
		conditions = append(conditions, fmt.Sprintf("mana_value <= %s", arg(*filters.MaxManaValue)))
	}

	if len(filters.Colors) > 0 {
		colors, err := json.Marshal(filters.Colors)
		if err != nil {
			return nil, persistence.NewCardError("Search", filters.Text, err)
		}

		conditions = append(conditions, fmt.Sprintf("color_identity <@ %s::jsonb", arg(string(colors))))
	}

	if filters.Format != "" {
		format := strings.ToLower(filters.Format)
		conditions = append(conditions, fmt.Sprintf(
			"(NOT legalities ? %s OR legalities ->> %s IN ('legal', 'restricted'))",
			arg(format), arg(format)))
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	query := "SELECT " + cardColumns + " FROM cards"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY name" + fmt.Sprintf(" LIMIT %s", arg(limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistence.NewCardError("Search", filters.Text, err)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", closeErr)
		}
	}()

	var cards []*models.Card

	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, persistence.NewCardError("Search", filters.Text, err)
		}

		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewCardError("Search", filters.Text, err)
	}

	return cards, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	var (
		card          models.Card
		colorIdentity []byte
		keywords      []byte
		legalities    []byte
		producedMana  []byte
		manaCost      sql.NullString
		oracleText    sql.NullString
		power         sql.NullString
		toughness     sql.NullString
		loyalty       sql.NullString
		price         sql.NullFloat64
	)

	err := row.Scan(
		&card.ID, &card.ScryfallID, &card.OracleID, &card.Name, &manaCost,
		&card.ManaValue, &colorIdentity, &card.TypeLine, &oracleText,
		&power, &toughness, &loyalty, &card.Rarity, &card.SetCode,
		&card.CollectorNumber, &card.ImageURI, &keywords, &legalities,
		&price, &producedMana, &card.ReleasedAt, &card.Layout,
	)
	if err != nil {
		return nil, err
	}

	card.ManaCost = manaCost.String
	card.OracleText = oracleText.String
	card.Power = power.String
	card.Toughness = toughness.String
	card.Loyalty = loyalty.String
	card.Price = price.Float64

	if err := json.Unmarshal(colorIdentity, &card.ColorIdentity); err != nil {
		return nil, fmt.Errorf("failed to decode color identity: %w", err)
	}

	if err := json.Unmarshal(keywords, &card.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}

	if err := json.Unmarshal(legalities, &card.Legalities); err != nil {
		return nil, fmt.Errorf("failed to decode legalities: %w", err)
	}

	if err := json.Unmarshal(producedMana, &card.ProducedMana); err != nil {
		return nil, fmt.Errorf("failed to decode produced mana: %w", err)
	}

	return &card, nil
}
