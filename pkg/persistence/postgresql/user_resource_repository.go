package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
)

// UserResourceRepository stores per-user wildcard and currency balances.
type UserResourceRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewUserResourceRepository creates a new user resource repository.
func NewUserResourceRepository(db *sql.DB, logger *slog.Logger) *UserResourceRepository {
	return &UserResourceRepository{db: db, logger: logger}
}

// Get fetches the resource balances for a user.
func (r *UserResourceRepository) Get(ctx context.Context, userID string) (*models.UserResources, error) {
	query := `
		SELECT user_id, common_wildcards, uncommon_wildcards, rare_wildcards,
			mythic_wildcards, gold, gems, updated_at
		FROM user_resources WHERE user_id = $1
	`

	var resources models.UserResources

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&resources.UserID, &resources.CommonWildcards, &resources.UncommonWildcards,
		&resources.RareWildcards, &resources.MythicWildcards, &resources.Gold,
		&resources.Gems, &resources.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrUserResourcesNotFound
	}

	if err != nil {
		return nil, err
	}

	return &resources, nil
}

// Upsert creates or replaces the resource balances for a user.
func (r *UserResourceRepository) Upsert(ctx context.Context, resources *models.UserResources) error {
	query := `
		INSERT INTO user_resources (user_id, common_wildcards, uncommon_wildcards,
			rare_wildcards, mythic_wildcards, gold, gems, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			common_wildcards = EXCLUDED.common_wildcards,
			uncommon_wildcards = EXCLUDED.uncommon_wildcards,
			rare_wildcards = EXCLUDED.rare_wildcards,
			mythic_wildcards = EXCLUDED.mythic_wildcards,
			gold = EXCLUDED.gold,
			gems = EXCLUDED.gems,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		resources.UserID, resources.CommonWildcards, resources.UncommonWildcards,
		resources.RareWildcards, resources.MythicWildcards, resources.Gold,
		resources.Gems, time.Now().UTC(),
	)

	return err
}
