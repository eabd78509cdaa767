package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
)

// Resources provides wildcard and currency balance operations.
type Resources struct {
	resources persistence.UserResourceRepository
}

// NewResources creates a new user resources service.
func NewResources(resources persistence.UserResourceRepository) *Resources {
	return &Resources{resources: resources}
}

// Fetch retrieves the resource balances for a user.
func (r *Resources) Fetch(ctx context.Context, userID string) (*models.UserResources, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	return r.resources.Get(ctx, userID)
}

// Put creates or replaces the resource balances for a user.
func (r *Resources) Put(ctx context.Context, in *models.UserResources) (*models.UserResources, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	if in.UserID == "" {
		return nil, ErrEmptyUserID
	}

	if in.CommonWildcards < 0 || in.UncommonWildcards < 0 ||
		in.RareWildcards < 0 || in.MythicWildcards < 0 ||
		in.Gold < 0 || in.Gems < 0 {
		return nil, NewValidationError(
			"Put",
			"NEGATIVE_BALANCE",
			"resource balances cannot be negative",
			ErrNegativeBalance,
		)
	}

	in.UpdatedAt = time.Now().UTC()

	if err := r.resources.Upsert(ctx, in); err != nil {
		return nil, fmt.Errorf("failed to store user resources: %w", err)
	}

	return in, nil
}
