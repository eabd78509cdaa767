package services

import (
	"testing"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourcesPutAndFetch(t *testing.T) {
	service := NewResources(memory.NewPersistence().UserResources())

	stored, err := service.Put(t.Context(), &models.UserResources{
		UserID:        "user-1",
		RareWildcards: 4,
		Gold:          1200,
	})
	require.NoError(t, err)
	assert.False(t, stored.UpdatedAt.IsZero())

	fetched, err := service.Fetch(t.Context(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 4, fetched.RareWildcards)
	assert.Equal(t, 1200, fetched.Gold)
}

func TestResourcesPutReplacesBalances(t *testing.T) {
	service := NewResources(memory.NewPersistence().UserResources())

	_, err := service.Put(t.Context(), &models.UserResources{UserID: "user-1", Gold: 100})
	require.NoError(t, err)

	_, err = service.Put(t.Context(), &models.UserResources{UserID: "user-1", Gems: 50})
	require.NoError(t, err)

	fetched, err := service.Fetch(t.Context(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, fetched.Gold)
	assert.Equal(t, 50, fetched.Gems)
}

func TestResourcesFetchUnknownUser(t *testing.T) {
	service := NewResources(memory.NewPersistence().UserResources())

	_, err := service.Fetch(t.Context(), "ghost")
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestResourcesRejectsEmptyUserID(t *testing.T) {
	service := NewResources(memory.NewPersistence().UserResources())

	_, err := service.Put(t.Context(), &models.UserResources{})
	require.ErrorIs(t, err, ErrEmptyUserID)

	_, err = service.Fetch(t.Context(), "   ")
	require.ErrorIs(t, err, ErrEmptyUserID)
}

func TestResourcesRejectsNegativeBalances(t *testing.T) {
	service := NewResources(memory.NewPersistence().UserResources())

	_, err := service.Put(t.Context(), &models.UserResources{UserID: "user-1", Gold: -1})
	require.ErrorIs(t, err, ErrNegativeBalance)
}
