// Package web provides HTTP request and response types for the deck builder API.
package web

import (
	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
)

// CreateDeckRequest represents the request body for storing a manually
// assembled deck.
type CreateDeckRequest struct {
	Name         string             `json:"name"                   validate:"required,min=1"`
	Format       string             `json:"format"                 validate:"required"`
	Description  string             `json:"description,omitempty"`
	Colors       []string           `json:"colors"                 validate:"omitempty,dive,oneof=W U B R G"`
	StrategyTags []string           `json:"strategy_tags,omitempty"`
	MainDeck     []models.CardEntry `json:"main_deck"`
	Lands        []models.CardEntry `json:"lands"`
	Sideboard    []models.CardEntry `json:"sideboard"`
	OwnerID      string             `json:"owner_id,omitempty"`
}

// ToModel converts the request into the stored deck shape.
func (r CreateDeckRequest) ToModel() *models.Deck {
	colors := make([]models.Color, 0, len(r.Colors))
	for _, color := range r.Colors {
		colors = append(colors, models.Color(color))
	}

	return &models.Deck{
		Name:         r.Name,
		Format:       r.Format,
		Description:  r.Description,
		Colors:       colors,
		StrategyTags: r.StrategyTags,
		MainDeck:     r.MainDeck,
		Lands:        r.Lands,
		Sideboard:    r.Sideboard,
		OwnerID:      r.OwnerID,
	}
}

// PutResourcesRequest represents the request body for replacing a user's
// wildcard and currency balances.
type PutResourcesRequest struct {
	CommonWildcards   int `json:"common_wildcards"   validate:"min=0"`
	UncommonWildcards int `json:"uncommon_wildcards" validate:"min=0"`
	RareWildcards     int `json:"rare_wildcards"     validate:"min=0"`
	MythicWildcards   int `json:"mythic_wildcards"   validate:"min=0"`
	Gold              int `json:"gold"               validate:"min=0"`
	Gems              int `json:"gems"               validate:"min=0"`
}

// ToModel converts the request into the stored resource shape.
func (r PutResourcesRequest) ToModel(userID string) *models.UserResources {
	return &models.UserResources{
		UserID:            userID,
		CommonWildcards:   r.CommonWildcards,
		UncommonWildcards: r.UncommonWildcards,
		RareWildcards:     r.RareWildcards,
		MythicWildcards:   r.MythicWildcards,
		Gold:              r.Gold,
		Gems:              r.Gems,
	}
}
