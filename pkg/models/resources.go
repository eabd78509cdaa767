package models

import "time"

// UserResources tracks a player's crafting currency and wildcard balances.
type UserResources struct {
	UserID            string    `json:"user_id"            validate:"required"`
	CommonWildcards   int       `json:"common_wildcards"   validate:"min=0"`
	UncommonWildcards int       `json:"uncommon_wildcards" validate:"min=0"`
	RareWildcards     int       `json:"rare_wildcards"     validate:"min=0"`
	MythicWildcards   int       `json:"mythic_wildcards"   validate:"min=0"`
	Gold              int       `json:"gold"               validate:"min=0"`
	Gems              int       `json:"gems"               validate:"min=0"`
	UpdatedAt         time.Time `json:"updated_at,omitzero"`
}
