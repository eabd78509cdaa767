package models

// Archetype enumerates the supported deck archetypes.
type Archetype string

const (
	ArchetypeAggro    Archetype = "aggro"
	ArchetypeControl  Archetype = "control"
	ArchetypeMidrange Archetype = "midrange"
	ArchetypeCombo    Archetype = "combo"
	ArchetypeTempo    Archetype = "tempo"
	ArchetypeRamp     Archetype = "ramp"
)

// Requirements is the immutable deck-building brief. It is validated at the
// API boundary before a build run starts and never mutated afterwards.
type Requirements struct {
	Colors        []Color   `json:"colors"                   validate:"required,min=1,max=5,dive,oneof=W U B R G"`
	Strategy      string    `json:"strategy,omitempty"`
	Format        string    `json:"format"                   validate:"required"`
	Archetype     Archetype `json:"archetype"                validate:"required,oneof=aggro control midrange combo tempo ramp"`
	MinCreatures  *int      `json:"min_creatures,omitempty"  validate:"omitempty,min=0"`
	MaxCreatures  *int      `json:"max_creatures,omitempty"  validate:"omitempty,min=0"`
	MinLands      *int      `json:"min_lands,omitempty"      validate:"omitempty,min=0"`
	MaxLands      *int      `json:"max_lands,omitempty"      validate:"omitempty,min=0"`
	RequiredCards []string  `json:"required_cards,omitempty"`
	ExcludedCards []string  `json:"excluded_cards,omitempty"`
	BudgetLimit   *float64  `json:"budget_limit,omitempty"   validate:"omitempty,min=0"`
	Constraints   string    `json:"constraints,omitempty"`
}
