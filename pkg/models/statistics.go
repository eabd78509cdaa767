package models

// DeckStatistics holds the derived aggregates of a deck. It is recomputed
// after every structural mutation and never edited by hand.
//
// ColorDistribution counts each card entry once per color in its identity,
// so a two-color card contributes to both of its colors independently and
// the values need not sum to 1. This mirrors how the distribution is
// consumed by the mana-base heuristic and is a documented approximation.
type DeckStatistics struct {
	AverageManaValue   float64            `json:"average_mana_value"`
	ColorDistribution  map[Color]float64  `json:"color_distribution"`
	TypeDistribution   map[string]int     `json:"type_distribution"`
	RoleDistribution   map[CardRole]int   `json:"role_distribution"`
	ManaSourcesByColor map[Color]int      `json:"mana_sources_by_color"`
	ManaCurve          map[int]int        `json:"mana_curve"`
}
