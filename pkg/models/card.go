// Package models defines the domain types shared across the deck builder:
// cards, decks, deck requirements, and derived statistics.
package models

import "strings"

// Color is one of the five mana color symbols.
type Color string

const (
	ColorWhite Color = "W"
	ColorBlue  Color = "U"
	ColorBlack Color = "B"
	ColorRed   Color = "R"
	ColorGreen Color = "G"
)

// AllColors lists the five colors in WUBRG order.
var AllColors = []Color{ColorWhite, ColorBlue, ColorBlack, ColorRed, ColorGreen}

// IsValidColor reports whether s is one of the five color symbols.
func IsValidColor(s string) bool {
	switch Color(s) {
	case ColorWhite, ColorBlue, ColorBlack, ColorRed, ColorGreen:
		return true
	default:
		return false
	}
}

// CardRole classifies the job a card does inside a deck.
type CardRole string

const (
	RoleWinCondition  CardRole = "win_condition"
	RoleRemoval       CardRole = "removal"
	RoleCounter       CardRole = "counter"
	RoleRamp          CardRole = "ramp"
	RoleCardAdvantage CardRole = "card_advantage"
	RoleUtility       CardRole = "utility"
	RoleProtection    CardRole = "protection"
	RoleManaSource    CardRole = "mana_source"
)

// BasicLandNames is the exemption set for the four-copy rule: basic lands may
// appear in any quantity.
var BasicLandNames = []string{"Plains", "Island", "Swamp", "Mountain", "Forest"}

// IsBasicLandName reports whether name belongs to the basic-land exemption set.
func IsBasicLandName(name string) bool {
	for _, basic := range BasicLandNames {
		if name == basic {
			return true
		}
	}

	return false
}

// Card is a catalog record for a single printable card, sourced from the
// external card-data provider and stored in the card repository.
type Card struct {
	ID              string            `json:"id"`
	ScryfallID      string            `json:"scryfall_id,omitempty"`
	OracleID        string            `json:"oracle_id,omitempty"`
	Name            string            `json:"name"                       validate:"required"`
	ManaCost        string            `json:"mana_cost,omitempty"`
	ManaValue       float64           `json:"mana_value"                 validate:"min=0"`
	ColorIdentity   []Color           `json:"color_identity"`
	TypeLine        string            `json:"type_line"`
	OracleText      string            `json:"oracle_text,omitempty"`
	Power           string            `json:"power,omitempty"`
	Toughness       string            `json:"toughness,omitempty"`
	Loyalty         string            `json:"loyalty,omitempty"`
	Rarity          string            `json:"rarity,omitempty"`
	SetCode         string            `json:"set_code,omitempty"`
	CollectorNumber string            `json:"collector_number,omitempty"`
	ImageURI        string            `json:"image_uri,omitempty"`
	Keywords        []string          `json:"keywords,omitempty"`
	Legalities      map[string]string `json:"legalities,omitempty"`
	Price           float64           `json:"price,omitempty"`
	ProducedMana    []Color           `json:"produced_mana,omitempty"`
	ReleasedAt      string            `json:"released_at,omitempty"`
	Layout          string            `json:"layout,omitempty"`
}

// IsLand reports whether the card's type line marks it as a land.
func (c *Card) IsLand() bool {
	return strings.Contains(c.TypeLine, "Land")
}

// LegalIn reports whether the card is legal in the given format. An unknown
// format is treated as legal; the catalog only records explicit verdicts.
func (c *Card) LegalIn(format string) bool {
	if c.Legalities == nil {
		return true
	}

	verdict, ok := c.Legalities[strings.ToLower(format)]
	if !ok {
		return true
	}

	return verdict == "legal" || verdict == "restricted"
}

// CardEntry is one line of a deck list: a card reference with a quantity and
// an assigned role. The attribute fields are copied from the catalog record
// at selection time so that statistics never need a repository round trip.
type CardEntry struct {
	CardID        string   `json:"card_id"`
	Name          string   `json:"name"           validate:"required"`
	ManaValue     float64  `json:"mana_value"`
	ColorIdentity []Color  `json:"color_identity"`
	TypeLine      string   `json:"type_line"`
	Quantity      int      `json:"quantity"       validate:"required,min=1"`
	Role          CardRole `json:"role,omitempty"`
}

// IsLand reports whether the entry references a land card.
func (e *CardEntry) IsLand() bool {
	return strings.Contains(e.TypeLine, "Land")
}

// EntryFromCard builds a deck entry from a catalog card.
func EntryFromCard(card *Card, quantity int, role CardRole) CardEntry {
	return CardEntry{
		CardID:        card.ID,
		Name:          card.Name,
		ManaValue:     card.ManaValue,
		ColorIdentity: card.ColorIdentity,
		TypeLine:      card.TypeLine,
		Quantity:      quantity,
		Role:          role,
	}
}
