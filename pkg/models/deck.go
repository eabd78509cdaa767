package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrIncompatibleColors indicates a card whose color identity falls outside
// the deck's declared colors. This is a construction error, not a soft
// validation issue: an artifact that contradicts its own color identity
// cannot be patched into legality.
var ErrIncompatibleColors = errors.New("card colors incompatible with deck color identity")

// Board names one of the three card collections of a deck.
type Board string

const (
	BoardMain      Board = "main_deck"
	BoardLands     Board = "lands"
	BoardSideboard Board = "sideboard"
)

// Deck is the evolving deck artifact produced by the build workflow and the
// row shape stored by the deck repository. MainDeck and Lands together form
// the mainboard; Sideboard is separate.
type Deck struct {
	ID           string          `json:"id,omitempty"`
	Name         string          `json:"name"                 validate:"required"`
	Format       string          `json:"format"               validate:"required"`
	Description  string          `json:"description,omitempty"`
	Colors       []Color         `json:"colors"`
	StrategyTags []string        `json:"strategy_tags,omitempty"`
	MainDeck     []CardEntry     `json:"main_deck"`
	Lands        []CardEntry     `json:"lands"`
	Sideboard    []CardEntry     `json:"sideboard"`
	Statistics   *DeckStatistics `json:"statistics,omitempty"`
	OwnerID      string          `json:"owner_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at,omitzero"`
	UpdatedAt    time.Time       `json:"updated_at,omitzero"`
}

// Mainboard returns main deck and lands as a single slice.
func (d *Deck) Mainboard() []CardEntry {
	board := make([]CardEntry, 0, len(d.MainDeck)+len(d.Lands))
	board = append(board, d.MainDeck...)
	board = append(board, d.Lands...)

	return board
}

// MainboardCount returns the total quantity of cards in the mainboard.
func (d *Deck) MainboardCount() int {
	total := 0
	for _, entry := range d.Mainboard() {
		total += entry.Quantity
	}

	return total
}

// SideboardCount returns the total quantity of cards in the sideboard.
func (d *Deck) SideboardCount() int {
	total := 0
	for _, entry := range d.Sideboard {
		total += entry.Quantity
	}

	return total
}

// AddEntry appends an entry to the named board after checking that the
// card's color identity is a subset of the deck's declared colors.
func (d *Deck) AddEntry(entry CardEntry, board Board) error {
	if !d.colorsAllow(entry.ColorIdentity) {
		return fmt.Errorf("%w: %s has colors %v, deck allows %v",
			ErrIncompatibleColors, entry.Name, entry.ColorIdentity, d.Colors)
	}

	switch board {
	case BoardLands:
		d.Lands = append(d.Lands, entry)
	case BoardSideboard:
		d.Sideboard = append(d.Sideboard, entry)
	default:
		d.MainDeck = append(d.MainDeck, entry)
	}

	return nil
}

// RemoveByName drops every entry with the given card name from the main deck
// and lands. It reports whether anything was removed.
func (d *Deck) RemoveByName(name string) bool {
	removed := false
	d.MainDeck, removed = removeEntries(d.MainDeck, name, removed)
	d.Lands, removed = removeEntries(d.Lands, name, removed)

	return removed
}

// AdjustQuantity applies a signed quantity change to every mainboard entry
// with the given name. Entries whose quantity drops to zero or below are
// removed. It reports whether any entry matched.
func (d *Deck) AdjustQuantity(name string, delta int) bool {
	matched := false
	d.MainDeck, matched = adjustEntries(d.MainDeck, name, delta, matched)
	d.Lands, matched = adjustEntries(d.Lands, name, delta, matched)

	return matched
}

func (d *Deck) colorsAllow(identity []Color) bool {
	if len(identity) == 0 {
		return true
	}

	allowed := make(map[Color]bool, len(d.Colors))
	for _, color := range d.Colors {
		allowed[color] = true
	}

	for _, color := range identity {
		if !allowed[color] {
			return false
		}
	}

	return true
}

func removeEntries(entries []CardEntry, name string, removed bool) ([]CardEntry, bool) {
	kept := entries[:0]

	for _, entry := range entries {
		if entry.Name == name {
			removed = true

			continue
		}

		kept = append(kept, entry)
	}

	return kept, removed
}

func adjustEntries(entries []CardEntry, name string, delta int, matched bool) ([]CardEntry, bool) {
	kept := entries[:0]

	for _, entry := range entries {
		if entry.Name == name {
			matched = true
			entry.Quantity += delta

			if entry.Quantity <= 0 {
				continue
			}
		}

		kept = append(kept, entry)
	}

	return kept, matched
}

// Provenance records how an approved deck came to be: the reviewer's final
// verdict plus any caveats that were still open when the build terminated.
type Provenance struct {
	Rating              int      `json:"rating"`
	Decision            string   `json:"decision"`
	Strengths           []string `json:"strengths,omitempty"`
	Weaknesses          []string `json:"weaknesses,omitempty"`
	FavorableMatchups   []string `json:"favorable_matchups,omitempty"`
	UnfavorableMatchups []string `json:"unfavorable_matchups,omitempty"`
	Reasons             []string `json:"reasons,omitempty"`
	Forced              bool     `json:"forced"`
	Caveats             []string `json:"caveats,omitempty"`
	Iterations          int      `json:"iterations"`
}
