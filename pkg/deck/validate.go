// Package deck implements the structural legality rules and the derived
// statistics for deck artifacts. Everything here is a pure function over the
// deck's card lists: no I/O, no side effects. The build workflow uses these
// functions as its acceptance oracle.
package deck

import (
	"fmt"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
)

const (
	// MinMainboardCards is the constructed-format minimum deck size.
	MinMainboardCards = 60

	// MaxCopiesPerCard is the per-name copy limit, basic lands excepted.
	MaxCopiesPerCard = 4

	// MaxSideboardCards is the sideboard size limit.
	MaxSideboardCards = 15
)

// Validate checks the deck against the structural legality rules and returns
// one message per violation. Every rule is evaluated; an early violation
// never masks a later one. An empty slice means the deck is structurally
// legal.
func Validate(d *models.Deck) []string {
	issues := []string{}

	mainboard := d.Mainboard()

	total := 0
	for _, entry := range mainboard {
		total += entry.Quantity
	}

	if total < MinMainboardCards {
		issues = append(issues, fmt.Sprintf(
			"Deck must have at least %d cards (currently %d)", MinMainboardCards, total))
	}

	copies := map[string]int{}
	order := []string{}

	for _, entry := range mainboard {
		if _, seen := copies[entry.Name]; !seen {
			order = append(order, entry.Name)
		}

		copies[entry.Name] += entry.Quantity
	}

	for _, name := range order {
		if copies[name] > MaxCopiesPerCard && !models.IsBasicLandName(name) {
			issues = append(issues, fmt.Sprintf(
				"Too many copies of %s (%d/%d)", name, copies[name], MaxCopiesPerCard))
		}
	}

	if side := d.SideboardCount(); side > MaxSideboardCards {
		issues = append(issues, fmt.Sprintf(
			"Sideboard must have at most %d cards (currently %d)", MaxSideboardCards, side))
	}

	return issues
}
