package deck

import (
	"fmt"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
)

const (
	// MinLands and MaxLands bound the total land count for a sixty-card
	// constructed deck.
	MinLands = 20
	MaxLands = 28

	// manaSourceMultiplier scales a color's distribution share into the
	// number of sources that color needs. The source heuristic computed
	// max(20*share, 14*share); the larger multiplier always wins, and the
	// documented behavior is kept as-is.
	manaSourceMultiplier        = 20
	manaSourceMultiplierMinimum = 14
)

// ComputeStatistics derives the full statistics block for a deck. Calling it
// twice on an unmutated deck yields identical results.
func ComputeStatistics(d *models.Deck) models.DeckStatistics {
	stats := models.DeckStatistics{
		ColorDistribution:  map[models.Color]float64{},
		TypeDistribution:   map[string]int{},
		RoleDistribution:   map[models.CardRole]int{},
		ManaSourcesByColor: map[models.Color]int{},
		ManaCurve:          map[int]int{},
	}

	mainboard := d.Mainboard()

	// Average mana value and curve cover non-land mainboard cards only,
	// weighted by quantity.
	manaValueSum := 0.0
	nonLandCount := 0

	for _, entry := range mainboard {
		if entry.IsLand() {
			continue
		}

		manaValueSum += entry.ManaValue * float64(entry.Quantity)
		nonLandCount += entry.Quantity
		stats.ManaCurve[int(entry.ManaValue)] += entry.Quantity
	}

	if nonLandCount > 0 {
		stats.AverageManaValue = manaValueSum / float64(nonLandCount)
	}

	// Color distribution counts each entry once per color in its identity,
	// normalized by entry count rather than card quantity. Multi-color
	// entries contribute to every one of their colors, so the shares need
	// not sum to 1.
	if len(mainboard) > 0 {
		perEntry := 1.0 / float64(len(mainboard))

		for _, entry := range mainboard {
			for _, color := range entry.ColorIdentity {
				stats.ColorDistribution[color] += perEntry
			}
		}
	}

	for _, entry := range mainboard {
		stats.TypeDistribution[entry.TypeLine] += entry.Quantity

		if entry.Role != "" {
			stats.RoleDistribution[entry.Role] += entry.Quantity
		}
	}

	// Mana sources come from lands only, counted by the land's declared
	// color identity.
	for _, entry := range d.Lands {
		for _, color := range entry.ColorIdentity {
			stats.ManaSourcesByColor[color] += entry.Quantity
		}
	}

	return stats
}

// ValidateManaBase checks whether the land base plausibly supports the
// deck's colors. The per-color requirement is a heuristic consumed by the
// optimizer stage, not a legality rule.
func ValidateManaBase(d *models.Deck) []string {
	issues := []string{}
	stats := ComputeStatistics(d)

	for _, color := range models.AllColors {
		share, present := stats.ColorDistribution[color]
		if !present {
			continue
		}

		required := max(manaSourceMultiplier*share, manaSourceMultiplierMinimum*share)
		if float64(stats.ManaSourcesByColor[color]) < required {
			issues = append(issues, fmt.Sprintf("Insufficient %s mana sources", color))
		}
	}

	totalLands := 0
	for _, entry := range d.Lands {
		totalLands += entry.Quantity
	}

	if totalLands < MinLands {
		issues = append(issues, fmt.Sprintf("Too few lands (%d, want at least %d)", totalLands, MinLands))
	} else if totalLands > MaxLands {
		issues = append(issues, fmt.Sprintf("Too many lands (%d, want at most %d)", totalLands, MaxLands))
	}

	return issues
}
