package workflow

// Typed stage outputs. Each stage declares one concrete result type, schema
// validated immediately after the generative call, rather than trusting
// shape at use time.

// Range is an inclusive min/max count target.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// StrategyOutput is the strategist's game plan for the deck.
type StrategyOutput struct {
	MainGameplan   string           `json:"main_gameplan"`
	KeySynergies   []string         `json:"key_synergies"`
	CardRatios     map[string]Range `json:"card_ratios"`
	ManaCurve      map[string]Range `json:"mana_curve"`
	KeyCards       []string         `json:"key_cards"`
	SideboardFocus []string         `json:"sideboard_focus"`
}

// SelectionEntry names one card pick with quantity and role.
type SelectionEntry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Role     string `json:"role"`
}

// SelectionOutput is the selector's full card list, partitioned into
// mainboard categories, lands and sideboard.
type SelectionOutput struct {
	MainDeck struct {
		Creatures []SelectionEntry `json:"creatures"`
		Spells    []SelectionEntry `json:"spells"`
		Other     []SelectionEntry `json:"other"`
	} `json:"main_deck"`
	Lands     []SelectionEntry `json:"lands"`
	Sideboard []SelectionEntry `json:"sideboard"`
}

// CardSuggestion names a card to remove or add with the optimizer's reason.
type CardSuggestion struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// QuantityAdjustment is a signed change to an existing entry's quantity.
type QuantityAdjustment struct {
	Name   string `json:"name"`
	Change int    `json:"change"`
	Reason string `json:"reason"`
}

// OptimizationAnalysis lists the optimizer's findings by dimension.
type OptimizationAnalysis struct {
	CurveIssues     []string `json:"curve_issues"`
	ColorIssues     []string `json:"color_issues"`
	StrategyIssues  []string `json:"strategy_issues"`
	SideboardIssues []string `json:"sideboard_issues"`
}

// OptimizationSuggestions are the concrete deck changes to apply.
type OptimizationSuggestions struct {
	CardsToRemove       []CardSuggestion     `json:"cards_to_remove"`
	CardsToAdd          []CardSuggestion     `json:"cards_to_add"`
	QuantityAdjustments []QuantityAdjustment `json:"quantity_adjustments"`
}

// OptimizationOutput is the optimizer's analysis plus concrete changes.
type OptimizationOutput struct {
	Analysis    OptimizationAnalysis    `json:"analysis"`
	Suggestions OptimizationSuggestions `json:"suggestions"`
}

// ReviewOutput is the reviewer's assessment and routing decision.
type ReviewOutput struct {
	Review struct {
		Rating     int      `json:"rating"`
		Strengths  []string `json:"strengths"`
		Weaknesses []string `json:"weaknesses"`
		Matchups   struct {
			Favorable   []string `json:"favorable"`
			Unfavorable []string `json:"unfavorable"`
		} `json:"matchups"`
	} `json:"review"`
	Decision Decision `json:"decision"`
	Reasons  []string `json:"reasons"`
}
