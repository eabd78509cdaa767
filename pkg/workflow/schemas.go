package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Declared output schemas, one per stage. Generative output is validated
// against these before any field is trusted.

const roleEnum = `["win_condition", "removal", "counter", "ramp", "card_advantage", "utility", "protection", "mana_source"]`

const rangeSchema = `{
	"type": "object",
	"properties": {
		"min": {"type": "integer", "minimum": 0},
		"max": {"type": "integer", "minimum": 0}
	},
	"required": ["min", "max"]
}`

var strategySchema = mustCompileSchema(`{
	"type": "object",
	"properties": {
		"main_gameplan": {"type": "string", "minLength": 1},
		"key_synergies": {"type": "array", "items": {"type": "string"}},
		"card_ratios": {
			"type": "object",
			"additionalProperties": ` + rangeSchema + `
		},
		"mana_curve": {
			"type": "object",
			"additionalProperties": ` + rangeSchema + `
		},
		"key_cards": {"type": "array", "items": {"type": "string"}},
		"sideboard_focus": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["main_gameplan", "key_synergies", "card_ratios", "mana_curve", "sideboard_focus"]
}`)

const selectionEntrySchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"quantity": {"type": "integer", "minimum": 1},
		"role": {"type": "string", "enum": ` + roleEnum + `}
	},
	"required": ["name", "quantity", "role"]
}`

var selectionSchema = mustCompileSchema(`{
	"type": "object",
	"properties": {
		"main_deck": {
			"type": "object",
			"properties": {
				"creatures": {"type": "array", "items": ` + selectionEntrySchema + `},
				"spells": {"type": "array", "items": ` + selectionEntrySchema + `},
				"other": {"type": "array", "items": ` + selectionEntrySchema + `}
			},
			"required": ["creatures", "spells", "other"]
		},
		"lands": {"type": "array", "items": ` + selectionEntrySchema + `},
		"sideboard": {"type": "array", "items": ` + selectionEntrySchema + `}
	},
	"required": ["main_deck", "lands", "sideboard"]
}`)

const cardSuggestionSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"reason": {"type": "string"}
	},
	"required": ["name"]
}`

var optimizationSchema = mustCompileSchema(`{
	"type": "object",
	"properties": {
		"analysis": {
			"type": "object",
			"properties": {
				"curve_issues": {"type": "array", "items": {"type": "string"}},
				"color_issues": {"type": "array", "items": {"type": "string"}},
				"strategy_issues": {"type": "array", "items": {"type": "string"}},
				"sideboard_issues": {"type": "array", "items": {"type": "string"}}
			},
			"required": ["curve_issues", "color_issues", "strategy_issues", "sideboard_issues"]
		},
		"suggestions": {
			"type": "object",
			"properties": {
				"cards_to_remove": {"type": "array", "items": ` + cardSuggestionSchema + `},
				"cards_to_add": {"type": "array", "items": ` + cardSuggestionSchema + `},
				"quantity_adjustments": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"name": {"type": "string", "minLength": 1},
							"change": {"type": "integer"},
							"reason": {"type": "string"}
						},
						"required": ["name", "change"]
					}
				}
			},
			"required": ["cards_to_remove", "cards_to_add", "quantity_adjustments"]
		}
	},
	"required": ["analysis", "suggestions"]
}`)

var reviewSchema = mustCompileSchema(`{
	"type": "object",
	"properties": {
		"review": {
			"type": "object",
			"properties": {
				"rating": {"type": "integer", "minimum": 1, "maximum": 10},
				"strengths": {"type": "array", "items": {"type": "string"}},
				"weaknesses": {"type": "array", "items": {"type": "string"}},
				"matchups": {
					"type": "object",
					"properties": {
						"favorable": {"type": "array", "items": {"type": "string"}},
						"unfavorable": {"type": "array", "items": {"type": "string"}}
					},
					"required": ["favorable", "unfavorable"]
				}
			},
			"required": ["rating", "strengths", "weaknesses", "matchups"]
		},
		"decision": {"type": "string", "enum": ["APPROVE", "REVISE_STRATEGY", "NEEDS_OPTIMIZATION"]},
		"reasons": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["review", "decision", "reasons"]
}`)

func mustCompileSchema(definition string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(definition))
	if err != nil {
		panic(fmt.Sprintf("invalid stage schema: %v", err))
	}

	return schema
}

// checkProposal validates raw generative output against the stage schema and
// decodes it into the stage's typed output.
func checkProposal(schema *gojsonschema.Schema, raw json.RawMessage, out any) error {
	if !json.Valid(raw) {
		return errors.New("response is not valid JSON")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return err
	}

	if !result.Valid() {
		var violations []string
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}

		return fmt.Errorf("validation errors: %s", strings.Join(violations, "; "))
	}

	return json.Unmarshal(raw, out)
}
