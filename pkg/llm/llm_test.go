package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	config := Config{
		BaseURL: "https://api.groq.com/openai/v1",
		Model:   "llama-3.3-70b-versatile",
		APIKey:  "test-key",
	}
	require.NoError(t, config.Validate())

	missingKey := config
	missingKey.APIKey = ""
	assert.ErrorIs(t, missingKey.Validate(), ErrInvalidConfig)

	missingModel := config
	missingModel.Model = ""
	assert.ErrorIs(t, missingModel.Validate(), ErrInvalidConfig)

	missingURL := config
	missingURL.BaseURL = ""
	assert.ErrorIs(t, missingURL.Validate(), ErrInvalidConfig)
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("LLM_BASE_URL", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("GROQ_API_KEY", "secret")

	config := ConfigFromEnv()

	assert.Equal(t, "https://api.groq.com/openai/v1", config.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", config.Model)
	assert.Equal(t, "secret", config.APIKey)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare object",
			input:    `{"strategy": "aggro"}`,
			expected: `{"strategy": "aggro"}`,
		},
		{
			name:     "fenced with language tag",
			input:    "```json\n{\"strategy\": \"aggro\"}\n```",
			expected: `{"strategy": "aggro"}`,
		},
		{
			name:     "fenced without language tag",
			input:    "```\n{\"strategy\": \"aggro\"}\n```",
			expected: `{"strategy": "aggro"}`,
		},
		{
			name:     "prose around object",
			input:    "Here is the plan:\n{\"strategy\": \"aggro\"}\nLet me know!",
			expected: `{"strategy": "aggro"}`,
		},
		{
			name:     "prose around array",
			input:    "The cards are: [{\"name\": \"Shock\"}] as requested.",
			expected: `[{"name": "Shock"}]`,
		},
		{
			name:     "fenced with prose before fence",
			input:    "Sure!\n```json\n{\"rating\": 8}\n```\nDone.",
			expected: `{"rating": 8}`,
		},
		{
			name:     "no json at all",
			input:    "I cannot produce that.",
			expected: "I cannot produce that.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJSON(tt.input))
		})
	}
}
