package workflow

import (
	"strings"

	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
)

// DefaultIterationLimit bounds the number of review passes per run.
const DefaultIterationLimit = 5

// Message is one entry of the build conversation: the human brief or a
// stage's structured output. The conversation is append-only within a run.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildState is the single mutable context threaded through all stages of
// one run. It is owned exclusively by the orchestrator; each stage receives
// it for the duration of its handler and returns it mutated.
type BuildState struct {
	Requirements models.Requirements
	Deck         *models.Deck
	Conversation []Message
	Stage        Stage
	Iteration    int
	Limit        int
	Omissions    []string
}

func newBuildState(requirements models.Requirements, limit int) *BuildState {
	if limit <= 0 {
		limit = DefaultIterationLimit
	}

	return &BuildState{
		Requirements: requirements,
		Stage:        StageStrategy,
		Limit:        limit,
	}
}

func (s *BuildState) appendMessage(role, content string) {
	s.Conversation = append(s.Conversation, Message{Role: role, Content: content})
}

func (s *BuildState) recordOmission(name, reason string) {
	s.Omissions = append(s.Omissions, name+": "+reason)
}

// transcript renders the conversation for inclusion in stage prompts.
func (s *BuildState) transcript() string {
	var sb strings.Builder

	for _, msg := range s.Conversation {
		sb.WriteString("[")
		sb.WriteString(msg.Role)
		sb.WriteString("]\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")
	}

	return sb.String()
}
