// Package events defines event types and structures for deck build progress
// notifications.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
)

type EventType string

// Kafka topic carrying all build lifecycle events.
const Topic = "deckbuilder.builds"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	BuildStartedEvent        EventType = "build.started"
	BuildStageCompletedEvent EventType = "build.stage.completed"
	BuildCompletedEvent      EventType = "build.completed"
	BuildFailedEvent         EventType = "build.failed"
)

// Status values carried on every build event, matching the progress payload
// contract consumed by streaming gateways.
const (
	StatusStarted    = "started"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	BuildID   string         `json:"build_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// BuildStarted is published once when a deck build run begins.
type BuildStarted struct {
	BaseEvent

	Status       string              `json:"status"`
	Requirements models.Requirements `json:"requirements"`
}

func (b BuildStarted) GetType() EventType {
	return BuildStartedEvent
}

// BuildStageCompleted is published after each stage handler returns, before
// the next stage starts.
type BuildStageCompleted struct {
	BaseEvent

	Status    string       `json:"status"`
	Stage     string       `json:"stage"`
	Iteration int          `json:"iteration"`
	Message   string       `json:"message"`
	Deck      *models.Deck `json:"deck,omitempty"`
}

func (b BuildStageCompleted) GetType() EventType {
	return BuildStageCompletedEvent
}

// BuildCompleted is the terminal event for an approved build.
type BuildCompleted struct {
	BaseEvent

	Status     string       `json:"status"`
	Message    string       `json:"message"`
	Deck       *models.Deck `json:"deck"`
	DeckID     string       `json:"deck_id,omitempty"`
	Iterations int          `json:"iterations"`
	Forced     bool         `json:"forced"`
}

func (b BuildCompleted) GetType() EventType {
	return BuildCompletedEvent
}

// BuildFailed is the terminal event for an aborted build.
type BuildFailed struct {
	BaseEvent

	Status  string `json:"status"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func (b BuildFailed) GetType() EventType {
	return BuildFailedEvent
}

func NewBaseEvent(eventType EventType, buildID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		BuildID:   buildID,
		Metadata:  make(map[string]any),
	}
}
