package event

import (
	"time"

	"github.com/viant/actiongate/internal/clock"
)

// Lifecycle topics published by the gate and the engine.
const (
	TopicDecisionCreated  = "decision.created"
	TopicActionExecuted   = "action.executed"
	TopicActionRolledBack = "action.rolled_back"
)

// Event is the envelope carried on lifecycle queues.
type Event[T any] struct {
	Topic     string                 `json:"topic"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// New creates an event for the supplied topic.
func New[T any](topic string, data T) *Event[T] {
	return &Event[T]{
		Topic:     topic,
		CreatedAt: clock.Now(),
		Data:      data,
	}
}
