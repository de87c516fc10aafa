package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Topics group events by aggregate and become the middle segment of the
// NATS subject (<prefix>.<topic>.<event_type>).
const (
	TopicDraft = "draft"
	TopicTrade = "trade"
)

// OutboxEvent represents an outbox event for the application layer
type OutboxEvent struct {
	ID          uuid.UUID       `json:"id"`
	AggregateID uuid.UUID       `json:"aggregate_id"`
	Topic       string          `json:"topic"`
	EventType   string          `json:"event_type"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
	SentAt      *time.Time      `json:"sent_at,omitempty"`
}
