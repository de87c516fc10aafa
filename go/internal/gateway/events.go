// Package gateway pushes draft and trade events to websocket clients. Clients
// subscribe to a channel (a draft id for draft events, a league id for trade
// events); a JetStream consumer feeds the broadcast loop.
package gateway

import (
	"encoding/json"
	"time"
)

// Event is the wire format pushed to websocket clients.
type Event struct {
	ID        string          `json:"id"`         // Event UUID
	ChannelID string          `json:"channel_id"` // Draft or league UUID
	Type      string          `json:"type"`       // Event type
	Timestamp time.Time       `json:"timestamp"`  // Event creation time
	Data      json.RawMessage `json:"data"`       // Event-specific payload
}
