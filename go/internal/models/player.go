package models

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a sports player in a league's draft pool. IsAvailable is
// the single contended flag during a draft: exactly one committing writer may
// flip it from true to false, and CancelDraft is the only path back.
type Player struct {
	ID          uuid.UUID `json:"id"`
	SportID     string    `json:"sport_id"`
	ExternalID  string    `json:"external_id"`
	FullName    string    `json:"full_name"`
	Position    string    `json:"position"`
	Rank        int       `json:"rank"` // autopick ordering, lower is better
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}
