package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftPick records a single committed pick. Rows are immutable once created;
// OverallPick carries a per-draft uniqueness constraint so two writers racing
// for the same turn can never both commit.
type DraftPick struct {
	ID          uuid.UUID `json:"id"`
	DraftID     uuid.UUID `json:"draft_id"`
	Round       int       `json:"round"`
	Pick        int       `json:"pick"`         // pick number in the round
	OverallPick int       `json:"overall_pick"` // pick number overall
	TeamID      uuid.UUID `json:"team_id"`
	PlayerID    uuid.UUID `json:"player_id"`
	AutoPick    bool      `json:"auto_pick"` // made by the clock, not the owner
	MadeAt      time.Time `json:"made_at"`
}
