package models

import (
	"time"

	"github.com/google/uuid"
)

// FantasyTeam is one member's team inside a league. DraftPosition is the
// 1-based seat in the draft order, assigned before the draft starts and
// unique within the league.
type FantasyTeam struct {
	ID            uuid.UUID `json:"id"`
	LeagueID      uuid.UUID `json:"league_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Name          string    `json:"name"`
	DraftPosition *int      `json:"draft_position,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
