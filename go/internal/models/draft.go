package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftStatus defines the status of a draft.
type DraftStatus string

const (
	DraftStatusPending    DraftStatus = "PENDING"
	DraftStatusInProgress DraftStatus = "IN_PROGRESS"
	DraftStatusPaused     DraftStatus = "PAUSED"
	DraftStatusCompleted  DraftStatus = "COMPLETED"
	DraftStatusCancelled  DraftStatus = "CANCELLED"
)

// DraftSettings holds JSONB configuration for drafts.
type DraftSettings struct {
	Rounds         int         `json:"rounds"`
	TimePerPickSec int         `json:"time_per_pick_sec"` // 0 means no pick clock
	DraftOrder     []uuid.UUID `json:"draft_order,omitempty"`
}

// HasClock reports whether picks in this draft run against a countdown.
func (s DraftSettings) HasClock() bool {
	return s.TimePerPickSec > 0
}

// Draft represents a draft instance. CurrentPick is the 1-based overall pick
// counter; it only moves through the conditioned commit in the pick
// repository, never through a plain update.
type Draft struct {
	ID           uuid.UUID     `json:"id"`
	LeagueID     uuid.UUID     `json:"league_id"`
	Status       DraftStatus   `json:"status"`
	Settings     DraftSettings `json:"settings"`
	CurrentPick  int           `json:"current_pick"`
	TotalPicks   int           `json:"total_picks"`
	NextDeadline *time.Time    `json:"next_deadline,omitempty"`
	ScheduledAt  *time.Time    `json:"scheduled_at,omitempty"`
	StartedAt    *time.Time    `json:"started_at,omitempty"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
