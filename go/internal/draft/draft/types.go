package draft

import (
	"time"

	"github.com/google/uuid"

	"github.com/warroomhq/warroom/go/internal/draft/sequencer"
	"github.com/warroomhq/warroom/go/internal/models"
)

// CreateDraftRequest creates a draft in PENDING for a league.
type CreateDraftRequest struct {
	LeagueID    uuid.UUID            `json:"league_id"`
	Settings    models.DraftSettings `json:"settings"`
	ScheduledAt *time.Time           `json:"scheduled_at,omitempty"`
}

// StartDraftRequest transitions a PENDING draft to IN_PROGRESS.
type StartDraftRequest struct {
	DraftID uuid.UUID `json:"draft_id"`
	ActorID uuid.UUID `json:"actor_id"`
}

// PauseDraftRequest pauses an IN_PROGRESS draft.
type PauseDraftRequest struct {
	DraftID uuid.UUID `json:"draft_id"`
	ActorID uuid.UUID `json:"actor_id"`
	Reason  string    `json:"reason,omitempty"`
}

// ResumeDraftRequest resumes a PAUSED draft.
type ResumeDraftRequest struct {
	DraftID uuid.UUID `json:"draft_id"`
	ActorID uuid.UUID `json:"actor_id"`
}

// CancelDraftRequest cancels a draft and reverts its picks.
type CancelDraftRequest struct {
	DraftID uuid.UUID `json:"draft_id"`
	ActorID uuid.UUID `json:"actor_id"`
}

// NextDeadline is the soonest pick deadline across in-progress drafts.
type NextDeadline struct {
	DraftID  uuid.UUID  `json:"draft_id"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

// DraftState is the full read model for one draft: the draft row, the team
// currently on the clock (nil when not IN_PROGRESS) and all committed picks.
type DraftState struct {
	Draft   *models.Draft      `json:"draft"`
	OnClock *sequencer.Turn    `json:"on_clock,omitempty"`
	Picks   []models.DraftPick `json:"picks"`
}
