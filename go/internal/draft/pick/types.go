package pick

import (
	"time"

	"github.com/google/uuid"

	"github.com/warroomhq/warroom/go/internal/draft/sequencer"
)

// SubmitPickRequest is a user-made pick for the team on the clock.
type SubmitPickRequest struct {
	DraftID  uuid.UUID `json:"draft_id"`
	TeamID   uuid.UUID `json:"team_id"`
	PlayerID uuid.UUID `json:"player_id"`
	ActorID  uuid.UUID `json:"actor_id"`
}

// CommitPickRequest carries everything the storage layer needs to commit one
// pick atomically. ExpectedPick is the overall pick number the caller read
// before deciding; the commit fails with ErrStaleWrite if the draft has moved
// past it.
type CommitPickRequest struct {
	DraftID      uuid.UUID
	ExpectedPick int
	Round        int
	Pick         int
	TeamID       uuid.UUID
	PlayerID     uuid.UUID
	AutoPick     bool
	NextDeadline *time.Time      // nil on the final pick or for clockless drafts
	NextTurn     *sequencer.Turn // nil on the final pick
	Now          time.Time
}
