// Package events holds the domain event payloads shared by the draft,
// trade, outbox and gateway packages.
package events

import (
	"time"
)

// Event type names as they appear on outbox rows and NATS subjects.
const (
	TypeDraftStarted   = "DraftStarted"
	TypeDraftPaused    = "DraftPaused"
	TypeDraftResumed   = "DraftResumed"
	TypeDraftCompleted = "DraftCompleted"
	TypeDraftCancelled = "DraftCancelled"
	TypePickStarted    = "PickStarted"
	TypePickMade       = "PickMade"
	TypeTradeProposed  = "TradeProposed"
	TypeTradeResolved  = "TradeResolved"
)

// DraftStartedPayload is the payload for a DraftStarted event
type DraftStartedPayload struct {
	DraftID    string    `json:"draft_id"`
	LeagueID   string    `json:"league_id"`
	StartedAt  time.Time `json:"started_at"`
	TotalPicks int       `json:"total_picks"`
	Rounds     int       `json:"rounds"`
}

// DraftPausedPayload is the payload for a DraftPaused event
type DraftPausedPayload struct {
	DraftID  string    `json:"draft_id"`
	PausedAt time.Time `json:"paused_at"`
	Reason   string    `json:"reason"`
}

// DraftResumedPayload is the payload for a DraftResumed event
type DraftResumedPayload struct {
	DraftID   string    `json:"draft_id"`
	ResumedAt time.Time `json:"resumed_at"`
}

// DraftCompletedPayload is the payload for a DraftCompleted event
type DraftCompletedPayload struct {
	DraftID     string    `json:"draft_id"`
	CompletedAt time.Time `json:"completed_at"`
	TotalPicks  int       `json:"total_picks"`
}

// DraftCancelledPayload is the payload for a DraftCancelled event
type DraftCancelledPayload struct {
	DraftID       string    `json:"draft_id"`
	CancelledAt   time.Time `json:"cancelled_at"`
	PicksReverted int       `json:"picks_reverted"`
}

// PickStartedPayload announces that a new pick is on the clock.
type PickStartedPayload struct {
	DraftID     string     `json:"draft_id"`
	TeamID      string     `json:"team_id"`
	Round       int        `json:"round"`
	Pick        int        `json:"pick"`
	OverallPick int        `json:"overall_pick"`
	StartedAt   time.Time  `json:"started_at"`
	TimeoutAt   *time.Time `json:"timeout_at,omitempty"` // nil for clockless drafts
}

// PickMadePayload is the payload for a PickMade event
type PickMadePayload struct {
	PickID      string    `json:"pick_id"`
	DraftID     string    `json:"draft_id"`
	TeamID      string    `json:"team_id"`
	PlayerID    string    `json:"player_id"`
	Round       int       `json:"round"`
	Pick        int       `json:"pick"`
	OverallPick int       `json:"overall_pick"`
	AutoPick    bool      `json:"auto_pick"`
	MadeAt      time.Time `json:"made_at"`
}

// TradeProposedPayload is the payload for a TradeProposed event
type TradeProposedPayload struct {
	TradeID      string    `json:"trade_id"`
	LeagueID     string    `json:"league_id"`
	Team1ID      string    `json:"team1_id"`
	Team2ID      string    `json:"team2_id"`
	Team1Players []string  `json:"team1_players"`
	Team2Players []string  `json:"team2_players"`
	ProposedBy   string    `json:"proposed_by"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// TradeResolvedPayload is the payload for a TradeResolved event covering
// accept, reject and cancel outcomes.
type TradeResolvedPayload struct {
	TradeID    string    `json:"trade_id"`
	LeagueID   string    `json:"league_id"`
	Status     string    `json:"status"`
	ResolvedAt time.Time `json:"resolved_at"`
}
