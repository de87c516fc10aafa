package models

import (
	"time"

	"github.com/google/uuid"
)

// TradeStatus defines the status of a trade proposal. PENDING transitions
// exactly once to one of the terminal states. Expiry is derived from
// ExpiresAt at read time rather than stored.
type TradeStatus string

const (
	TradeStatusPending   TradeStatus = "PENDING"
	TradeStatusAccepted  TradeStatus = "ACCEPTED"
	TradeStatusRejected  TradeStatus = "REJECTED"
	TradeStatusCancelled TradeStatus = "CANCELLED"
)

// TradeDecision is a counterparty's or proposer's response to a pending trade.
type TradeDecision string

const (
	TradeDecisionAccept TradeDecision = "ACCEPT"
	TradeDecisionReject TradeDecision = "REJECT"
	TradeDecisionCancel TradeDecision = "CANCEL"
)

// Trade is a proposal to swap players between two teams in the same league.
// Team1Players leave team 1 for team 2, Team2Players the reverse; the sets
// are disjoint and validated against live rosters both at proposal time and
// again inside the acceptance transaction.
type Trade struct {
	ID           uuid.UUID   `json:"id"`
	LeagueID     uuid.UUID   `json:"league_id"`
	Team1ID      uuid.UUID   `json:"team1_id"`
	Team2ID      uuid.UUID   `json:"team2_id"`
	Team1Players []uuid.UUID `json:"team1_players"`
	Team2Players []uuid.UUID `json:"team2_players"`
	ProposedBy   uuid.UUID   `json:"proposed_by"` // team id, team1 or team2
	Status       TradeStatus `json:"status"`
	ExpiresAt    time.Time   `json:"expires_at"`
	CreatedAt    time.Time   `json:"created_at"`
	ResolvedAt   *time.Time  `json:"resolved_at,omitempty"`
}

// Expired reports whether an unresolved trade is past its expiry.
func (t *Trade) Expired(now time.Time) bool {
	return t.Status == TradeStatusPending && !now.Before(t.ExpiresAt)
}

// CounterpartyOf returns the team on the other side of the trade from teamID.
func (t *Trade) CounterpartyOf(teamID uuid.UUID) uuid.UUID {
	if teamID == t.Team1ID {
		return t.Team2ID
	}
	return t.Team1ID
}
