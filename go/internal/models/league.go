package models

import (
	"time"

	"github.com/google/uuid"
)

// LeagueDraftStatus tracks where a league is in its draft lifecycle.
type LeagueDraftStatus string

const (
	LeagueDraftPending    LeagueDraftStatus = "PENDING"
	LeagueDraftInProgress LeagueDraftStatus = "IN_PROGRESS"
	LeagueDraftCompleted  LeagueDraftStatus = "COMPLETED"
)

// League represents a fantasy sports league
type League struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	SportID        string            `json:"sport_id"`
	CommissionerID uuid.UUID         `json:"commissioner_id"`
	MaxTeams       int               `json:"max_teams"`
	CurrentTeams   int               `json:"current_teams"`
	DraftStatus    LeagueDraftStatus `json:"draft_status"`
	Season         string            `json:"season"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
