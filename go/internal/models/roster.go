package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Roster struct {
	ID              uuid.UUID       `json:"id"`
	FantasyTeamID   uuid.UUID       `json:"fantasy_team_id"`
	PlayerID        uuid.UUID       `json:"player_id"`
	Position        RosterPosition  `json:"position"`
	AcquisitionType AcquisitionType `json:"acquisition_type"`
	AcquisitionMeta json.RawMessage `json:"acquisition_meta,omitempty"`
	AcquiredAt      time.Time       `json:"acquired_at"`
}

// RosterPosition represents the position a player has on a roster
type RosterPosition string

const (
	RosterPositionStarter RosterPosition = "STARTER"
	RosterPositionBench   RosterPosition = "BENCH"
)

// AcquisitionType represents how a player was acquired
type AcquisitionType string

const (
	AcquisitionTypeDraft AcquisitionType = "DRAFT"
	AcquisitionTypeTrade AcquisitionType = "TRADE"
)
