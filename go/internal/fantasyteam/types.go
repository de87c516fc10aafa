package fantasyteam

import (
	"github.com/google/uuid"
)

// CreateFantasyTeamRequest represents the data needed to create a fantasy team
type CreateFantasyTeamRequest struct {
	ID       uuid.UUID `json:"id"`
	LeagueID uuid.UUID `json:"league_id" validate:"required"`
	OwnerID  uuid.UUID `json:"owner_id" validate:"required"`
	Name     string    `json:"name" validate:"required"`
}

// RemovedTeam reports what a cascade removal touched.
type RemovedTeam struct {
	TeamID       uuid.UUID `json:"team_id"`
	LeagueID     uuid.UUID `json:"league_id"`
	RosterRows   int       `json:"roster_rows"`
	PickRows     int       `json:"pick_rows"`
	CurrentTeams int       `json:"current_teams"`
}
