package leagues

import (
	"github.com/google/uuid"
)

// CreateLeagueRequest represents the data needed to create a new league
type CreateLeagueRequest struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name" validate:"required"`
	SportID        string    `json:"sport_id" validate:"required"`
	CommissionerID uuid.UUID `json:"commissioner_id" validate:"required"`
	MaxTeams       int       `json:"max_teams" validate:"required"`
	Season         string    `json:"season" validate:"required"`
}
