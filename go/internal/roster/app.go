package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warroomhq/warroom/go/internal/models"
)

// RosterRepository defines what the app layer needs from the repository
type RosterRepository interface {
	GetRosterEntry(ctx context.Context, id uuid.UUID) (*models.Roster, error)
	GetRosterByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Roster, error)
	GetPlayerIDsByTeam(ctx context.Context, teamID uuid.UUID) (map[uuid.UUID]bool, error)
	UpdateRosterPosition(ctx context.Context, id uuid.UUID, position models.RosterPosition) (*models.Roster, error)
}

// App handles roster reads and lineup tweaks. Roster rows are created by the
// pick and trade transactions, never directly through this app.
type App struct {
	repo RosterRepository
}

func NewApp(repo RosterRepository) *App {
	return &App{repo: repo}
}

func (a *App) GetRosterByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Roster, error) {
	entries, err := a.repo.GetRosterByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	return entries, nil
}

// GetTeamPlayerSet returns the ids of every player on the team's roster.
func (a *App) GetTeamPlayerSet(ctx context.Context, teamID uuid.UUID) (map[uuid.UUID]bool, error) {
	ids, err := a.repo.GetPlayerIDsByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team player set: %w", err)
	}
	return ids, nil
}

// SetStarter moves a roster entry between the starting lineup and the bench.
func (a *App) SetStarter(ctx context.Context, entryID uuid.UUID, starter bool) (*models.Roster, error) {
	position := models.RosterPositionBench
	if starter {
		position = models.RosterPositionStarter
	}
	entry, err := a.repo.UpdateRosterPosition(ctx, entryID, position)
	if err != nil {
		return nil, fmt.Errorf("failed to set starter flag: %w", err)
	}
	return entry, nil
}
