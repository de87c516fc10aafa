package fantasyteam

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/warroomhq/warroom/go/internal/apperrors"
	"github.com/warroomhq/warroom/go/internal/models"
)

// FantasyTeamRepository defines what the app layer needs from the repository
type FantasyTeamRepository interface {
	CreateFantasyTeam(ctx context.Context, req CreateFantasyTeamRequest) (*models.FantasyTeam, error)
	GetFantasyTeam(ctx context.Context, id uuid.UUID) (*models.FantasyTeam, error)
	GetFantasyTeamsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.FantasyTeam, error)
	SetDraftPosition(ctx context.Context, id uuid.UUID, position int) (*models.FantasyTeam, error)
	RemoveFantasyTeam(ctx context.Context, id uuid.UUID) (*RemovedTeam, error)
}

// LeagueApp defines what the app layer needs from the leagues app
type LeagueApp interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	RequireCommissioner(ctx context.Context, leagueID, actor uuid.UUID) (*models.League, error)
}

// App handles fantasy team business logic
type App struct {
	repo      FantasyTeamRepository
	leagueApp LeagueApp
}

// NewApp creates a new fantasy team App
func NewApp(repo FantasyTeamRepository, leagueApp LeagueApp) *App {
	return &App{
		repo:      repo,
		leagueApp: leagueApp,
	}
}

// CreateFantasyTeam creates a team in a league that has not drafted yet.
func (a *App) CreateFantasyTeam(ctx context.Context, req CreateFantasyTeamRequest) (*models.FantasyTeam, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.OwnerID == uuid.Nil {
		return nil, fmt.Errorf("owner_id is required")
	}

	league, err := a.leagueApp.GetLeague(ctx, req.LeagueID)
	if err != nil {
		return nil, err
	}
	if league.DraftStatus != models.LeagueDraftPending {
		return nil, fmt.Errorf("league %s draft already %s: %w",
			league.ID, league.DraftStatus, apperrors.ErrInvalidState)
	}

	team, err := a.repo.CreateFantasyTeam(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create fantasy team: %w", err)
	}

	log.Info().
		Str("team_id", team.ID.String()).
		Str("league_id", team.LeagueID.String()).
		Msg("created fantasy team")
	return team, nil
}

// GetFantasyTeam retrieves a team by ID
func (a *App) GetFantasyTeam(ctx context.Context, id uuid.UUID) (*models.FantasyTeam, error) {
	team, err := a.repo.GetFantasyTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get fantasy team: %w", err)
	}
	return team, nil
}

// GetFantasyTeamsByLeague retrieves all teams for a league
func (a *App) GetFantasyTeamsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.FantasyTeam, error) {
	teams, err := a.repo.GetFantasyTeamsByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fantasy teams by league: %w", err)
	}
	return teams, nil
}

// SetDraftPosition seats a team in the draft order. Commissioner-only, and
// only before the draft starts.
func (a *App) SetDraftPosition(ctx context.Context, teamID uuid.UUID, position int, actor uuid.UUID) (*models.FantasyTeam, error) {
	if position < 1 {
		return nil, fmt.Errorf("draft position must be >= 1")
	}

	team, err := a.repo.GetFantasyTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	league, err := a.leagueApp.RequireCommissioner(ctx, team.LeagueID, actor)
	if err != nil {
		return nil, err
	}
	if league.DraftStatus != models.LeagueDraftPending {
		return nil, fmt.Errorf("league %s draft already %s: %w",
			league.ID, league.DraftStatus, apperrors.ErrInvalidState)
	}
	if position > league.CurrentTeams {
		return nil, fmt.Errorf("draft position %d exceeds team count %d", position, league.CurrentTeams)
	}

	return a.repo.SetDraftPosition(ctx, teamID, position)
}

// RemoveTeamFromDraft removes a team before the draft starts, cascading to
// its roster and pick rows and releasing the league seat. Mid-draft removal
// is rejected: the draft-order snapshot is never renumbered, so a missing
// team would corrupt turn accounting.
func (a *App) RemoveTeamFromDraft(ctx context.Context, teamID, actor uuid.UUID) (*RemovedTeam, error) {
	team, err := a.repo.GetFantasyTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	league, err := a.leagueApp.RequireCommissioner(ctx, team.LeagueID, actor)
	if err != nil {
		return nil, err
	}
	if league.DraftStatus != models.LeagueDraftPending {
		return nil, fmt.Errorf("cannot remove team while league draft is %s: %w",
			league.DraftStatus, apperrors.ErrInvalidState)
	}

	removed, err := a.repo.RemoveFantasyTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove fantasy team: %w", err)
	}

	log.Info().
		Str("team_id", removed.TeamID.String()).
		Str("league_id", removed.LeagueID.String()).
		Int("roster_rows", removed.RosterRows).
		Int("pick_rows", removed.PickRows).
		Int("current_teams", removed.CurrentTeams).
		Msg("removed fantasy team from draft")
	return removed, nil
}
