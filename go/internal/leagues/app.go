package leagues

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/warroomhq/warroom/go/internal/apperrors"
	"github.com/warroomhq/warroom/go/internal/models"
)

// LeaguesRepository defines what the app layer needs from the repository
type LeaguesRepository interface {
	CreateLeague(ctx context.Context, req CreateLeagueRequest) (*models.League, error)
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	UpdateDraftStatus(ctx context.Context, id uuid.UUID, status models.LeagueDraftStatus) (*models.League, error)
}

// App handles leagues business logic
type App struct {
	repo LeaguesRepository
}

// NewApp creates a new leagues App
func NewApp(repo LeaguesRepository) *App {
	return &App{
		repo: repo,
	}
}

// CreateLeague creates a new league with validation
func (a *App) CreateLeague(ctx context.Context, req CreateLeagueRequest) (*models.League, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.MaxTeams <= 0 {
		return nil, fmt.Errorf("max_teams must be greater than 0")
	}
	if req.CommissionerID == uuid.Nil {
		return nil, fmt.Errorf("commissioner_id is required")
	}

	league, err := a.repo.CreateLeague(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create league: %w", err)
	}

	log.Info().
		Str("league_id", league.ID.String()).
		Str("sport_id", league.SportID).
		Msg("created league")
	return league, nil
}

// GetLeague retrieves a league by ID
func (a *App) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	league, err := a.repo.GetLeague(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	return league, nil
}

// RequireCommissioner returns the league after verifying that actor is its
// commissioner. Privileged draft and team operations gate on this.
func (a *App) RequireCommissioner(ctx context.Context, leagueID, actor uuid.UUID) (*models.League, error) {
	league, err := a.repo.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	if league.CommissionerID != actor {
		return nil, fmt.Errorf("user %s is not commissioner of league %s: %w",
			actor, leagueID, apperrors.ErrPermissionDenied)
	}
	return league, nil
}

// UpdateDraftStatus moves the league's draft lifecycle marker.
func (a *App) UpdateDraftStatus(ctx context.Context, id uuid.UUID, status models.LeagueDraftStatus) (*models.League, error) {
	league, err := a.repo.UpdateDraftStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update league draft status: %w", err)
	}
	return league, nil
}
