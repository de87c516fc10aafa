package leagues

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/warroomhq/warroom/go/internal/apperrors"
	"github.com/warroomhq/warroom/go/internal/models"
)

// Repository implements league data access operations
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new leagues repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leagueColumns = `id, name, sport_id, commissioner_id, max_teams, current_teams, draft_status, season, created_at, updated_at`

func scanLeague(row pgx.Row) (*models.League, error) {
	var l models.League
	err := row.Scan(
		&l.ID, &l.Name, &l.SportID, &l.CommissionerID,
		&l.MaxTeams, &l.CurrentTeams, &l.DraftStatus, &l.Season,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("league: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &l, nil
}

// CreateLeague creates a new league
func (r *Repository) CreateLeague(ctx context.Context, req CreateLeagueRequest) (*models.League, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leagues (id, name, sport_id, commissioner_id, max_teams, current_teams, draft_status, season)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7)
		RETURNING `+leagueColumns,
		req.ID, req.Name, req.SportID, req.CommissionerID, req.MaxTeams,
		models.LeagueDraftPending, req.Season,
	)
	league, err := scanLeague(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create league: %w", err)
	}
	return league, nil
}

// GetLeague retrieves a league by ID
func (r *Repository) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leagueColumns+` FROM leagues WHERE id = $1`, id)
	return scanLeague(row)
}

// UpdateDraftStatus moves the league's draft lifecycle marker.
func (r *Repository) UpdateDraftStatus(ctx context.Context, id uuid.UUID, status models.LeagueDraftStatus) (*models.League, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE leagues SET draft_status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+leagueColumns,
		id, status,
	)
	league, err := scanLeague(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update league draft status: %w", err)
	}
	return league, nil
}
