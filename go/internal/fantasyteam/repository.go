package fantasyteam

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/warroomhq/warroom/go/internal/apperrors"
	"github.com/warroomhq/warroom/go/internal/models"
	"github.com/warroomhq/warroom/go/internal/sqlutil"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const teamColumns = `id, league_id, owner_id, name, draft_position, created_at`

func scanTeam(row pgx.Row) (*models.FantasyTeam, error) {
	var t models.FantasyTeam
	err := row.Scan(&t.ID, &t.LeagueID, &t.OwnerID, &t.Name, &t.DraftPosition, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("fantasy team: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

// CreateFantasyTeam inserts the team and claims a league seat in one
// transaction. The seat claim is conditioned on current_teams < max_teams so
// a full league rejects the insert instead of overfilling.
func (r *Repository) CreateFantasyTeam(ctx context.Context, req CreateFantasyTeamRequest) (*models.FantasyTeam, error) {
	var team *models.FantasyTeam
	err := sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE leagues SET current_teams = current_teams + 1, updated_at = now()
			WHERE id = $1 AND current_teams < max_teams`,
			req.LeagueID,
		)
		if err != nil {
			return fmt.Errorf("failed to claim league seat: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("league %s is full or missing: %w", req.LeagueID, apperrors.ErrInvalidState)
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO fantasy_teams (id, league_id, owner_id, name)
			VALUES ($1, $2, $3, $4)
			RETURNING `+teamColumns,
			req.ID, req.LeagueID, req.OwnerID, req.Name,
		)
		team, err = scanTeam(row)
		if err != nil {
			return fmt.Errorf("failed to create fantasy team: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (r *Repository) GetFantasyTeam(ctx context.Context, id uuid.UUID) (*models.FantasyTeam, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+teamColumns+` FROM fantasy_teams WHERE id = $1`, id)
	return scanTeam(row)
}

// GetFantasyTeamsByLeague returns the league's teams, seated teams first in
// draft-position order.
func (r *Repository) GetFantasyTeamsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.FantasyTeam, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+teamColumns+` FROM fantasy_teams
		WHERE league_id = $1
		ORDER BY draft_position NULLS LAST, created_at`,
		leagueID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get fantasy teams by league: %w", err)
	}
	defer rows.Close()

	var teams []models.FantasyTeam
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

// SetDraftPosition assigns the team's 1-based seat in the draft order.
func (r *Repository) SetDraftPosition(ctx context.Context, id uuid.UUID, position int) (*models.FantasyTeam, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE fantasy_teams SET draft_position = $2
		WHERE id = $1
		RETURNING `+teamColumns,
		id, position,
	)
	team, err := scanTeam(row)
	if err != nil {
		if sqlutil.IsUniqueViolation(err) {
			return nil, fmt.Errorf("draft position %d already taken: %w", position, apperrors.ErrInvalidState)
		}
		return nil, fmt.Errorf("failed to set draft position: %w", err)
	}
	return team, nil
}

// RemoveFantasyTeam deletes the team and cascades to its roster and pick
// rows, releasing the league seat in the same transaction.
func (r *Repository) RemoveFantasyTeam(ctx context.Context, id uuid.UUID) (*RemovedTeam, error) {
	var removed RemovedTeam
	err := sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		// Child rows first: rosters and draft_picks both reference
		// fantasy_teams(id), so deleting the team row while they exist
		// trips the foreign keys.
		tag, err := tx.Exec(ctx, `DELETE FROM rosters WHERE fantasy_team_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete roster rows: %w", err)
		}
		removed.RosterRows = int(tag.RowsAffected())

		tag, err = tx.Exec(ctx, `DELETE FROM draft_picks WHERE team_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete pick rows: %w", err)
		}
		removed.PickRows = int(tag.RowsAffected())

		row := tx.QueryRow(ctx, `DELETE FROM fantasy_teams WHERE id = $1 RETURNING id, league_id`, id)
		if err := row.Scan(&removed.TeamID, &removed.LeagueID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("fantasy team %s: %w", id, apperrors.ErrNotFound)
			}
			return fmt.Errorf("failed to delete fantasy team: %w", err)
		}

		err = tx.QueryRow(ctx, `
			UPDATE leagues SET current_teams = current_teams - 1, updated_at = now()
			WHERE id = $1 AND current_teams > 0
			RETURNING current_teams`,
			removed.LeagueID,
		).Scan(&removed.CurrentTeams)
		if err != nil {
			return fmt.Errorf("failed to release league seat: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}
