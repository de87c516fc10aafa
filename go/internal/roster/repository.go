package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sqlc-dev/pqtype"
	"github.com/warroomhq/warroom/go/internal/apperrors"
	"github.com/warroomhq/warroom/go/internal/models"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const rosterColumns = `id, fantasy_team_id, player_id, position, acquisition_type, acquisition_meta, acquired_at`

func scanRoster(row pgx.Row) (*models.Roster, error) {
	var (
		r    models.Roster
		meta pqtype.NullRawMessage
	)
	err := row.Scan(
		&r.ID, &r.FantasyTeamID, &r.PlayerID, &r.Position,
		&r.AcquisitionType, &meta, &r.AcquiredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("roster entry: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	if meta.Valid {
		r.AcquisitionMeta = meta.RawMessage
	}
	return &r, nil
}

func (r *Repository) GetRosterEntry(ctx context.Context, id uuid.UUID) (*models.Roster, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+rosterColumns+` FROM rosters WHERE id = $1`, id)
	return scanRoster(row)
}

// GetRosterByTeam returns the team's full roster.
func (r *Repository) GetRosterByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Roster, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+rosterColumns+` FROM rosters
		WHERE fantasy_team_id = $1
		ORDER BY acquired_at`,
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster by team: %w", err)
	}
	defer rows.Close()

	var entries []models.Roster
	for rows.Next() {
		entry, err := scanRoster(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// GetPlayerIDsByTeam returns the set of player ids on the team's roster.
// Trade validation compares offered assets against this set.
func (r *Repository) GetPlayerIDsByTeam(ctx context.Context, teamID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := r.pool.Query(ctx, `SELECT player_id FROM rosters WHERE fantasy_team_id = $1`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster player ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// UpdateRosterPosition flips a player between starter and bench.
func (r *Repository) UpdateRosterPosition(ctx context.Context, id uuid.UUID, position models.RosterPosition) (*models.Roster, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE rosters SET position = $2
		WHERE id = $1
		RETURNING `+rosterColumns,
		id, position,
	)
	entry, err := scanRoster(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update roster position: %w", err)
	}
	return entry, nil
}
