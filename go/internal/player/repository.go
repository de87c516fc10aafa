package player

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

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const playerColumns = `id, sport_id, external_id, full_name, position, rank, is_available, created_at`

func scanPlayer(row pgx.Row) (*models.Player, error) {
	var p models.Player
	err := row.Scan(
		&p.ID, &p.SportID, &p.ExternalID, &p.FullName,
		&p.Position, &p.Rank, &p.IsAvailable, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("player: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	return scanPlayer(row)
}

// IsPlayerAvailable reads the contended availability flag. The answer is
// advisory: the pick commit re-checks it under the transaction.
func (r *Repository) IsPlayerAvailable(ctx context.Context, id uuid.UUID) (bool, error) {
	var available bool
	err := r.pool.QueryRow(ctx, `SELECT is_available FROM players WHERE id = $1`, id).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("player %s: %w", id, apperrors.ErrNotFound)
		}
		return false, fmt.Errorf("failed to read player availability: %w", err)
	}
	return available, nil
}

// ListAvailablePlayers returns undrafted players ordered by autopick
// preference: best rank first, lexicographic id as the tie-break.
func (r *Repository) ListAvailablePlayers(ctx context.Context, sportID string, limit int) ([]models.Player, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+playerColumns+` FROM players
		WHERE sport_id = $1 AND is_available
		ORDER BY rank, id::text
		LIMIT $2`,
		sportID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list available players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// BestAvailable returns the single top autopick candidate.
func (r *Repository) BestAvailable(ctx context.Context, sportID string) (*models.Player, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+playerColumns+` FROM players
		WHERE sport_id = $1 AND is_available
		ORDER BY rank, id::text
		LIMIT 1`,
		sportID,
	)
	return scanPlayer(row)
}
