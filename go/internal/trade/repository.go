package trade

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warroomhq/warroom/go/internal/apperrors"
	"github.com/warroomhq/warroom/go/internal/draft/events"
	"github.com/warroomhq/warroom/go/internal/draft/outbox"
	"github.com/warroomhq/warroom/go/internal/models"
	"github.com/warroomhq/warroom/go/internal/sqlutil"
)

type Repository struct {
	pool   *pgxpool.Pool
	outbox *outbox.Repository
}

func NewRepository(pool *pgxpool.Pool, outboxRepo *outbox.Repository) *Repository {
	return &Repository{pool: pool, outbox: outboxRepo}
}

const tradeColumns = `id, league_id, team1_id, team2_id, team1_players, team2_players,
	proposed_by, status, expires_at, created_at, resolved_at`

func scanTrade(row pgx.Row) (*models.Trade, error) {
	var t models.Trade
	err := row.Scan(&t.ID, &t.LeagueID, &t.Team1ID, &t.Team2ID, &t.Team1Players, &t.Team2Players,
		&t.ProposedBy, &t.Status, &t.ExpiresAt, &t.CreatedAt, &t.ResolvedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) CreateTrade(ctx context.Context, t *models.Trade) (*models.Trade, error) {
	var created *models.Trade
	err := sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO trades (id, league_id, team1_id, team2_id, team1_players, team2_players,
			                    proposed_by, status, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING `+tradeColumns,
			uuid.New(), t.LeagueID, t.Team1ID, t.Team2ID, t.Team1Players, t.Team2Players,
			t.ProposedBy, models.TradeStatusPending, t.ExpiresAt,
		)
		var err error
		created, err = scanTrade(row)
		if err != nil {
			return fmt.Errorf("failed to create trade: %w", err)
		}

		payload := events.TradeProposedPayload{
			TradeID:      created.ID.String(),
			LeagueID:     created.LeagueID.String(),
			Team1ID:      created.Team1ID.String(),
			Team2ID:      created.Team2ID.String(),
			Team1Players: uuidStrings(created.Team1Players),
			Team2Players: uuidStrings(created.Team2Players),
			ProposedBy:   created.ProposedBy.String(),
			ExpiresAt:    created.ExpiresAt,
		}
		return r.outbox.InsertJSON(ctx, tx, outbox.TopicTrade, created.LeagueID, events.TypeTradeProposed, payload)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repository) GetTrade(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	t, err := scanTrade(r.pool.QueryRow(ctx, `
		SELECT `+tradeColumns+` FROM trades WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("trade %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return t, nil
}

func (r *Repository) ListTradesByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Trade, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+tradeColumns+` FROM trades
		WHERE team1_id = $1 OR team2_id = $1
		ORDER BY created_at DESC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		if err := rows.Scan(&t.ID, &t.LeagueID, &t.Team1ID, &t.Team2ID, &t.Team1Players, &t.Team2Players,
			&t.ProposedBy, &t.Status, &t.ExpiresAt, &t.CreatedAt, &t.ResolvedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// ResolveTrade flips a PENDING trade to a terminal status without moving any
// players. Used for REJECTED and CANCELLED.
func (r *Repository) ResolveTrade(ctx context.Context, tradeID uuid.UUID, status models.TradeStatus, resolvedAt time.Time) (*models.Trade, error) {
	var resolved *models.Trade
	err := sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE trades
			SET status = $2, resolved_at = $3
			WHERE id = $1 AND status = $4
			RETURNING `+tradeColumns,
			tradeID, status, resolvedAt, models.TradeStatusPending,
		)
		var err error
		resolved, err = scanTrade(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("trade %s is not pending: %w", tradeID, apperrors.ErrInvalidState)
			}
			return fmt.Errorf("failed to resolve trade: %w", err)
		}

		payload := events.TradeResolvedPayload{
			TradeID:    resolved.ID.String(),
			LeagueID:   resolved.LeagueID.String(),
			Status:     string(status),
			ResolvedAt: resolvedAt,
		}
		return r.outbox.InsertJSON(ctx, tx, outbox.TopicTrade, resolved.LeagueID, events.TypeTradeResolved, payload)
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// ExecuteTrade accepts a trade and swaps the players in one transaction.
// The status flip is conditioned on PENDING, and every roster move is
// conditioned on the player still belonging to the giving team; a player who
// moved since proposal rolls the whole swap back with ErrInvalidAsset.
func (r *Repository) ExecuteTrade(ctx context.Context, tradeID uuid.UUID, resolvedAt time.Time) (*models.Trade, error) {
	var accepted *models.Trade
	err := sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE trades
			SET status = $2, resolved_at = $3
			WHERE id = $1 AND status = $4
			RETURNING `+tradeColumns,
			tradeID, models.TradeStatusAccepted, resolvedAt, models.TradeStatusPending,
		)
		var err error
		accepted, err = scanTrade(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("trade %s is not pending: %w", tradeID, apperrors.ErrInvalidState)
			}
			return fmt.Errorf("failed to accept trade: %w", err)
		}

		if err := r.movePlayers(ctx, tx, accepted.ID, accepted.Team1Players, accepted.Team1ID, accepted.Team2ID); err != nil {
			return err
		}
		if err := r.movePlayers(ctx, tx, accepted.ID, accepted.Team2Players, accepted.Team2ID, accepted.Team1ID); err != nil {
			return err
		}

		payload := events.TradeResolvedPayload{
			TradeID:    accepted.ID.String(),
			LeagueID:   accepted.LeagueID.String(),
			Status:     string(models.TradeStatusAccepted),
			ResolvedAt: resolvedAt,
		}
		return r.outbox.InsertJSON(ctx, tx, outbox.TopicTrade, accepted.LeagueID, events.TypeTradeResolved, payload)
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

func (r *Repository) movePlayers(ctx context.Context, tx pgx.Tx, tradeID uuid.UUID, players []uuid.UUID, from, to uuid.UUID) error {
	if len(players) == 0 {
		return nil
	}

	meta, err := json.Marshal(map[string]any{
		"trade_id":  tradeID.String(),
		"from_team": from.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal acquisition meta: %w", err)
	}

	for _, playerID := range players {
		tag, err := tx.Exec(ctx, `
			UPDATE rosters
			SET fantasy_team_id = $3, position = $4, acquisition_type = $5,
			    acquisition_meta = $6, acquired_at = NOW()
			WHERE player_id = $1 AND fantasy_team_id = $2`,
			playerID, from, to, models.RosterPositionBench, models.AcquisitionTypeTrade, meta,
		)
		if err != nil {
			return fmt.Errorf("failed to move player %s: %w", playerID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("player %s is no longer on team %s: %w", playerID, from, apperrors.ErrInvalidAsset)
		}
	}
	return nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
