package pick

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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

const pickColumns = `id, draft_id, round, pick, overall_pick, team_id, player_id, auto_pick, made_at`

func scanPick(row pgx.Row) (*models.DraftPick, error) {
	var p models.DraftPick
	err := row.Scan(&p.ID, &p.DraftID, &p.Round, &p.Pick, &p.OverallPick,
		&p.TeamID, &p.PlayerID, &p.AutoPick, &p.MadeAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CommitPick commits one pick in a single transaction. The draft-row update
// is conditioned on current_pick so only one writer can win a given slot;
// the unique (draft_id, overall_pick) index backs that up if two transactions
// interleave. Loser paths map to ErrStaleWrite so callers can treat duplicate
// timer fires and lost races as no-ops.
func (r *Repository) CommitPick(ctx context.Context, req CommitPickRequest) (*models.DraftPick, bool, error) {
	var committed *models.DraftPick
	var completed bool

	err := sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		var newCurrent, totalPicks int
		err := tx.QueryRow(ctx, `
			UPDATE drafts
			SET current_pick = current_pick + 1, next_deadline = $3, updated_at = NOW()
			WHERE id = $1 AND status = $4 AND current_pick = $2
			RETURNING current_pick, total_picks`,
			req.DraftID, req.ExpectedPick, req.NextDeadline, models.DraftStatusInProgress,
		).Scan(&newCurrent, &totalPicks)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("draft %s moved past pick %d: %w", req.DraftID, req.ExpectedPick, apperrors.ErrStaleWrite)
			}
			return fmt.Errorf("failed to advance draft: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE players SET is_available = FALSE
			WHERE id = $1 AND is_available`, req.PlayerID)
		if err != nil {
			return fmt.Errorf("failed to claim player: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("player %s: %w", req.PlayerID, apperrors.ErrPlayerUnavailable)
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO draft_picks (id, draft_id, round, pick, overall_pick, team_id, player_id, auto_pick)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+pickColumns,
			uuid.New(), req.DraftID, req.Round, req.Pick, req.ExpectedPick,
			req.TeamID, req.PlayerID, req.AutoPick,
		)
		committed, err = scanPick(row)
		if err != nil {
			if sqlutil.IsUniqueViolation(err) {
				return fmt.Errorf("pick %d already committed for draft %s: %w", req.ExpectedPick, req.DraftID, apperrors.ErrStaleWrite)
			}
			return fmt.Errorf("failed to insert draft pick: %w", err)
		}

		meta, err := json.Marshal(map[string]any{
			"draft_id":     req.DraftID.String(),
			"overall_pick": req.ExpectedPick,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal acquisition meta: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO rosters (id, fantasy_team_id, player_id, position, acquisition_type, acquisition_meta)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), req.TeamID, req.PlayerID,
			models.RosterPositionBench, models.AcquisitionTypeDraft, meta,
		); err != nil {
			return fmt.Errorf("failed to insert roster entry: %w", err)
		}

		made := events.PickMadePayload{
			PickID:      committed.ID.String(),
			DraftID:     req.DraftID.String(),
			TeamID:      req.TeamID.String(),
			PlayerID:    req.PlayerID.String(),
			Round:       req.Round,
			Pick:        req.Pick,
			OverallPick: req.ExpectedPick,
			AutoPick:    req.AutoPick,
			MadeAt:      committed.MadeAt,
		}
		if err := r.outbox.InsertJSON(ctx, tx, outbox.TopicDraft, req.DraftID, events.TypePickMade, made); err != nil {
			return err
		}

		if newCurrent > totalPicks {
			completed = true
			if _, err := tx.Exec(ctx, `
				UPDATE drafts
				SET status = $2, next_deadline = NULL, completed_at = NOW(), updated_at = NOW()
				WHERE id = $1`, req.DraftID, models.DraftStatusCompleted); err != nil {
				return fmt.Errorf("failed to complete draft: %w", err)
			}
			if _, err := tx.Exec(ctx, `
				UPDATE leagues SET draft_status = $2, updated_at = NOW()
				WHERE id = (SELECT league_id FROM drafts WHERE id = $1)`,
				req.DraftID, models.LeagueDraftCompleted); err != nil {
				return fmt.Errorf("failed to mirror completion on league: %w", err)
			}
			done := events.DraftCompletedPayload{
				DraftID:     req.DraftID.String(),
				CompletedAt: req.Now,
				TotalPicks:  totalPicks,
			}
			return r.outbox.InsertJSON(ctx, tx, outbox.TopicDraft, req.DraftID, events.TypeDraftCompleted, done)
		}

		if req.NextTurn != nil {
			next := events.PickStartedPayload{
				DraftID:     req.DraftID.String(),
				TeamID:      req.NextTurn.TeamID.String(),
				Round:       req.NextTurn.Round,
				Pick:        req.NextTurn.Pick,
				OverallPick: req.NextTurn.OverallPick,
				StartedAt:   req.Now,
				TimeoutAt:   req.NextDeadline,
			}
			return r.outbox.InsertJSON(ctx, tx, outbox.TopicDraft, req.DraftID, events.TypePickStarted, next)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return committed, completed, nil
}

func (r *Repository) GetPick(ctx context.Context, id uuid.UUID) (*models.DraftPick, error) {
	p, err := scanPick(r.pool.QueryRow(ctx, `
		SELECT `+pickColumns+` FROM draft_picks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("pick %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pick: %w", err)
	}
	return p, nil
}

func (r *Repository) ListPicksByDraft(ctx context.Context, draftID uuid.UUID) ([]models.DraftPick, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+pickColumns+` FROM draft_picks
		WHERE draft_id = $1
		ORDER BY overall_pick`, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	defer rows.Close()

	var picks []models.DraftPick
	for rows.Next() {
		var p models.DraftPick
		if err := rows.Scan(&p.ID, &p.DraftID, &p.Round, &p.Pick, &p.OverallPick,
			&p.TeamID, &p.PlayerID, &p.AutoPick, &p.MadeAt); err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

func (r *Repository) CountPicksByDraft(ctx context.Context, draftID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM draft_picks WHERE draft_id = $1`, draftID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count picks: %w", err)
	}
	return n, nil
}
