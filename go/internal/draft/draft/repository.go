package draft

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
	"github.com/warroomhq/warroom/go/internal/draft/sequencer"
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

const draftColumns = `id, league_id, status, settings, current_pick, total_picks,
	next_deadline, scheduled_at, started_at, completed_at, created_at, updated_at`

func scanDraft(row pgx.Row) (*models.Draft, error) {
	var d models.Draft
	var settings []byte
	err := row.Scan(
		&d.ID, &d.LeagueID, &d.Status, &settings, &d.CurrentPick, &d.TotalPicks,
		&d.NextDeadline, &d.ScheduledAt, &d.StartedAt, &d.CompletedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(settings, &d.Settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft settings: %w", err)
	}
	return &d, nil
}

func (r *Repository) CreateDraft(ctx context.Context, req CreateDraftRequest) (*models.Draft, error) {
	settings, err := json.Marshal(req.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft settings: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO drafts (id, league_id, status, settings, current_pick, total_picks, scheduled_at)
		VALUES ($1, $2, $3, $4, 0, 0, $5)
		RETURNING `+draftColumns,
		uuid.New(), req.LeagueID, models.DraftStatusPending, settings, req.ScheduledAt,
	)
	draft, err := scanDraft(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return draft, nil
}

func (r *Repository) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	draft, err := scanDraft(r.pool.QueryRow(ctx, `
		SELECT `+draftColumns+` FROM drafts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("draft %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return draft, nil
}

func (r *Repository) GetDraftByLeague(ctx context.Context, leagueID uuid.UUID) (*models.Draft, error) {
	draft, err := scanDraft(r.pool.QueryRow(ctx, `
		SELECT `+draftColumns+` FROM drafts
		WHERE league_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, leagueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("draft for league %s: %w", leagueID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get draft by league: %w", err)
	}
	return draft, nil
}

// StartDraft flips PENDING to IN_PROGRESS in one transaction: the conditioned
// update loses against a concurrent start, the finalized settings and deadline
// land with the status flip, and the DraftStarted/PickStarted outbox rows
// commit atomically with them.
func (r *Repository) StartDraft(ctx context.Context, draftID uuid.UUID, settings models.DraftSettings, totalPicks int, deadline *time.Time, firstTurn sequencer.Turn, startedAt time.Time) (*models.Draft, error) {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft settings: %w", err)
	}

	var draft *models.Draft
	err = sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE drafts
			SET status = $2, settings = $3, current_pick = 1, total_picks = $4,
			    next_deadline = $5, started_at = $6, updated_at = NOW()
			WHERE id = $1 AND status = $7
			RETURNING `+draftColumns,
			draftID, models.DraftStatusInProgress, settingsJSON, totalPicks,
			deadline, startedAt, models.DraftStatusPending,
		)
		draft, err = scanDraft(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("draft %s is not pending: %w", draftID, apperrors.ErrInvalidState)
			}
			return fmt.Errorf("failed to start draft: %w", err)
		}

		started := events.DraftStartedPayload{
			DraftID:    draftID.String(),
			LeagueID:   draft.LeagueID.String(),
			StartedAt:  startedAt,
			TotalPicks: totalPicks,
			Rounds:     settings.Rounds,
		}
		if err := r.outbox.InsertJSON(ctx, tx, outbox.TopicDraft, draftID, events.TypeDraftStarted, started); err != nil {
			return err
		}

		pickStarted := events.PickStartedPayload{
			DraftID:     draftID.String(),
			TeamID:      firstTurn.TeamID.String(),
			Round:       firstTurn.Round,
			Pick:        firstTurn.Pick,
			OverallPick: firstTurn.OverallPick,
			StartedAt:   startedAt,
			TimeoutAt:   deadline,
		}
		return r.outbox.InsertJSON(ctx, tx, outbox.TopicDraft, draftID, events.TypePickStarted, pickStarted)
	})
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// PauseDraft clears the deadline so the scheduler stops tracking the draft.
func (r *Repository) PauseDraft(ctx context.Context, draftID uuid.UUID, pausedAt time.Time, reason string) (*models.Draft, error) {
	var draft *models.Draft
	err := sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE drafts
			SET status = $2, next_deadline = NULL, updated_at = NOW()
			WHERE id = $1 AND status = $3
			RETURNING `+draftColumns,
			draftID, models.DraftStatusPaused, models.DraftStatusInProgress,
		)
		var err error
		draft, err = scanDraft(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("draft %s is not in progress: %w", draftID, apperrors.ErrInvalidState)
			}
			return fmt.Errorf("failed to pause draft: %w", err)
		}

		payload := events.DraftPausedPayload{
			DraftID:  draftID.String(),
			PausedAt: pausedAt,
			Reason:   reason,
		}
		return r.outbox.InsertJSON(ctx, tx, outbox.TopicDraft, draftID, events.TypeDraftPaused, payload)
	})
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// ResumeDraft re-arms the clock with a fresh deadline (nil for clockless drafts).
func (r *Repository) ResumeDraft(ctx context.Context, draftID uuid.UUID, deadline *time.Time, resumedAt time.Time, turn sequencer.Turn) (*models.Draft, error) {
	var draft *models.Draft
	err := sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE drafts
			SET status = $2, next_deadline = $3, updated_at = NOW()
			WHERE id = $1 AND status = $4
			RETURNING `+draftColumns,
			draftID, models.DraftStatusInProgress, deadline, models.DraftStatusPaused,
		)
		var err error
		draft, err = scanDraft(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("draft %s is not paused: %w", draftID, apperrors.ErrInvalidState)
			}
			return fmt.Errorf("failed to resume draft: %w", err)
		}

		resumed := events.DraftResumedPayload{
			DraftID:   draftID.String(),
			ResumedAt: resumedAt,
		}
		if err := r.outbox.InsertJSON(ctx, tx, outbox.TopicDraft, draftID, events.TypeDraftResumed, resumed); err != nil {
			return err
		}

		pickStarted := events.PickStartedPayload{
			DraftID:     draftID.String(),
			TeamID:      turn.TeamID.String(),
			Round:       turn.Round,
			Pick:        turn.Pick,
			OverallPick: turn.OverallPick,
			StartedAt:   resumedAt,
			TimeoutAt:   deadline,
		}
		return r.outbox.InsertJSON(ctx, tx, outbox.TopicDraft, draftID, events.TypePickStarted, pickStarted)
	})
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// CancelDraft reverts every committed pick in one transaction: roster rows
// acquired through this draft are removed, claimed players become available
// again, and the pick rows are deleted.
func (r *Repository) CancelDraft(ctx context.Context, draftID uuid.UUID, cancelledAt time.Time) (*models.Draft, int, error) {
	var draft *models.Draft
	var reverted int
	err := sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE drafts
			SET status = $2, next_deadline = NULL, updated_at = NOW()
			WHERE id = $1 AND status IN ($3, $4, $5)
			RETURNING `+draftColumns,
			draftID, models.DraftStatusCancelled,
			models.DraftStatusPending, models.DraftStatusInProgress, models.DraftStatusPaused,
		)
		var err error
		draft, err = scanDraft(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("draft %s cannot be cancelled: %w", draftID, apperrors.ErrInvalidState)
			}
			return fmt.Errorf("failed to cancel draft: %w", err)
		}

		// No acquisition_type filter: a drafted player moved by a trade
		// still leaves their current roster, otherwise the availability
		// reset below would let a second roster claim them.
		if _, err := tx.Exec(ctx, `
			DELETE FROM rosters
			WHERE player_id IN (SELECT player_id FROM draft_picks WHERE draft_id = $1)`, draftID); err != nil {
			return fmt.Errorf("failed to revert draft rosters: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE players SET is_available = TRUE
			WHERE id IN (SELECT player_id FROM draft_picks WHERE draft_id = $1)`, draftID); err != nil {
			return fmt.Errorf("failed to restore player availability: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM draft_picks WHERE draft_id = $1`, draftID)
		if err != nil {
			return fmt.Errorf("failed to delete draft picks: %w", err)
		}
		reverted = int(tag.RowsAffected())

		payload := events.DraftCancelledPayload{
			DraftID:       draftID.String(),
			CancelledAt:   cancelledAt,
			PicksReverted: reverted,
		}
		return r.outbox.InsertJSON(ctx, tx, outbox.TopicDraft, draftID, events.TypeDraftCancelled, payload)
	})
	if err != nil {
		return nil, 0, err
	}
	return draft, reverted, nil
}

// FetchNextDeadline returns the soonest deadline across in-progress drafts.
// pgx.ErrNoRows means no draft is in progress at all.
func (r *Repository) FetchNextDeadline(ctx context.Context) (*NextDeadline, error) {
	var nd NextDeadline
	err := r.pool.QueryRow(ctx, `
		SELECT id, next_deadline
		FROM drafts
		WHERE status = $1
		ORDER BY next_deadline ASC NULLS LAST
		LIMIT 1`, models.DraftStatusInProgress).
		Scan(&nd.DraftID, &nd.Deadline)
	if err != nil {
		return nil, err
	}
	return &nd, nil
}

func (r *Repository) FetchDraftsDueForPick(ctx context.Context, limit int32) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id FROM drafts
		WHERE status = $1 AND next_deadline IS NOT NULL AND next_deadline <= NOW()
		ORDER BY next_deadline
		LIMIT $2`, models.DraftStatusInProgress, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due drafts: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan due draft id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
