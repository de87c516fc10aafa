package draft

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/warroomhq/warroom/go/internal/apperrors"
	"github.com/warroomhq/warroom/go/internal/draft/sequencer"
	"github.com/warroomhq/warroom/go/internal/models"
)

// DraftRepository defines what the app layer needs from draft storage.
type DraftRepository interface {
	CreateDraft(ctx context.Context, req CreateDraftRequest) (*models.Draft, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	GetDraftByLeague(ctx context.Context, leagueID uuid.UUID) (*models.Draft, error)
	StartDraft(ctx context.Context, draftID uuid.UUID, settings models.DraftSettings, totalPicks int, deadline *time.Time, firstTurn sequencer.Turn, startedAt time.Time) (*models.Draft, error)
	PauseDraft(ctx context.Context, draftID uuid.UUID, pausedAt time.Time, reason string) (*models.Draft, error)
	ResumeDraft(ctx context.Context, draftID uuid.UUID, deadline *time.Time, resumedAt time.Time, turn sequencer.Turn) (*models.Draft, error)
	CancelDraft(ctx context.Context, draftID uuid.UUID, cancelledAt time.Time) (*models.Draft, int, error)
	FetchNextDeadline(ctx context.Context) (*NextDeadline, error)
	FetchDraftsDueForPick(ctx context.Context, limit int32) ([]uuid.UUID, error)
}

// LeagueApp gates privileged operations and mirrors draft status on the league.
type LeagueApp interface {
	RequireCommissioner(ctx context.Context, leagueID, actor uuid.UUID) (*models.League, error)
	UpdateDraftStatus(ctx context.Context, id uuid.UUID, status models.LeagueDraftStatus) (*models.League, error)
}

// TeamApp supplies the league's teams for draft order derivation.
type TeamApp interface {
	GetFantasyTeamsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.FantasyTeam, error)
}

// PickLister reads committed picks for the state read model.
type PickLister interface {
	ListPicksByDraft(ctx context.Context, draftID uuid.UUID) ([]models.DraftPick, error)
}

// App implements draft lifecycle business logic.
type App struct {
	repo    DraftRepository
	leagues LeagueApp
	teams   TeamApp
	picks   PickLister
	clock   clockwork.Clock
}

func NewApp(repo DraftRepository, leagues LeagueApp, teams TeamApp, picks PickLister, clock clockwork.Clock) *App {
	return &App{
		repo:    repo,
		leagues: leagues,
		teams:   teams,
		picks:   picks,
		clock:   clock,
	}
}

// CreateDraft creates a PENDING draft for a league. Commissioner only.
func (a *App) CreateDraft(ctx context.Context, req CreateDraftRequest, actor uuid.UUID) (*models.Draft, error) {
	if _, err := a.leagues.RequireCommissioner(ctx, req.LeagueID, actor); err != nil {
		return nil, err
	}
	if req.Settings.Rounds <= 0 {
		return nil, fmt.Errorf("draft must have at least one round: %w", apperrors.ErrInvalidState)
	}
	if req.Settings.TimePerPickSec < 0 {
		return nil, fmt.Errorf("time per pick cannot be negative: %w", apperrors.ErrInvalidState)
	}

	draft, err := a.repo.CreateDraft(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("draft_id", draft.ID.String()).
		Str("league_id", req.LeagueID.String()).
		Int("rounds", req.Settings.Rounds).
		Msg("draft created")
	return draft, nil
}

// StartDraft finalizes the draft order, arms the pick clock and flips the
// draft to IN_PROGRESS. The order snapshot taken here is what the sequencer
// uses for every subsequent turn computation.
func (a *App) StartDraft(ctx context.Context, req StartDraftRequest) (*models.Draft, error) {
	draft, err := a.repo.GetDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	if _, err := a.leagues.RequireCommissioner(ctx, draft.LeagueID, req.ActorID); err != nil {
		return nil, err
	}
	if draft.Status != models.DraftStatusPending {
		return nil, fmt.Errorf("draft %s is %s, not PENDING: %w", draft.ID, draft.Status, apperrors.ErrInvalidState)
	}

	settings := draft.Settings
	order, err := a.resolveDraftOrder(ctx, draft.LeagueID, settings.DraftOrder)
	if err != nil {
		return nil, err
	}
	settings.DraftOrder = order

	totalPicks := settings.Rounds * len(order)
	startedAt := a.clock.Now()
	deadline := a.deadlineAfter(settings, startedAt)

	firstTurn, err := sequencer.TurnAt(order, 1)
	if err != nil {
		return nil, err
	}

	started, err := a.repo.StartDraft(ctx, draft.ID, settings, totalPicks, deadline, firstTurn, startedAt)
	if err != nil {
		return nil, err
	}

	if _, err := a.leagues.UpdateDraftStatus(ctx, draft.LeagueID, models.LeagueDraftInProgress); err != nil {
		log.Error().Err(err).Str("league_id", draft.LeagueID.String()).Msg("failed to mirror draft status on league")
	}

	log.Info().
		Str("draft_id", draft.ID.String()).
		Int("total_picks", totalPicks).
		Int("teams", len(order)).
		Msg("draft started")
	return started, nil
}

// PauseDraft stops the clock without losing draft position.
func (a *App) PauseDraft(ctx context.Context, req PauseDraftRequest) (*models.Draft, error) {
	draft, err := a.repo.GetDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	if _, err := a.leagues.RequireCommissioner(ctx, draft.LeagueID, req.ActorID); err != nil {
		return nil, err
	}
	return a.repo.PauseDraft(ctx, draft.ID, a.clock.Now(), req.Reason)
}

// SystemPause pauses a draft on behalf of the scheduler, bypassing the
// commissioner check. Used when autopick cannot proceed.
func (a *App) SystemPause(ctx context.Context, draftID uuid.UUID, reason string) (*models.Draft, error) {
	return a.repo.PauseDraft(ctx, draftID, a.clock.Now(), reason)
}

// ResumeDraft restarts the clock with a full fresh countdown for the team
// already on the clock.
func (a *App) ResumeDraft(ctx context.Context, req ResumeDraftRequest) (*models.Draft, error) {
	draft, err := a.repo.GetDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	if _, err := a.leagues.RequireCommissioner(ctx, draft.LeagueID, req.ActorID); err != nil {
		return nil, err
	}
	if draft.Status != models.DraftStatusPaused {
		return nil, fmt.Errorf("draft %s is %s, not PAUSED: %w", draft.ID, draft.Status, apperrors.ErrInvalidState)
	}

	turn, err := sequencer.TurnAt(draft.Settings.DraftOrder, draft.CurrentPick)
	if err != nil {
		return nil, err
	}

	resumedAt := a.clock.Now()
	deadline := a.deadlineAfter(draft.Settings, resumedAt)
	return a.repo.ResumeDraft(ctx, draft.ID, deadline, resumedAt, turn)
}

// CancelDraft aborts the draft and reverts all committed picks.
func (a *App) CancelDraft(ctx context.Context, req CancelDraftRequest) (*models.Draft, error) {
	draft, err := a.repo.GetDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	if _, err := a.leagues.RequireCommissioner(ctx, draft.LeagueID, req.ActorID); err != nil {
		return nil, err
	}

	cancelled, reverted, err := a.repo.CancelDraft(ctx, draft.ID, a.clock.Now())
	if err != nil {
		return nil, err
	}

	if _, err := a.leagues.UpdateDraftStatus(ctx, draft.LeagueID, models.LeagueDraftPending); err != nil {
		log.Error().Err(err).Str("league_id", draft.LeagueID.String()).Msg("failed to mirror draft status on league")
	}

	log.Info().
		Str("draft_id", draft.ID.String()).
		Int("picks_reverted", reverted).
		Msg("draft cancelled")
	return cancelled, nil
}

func (a *App) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	return a.repo.GetDraft(ctx, id)
}

func (a *App) GetDraftByLeague(ctx context.Context, leagueID uuid.UUID) (*models.Draft, error) {
	return a.repo.GetDraftByLeague(ctx, leagueID)
}

// GetDraftState returns the draft, the team on the clock and all picks so far.
func (a *App) GetDraftState(ctx context.Context, id uuid.UUID) (*DraftState, error) {
	draft, err := a.repo.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	picks, err := a.picks.ListPicksByDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	state := &DraftState{Draft: draft, Picks: picks}
	if draft.Status == models.DraftStatusInProgress || draft.Status == models.DraftStatusPaused {
		turn, err := sequencer.TurnAt(draft.Settings.DraftOrder, draft.CurrentPick)
		if err != nil {
			return nil, err
		}
		state.OnClock = &turn
	}
	return state, nil
}

func (a *App) FetchNextDeadline(ctx context.Context) (*NextDeadline, error) {
	return a.repo.FetchNextDeadline(ctx)
}

func (a *App) FetchDraftsDueForPick(ctx context.Context, limit int32) ([]uuid.UUID, error) {
	return a.repo.FetchDraftsDueForPick(ctx, limit)
}

// resolveDraftOrder returns the explicit order when set, otherwise derives it
// from team draft positions. Every team in the league must be covered.
func (a *App) resolveDraftOrder(ctx context.Context, leagueID uuid.UUID, explicit []uuid.UUID) ([]uuid.UUID, error) {
	teams, err := a.teams.GetFantasyTeamsByLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if len(teams) < 2 {
		return nil, fmt.Errorf("league %s needs at least two teams to draft: %w", leagueID, apperrors.ErrInvalidState)
	}

	if len(explicit) > 0 {
		if len(explicit) != len(teams) {
			return nil, fmt.Errorf("draft order covers %d of %d teams: %w", len(explicit), len(teams), apperrors.ErrInvalidState)
		}
		byID := make(map[uuid.UUID]bool, len(teams))
		for _, t := range teams {
			byID[t.ID] = true
		}
		seen := make(map[uuid.UUID]bool, len(explicit))
		for _, id := range explicit {
			if !byID[id] {
				return nil, fmt.Errorf("team %s is not in league %s: %w", id, leagueID, apperrors.ErrInvalidState)
			}
			if seen[id] {
				return nil, fmt.Errorf("team %s appears twice in draft order: %w", id, apperrors.ErrInvalidState)
			}
			seen[id] = true
		}
		return explicit, nil
	}

	order := make([]uuid.UUID, len(teams))
	for _, t := range teams {
		if t.DraftPosition == nil {
			return nil, fmt.Errorf("team %s has no draft position: %w", t.ID, apperrors.ErrInvalidState)
		}
		pos := *t.DraftPosition
		if pos < 1 || pos > len(teams) {
			return nil, fmt.Errorf("team %s has draft position %d outside 1..%d: %w", t.ID, pos, len(teams), apperrors.ErrInvalidState)
		}
		order[pos-1] = t.ID
	}
	return order, nil
}

func (a *App) deadlineAfter(settings models.DraftSettings, from time.Time) *time.Time {
	if !settings.HasClock() {
		return nil
	}
	d := from.Add(time.Duration(settings.TimePerPickSec) * time.Second)
	return &d
}
