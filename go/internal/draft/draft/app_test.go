package draft

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/warroomhq/warroom/go/internal/apperrors"
	"github.com/warroomhq/warroom/go/internal/draft/sequencer"
	"github.com/warroomhq/warroom/go/internal/models"
)

type fakeDraftRepo struct {
	draft       *models.Draft
	pauseReason string
	reverted    int
	picks       int
}

func (r *fakeDraftRepo) CreateDraft(_ context.Context, req CreateDraftRequest) (*models.Draft, error) {
	r.draft = &models.Draft{
		ID:          uuid.New(),
		LeagueID:    req.LeagueID,
		Status:      models.DraftStatusPending,
		Settings:    req.Settings,
		ScheduledAt: req.ScheduledAt,
	}
	cp := *r.draft
	return &cp, nil
}

func (r *fakeDraftRepo) GetDraft(_ context.Context, id uuid.UUID) (*models.Draft, error) {
	if r.draft == nil || r.draft.ID != id {
		return nil, fmt.Errorf("draft %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *r.draft
	return &cp, nil
}

func (r *fakeDraftRepo) GetDraftByLeague(_ context.Context, leagueID uuid.UUID) (*models.Draft, error) {
	if r.draft == nil || r.draft.LeagueID != leagueID {
		return nil, fmt.Errorf("league %s has no draft: %w", leagueID, apperrors.ErrNotFound)
	}
	cp := *r.draft
	return &cp, nil
}

func (r *fakeDraftRepo) StartDraft(_ context.Context, draftID uuid.UUID, settings models.DraftSettings, totalPicks int, deadline *time.Time, firstTurn sequencer.Turn, startedAt time.Time) (*models.Draft, error) {
	if r.draft.Status != models.DraftStatusPending {
		return nil, fmt.Errorf("draft is %s: %w", r.draft.Status, apperrors.ErrInvalidState)
	}
	r.draft.Status = models.DraftStatusInProgress
	r.draft.Settings = settings
	r.draft.TotalPicks = totalPicks
	r.draft.CurrentPick = 1
	r.draft.NextDeadline = deadline
	r.draft.StartedAt = &startedAt
	cp := *r.draft
	return &cp, nil
}

func (r *fakeDraftRepo) PauseDraft(_ context.Context, draftID uuid.UUID, pausedAt time.Time, reason string) (*models.Draft, error) {
	if r.draft.Status != models.DraftStatusInProgress {
		return nil, fmt.Errorf("draft is %s: %w", r.draft.Status, apperrors.ErrInvalidState)
	}
	r.draft.Status = models.DraftStatusPaused
	r.draft.NextDeadline = nil
	r.pauseReason = reason
	cp := *r.draft
	return &cp, nil
}

func (r *fakeDraftRepo) ResumeDraft(_ context.Context, draftID uuid.UUID, deadline *time.Time, resumedAt time.Time, turn sequencer.Turn) (*models.Draft, error) {
	if r.draft.Status != models.DraftStatusPaused {
		return nil, fmt.Errorf("draft is %s: %w", r.draft.Status, apperrors.ErrInvalidState)
	}
	r.draft.Status = models.DraftStatusInProgress
	r.draft.NextDeadline = deadline
	cp := *r.draft
	return &cp, nil
}

func (r *fakeDraftRepo) CancelDraft(_ context.Context, draftID uuid.UUID, cancelledAt time.Time) (*models.Draft, int, error) {
	switch r.draft.Status {
	case models.DraftStatusPending, models.DraftStatusInProgress, models.DraftStatusPaused:
	default:
		return nil, 0, fmt.Errorf("draft is %s: %w", r.draft.Status, apperrors.ErrInvalidState)
	}
	r.draft.Status = models.DraftStatusCancelled
	r.draft.NextDeadline = nil
	r.reverted = r.picks
	cp := *r.draft
	return &cp, r.picks, nil
}

func (r *fakeDraftRepo) FetchNextDeadline(_ context.Context) (*NextDeadline, error) {
	if r.draft == nil {
		return nil, fmt.Errorf("no drafts: %w", apperrors.ErrNotFound)
	}
	return &NextDeadline{DraftID: r.draft.ID, Deadline: r.draft.NextDeadline}, nil
}

func (r *fakeDraftRepo) FetchDraftsDueForPick(_ context.Context, limit int32) ([]uuid.UUID, error) {
	return nil, nil
}

type fakeLeagueApp struct {
	league   *models.League
	mirrored []models.LeagueDraftStatus
}

func (l *fakeLeagueApp) RequireCommissioner(_ context.Context, leagueID, actor uuid.UUID) (*models.League, error) {
	if l.league.ID != leagueID {
		return nil, fmt.Errorf("league %s: %w", leagueID, apperrors.ErrNotFound)
	}
	if l.league.CommissionerID != actor {
		return nil, fmt.Errorf("user %s is not the commissioner: %w", actor, apperrors.ErrPermissionDenied)
	}
	cp := *l.league
	return &cp, nil
}

func (l *fakeLeagueApp) UpdateDraftStatus(_ context.Context, id uuid.UUID, status models.LeagueDraftStatus) (*models.League, error) {
	l.league.DraftStatus = status
	l.mirrored = append(l.mirrored, status)
	cp := *l.league
	return &cp, nil
}

type fakeTeamApp struct {
	teams []models.FantasyTeam
}

func (t *fakeTeamApp) GetFantasyTeamsByLeague(_ context.Context, leagueID uuid.UUID) ([]models.FantasyTeam, error) {
	return t.teams, nil
}

type fakePickLister struct {
	picks []models.DraftPick
}

func (p *fakePickLister) ListPicksByDraft(_ context.Context, draftID uuid.UUID) ([]models.DraftPick, error) {
	return p.picks, nil
}

type fixture struct {
	app     *App
	repo    *fakeDraftRepo
	leagues *fakeLeagueApp
	teams   *fakeTeamApp
	picks   *fakePickLister
	clock   *clockwork.FakeClock
	commish uuid.UUID
}

// newFixture builds an app over a league with numTeams teams whose draft
// positions run 1..numTeams in team order.
func newFixture(numTeams int) *fixture {
	commish := uuid.New()
	league := &models.League{
		ID:             uuid.New(),
		SportID:        "nba",
		CommissionerID: commish,
		DraftStatus:    models.LeagueDraftPending,
	}

	teams := make([]models.FantasyTeam, numTeams)
	for i := range teams {
		pos := i + 1
		teams[i] = models.FantasyTeam{
			ID:            uuid.New(),
			LeagueID:      league.ID,
			OwnerID:       uuid.New(),
			Name:          fmt.Sprintf("team %d", pos),
			DraftPosition: &pos,
		}
	}

	f := &fixture{
		repo:    &fakeDraftRepo{},
		leagues: &fakeLeagueApp{league: league},
		teams:   &fakeTeamApp{teams: teams},
		picks:   &fakePickLister{},
		clock:   clockwork.NewFakeClockAt(time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)),
		commish: commish,
	}
	f.app = NewApp(f.repo, f.leagues, f.teams, f.picks, f.clock)
	return f
}

func (f *fixture) createDraft(t *testing.T, settings models.DraftSettings) *models.Draft {
	t.Helper()
	draft, err := f.app.CreateDraft(context.Background(), CreateDraftRequest{
		LeagueID: f.leagues.league.ID,
		Settings: settings,
	}, f.commish)
	require.NoError(t, err)
	return draft
}

func TestCreateDraft_RequiresCommissioner(t *testing.T) {
	f := newFixture(4)
	_, err := f.app.CreateDraft(context.Background(), CreateDraftRequest{
		LeagueID: f.leagues.league.ID,
		Settings: models.DraftSettings{Rounds: 3},
	}, uuid.New())
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCreateDraft_RejectsBadSettings(t *testing.T) {
	f := newFixture(4)

	_, err := f.app.CreateDraft(context.Background(), CreateDraftRequest{
		LeagueID: f.leagues.league.ID,
		Settings: models.DraftSettings{Rounds: 0},
	}, f.commish)
	require.ErrorIs(t, err, apperrors.ErrInvalidState)

	_, err = f.app.CreateDraft(context.Background(), CreateDraftRequest{
		LeagueID: f.leagues.league.ID,
		Settings: models.DraftSettings{Rounds: 3, TimePerPickSec: -5},
	}, f.commish)
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestStartDraft_DerivesOrderFromPositions(t *testing.T) {
	f := newFixture(3)
	// Shuffle positions so order differs from team slice order.
	one, two, three := 1, 2, 3
	f.teams.teams[0].DraftPosition = &two
	f.teams.teams[1].DraftPosition = &three
	f.teams.teams[2].DraftPosition = &one

	draft := f.createDraft(t, models.DraftSettings{Rounds: 2, TimePerPickSec: 30})
	started, err := f.app.StartDraft(context.Background(), StartDraftRequest{DraftID: draft.ID, ActorID: f.commish})
	require.NoError(t, err)

	wantOrder := []uuid.UUID{f.teams.teams[2].ID, f.teams.teams[0].ID, f.teams.teams[1].ID}
	require.Equal(t, wantOrder, started.Settings.DraftOrder)
	require.Equal(t, 6, started.TotalPicks)
	require.Equal(t, 1, started.CurrentPick)
	require.Equal(t, models.DraftStatusInProgress, started.Status)

	require.NotNil(t, started.NextDeadline)
	require.Equal(t, f.clock.Now().Add(30*time.Second), *started.NextDeadline)
	require.Equal(t, []models.LeagueDraftStatus{models.LeagueDraftInProgress}, f.leagues.mirrored)
}

func TestStartDraft_ExplicitOrderWins(t *testing.T) {
	f := newFixture(3)
	order := []uuid.UUID{f.teams.teams[1].ID, f.teams.teams[2].ID, f.teams.teams[0].ID}

	draft := f.createDraft(t, models.DraftSettings{Rounds: 1, DraftOrder: order})
	started, err := f.app.StartDraft(context.Background(), StartDraftRequest{DraftID: draft.ID, ActorID: f.commish})
	require.NoError(t, err)
	require.Equal(t, order, started.Settings.DraftOrder)
	require.Nil(t, started.NextDeadline, "clockless draft must not arm a deadline")
}

func TestStartDraft_ExplicitOrderValidation(t *testing.T) {
	f := newFixture(3)
	a, b := f.teams.teams[0].ID, f.teams.teams[1].ID

	cases := []struct {
		name  string
		order []uuid.UUID
	}{
		{"partial coverage", []uuid.UUID{a, b}},
		{"duplicate team", []uuid.UUID{a, b, a}},
		{"foreign team", []uuid.UUID{a, b, uuid.New()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(3)
			draft := f.createDraft(t, models.DraftSettings{Rounds: 1, DraftOrder: tc.order})
			_, err := f.app.StartDraft(context.Background(), StartDraftRequest{DraftID: draft.ID, ActorID: f.commish})
			require.ErrorIs(t, err, apperrors.ErrInvalidState)
		})
	}
}

func TestStartDraft_MissingDraftPosition(t *testing.T) {
	f := newFixture(3)
	f.teams.teams[1].DraftPosition = nil
	draft := f.createDraft(t, models.DraftSettings{Rounds: 1})
	_, err := f.app.StartDraft(context.Background(), StartDraftRequest{DraftID: draft.ID, ActorID: f.commish})
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestStartDraft_NeedsTwoTeams(t *testing.T) {
	f := newFixture(1)
	draft := f.createDraft(t, models.DraftSettings{Rounds: 1})
	_, err := f.app.StartDraft(context.Background(), StartDraftRequest{DraftID: draft.ID, ActorID: f.commish})
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestStartDraft_AlreadyStarted(t *testing.T) {
	f := newFixture(2)
	draft := f.createDraft(t, models.DraftSettings{Rounds: 1})
	_, err := f.app.StartDraft(context.Background(), StartDraftRequest{DraftID: draft.ID, ActorID: f.commish})
	require.NoError(t, err)
	_, err = f.app.StartDraft(context.Background(), StartDraftRequest{DraftID: draft.ID, ActorID: f.commish})
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func startedFixture(t *testing.T, timePerPickSec int) (*fixture, *models.Draft) {
	t.Helper()
	f := newFixture(4)
	draft := f.createDraft(t, models.DraftSettings{Rounds: 2, TimePerPickSec: timePerPickSec})
	started, err := f.app.StartDraft(context.Background(), StartDraftRequest{DraftID: draft.ID, ActorID: f.commish})
	require.NoError(t, err)
	return f, started
}

func TestPauseDraft_StopsClock(t *testing.T) {
	f, draft := startedFixture(t, 60)

	paused, err := f.app.PauseDraft(context.Background(), PauseDraftRequest{
		DraftID: draft.ID,
		ActorID: f.commish,
		Reason:  "commissioner break",
	})
	require.NoError(t, err)
	require.Equal(t, models.DraftStatusPaused, paused.Status)
	require.Nil(t, paused.NextDeadline)
	require.Equal(t, "commissioner break", f.repo.pauseReason)
}

func TestPauseDraft_RequiresCommissioner(t *testing.T) {
	f, draft := startedFixture(t, 60)
	_, err := f.app.PauseDraft(context.Background(), PauseDraftRequest{DraftID: draft.ID, ActorID: uuid.New()})
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSystemPause_BypassesCommissioner(t *testing.T) {
	f, draft := startedFixture(t, 60)
	paused, err := f.app.SystemPause(context.Background(), draft.ID, "player pool exhausted")
	require.NoError(t, err)
	require.Equal(t, models.DraftStatusPaused, paused.Status)
	require.Equal(t, "player pool exhausted", f.repo.pauseReason)
}

func TestResumeDraft_FreshCountdown(t *testing.T) {
	f, draft := startedFixture(t, 60)
	_, err := f.app.PauseDraft(context.Background(), PauseDraftRequest{DraftID: draft.ID, ActorID: f.commish})
	require.NoError(t, err)

	f.clock.Advance(10 * time.Minute)
	resumed, err := f.app.ResumeDraft(context.Background(), ResumeDraftRequest{DraftID: draft.ID, ActorID: f.commish})
	require.NoError(t, err)
	require.Equal(t, models.DraftStatusInProgress, resumed.Status)
	require.NotNil(t, resumed.NextDeadline)
	require.Equal(t, f.clock.Now().Add(60*time.Second), *resumed.NextDeadline)
}

func TestResumeDraft_OnlyFromPaused(t *testing.T) {
	f, draft := startedFixture(t, 60)
	_, err := f.app.ResumeDraft(context.Background(), ResumeDraftRequest{DraftID: draft.ID, ActorID: f.commish})
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestCancelDraft_RevertsAndMirrors(t *testing.T) {
	f, draft := startedFixture(t, 60)
	f.repo.picks = 5

	cancelled, err := f.app.CancelDraft(context.Background(), CancelDraftRequest{DraftID: draft.ID, ActorID: f.commish})
	require.NoError(t, err)
	require.Equal(t, models.DraftStatusCancelled, cancelled.Status)
	require.Equal(t, 5, f.repo.reverted)
	require.Equal(t, models.LeagueDraftPending, f.leagues.league.DraftStatus)
}

func TestCancelDraft_TerminalDraft(t *testing.T) {
	f, draft := startedFixture(t, 60)
	f.repo.draft.Status = models.DraftStatusCompleted
	_, err := f.app.CancelDraft(context.Background(), CancelDraftRequest{DraftID: draft.ID, ActorID: f.commish})
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestGetDraftState_OnClock(t *testing.T) {
	f, draft := startedFixture(t, 60)

	state, err := f.app.GetDraftState(context.Background(), draft.ID)
	require.NoError(t, err)
	require.NotNil(t, state.OnClock)
	require.Equal(t, draft.Settings.DraftOrder[0], state.OnClock.TeamID)
	require.Equal(t, 1, state.OnClock.OverallPick)
}

func TestGetDraftState_NoTurnWhenPending(t *testing.T) {
	f := newFixture(2)
	draft := f.createDraft(t, models.DraftSettings{Rounds: 1})

	state, err := f.app.GetDraftState(context.Background(), draft.ID)
	require.NoError(t, err)
	require.Nil(t, state.OnClock)
	require.Empty(t, state.Picks)
}
