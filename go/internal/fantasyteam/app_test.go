package fantasyteam

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/warroomhq/warroom/go/internal/apperrors"
	"github.com/warroomhq/warroom/go/internal/models"
)

type fakeTeamRepo struct {
	teams   map[uuid.UUID]*models.FantasyTeam
	removed *RemovedTeam
}

func (r *fakeTeamRepo) CreateFantasyTeam(_ context.Context, req CreateFantasyTeamRequest) (*models.FantasyTeam, error) {
	team := &models.FantasyTeam{
		ID:       uuid.New(),
		LeagueID: req.LeagueID,
		OwnerID:  req.OwnerID,
		Name:     req.Name,
	}
	r.teams[team.ID] = team
	cp := *team
	return &cp, nil
}

func (r *fakeTeamRepo) GetFantasyTeam(_ context.Context, id uuid.UUID) (*models.FantasyTeam, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, fmt.Errorf("team %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *team
	return &cp, nil
}

func (r *fakeTeamRepo) GetFantasyTeamsByLeague(_ context.Context, leagueID uuid.UUID) ([]models.FantasyTeam, error) {
	var out []models.FantasyTeam
	for _, t := range r.teams {
		if t.LeagueID == leagueID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) SetDraftPosition(_ context.Context, id uuid.UUID, position int) (*models.FantasyTeam, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, fmt.Errorf("team %s: %w", id, apperrors.ErrNotFound)
	}
	team.DraftPosition = &position
	cp := *team
	return &cp, nil
}

func (r *fakeTeamRepo) RemoveFantasyTeam(_ context.Context, id uuid.UUID) (*RemovedTeam, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, fmt.Errorf("team %s: %w", id, apperrors.ErrNotFound)
	}
	delete(r.teams, id)
	r.removed = &RemovedTeam{
		TeamID:     team.ID,
		LeagueID:   team.LeagueID,
		RosterRows: 3,
		PickRows:   3,
	}
	cp := *r.removed
	return &cp, nil
}

type stubLeagueApp struct {
	league *models.League
}

func (l *stubLeagueApp) GetLeague(_ context.Context, id uuid.UUID) (*models.League, error) {
	if l.league.ID != id {
		return nil, fmt.Errorf("league %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *l.league
	return &cp, nil
}

func (l *stubLeagueApp) RequireCommissioner(_ context.Context, leagueID, actor uuid.UUID) (*models.League, error) {
	if l.league.ID != leagueID {
		return nil, fmt.Errorf("league %s: %w", leagueID, apperrors.ErrNotFound)
	}
	if l.league.CommissionerID != actor {
		return nil, fmt.Errorf("user %s is not the commissioner: %w", actor, apperrors.ErrPermissionDenied)
	}
	cp := *l.league
	return &cp, nil
}

func newTeamApp(draftStatus models.LeagueDraftStatus, currentTeams int) (*App, *fakeTeamRepo, *stubLeagueApp) {
	repo := &fakeTeamRepo{teams: make(map[uuid.UUID]*models.FantasyTeam)}
	leagues := &stubLeagueApp{league: &models.League{
		ID:             uuid.New(),
		SportID:        "nhl",
		CommissionerID: uuid.New(),
		MaxTeams:       12,
		CurrentTeams:   currentTeams,
		DraftStatus:    draftStatus,
	}}
	return NewApp(repo, leagues), repo, leagues
}

func seedTeam(repo *fakeTeamRepo, leagueID uuid.UUID) *models.FantasyTeam {
	team := &models.FantasyTeam{
		ID:       uuid.New(),
		LeagueID: leagueID,
		OwnerID:  uuid.New(),
		Name:     "ice dragons",
	}
	repo.teams[team.ID] = team
	return team
}

func TestCreateFantasyTeam(t *testing.T) {
	app, _, leagues := newTeamApp(models.LeagueDraftPending, 0)

	team, err := app.CreateFantasyTeam(context.Background(), CreateFantasyTeamRequest{
		LeagueID: leagues.league.ID,
		OwnerID:  uuid.New(),
		Name:     "ice dragons",
	})
	require.NoError(t, err)
	require.Equal(t, "ice dragons", team.Name)
	require.Nil(t, team.DraftPosition)
}

func TestCreateFantasyTeam_RequiresNameAndOwner(t *testing.T) {
	app, _, leagues := newTeamApp(models.LeagueDraftPending, 0)

	_, err := app.CreateFantasyTeam(context.Background(), CreateFantasyTeamRequest{
		LeagueID: leagues.league.ID,
		OwnerID:  uuid.New(),
	})
	require.Error(t, err)

	_, err = app.CreateFantasyTeam(context.Background(), CreateFantasyTeamRequest{
		LeagueID: leagues.league.ID,
		Name:     "no owner",
	})
	require.Error(t, err)
}

func TestCreateFantasyTeam_LeagueAlreadyDrafting(t *testing.T) {
	app, _, leagues := newTeamApp(models.LeagueDraftInProgress, 4)

	_, err := app.CreateFantasyTeam(context.Background(), CreateFantasyTeamRequest{
		LeagueID: leagues.league.ID,
		OwnerID:  uuid.New(),
		Name:     "too late",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestSetDraftPosition(t *testing.T) {
	app, repo, leagues := newTeamApp(models.LeagueDraftPending, 4)
	team := seedTeam(repo, leagues.league.ID)

	updated, err := app.SetDraftPosition(context.Background(), team.ID, 3, leagues.league.CommissionerID)
	require.NoError(t, err)
	require.NotNil(t, updated.DraftPosition)
	require.Equal(t, 3, *updated.DraftPosition)
}

func TestSetDraftPosition_Bounds(t *testing.T) {
	app, repo, leagues := newTeamApp(models.LeagueDraftPending, 4)
	team := seedTeam(repo, leagues.league.ID)

	_, err := app.SetDraftPosition(context.Background(), team.ID, 0, leagues.league.CommissionerID)
	require.Error(t, err)

	_, err = app.SetDraftPosition(context.Background(), team.ID, 5, leagues.league.CommissionerID)
	require.Error(t, err)
}

func TestSetDraftPosition_CommissionerOnly(t *testing.T) {
	app, repo, leagues := newTeamApp(models.LeagueDraftPending, 4)
	team := seedTeam(repo, leagues.league.ID)

	_, err := app.SetDraftPosition(context.Background(), team.ID, 1, team.OwnerID)
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSetDraftPosition_LockedOnceDrafting(t *testing.T) {
	app, repo, leagues := newTeamApp(models.LeagueDraftInProgress, 4)
	team := seedTeam(repo, leagues.league.ID)

	_, err := app.SetDraftPosition(context.Background(), team.ID, 1, leagues.league.CommissionerID)
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestRemoveTeamFromDraft_Cascades(t *testing.T) {
	app, repo, leagues := newTeamApp(models.LeagueDraftPending, 4)
	team := seedTeam(repo, leagues.league.ID)

	removed, err := app.RemoveTeamFromDraft(context.Background(), team.ID, leagues.league.CommissionerID)
	require.NoError(t, err)
	require.Equal(t, team.ID, removed.TeamID)
	require.Equal(t, 3, removed.RosterRows)
	require.NotContains(t, repo.teams, team.ID)
}

func TestRemoveTeamFromDraft_RejectedMidDraft(t *testing.T) {
	app, repo, leagues := newTeamApp(models.LeagueDraftInProgress, 4)
	team := seedTeam(repo, leagues.league.ID)

	_, err := app.RemoveTeamFromDraft(context.Background(), team.ID, leagues.league.CommissionerID)
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
	require.Contains(t, repo.teams, team.ID)
}
