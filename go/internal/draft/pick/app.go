package pick

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
	"github.com/warroomhq/warroom/go/internal/sports/base"
)

// PickRepository defines what the app layer needs from pick storage.
type PickRepository interface {
	CommitPick(ctx context.Context, req CommitPickRequest) (*models.DraftPick, bool, error)
	GetPick(ctx context.Context, id uuid.UUID) (*models.DraftPick, error)
	ListPicksByDraft(ctx context.Context, draftID uuid.UUID) ([]models.DraftPick, error)
	CountPicksByDraft(ctx context.Context, draftID uuid.UUID) (int, error)
}

// DraftReader reads the draft row a pick is being made against.
type DraftReader interface {
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
}

// LeagueReader resolves the league's sport for autopick rankings.
type LeagueReader interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
}

// PlayerApp reads and ranks the player pool.
type PlayerApp interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	BestAvailable(ctx context.Context, sportID string) (*models.Player, error)
}

// TeamReader checks team ownership for submitted picks.
type TeamReader interface {
	GetFantasyTeam(ctx context.Context, id uuid.UUID) (*models.FantasyTeam, error)
}

// App implements pick submission and autopick.
type App struct {
	repo    PickRepository
	drafts  DraftReader
	leagues LeagueReader
	players PlayerApp
	teams   TeamReader
	clock   clockwork.Clock
}

func NewApp(repo PickRepository, drafts DraftReader, leagues LeagueReader, players PlayerApp, teams TeamReader, clock clockwork.Clock) *App {
	return &App{
		repo:    repo,
		drafts:  drafts,
		leagues: leagues,
		players: players,
		teams:   teams,
		clock:   clock,
	}
}

// SubmitPick validates and commits a user-made pick for the team on the clock.
func (a *App) SubmitPick(ctx context.Context, req SubmitPickRequest) (*models.DraftPick, error) {
	draft, err := a.drafts.GetDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	if draft.Status != models.DraftStatusInProgress {
		return nil, fmt.Errorf("draft %s is %s: %w", draft.ID, draft.Status, apperrors.ErrInvalidState)
	}

	turn, err := sequencer.TurnAt(draft.Settings.DraftOrder, draft.CurrentPick)
	if err != nil {
		return nil, err
	}
	if turn.TeamID != req.TeamID {
		return nil, fmt.Errorf("team %s is not on the clock (pick %d belongs to %s): %w",
			req.TeamID, draft.CurrentPick, turn.TeamID, apperrors.ErrNotYourTurn)
	}

	team, err := a.teams.GetFantasyTeam(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}
	if team.OwnerID != req.ActorID {
		return nil, fmt.Errorf("user %s does not own team %s: %w", req.ActorID, req.TeamID, apperrors.ErrPermissionDenied)
	}

	player, err := a.players.GetPlayer(ctx, req.PlayerID)
	if err != nil {
		return nil, err
	}
	if !base.KnownPosition(player.SportID, player.Position) {
		// Advisory only. The pick still goes through; availability is what
		// the commit enforces.
		log.Warn().
			Str("player_id", player.ID.String()).
			Str("sport_id", player.SportID).
			Str("position", player.Position).
			Msg("pick for unrecognized position")
	}

	return a.commit(ctx, draft, turn, req.PlayerID, false)
}

// Autopick commits the best available player for whichever team is on the
// clock. Safe to call more than once for the same deadline: a lost race
// surfaces as ErrStaleWrite and is swallowed here.
func (a *App) Autopick(ctx context.Context, draftID uuid.UUID) (*models.DraftPick, error) {
	draft, err := a.drafts.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status != models.DraftStatusInProgress {
		log.Debug().Str("draft_id", draftID.String()).Str("status", string(draft.Status)).Msg("autopick skipped, draft not in progress")
		return nil, nil
	}

	turn, err := sequencer.TurnAt(draft.Settings.DraftOrder, draft.CurrentPick)
	if err != nil {
		return nil, err
	}

	league, err := a.leagues.GetLeague(ctx, draft.LeagueID)
	if err != nil {
		return nil, err
	}
	player, err := a.players.BestAvailable(ctx, league.SportID)
	if err != nil {
		return nil, err
	}

	pick, err := a.commit(ctx, draft, turn, player.ID, true)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("draft_id", draftID.String()).
		Str("team_id", turn.TeamID.String()).
		Str("player_id", player.ID.String()).
		Int("overall_pick", turn.OverallPick).
		Msg("autopick committed")
	return pick, nil
}

func (a *App) commit(ctx context.Context, draft *models.Draft, turn sequencer.Turn, playerID uuid.UUID, auto bool) (*models.DraftPick, error) {
	now := a.clock.Now()

	req := CommitPickRequest{
		DraftID:      draft.ID,
		ExpectedPick: draft.CurrentPick,
		Round:        turn.Round,
		Pick:         turn.Pick,
		TeamID:       turn.TeamID,
		PlayerID:     playerID,
		AutoPick:     auto,
		Now:          now,
	}

	if draft.CurrentPick < draft.TotalPicks {
		next, err := sequencer.TurnAt(draft.Settings.DraftOrder, draft.CurrentPick+1)
		if err != nil {
			return nil, err
		}
		req.NextTurn = &next
		if draft.Settings.HasClock() {
			deadline := now.Add(time.Duration(draft.Settings.TimePerPickSec) * time.Second)
			req.NextDeadline = &deadline
		}
	}

	committed, completed, err := a.repo.CommitPick(ctx, req)
	if err != nil {
		return nil, err
	}
	if completed {
		log.Info().Str("draft_id", draft.ID.String()).Msg("draft completed")
	}
	return committed, nil
}

func (a *App) GetPick(ctx context.Context, id uuid.UUID) (*models.DraftPick, error) {
	return a.repo.GetPick(ctx, id)
}

func (a *App) ListPicksByDraft(ctx context.Context, draftID uuid.UUID) ([]models.DraftPick, error) {
	return a.repo.ListPicksByDraft(ctx, draftID)
}
