package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/warroomhq/warroom/go/internal/apperrors"
	"github.com/warroomhq/warroom/go/internal/models"
)

// DefaultTradeTTL is how long a proposal stays open when the request does not
// set its own expiry.
const DefaultTradeTTL = 72 * time.Hour

// TradeRepository defines what the app layer needs from trade storage.
type TradeRepository interface {
	CreateTrade(ctx context.Context, t *models.Trade) (*models.Trade, error)
	GetTrade(ctx context.Context, id uuid.UUID) (*models.Trade, error)
	ListTradesByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Trade, error)
	ResolveTrade(ctx context.Context, tradeID uuid.UUID, status models.TradeStatus, resolvedAt time.Time) (*models.Trade, error)
	ExecuteTrade(ctx context.Context, tradeID uuid.UUID, resolvedAt time.Time) (*models.Trade, error)
}

// TeamReader checks team membership and ownership.
type TeamReader interface {
	GetFantasyTeam(ctx context.Context, id uuid.UUID) (*models.FantasyTeam, error)
}

// RosterReader reads a team's current player set for asset validation.
type RosterReader interface {
	GetTeamPlayerSet(ctx context.Context, teamID uuid.UUID) (map[uuid.UUID]bool, error)
}

// App implements trade negotiation business logic.
type App struct {
	repo    TradeRepository
	teams   TeamReader
	rosters RosterReader
	clock   clockwork.Clock
}

func NewApp(repo TradeRepository, teams TeamReader, rosters RosterReader, clock clockwork.Clock) *App {
	return &App{
		repo:    repo,
		teams:   teams,
		rosters: rosters,
		clock:   clock,
	}
}

// ProposeTrade validates both sides of the swap against live rosters and
// creates a PENDING trade. Validation here is advisory; acceptance re-checks
// inside the swap transaction.
func (a *App) ProposeTrade(ctx context.Context, req ProposeTradeRequest) (*models.Trade, error) {
	if req.ProposingTeamID == req.CounterpartyID {
		return nil, fmt.Errorf("a team cannot trade with itself: %w", apperrors.ErrInvalidAsset)
	}
	if len(req.OfferedPlayers)+len(req.RequestedPlayers) == 0 {
		return nil, fmt.Errorf("trade must include at least one player: %w", apperrors.ErrInvalidAsset)
	}
	if hasDuplicates(req.OfferedPlayers) || hasDuplicates(req.RequestedPlayers) {
		return nil, fmt.Errorf("trade lists the same player twice: %w", apperrors.ErrInvalidAsset)
	}
	if p, overlap := firstOverlap(req.OfferedPlayers, req.RequestedPlayers); overlap {
		return nil, fmt.Errorf("player %s appears on both sides of the trade: %w", p, apperrors.ErrInvalidAsset)
	}

	proposer, err := a.teams.GetFantasyTeam(ctx, req.ProposingTeamID)
	if err != nil {
		return nil, err
	}
	counterparty, err := a.teams.GetFantasyTeam(ctx, req.CounterpartyID)
	if err != nil {
		return nil, err
	}
	if proposer.LeagueID != req.LeagueID || counterparty.LeagueID != req.LeagueID {
		return nil, fmt.Errorf("both teams must be in league %s: %w", req.LeagueID, apperrors.ErrInvalidAsset)
	}
	if proposer.OwnerID != req.ActorID {
		return nil, fmt.Errorf("user %s does not own team %s: %w", req.ActorID, proposer.ID, apperrors.ErrPermissionDenied)
	}

	if err := a.validateOwnership(ctx, proposer.ID, req.OfferedPlayers); err != nil {
		return nil, err
	}
	if err := a.validateOwnership(ctx, counterparty.ID, req.RequestedPlayers); err != nil {
		return nil, err
	}

	ttl := DefaultTradeTTL
	if req.ExpiresInSec > 0 {
		ttl = time.Duration(req.ExpiresInSec) * time.Second
	}

	trade, err := a.repo.CreateTrade(ctx, &models.Trade{
		LeagueID:     req.LeagueID,
		Team1ID:      proposer.ID,
		Team2ID:      counterparty.ID,
		Team1Players: req.OfferedPlayers,
		Team2Players: req.RequestedPlayers,
		ProposedBy:   proposer.ID,
		ExpiresAt:    a.clock.Now().Add(ttl),
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("trade_id", trade.ID.String()).
		Str("team1_id", trade.Team1ID.String()).
		Str("team2_id", trade.Team2ID.String()).
		Int("players", len(trade.Team1Players)+len(trade.Team2Players)).
		Msg("trade proposed")
	return trade, nil
}

// RespondTrade resolves a pending trade. The counterparty owner accepts or
// rejects; the proposer owner cancels. Every decision on a trade past expiry
// fails with ErrTradeExpired; expiry is never written back, only derived at
// read time.
func (a *App) RespondTrade(ctx context.Context, req RespondTradeRequest) (*models.Trade, error) {
	trade, err := a.repo.GetTrade(ctx, req.TradeID)
	if err != nil {
		return nil, err
	}
	if trade.Status != models.TradeStatusPending {
		return nil, fmt.Errorf("trade %s is %s: %w", trade.ID, trade.Status, apperrors.ErrInvalidState)
	}

	now := a.clock.Now()
	if trade.Expired(now) {
		return nil, fmt.Errorf("trade %s expired at %s: %w", trade.ID, trade.ExpiresAt, apperrors.ErrTradeExpired)
	}

	switch req.Decision {
	case models.TradeDecisionAccept:
		if err := a.requireTeamOwner(ctx, trade.CounterpartyOf(trade.ProposedBy), req.ActorID); err != nil {
			return nil, err
		}
		accepted, err := a.repo.ExecuteTrade(ctx, trade.ID, now)
		if err != nil {
			return nil, err
		}
		log.Info().Str("trade_id", trade.ID.String()).Msg("trade accepted")
		return accepted, nil

	case models.TradeDecisionReject:
		if err := a.requireTeamOwner(ctx, trade.CounterpartyOf(trade.ProposedBy), req.ActorID); err != nil {
			return nil, err
		}
		return a.repo.ResolveTrade(ctx, trade.ID, models.TradeStatusRejected, now)

	case models.TradeDecisionCancel:
		if err := a.requireTeamOwner(ctx, trade.ProposedBy, req.ActorID); err != nil {
			return nil, err
		}
		return a.repo.ResolveTrade(ctx, trade.ID, models.TradeStatusCancelled, now)

	default:
		return nil, fmt.Errorf("unknown trade decision %q: %w", req.Decision, apperrors.ErrInvalidState)
	}
}

func (a *App) GetTrade(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	return a.repo.GetTrade(ctx, id)
}

func (a *App) ListTradesByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Trade, error) {
	return a.repo.ListTradesByTeam(ctx, teamID)
}

func (a *App) validateOwnership(ctx context.Context, teamID uuid.UUID, players []uuid.UUID) error {
	if len(players) == 0 {
		return nil
	}
	owned, err := a.rosters.GetTeamPlayerSet(ctx, teamID)
	if err != nil {
		return err
	}
	for _, p := range players {
		if !owned[p] {
			return fmt.Errorf("player %s is not on team %s: %w", p, teamID, apperrors.ErrInvalidAsset)
		}
	}
	return nil
}

func (a *App) requireTeamOwner(ctx context.Context, teamID, actor uuid.UUID) error {
	team, err := a.teams.GetFantasyTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if team.OwnerID != actor {
		return fmt.Errorf("user %s does not own team %s: %w", actor, teamID, apperrors.ErrPermissionDenied)
	}
	return nil
}

func firstOverlap(a, b []uuid.UUID) (uuid.UUID, bool) {
	inA := make(map[uuid.UUID]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}
	for _, id := range b {
		if inA[id] {
			return id, true
		}
	}
	return uuid.Nil, false
}

func hasDuplicates(ids []uuid.UUID) bool {
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}
