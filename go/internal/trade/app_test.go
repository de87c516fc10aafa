package trade

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/warroomhq/warroom/go/internal/apperrors"
	"github.com/warroomhq/warroom/go/internal/models"
)

// fakeTradeStore holds trades and rosters in memory. ExecuteTrade re-checks
// roster membership the way the real repository's conditioned updates do, so
// a roster that changed after proposal fails with ErrInvalidAsset.
type fakeTradeStore struct {
	trades  map[uuid.UUID]*models.Trade
	teams   map[uuid.UUID]*models.FantasyTeam
	rosters map[uuid.UUID]map[uuid.UUID]bool // team id -> player set
}

func (s *fakeTradeStore) CreateTrade(_ context.Context, t *models.Trade) (*models.Trade, error) {
	cp := *t
	cp.ID = uuid.New()
	cp.Status = models.TradeStatusPending
	s.trades[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *fakeTradeStore) GetTrade(_ context.Context, id uuid.UUID) (*models.Trade, error) {
	t, ok := s.trades[id]
	if !ok {
		return nil, fmt.Errorf("trade %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTradeStore) ListTradesByTeam(_ context.Context, teamID uuid.UUID) ([]models.Trade, error) {
	var out []models.Trade
	for _, t := range s.trades {
		if t.Team1ID == teamID || t.Team2ID == teamID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *fakeTradeStore) ResolveTrade(_ context.Context, tradeID uuid.UUID, status models.TradeStatus, resolvedAt time.Time) (*models.Trade, error) {
	t, ok := s.trades[tradeID]
	if !ok {
		return nil, fmt.Errorf("trade %s: %w", tradeID, apperrors.ErrNotFound)
	}
	if t.Status != models.TradeStatusPending {
		return nil, fmt.Errorf("trade %s is %s: %w", tradeID, t.Status, apperrors.ErrInvalidState)
	}
	t.Status = status
	t.ResolvedAt = &resolvedAt
	cp := *t
	return &cp, nil
}

func (s *fakeTradeStore) ExecuteTrade(_ context.Context, tradeID uuid.UUID, resolvedAt time.Time) (*models.Trade, error) {
	t, ok := s.trades[tradeID]
	if !ok {
		return nil, fmt.Errorf("trade %s: %w", tradeID, apperrors.ErrNotFound)
	}
	if t.Status != models.TradeStatusPending {
		return nil, fmt.Errorf("trade %s is %s: %w", tradeID, t.Status, apperrors.ErrInvalidState)
	}
	for _, p := range t.Team1Players {
		if !s.rosters[t.Team1ID][p] {
			return nil, fmt.Errorf("player %s left team %s: %w", p, t.Team1ID, apperrors.ErrInvalidAsset)
		}
	}
	for _, p := range t.Team2Players {
		if !s.rosters[t.Team2ID][p] {
			return nil, fmt.Errorf("player %s left team %s: %w", p, t.Team2ID, apperrors.ErrInvalidAsset)
		}
	}
	for _, p := range t.Team1Players {
		delete(s.rosters[t.Team1ID], p)
		s.rosters[t.Team2ID][p] = true
	}
	for _, p := range t.Team2Players {
		delete(s.rosters[t.Team2ID], p)
		s.rosters[t.Team1ID][p] = true
	}
	t.Status = models.TradeStatusAccepted
	t.ResolvedAt = &resolvedAt
	cp := *t
	return &cp, nil
}

func (s *fakeTradeStore) GetFantasyTeam(_ context.Context, id uuid.UUID) (*models.FantasyTeam, error) {
	team, ok := s.teams[id]
	if !ok {
		return nil, fmt.Errorf("team %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *team
	return &cp, nil
}

func (s *fakeTradeStore) GetTeamPlayerSet(_ context.Context, teamID uuid.UUID) (map[uuid.UUID]bool, error) {
	set := make(map[uuid.UUID]bool, len(s.rosters[teamID]))
	for p := range s.rosters[teamID] {
		set[p] = true
	}
	return set, nil
}

type tradeFixture struct {
	app      *App
	store    *fakeTradeStore
	clock    *clockwork.FakeClock
	leagueID uuid.UUID
	team1    *models.FantasyTeam
	team2    *models.FantasyTeam
	t1p      []uuid.UUID // team 1's roster, in creation order
	t2p      []uuid.UUID
}

func newTradeFixture(playersPerTeam int) *tradeFixture {
	store := &fakeTradeStore{
		trades:  make(map[uuid.UUID]*models.Trade),
		teams:   make(map[uuid.UUID]*models.FantasyTeam),
		rosters: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
	leagueID := uuid.New()

	mkTeam := func(name string) (*models.FantasyTeam, []uuid.UUID) {
		team := &models.FantasyTeam{
			ID:       uuid.New(),
			LeagueID: leagueID,
			OwnerID:  uuid.New(),
			Name:     name,
		}
		store.teams[team.ID] = team
		store.rosters[team.ID] = make(map[uuid.UUID]bool)
		players := make([]uuid.UUID, playersPerTeam)
		for i := range players {
			players[i] = uuid.New()
			store.rosters[team.ID][players[i]] = true
		}
		return team, players
	}

	team1, t1p := mkTeam("sharks")
	team2, t2p := mkTeam("jets")

	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 5, 12, 0, 0, 0, time.UTC))
	return &tradeFixture{
		app:      NewApp(store, store, store, clock),
		store:    store,
		clock:    clock,
		leagueID: leagueID,
		team1:    team1,
		team2:    team2,
		t1p:      t1p,
		t2p:      t2p,
	}
}

func (f *tradeFixture) propose(t *testing.T, offered, requested []uuid.UUID) *models.Trade {
	t.Helper()
	trade, err := f.app.ProposeTrade(context.Background(), ProposeTradeRequest{
		LeagueID:         f.leagueID,
		ProposingTeamID:  f.team1.ID,
		CounterpartyID:   f.team2.ID,
		OfferedPlayers:   offered,
		RequestedPlayers: requested,
		ActorID:          f.team1.OwnerID,
	})
	require.NoError(t, err)
	return trade
}

func TestProposeTrade_CreatesPendingWithDefaultTTL(t *testing.T) {
	f := newTradeFixture(3)

	trade := f.propose(t, f.t1p[:1], f.t2p[:2])
	require.Equal(t, models.TradeStatusPending, trade.Status)
	require.Equal(t, f.team1.ID, trade.ProposedBy)
	require.Equal(t, f.clock.Now().Add(DefaultTradeTTL), trade.ExpiresAt)
}

func TestProposeTrade_CustomExpiry(t *testing.T) {
	f := newTradeFixture(2)

	trade, err := f.app.ProposeTrade(context.Background(), ProposeTradeRequest{
		LeagueID:        f.leagueID,
		ProposingTeamID: f.team1.ID,
		CounterpartyID:  f.team2.ID,
		OfferedPlayers:  f.t1p[:1],
		ActorID:         f.team1.OwnerID,
		ExpiresInSec:    3600,
	})
	require.NoError(t, err)
	require.Equal(t, f.clock.Now().Add(time.Hour), trade.ExpiresAt)
}

func TestProposeTrade_Validation(t *testing.T) {
	f := newTradeFixture(3)

	cases := []struct {
		name    string
		req     ProposeTradeRequest
		wantErr error
	}{
		{
			name: "self trade",
			req: ProposeTradeRequest{
				LeagueID: f.leagueID, ProposingTeamID: f.team1.ID, CounterpartyID: f.team1.ID,
				OfferedPlayers: f.t1p[:1], ActorID: f.team1.OwnerID,
			},
			wantErr: apperrors.ErrInvalidAsset,
		},
		{
			name: "empty trade",
			req: ProposeTradeRequest{
				LeagueID: f.leagueID, ProposingTeamID: f.team1.ID, CounterpartyID: f.team2.ID,
				ActorID: f.team1.OwnerID,
			},
			wantErr: apperrors.ErrInvalidAsset,
		},
		{
			name: "duplicate player",
			req: ProposeTradeRequest{
				LeagueID: f.leagueID, ProposingTeamID: f.team1.ID, CounterpartyID: f.team2.ID,
				OfferedPlayers: []uuid.UUID{f.t1p[0], f.t1p[0]}, ActorID: f.team1.OwnerID,
			},
			wantErr: apperrors.ErrInvalidAsset,
		},
		{
			name: "player on both sides",
			req: ProposeTradeRequest{
				LeagueID: f.leagueID, ProposingTeamID: f.team1.ID, CounterpartyID: f.team2.ID,
				OfferedPlayers:   []uuid.UUID{f.t1p[0]},
				RequestedPlayers: []uuid.UUID{f.t2p[0], f.t1p[0]},
				ActorID:          f.team1.OwnerID,
			},
			wantErr: apperrors.ErrInvalidAsset,
		},
		{
			name: "offered player not on proposing team",
			req: ProposeTradeRequest{
				LeagueID: f.leagueID, ProposingTeamID: f.team1.ID, CounterpartyID: f.team2.ID,
				OfferedPlayers: []uuid.UUID{uuid.New()}, ActorID: f.team1.OwnerID,
			},
			wantErr: apperrors.ErrInvalidAsset,
		},
		{
			name: "requested player not on counterparty",
			req: ProposeTradeRequest{
				LeagueID: f.leagueID, ProposingTeamID: f.team1.ID, CounterpartyID: f.team2.ID,
				OfferedPlayers: f.t1p[:1], RequestedPlayers: []uuid.UUID{f.t1p[1]}, ActorID: f.team1.OwnerID,
			},
			wantErr: apperrors.ErrInvalidAsset,
		},
		{
			name: "actor does not own proposing team",
			req: ProposeTradeRequest{
				LeagueID: f.leagueID, ProposingTeamID: f.team1.ID, CounterpartyID: f.team2.ID,
				OfferedPlayers: f.t1p[:1], ActorID: f.team2.OwnerID,
			},
			wantErr: apperrors.ErrPermissionDenied,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.app.ProposeTrade(context.Background(), tc.req)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestProposeTrade_TeamsMustShareLeague(t *testing.T) {
	f := newTradeFixture(2)
	f.store.teams[f.team2.ID].LeagueID = uuid.New()

	_, err := f.app.ProposeTrade(context.Background(), ProposeTradeRequest{
		LeagueID:        f.leagueID,
		ProposingTeamID: f.team1.ID,
		CounterpartyID:  f.team2.ID,
		OfferedPlayers:  f.t1p[:1],
		ActorID:         f.team1.OwnerID,
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidAsset)
}

func TestRespondTrade_AcceptSwapsRosters(t *testing.T) {
	f := newTradeFixture(3)
	trade := f.propose(t, f.t1p[:2], f.t2p[:1])

	accepted, err := f.app.RespondTrade(context.Background(), RespondTradeRequest{
		TradeID:  trade.ID,
		ActorID:  f.team2.OwnerID,
		Decision: models.TradeDecisionAccept,
	})
	require.NoError(t, err)
	require.Equal(t, models.TradeStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.ResolvedAt)

	require.True(t, f.store.rosters[f.team2.ID][f.t1p[0]])
	require.True(t, f.store.rosters[f.team2.ID][f.t1p[1]])
	require.True(t, f.store.rosters[f.team1.ID][f.t2p[0]])
	require.False(t, f.store.rosters[f.team1.ID][f.t1p[0]])
	require.False(t, f.store.rosters[f.team2.ID][f.t2p[0]])
}

func TestRespondTrade_AcceptRequiresCounterpartyOwner(t *testing.T) {
	f := newTradeFixture(2)
	trade := f.propose(t, f.t1p[:1], nil)

	_, err := f.app.RespondTrade(context.Background(), RespondTradeRequest{
		TradeID:  trade.ID,
		ActorID:  f.team1.OwnerID, // proposer cannot accept their own offer
		Decision: models.TradeDecisionAccept,
	})
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestRespondTrade_ExpiredTradeRefusesEveryDecision(t *testing.T) {
	tests := []struct {
		name     string
		decision models.TradeDecision
		actor    func(f *tradeFixture) uuid.UUID
	}{
		{"accept", models.TradeDecisionAccept, func(f *tradeFixture) uuid.UUID { return f.team2.OwnerID }},
		{"reject", models.TradeDecisionReject, func(f *tradeFixture) uuid.UUID { return f.team2.OwnerID }},
		{"cancel", models.TradeDecisionCancel, func(f *tradeFixture) uuid.UUID { return f.team1.OwnerID }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTradeFixture(2)
			trade := f.propose(t, f.t1p[:1], f.t2p[:1])

			f.clock.Advance(DefaultTradeTTL + time.Minute)
			_, err := f.app.RespondTrade(context.Background(), RespondTradeRequest{
				TradeID:  trade.ID,
				ActorID:  tt.actor(f),
				Decision: tt.decision,
			})
			require.ErrorIs(t, err, apperrors.ErrTradeExpired)

			// The row itself stays PENDING; expiry is derived, not written.
			stored, err := f.app.GetTrade(context.Background(), trade.ID)
			require.NoError(t, err)
			require.Equal(t, models.TradeStatusPending, stored.Status)
		})
	}
}

func TestRespondTrade_AcceptFailsWhenAssetMoved(t *testing.T) {
	f := newTradeFixture(2)
	trade := f.propose(t, f.t1p[:1], f.t2p[:1])

	// Offered player left the proposing team between proposal and acceptance.
	delete(f.store.rosters[f.team1.ID], f.t1p[0])

	_, err := f.app.RespondTrade(context.Background(), RespondTradeRequest{
		TradeID:  trade.ID,
		ActorID:  f.team2.OwnerID,
		Decision: models.TradeDecisionAccept,
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidAsset)

	stored, err := f.app.GetTrade(context.Background(), trade.ID)
	require.NoError(t, err)
	require.Equal(t, models.TradeStatusPending, stored.Status)
	require.True(t, f.store.rosters[f.team2.ID][f.t2p[0]], "no partial swap on failure")
}

func TestRespondTrade_Reject(t *testing.T) {
	f := newTradeFixture(2)
	trade := f.propose(t, f.t1p[:1], f.t2p[:1])

	rejected, err := f.app.RespondTrade(context.Background(), RespondTradeRequest{
		TradeID:  trade.ID,
		ActorID:  f.team2.OwnerID,
		Decision: models.TradeDecisionReject,
	})
	require.NoError(t, err)
	require.Equal(t, models.TradeStatusRejected, rejected.Status)
	require.True(t, f.store.rosters[f.team1.ID][f.t1p[0]], "rosters untouched")
}

func TestRespondTrade_CancelByProposerOnly(t *testing.T) {
	f := newTradeFixture(2)
	trade := f.propose(t, f.t1p[:1], f.t2p[:1])

	_, err := f.app.RespondTrade(context.Background(), RespondTradeRequest{
		TradeID:  trade.ID,
		ActorID:  f.team2.OwnerID,
		Decision: models.TradeDecisionCancel,
	})
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	cancelled, err := f.app.RespondTrade(context.Background(), RespondTradeRequest{
		TradeID:  trade.ID,
		ActorID:  f.team1.OwnerID,
		Decision: models.TradeDecisionCancel,
	})
	require.NoError(t, err)
	require.Equal(t, models.TradeStatusCancelled, cancelled.Status)
}

func TestRespondTrade_ResolvedTradeIsFinal(t *testing.T) {
	f := newTradeFixture(2)
	trade := f.propose(t, f.t1p[:1], f.t2p[:1])

	_, err := f.app.RespondTrade(context.Background(), RespondTradeRequest{
		TradeID:  trade.ID,
		ActorID:  f.team2.OwnerID,
		Decision: models.TradeDecisionReject,
	})
	require.NoError(t, err)

	_, err = f.app.RespondTrade(context.Background(), RespondTradeRequest{
		TradeID:  trade.ID,
		ActorID:  f.team2.OwnerID,
		Decision: models.TradeDecisionAccept,
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestRespondTrade_UnknownDecision(t *testing.T) {
	f := newTradeFixture(2)
	trade := f.propose(t, f.t1p[:1], f.t2p[:1])

	_, err := f.app.RespondTrade(context.Background(), RespondTradeRequest{
		TradeID:  trade.ID,
		ActorID:  f.team2.OwnerID,
		Decision: models.TradeDecision("MAYBE"),
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestListTradesByTeam(t *testing.T) {
	f := newTradeFixture(3)
	f.propose(t, f.t1p[:1], nil)
	f.propose(t, f.t1p[1:2], f.t2p[:1])

	trades, err := f.app.ListTradesByTeam(context.Background(), f.team2.ID)
	require.NoError(t, err)
	require.Len(t, trades, 2)
}
