package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/warroomhq/warroom/go/internal/draft/draft"
	"github.com/warroomhq/warroom/go/internal/draft/orchestrator"
	"github.com/warroomhq/warroom/go/internal/draft/outbox"
	"github.com/warroomhq/warroom/go/internal/draft/pick"
	"github.com/warroomhq/warroom/go/internal/fantasyteam"
	"github.com/warroomhq/warroom/go/internal/gateway"
	"github.com/warroomhq/warroom/go/internal/httpapi"
	"github.com/warroomhq/warroom/go/internal/leagues"
	"github.com/warroomhq/warroom/go/internal/player"
	"github.com/warroomhq/warroom/go/internal/roster"
	"github.com/warroomhq/warroom/go/internal/trade"
)

type Services struct {
	API          *httpapi.Server
	Orchestrator *orchestrator.Orchestrator
	Connections  *gateway.ConnectionManager
	WebSockets   *gateway.WebSocketHandler
}

// setupServices wires the dependency chain: pool, repository layer, app
// layer, then the scheduler and gateway on top.
func setupServices(pool *pgxpool.Pool, cfg *Config) *Services {
	clock := clockwork.NewRealClock()

	outboxRepo := outbox.NewRepository(pool)

	leagueApp := leagues.NewApp(leagues.NewRepository(pool))
	teamApp := fantasyteam.NewApp(fantasyteam.NewRepository(pool), leagueApp)
	playerApp := player.NewApp(player.NewRepository(pool))
	rosterApp := roster.NewApp(roster.NewRepository(pool))

	draftRepo := draft.NewRepository(pool, outboxRepo)
	pickApp := pick.NewApp(pick.NewRepository(pool, outboxRepo), draftRepo, leagueApp, playerApp, teamApp, clock)
	draftApp := draft.NewApp(draftRepo, leagueApp, teamApp, pickApp, clock)

	tradeApp := trade.NewApp(trade.NewRepository(pool, outboxRepo), teamApp, rosterApp, clock)

	orch := orchestrator.NewOrchestrator(draftApp, pickApp, cfg.Draft.SchedulerBatchSize, clock)

	connections := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())

	return &Services{
		API: &httpapi.Server{
			Leagues: leagueApp,
			Teams:   teamApp,
			Players: playerApp,
			Rosters: rosterApp,
			Drafts:  draftApp,
			Picks:   pickApp,
			Trades:  tradeApp,
			Orch:    orch,
		},
		Orchestrator: orch,
		Connections:  connections,
		WebSockets:   gateway.NewWebSocketHandler(connections),
	}
}
