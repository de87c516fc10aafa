package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/warroomhq/warroom/go/internal/gateway"
	_ "github.com/warroomhq/warroom/go/internal/sports/mlb"
	_ "github.com/warroomhq/warroom/go/internal/sports/nba"
	_ "github.com/warroomhq/warroom/go/internal/sports/nfl"
	_ "github.com/warroomhq/warroom/go/internal/sports/nhl"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	if getEnv("LOG_LEVEL", "info") == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	plugins, err := setupSportsPlugins(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("setup sports plugins")
	}
	log.Info().Int("sports", len(plugins)).Msg("sports plugins loaded")

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, _, err := setupDatabase(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("setup database")
	}
	defer pool.Close()

	services := setupServices(pool, cfg)
	server := setupServer(services)

	// Scheduler for pick deadlines
	go func() {
		if err := services.Orchestrator.RunScheduler(ctx); err != nil {
			log.Error().Err(err).Msg("scheduler exited")
			stop()
		}
	}()

	// Websocket fanout
	go services.Connections.Start(ctx)

	consumerCfg := gateway.DefaultJetStreamConsumerConfig()
	if url := os.Getenv("NATS_URL"); url != "" {
		consumerCfg.URL = url
	}
	consumer, err := gateway.NewEventConsumer(services.Connections, consumerCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create event consumer")
	}
	defer consumer.Stop()
	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("event consumer exited")
		}
	}()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server exited")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("graceful shutdown complete")
}
