package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"debate-arena/auth"
	"debate-arena/debate"
	"debate-arena/internal"
	"debate-arena/matchmaking"
	"debate-arena/moderation"
	"debate-arena/realtime"
	"debate-arena/repositories"
	"debate-arena/scoring"
	"debate-arena/search"
	"debate-arena/services"
	"debate-arena/transport"
	"debate-arena/workers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components and manages the server lifecycle, so every
// defer executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := internal.LoggerFromString(config.LogLevel)

	mask, err := internal.CharacterRune(config.CensorMask)
	if err != nil {
		return err
	}

	// 2. Storage (BadgerDB + Bluge)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	writer, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing search index...")
		_ = writer.Close()
	}()

	// 3. Repositories
	sessions := repositories.NewSessionRepository(db)
	contributions := repositories.NewContributionRepository(db)
	rankings := repositories.NewRankingRepository(db)
	users := repositories.NewUserRepository(db)

	// 4. Core components
	registry := debate.NewRegistry(log, repositories.NewDebateStore(sessions, contributions))
	hub := realtime.NewHub(log)
	moderator, err := moderation.NewModerator(nil, mask)
	if err != nil {
		return fmt.Errorf("moderator setup failed: %w", err)
	}
	index := search.NewIndex(log, writer)

	table := scoring.NewTable(log, rankings)
	stored, err := rankings.ListRankings()
	if err != nil {
		return fmt.Errorf("ranking restore failed: %w", err)
	}
	table.Restore(stored)

	evaluator := scoring.NewHTTPEvaluator(config.EvalURL, config.EvalTimeout)
	pipeline := scoring.NewPipeline(log, evaluator, table)

	debateService := services.NewDebateService(log, registry, hub, moderator, index, pipeline, sessions, contributions)
	queue := matchmaking.NewQueue(log, registry)

	tokens := auth.NewTokenManager(config.JWTSecret, config.AuthTokenDuration)
	authService := auth.NewService(log, users, tokens)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Background workers
	supervisor := workers.NewSupervisor(log).Add(
		workers.NewHealthWorker(log, config.MetricInterval),
		workers.NewMatchmakerWorker(log, queue, config.DefaultTopic, config.MatchSweepInterval),
	)
	supervisorDone := make(chan struct{})
	go func() {
		supervisor.Run(ctx)
		close(supervisorDone)
	}()

	// 7. HTTP server
	router := transport.SetupRouter(transport.RouterDeps{
		Log: log,
		Handler: transport.NewHandler(
			log, debateService, authService, queue, table,
		),
		Tokens:     tokens,
		Hub:        hub,
		SendBuffer: config.ConnectionBufferSize,
		Debug:      config.Debug,
	})

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: router}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown did not finish cleanly", "err", err)
	}
	supervisor.Stop()
	<-supervisorDone
	log.Info("Program stopped cleanly")

	return nil
}
