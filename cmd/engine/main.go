package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lucky5/draw-engine/api/routes"
	"github.com/lucky5/draw-engine/internal/config"
	"github.com/lucky5/draw-engine/internal/engine"
	"github.com/lucky5/draw-engine/internal/handlers"
	mongorepo "github.com/lucky5/draw-engine/internal/repositories/mongodb"
	"github.com/lucky5/draw-engine/internal/services"
	"github.com/lucky5/draw-engine/pkg/mongodb"
	"golang.org/x/exp/slog"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	cancel()
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)
	if err := mongorepo.EnsureIndexes(context.Background(), db); err != nil {
		slog.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// Repositories
	issueRepo := mongorepo.NewIssueRepository(db)
	betRepo := mongorepo.NewBetRepository(db)
	outcomeRepo := mongorepo.NewOutcomeRepository(db)
	decisionRepo := mongorepo.NewDecisionLogRepository(db)
	oddsRepo := mongorepo.NewOddsRepository(db)
	configRepo := mongorepo.NewAvoidWinConfigRepository(db)
	jackpotRepo := mongorepo.NewJackpotRepository(db)
	recorder := mongorepo.NewDrawRecorder(db)

	// Services
	rng := engine.NewCryptoRNG()
	issueService := services.NewIssueService(issueRepo, cfg)
	oddsService := services.NewOddsService(oddsRepo)
	configService := services.NewConfigService(configRepo, cfg)
	jackpotService := services.NewJackpotService(jackpotRepo, rng, cfg)
	drawService := services.NewDrawService(
		issueRepo, betRepo, outcomeRepo, decisionRepo, recorder,
		oddsService, configService, jackpotService,
		engine.NewEngine(rng), cfg,
	)

	if err := oddsService.SeedDefaults(context.Background()); err != nil {
		slog.Error("Failed to seed odds defaults", "error", err)
		os.Exit(1)
	}

	// Scheduler
	scheduler := services.NewScheduler(issueService, drawService, cfg.Lottery.Types)
	if err := scheduler.Start(); err != nil {
		slog.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// HTTP surface
	defaultType := cfg.Lottery.Types[0]
	deps := &routes.HandlerDependencies{
		Issue:   handlers.NewIssueHandler(issueService, defaultType),
		Draw:    handlers.NewDrawHandler(drawService, defaultType),
		Odds:    handlers.NewOddsHandler(oddsService),
		Config:  handlers.NewConfigHandler(configService),
		Jackpot: handlers.NewJackpotHandler(jackpotService),
	}
	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down")

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
