package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/trav563/dynasty-analysis/internal/api/sleeper"
	"github.com/trav563/dynasty-analysis/internal/bot"
	"github.com/trav563/dynasty-analysis/internal/cache"
	"github.com/trav563/dynasty-analysis/internal/config"
	"github.com/trav563/dynasty-analysis/internal/history"
	"github.com/trav563/dynasty-analysis/internal/narrative"
	"github.com/trav563/dynasty-analysis/internal/scheduler"
	"github.com/trav563/dynasty-analysis/internal/season"
	"github.com/trav563/dynasty-analysis/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()
	client := sleeper.NewClient()
	api := sleeper.NewAPI(client)

	store := cache.New(cache.DefaultTTL, clock)
	resolver := history.NewResolver(api, history.DefaultPacing(), clock)
	reconciler := season.NewReconciler(api, store)
	engine := narrative.NewEngine(reconciler)

	historyService := service.NewHistoryService(api, resolver, reconciler, engine, cfg.Sleeper.LeagueID)
	if err := historyService.Bootstrap(ctx); err != nil {
		slog.Error("Bootstrap failed, will retry lazily", "error", err)
	}

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, historyService)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(historyService, telegramBot.SendMessage)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	http.HandleFunc("/", healthCheckHandler)

	go func() {
		if err := http.ListenAndServe(":80", nil); err != nil {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	return nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
