package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/coachbrief/internal/api/espn"
	"github.com/omarshaarawi/coachbrief/internal/api/fantasy"
	"github.com/omarshaarawi/coachbrief/internal/bot"
	"github.com/omarshaarawi/coachbrief/internal/config"
	"github.com/omarshaarawi/coachbrief/internal/repository/memory"
	"github.com/omarshaarawi/coachbrief/internal/scheduler"
	"github.com/omarshaarawi/coachbrief/internal/service"
	"github.com/omarshaarawi/coachbrief/internal/summarizer"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	espnClient := espn.NewClient(cfg.ESPNAPI)
	fantasyAPI := fantasy.NewAPI(espn.NewAPI(espnClient))

	var narrator service.Summarizer
	if cfg.LLM.Enabled() {
		narrator = summarizer.New(cfg.LLM)
	} else {
		slog.Info("OPENAI_API_KEY not set; coach narratives disabled")
	}

	repo := memory.NewRepository(memory.DefaultTTL)
	fantasyService := service.NewFantasyService(fantasyAPI, repo, narrator, cfg.Analytics)

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, fantasyService)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, err := scheduler.NewScheduler(fantasyService, telegramBot.SendMessage, cfg.Schedule, cfg.Coach.TeamID)
	if err != nil {
		return err
	}

	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	http.HandleFunc("/", healthCheckHandler)

	go func() {
		if err := http.ListenAndServe(cfg.HTTP.Addr, nil); err != nil {
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
