package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/omarshaarawi/coachbrief/internal/api/espn"
	"github.com/omarshaarawi/coachbrief/internal/api/fantasy"
	"github.com/omarshaarawi/coachbrief/internal/config"
	"github.com/omarshaarawi/coachbrief/internal/mcptools"
	"github.com/omarshaarawi/coachbrief/internal/repository/memory"
	"github.com/omarshaarawi/coachbrief/internal/service"
	"github.com/omarshaarawi/coachbrief/internal/summarizer"
)

func main() {
	// stdout carries the protocol.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(); err != nil {
		slog.Error("Error running MCP server", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	cfg, err := config.NewAnalytics()
	if err != nil {
		return err
	}

	var narrator service.Summarizer
	if cfg.LLM.Enabled() {
		narrator = summarizer.New(cfg.LLM)
	}

	fantasyAPI := fantasy.NewAPI(espn.NewAPI(espn.NewClient(cfg.ESPNAPI)))
	svc := service.NewFantasyService(fantasyAPI, memory.NewRepository(memory.DefaultTTL), narrator, *cfg)

	server := mcp.NewServer(&mcp.Implementation{Name: "coachbrief", Version: "0.1.0"}, nil)
	mcptools.Register(server, svc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("MCP server listening on stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}
