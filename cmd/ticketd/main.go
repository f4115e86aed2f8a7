// Command ticketd wires the ticket-system core: configuration, logging,
// the JSON ticket store, the SQLite credential store and the services a
// transport layer plugs into. It refuses to start without an externally
// supplied signing secret.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Senegura/TicketSystem/internal/app"
	"github.com/Senegura/TicketSystem/internal/config"
	"github.com/Senegura/TicketSystem/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to assemble core", zap.Error(err))
	}
	defer core.Close() //nolint:errcheck

	tickets, err := core.Tickets.GetAll(ctx)
	if err != nil {
		logger.Fatal("ticket store not readable", zap.Error(err))
	}

	logger.Info("ticket system core ready",
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version),
		zap.String("ticket_store", cfg.Tickets.FilePath),
		zap.String("user_db", cfg.Users.DatabasePath),
		zap.Int("token_ttl_minutes", cfg.Auth.TokenTTLMinutes),
		zap.Int("tickets", len(tickets)))

	waitForShutdown(logger)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
