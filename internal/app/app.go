// Package app assembles the core services behind a single handle for a
// transport layer to consume.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Senegura/TicketSystem/internal/auth"
	"github.com/Senegura/TicketSystem/internal/config"
	"github.com/Senegura/TicketSystem/internal/domain"
	"github.com/Senegura/TicketSystem/internal/jsonstore"
	"github.com/Senegura/TicketSystem/internal/persistence"
	"github.com/Senegura/TicketSystem/internal/repository"
	"github.com/Senegura/TicketSystem/internal/service"
)

// Core exposes the assembled services: ticket CRUD, registration/login and
// session-token signing/validation.
type Core struct {
	Auth    *service.AuthService
	Tickets *service.TicketService
	Tokens  *auth.TokenManager

	db *persistence.SQLite
}

// New opens both stores and wires the services. The returned Core owns the
// database handle; callers release it with Close.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Core, error) {
	db, err := persistence.NewSQLite(ctx, cfg.Users, logger)
	if err != nil {
		return nil, fmt.Errorf("open credential database: %w", err)
	}

	userRepo := repository.NewUserRepository(db.DB)
	ticketStore := jsonstore.New[domain.Ticket](cfg.Tickets.FilePath, logger)

	return &Core{
		Auth:    service.NewAuthService(cfg.Auth, userRepo),
		Tickets: service.NewTicketService(ticketStore),
		Tokens:  auth.NewTokenManager(cfg.Auth.JWTSecret),
		db:      db,
	}, nil
}

// Close releases the resources held by the core.
func (c *Core) Close() error {
	return c.db.Close()
}
