package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/easygen/auth-service/config"
	httpserver "github.com/easygen/auth-service/internal/adapter/http/server"
	"github.com/easygen/auth-service/internal/adapter/postgres"
	rabbitadapter "github.com/easygen/auth-service/internal/adapter/rabbit"
	"github.com/easygen/auth-service/internal/service/auth"
	"github.com/easygen/auth-service/pkg/logger"
	postgresclient "github.com/easygen/auth-service/pkg/postgres"
	rabbitclient "github.com/easygen/auth-service/pkg/rabbit"
)

// App wires storage, messaging and the HTTP server together.
type App struct {
	postgresDB *postgresclient.PostgreDB
	rabbitMQ   *rabbitclient.RabbitMQ
	httpServer *httpserver.API

	cfg config.Config
	log logger.Logger
}

func New(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	db, err := postgresclient.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if cfg.Database.Migrate {
		if err := runMigrations(cfg.Database.GetMigrateDSN()); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info(ctx, "database migrations applied")
	}

	// repositories
	userRepo := postgres.NewUserRepo(db.Pool)

	// services
	tokenSvc, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init token service: %w", err)
	}

	var (
		rabbitMQ *rabbitclient.RabbitMQ
		events   auth.EventPublisher
	)
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err = rabbitclient.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}

		producer, err := rabbitadapter.NewAuthProducer(rabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("failed to init auth producer: %w", err)
		}
		events = producer
	}

	authSvc := auth.NewAuthService(userRepo, tokenSvc, events, cfg.Auth.BcryptCost, log)

	server, err := httpserver.New(cfg, authSvc, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init HTTP server: %w", err)
	}

	return &App{
		postgresDB: db,
		rabbitMQ:   rabbitMQ,
		httpServer: server,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (a *App) Start(ctx context.Context) error {
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "auth service closed")
	}()

	errCh := make(chan error, 1)
	a.httpServer.Run(ctx, errCh)

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "service started")
	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to shutdown HTTP server", err)
	}

	if a.rabbitMQ != nil {
		if err := a.rabbitMQ.Close(ctx); err != nil {
			a.log.Error(ctx, "failed to close rabbitmq connection", err)
		}
	}

	a.postgresDB.Pool.Close()
}

func runMigrations(databaseURL string) error {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
