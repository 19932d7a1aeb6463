package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/koit3572/kostudy/internal/config"
	"github.com/koit3572/kostudy/internal/heatmap"
	"github.com/koit3572/kostudy/internal/httpapi"
	"github.com/koit3572/kostudy/internal/session"
	"github.com/koit3572/kostudy/internal/store"
)

type App struct {
	cfg  config.Config
	log  *zap.Logger
	repo store.Repo
}

func New(cfg config.Config, log *zap.Logger) *App {
	return &App{cfg: cfg, log: log}
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting kostudy",
		zap.String("db_driver", a.cfg.DBDriver),
		zap.String("http", a.cfg.HTTPAddr),
		zap.Duration("tick_interval", a.cfg.TickInterval),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the database and run migrations.
	repo, err := store.Open(ctx, a.cfg.DBDriver, a.cfg.DBDSN)
	if err != nil {
		a.log.Error("open store failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("store ready")

	sessions := session.NewManager(repo, a.log, a.cfg.TickInterval)
	heat := heatmap.NewService(repo, a.log, a.cfg.WindowMonths)
	srv := httpapi.New(ctx, a.log, sessions, heat, a.cfg.JWTSecret)

	go func() {
		if err := srv.Listen(a.cfg.HTTPAddr); err != nil {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	a.log.Info("shutdown signal received")

	if err := srv.Shutdown(5 * time.Second); err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
	// Canceling ctx already stops tracker loops; StopAll makes the registry
	// state explicit before the store goes away.
	sessions.StopAll()
	_ = a.repo.Close()
	return nil
}
