package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ajdsjdasjh123sd/linkgate/internal/config"
	"github.com/ajdsjdasjh123sd/linkgate/internal/domain"
	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver"
	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver/deps"
	"github.com/ajdsjdasjh123sd/linkgate/internal/logger"
	"github.com/ajdsjdasjh123sd/linkgate/internal/render"
	"github.com/ajdsjdasjh123sd/linkgate/internal/scheduler"
	"github.com/ajdsjdasjh123sd/linkgate/internal/store"
	"github.com/ajdsjdasjh123sd/linkgate/internal/version"
)

type App struct {
	cfg            *config.Config
	logger         logger.Logger
	server         *httpserver.Server
	slugSweeper    *scheduler.Sweeper
	sessionSweeper *scheduler.Sweeper
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	slugs := store.NewMemory[domain.SlugEntry]()
	sessions := store.NewMemory[domain.SessionEntry]()

	slugSweeper := scheduler.NewSweeper("slugs", slugs, loggerClient, cfg.SlugSweepInterval)
	sessionSweeper := scheduler.NewSweeper("sessions", sessions, loggerClient, cfg.SessionSweepInterval)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		TimeNow:   time.Now,

		Slugs:    slugs,
		Sessions: sessions,
		Renderer: render.New(cfg.LandingFile, cfg.ExpiredFile),

		PublicBaseURL:      cfg.PublicBaseURL,
		DestinationBaseURL: cfg.DestinationBaseURL,
		DestinationPath:    cfg.DestinationPath,
		SlugTTL:            cfg.SlugTTL,
		PrimarySlugID:      cfg.PrimarySlugID,
		RedirectRootToSlug: cfg.RedirectRootToSlug,

		AllowedHosts: cfg.AllowedHosts,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:            cfg,
		logger:         loggerClient,
		server:         server,
		slugSweeper:    slugSweeper,
		sessionSweeper: sessionSweeper,
	}
}

func (a *App) Run() error {
	a.logger.Info("🚀 Starting linkgate",
		logger.String("version", version.Version),
		logger.String("addr", a.cfg.ListenPort))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.slugSweeper.Start(ctx)
	a.logger.Info("slug sweeper started",
		logger.Duration("interval", a.cfg.SlugSweepInterval))

	a.sessionSweeper.Start(ctx)
	a.logger.Info("session sweeper started",
		logger.Duration("interval", a.cfg.SessionSweepInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.slugSweeper.Stop()
	a.sessionSweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ linkgate stopped cleanly")
	return nil
}
