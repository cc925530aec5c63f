package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "github.com/Joshua-Precious/Nutrical/internal/adapter/http"
	"github.com/Joshua-Precious/Nutrical/internal/adapter/memory"
	"github.com/Joshua-Precious/Nutrical/internal/adapter/postgres"
	"github.com/Joshua-Precious/Nutrical/internal/adapter/sqlite"
	"github.com/Joshua-Precious/Nutrical/internal/app"
	"github.com/Joshua-Precious/Nutrical/internal/config"
	"github.com/Joshua-Precious/Nutrical/internal/domain"
	"github.com/Joshua-Precious/Nutrical/internal/logger"
)

const sessionCleanupInterval = time.Hour

// store is the set of ports every storage backend implements.
type store interface {
	domain.ProfileRepository
	domain.FoodLogRepository
	domain.CustomFoodRepository
	domain.RecipeRepository
	domain.WaterRepository
	domain.WeightRepository
	domain.UserRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, nil)

	if err := run(cfg, log); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, sessions, closer, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	log.Info("storage: %s", cfg.Storage)

	profiles := app.NewProfileService(db)
	authSvc := app.NewAuthService(db, sessions)
	svc := adapthttp.Services{
		Profile: profiles,
		FoodLog: app.NewFoodLogService(db, db, db),
		Foods:   app.NewFoodService(db, db),
		Water:   app.NewWaterService(db),
		Weight:  app.NewWeightService(db, profiles),
		Summary: app.NewSummaryService(db, db, db, db),
		Auth:    authSvc,
		Reset:   app.NewResetService(db, db, db, db, db),
	}

	if err := bootstrapUser(ctx, cfg, authSvc, log); err != nil {
		return err
	}

	oidcCfg, err := adapthttp.NewOIDCConfig(ctx, cfg.OIDC)
	if err != nil {
		return err
	}
	if oidcCfg.Enabled {
		log.Info("sso enabled via %s", cfg.OIDC.Issuer)
	}

	srv := adapthttp.New(svc, cfg.WebDir, log).WithOIDC(oidcCfg)
	if cfg.DisableAuth {
		log.Warn("authentication disabled")
		srv = srv.WithoutAuth()
	}

	go cleanupSessions(ctx, authSvc, log)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening on %s", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func openStore(cfg *config.Config) (store, domain.SessionRepository, io.Closer, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("postgres open: %w", err)
		}
		return db, postgres.NewSessionRepo(db), db, nil
	case config.StorageSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("sqlite open %s: %w", cfg.SQLitePath, err)
		}
		return db, sqlite.NewSessionRepo(db), db, nil
	default:
		db := memory.New()
		return db, db.NewSessionRepo(), io.NopCloser(nil), nil
	}
}

// bootstrapUser creates the configured initial account on an empty install.
func bootstrapUser(ctx context.Context, cfg *config.Config, auth *app.AuthService, log *logger.Logger) error {
	if cfg.InitialUser == "" {
		return nil
	}
	needsSetup, err := auth.NeedsSetup(ctx)
	if err != nil {
		return fmt.Errorf("check users: %w", err)
	}
	if !needsSetup {
		return nil
	}
	if err := auth.CreateInitialUser(ctx, cfg.InitialUser, cfg.InitialPassword); err != nil {
		return fmt.Errorf("create initial user: %w", err)
	}
	log.Info("created initial user %q", cfg.InitialUser)
	return nil
}

func cleanupSessions(ctx context.Context, auth *app.AuthService, log *logger.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := auth.CleanupExpired(ctx); err != nil {
				log.Warn("session cleanup: %v", err)
			}
		}
	}
}
