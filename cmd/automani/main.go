package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/automani/automani/internal/adapter/driven/localfs"
	sqliteadapter "github.com/automani/automani/internal/adapter/driven/sqlite"
	httphandler "github.com/automani/automani/internal/adapter/driving/http"
	"github.com/automani/automani/internal/application"
	"github.com/automani/automani/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration. A .env file is optional; real deployments set
	// env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"upload_dir", cfg.UploadDir,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters.
	carStore := sqliteadapter.NewCarRepo(db)
	leadStore := sqliteadapter.NewLeadRepo(db)
	adminStore := sqliteadapter.NewAdminRepo(db)
	sessionStore := sqliteadapter.NewSessionRepo(db)

	photoStore, err := localfs.NewPhotoStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	// 6. Create services.
	catalogSvc := application.NewCatalogService(carStore)
	inventorySvc := application.NewInventoryService(carStore, photoStore, slog.Default())
	leadSvc := application.NewLeadService(leadStore)
	authSvc := application.NewAuthService(adminStore, sessionStore)

	// 7. Seed the admin account on first run.
	if err := authSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}

	// 8. Create HTTP handler and register routes.
	handler := httphandler.NewHandler(catalogSvc, inventorySvc, leadSvc, authSvc, slog.Default())
	mux := httphandler.NewServeMux(handler, photoStore.Dir(), slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("automani started", "listen_addr", cfg.ListenAddr)

	// 9. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 10. Graceful shutdown with a 10s drain window.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
