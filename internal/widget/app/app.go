package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/checkout/internal/widget/http"
	"github.com/aussiebroadwan/checkout/internal/widget/registry"
	"github.com/aussiebroadwan/checkout/internal/widget/service"
	"github.com/aussiebroadwan/checkout/internal/widget/store"
	"github.com/aussiebroadwan/checkout/internal/widget/store/drivers/sqlite"
	"github.com/aussiebroadwan/checkout/pkg/cryptox"
	"github.com/aussiebroadwan/checkout/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the widget service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// db is nil when clients come from a registry file.
	db       store.Store
	registry *registry.Snapshot

	sessionService *service.SessionService

	server *http.Server
	router *httpapi.Router
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "checkout-widget",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.MasterKeyPath != "" {
		cryptox.SetMasterKeyPath(cfg.MasterKeyPath)
	}

	if err := app.initRegistry(context.Background()); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("widget service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"clients", app.registry.Len(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down widget service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			return err
		}
	}

	app.logger.Info("widget service stopped")
	return nil
}

// initRegistry builds the client registry once, from the registry file when
// configured and from the database otherwise.
func (app *Application) initRegistry(ctx context.Context) error {
	if app.cfg.RegistryFile != "" {
		reg, err := registry.LoadYAMLFile(app.cfg.RegistryFile)
		if err != nil {
			return fmt.Errorf("failed to load client registry: %w", err)
		}
		app.registry = reg
		app.logger.Info("client registry loaded from file",
			"path", app.cfg.RegistryFile,
			"clients", reg.Len(),
		)
		return nil
	}

	db, err := OpenStore(app.cfg.DatabaseFile)
	if err != nil {
		return err
	}
	app.db = db
	app.logger.Info("database migrations applied successfully")

	if app.cfg.MasterKeyPath == "" && os.Getenv(cryptox.MasterKeyEnv) == "" {
		app.logger.Warn("no master key configured, using an ephemeral key; stored clients cannot be opened",
			"env", cryptox.MasterKeyEnv)
	}

	reg, err := registry.LoadSource(ctx, db.Clients())
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to load client registry: %w", err)
	}
	app.registry = reg
	app.logger.Info("client registry loaded from database", "clients", reg.Len())
	return nil
}

// OpenStore opens the SQLite database at path and applies migrations.
func OpenStore(path string) (*sqlite.Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Registry:  app.registry,
		PublicURL: app.cfg.PublicURL,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.registry,
		BuildVersion,
		app.db,
		app.logger,
	)
	router.SessionService = app.sessionService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
