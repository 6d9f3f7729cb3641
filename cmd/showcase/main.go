package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmanzanog/showcase/internal/application"
	"github.com/jmanzanog/showcase/internal/domain"
	"github.com/jmanzanog/showcase/internal/infrastructure/config"
	persistence "github.com/jmanzanog/showcase/internal/infrastructure/persistence/gorm"
	"github.com/jmanzanog/showcase/internal/infrastructure/persistence/memory"
	"github.com/jmanzanog/showcase/internal/infrastructure/persistence/sqldb"
	"github.com/jmanzanog/showcase/internal/infrastructure/seed"
	httpHandler "github.com/jmanzanog/showcase/internal/interfaces/http"
	"github.com/joho/godotenv"
)

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogger configures and returns a structured logger with source information
func setupLogger(level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLogLevel(level),
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(logger)
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// initializeRepository opens the configured store, runs its migrations and
// returns the repository together with a closer for the underlying connection.
func initializeRepository(ctx context.Context, cfg *config.Config) (domain.EntryRepository, io.Closer, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return memory.NewEntryRepository(), nopCloser{}, nil

	case config.StorePostgres, config.StoreOracle, config.StoreSQLite:
		db, err := sqldb.Open(ctx, cfg.StoreDriver, cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
		}
		return sqldb.NewRepository(db), db, nil

	case config.StoreGorm:
		db, err := persistence.Open(cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get gorm connection: %w", err)
		}
		repo := persistence.NewGormRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to migrate gorm store: %w", err)
		}
		return repo, sqlDB, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}
}

// serviceOptions maps configuration onto the service knobs.
func serviceOptions(cfg *config.Config) application.Options {
	opts := application.DefaultOptions()
	opts.Latency = cfg.MockLatency
	opts.TopTechnologies = cfg.TopTechnologiesLimit
	opts.ModeFallback = cfg.ModeFallback
	if policy, err := application.ParseDeletePolicy(cfg.DeleteMissing); err == nil {
		opts.DeletePolicy = policy
	}
	return opts
}

// buildServer creates and configures the HTTP server with all routes and handlers
func buildServer(cfg *config.Config, service *application.ShowcaseService) *http.Server {
	router := gin.Default()
	handler := httpHandler.NewHandler(service)
	httpHandler.SetupRoutes(router, handler)

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// App wraps the running components so shutdown can be tested.
type App struct {
	Server *http.Server
	Store  io.Closer
}

// Shutdown stops accepting requests, then releases the store.
func (a *App) Shutdown(ctx context.Context) error {
	slog.InfoContext(ctx, "Shutting down application...")

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			return fmt.Errorf("store close error: %w", err)
		}
	}
	return nil
}

// run contains the main application logic without os.Exit calls
func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogger(cfg.LogLevel)

	ctx := context.Background()

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	repo, store, err := initializeRepository(initCtx, cfg)
	if err != nil {
		return fmt.Errorf("store initialization failed: %w", err)
	}
	slog.InfoContext(ctx, "Using store", "driver", cfg.StoreDriver)

	if cfg.SeedData {
		if _, err := seed.Apply(initCtx, repo); err != nil {
			_ = store.Close()
			return fmt.Errorf("failed to seed store: %w", err)
		}
	}

	service := application.NewShowcaseService(repo, serviceOptions(cfg))
	app := &App{
		Server: buildServer(cfg, service),
		Store:  store,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "host", cfg.ServerHost, "port", cfg.ServerPort)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		_ = store.Close()
		return fmt.Errorf("server error: %w", err)
	case <-quit:
		slog.Info("Received shutdown signal")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	slog.Info("Server exited gracefully")
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("Application error", "error", err)
		os.Exit(1)
	}
}
