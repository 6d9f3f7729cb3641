package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jmanzanog/showcase/internal/application"
	"github.com/jmanzanog/showcase/internal/infrastructure/persistence/memory"
	"github.com/jmanzanog/showcase/internal/infrastructure/seed"
	"github.com/jmanzanog/showcase/internal/infrastructure/showcaseapi"
	"github.com/jmanzanog/showcase/internal/interfaces/cli"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// connect returns an in-process service over the sample data for --local,
// otherwise a client for the server at baseURL.
func connect(baseURL string, local bool) (cli.Service, error) {
	if local {
		repo := memory.NewEntryRepository(seed.MustEntries()...)
		return application.NewShowcaseService(repo, application.DefaultOptions()), nil
	}

	client := showcaseapi.NewClient(baseURL)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("showcase server at %s is not reachable (use --local for sample data): %w", baseURL, err)
	}
	return client, nil
}

func run() error {
	_ = godotenv.Load()

	// Logs are off unless SHOWCASE_DEBUG is set, and then go to stderr so
	// piped JSON stays clean.
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if os.Getenv("SHOWCASE_DEBUG") != "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	app := &cli.App{
		Connect: connect,
		IsTerminal: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}

	return cli.NewRootCmd(app).Execute()
}
