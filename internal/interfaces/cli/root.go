package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jmanzanog/showcase/internal/application"
	"github.com/jmanzanog/showcase/internal/domain"
	"github.com/spf13/cobra"
)

// Service is the facade every command talks to. Both the in-process
// ShowcaseService and the remote showcaseapi.Client satisfy it.
type Service interface {
	ListPortfolios(ctx context.Context, query domain.ListQuery) (*application.ListResult, error)
	GetPortfolioByID(ctx context.Context, id string) (*domain.Entry, error)
	GetStats(ctx context.Context) (*domain.StatsSummary, error)
	CreatePortfolio(ctx context.Context, patch domain.EntryPatch) (*domain.Entry, error)
	UpdatePortfolio(ctx context.Context, id string, patch domain.EntryPatch) (*domain.Entry, error)
	DeletePortfolio(ctx context.Context, id string) error
	BatchDeletePortfolios(ctx context.Context, ids []string) (*application.BatchDeleteResult, error)
	UpdateSortOrder(ctx context.Context, updates []application.SortOrderUpdate) (*application.SortOrderResult, error)
	ToggleFeatured(ctx context.Context, id string, featured bool) (*domain.Entry, error)
}

// App holds what the commands need. Service may be set up front; otherwise
// Connect resolves it from the --server and --local flags before a command runs.
type App struct {
	Service    Service
	Connect    func(server string, local bool) (Service, error)
	IsTerminal func() bool
}

type rootOptions struct {
	server string
	local  bool
	json   bool
}

// NewRootCmd creates the top-level "showcasectl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "showcasectl",
		Short:         "Browse and manage portfolio showcase entries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Connect == nil {
				if app.Service == nil {
					return fmt.Errorf("no showcase service configured")
				}
				return nil
			}
			svc, err := app.Connect(opts.server, opts.local)
			if err != nil {
				return err
			}
			app.Service = svc
			return nil
		},
	}

	defaultServer := os.Getenv("SHOWCASE_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}
	root.PersistentFlags().StringVar(&opts.server, "server", defaultServer, "Base URL of a running showcase server")
	root.PersistentFlags().BoolVar(&opts.local, "local", false, "Use an in-process store seeded with the sample data")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Print JSON instead of tables")

	out := func(cmd *cobra.Command) *printer {
		asJSON := opts.json
		if app.IsTerminal != nil && !app.IsTerminal() {
			asJSON = true
		}
		return &printer{w: cmd.OutOrStdout(), json: asJSON}
	}

	root.AddCommand(
		newListCmd(app, out),
		newGetCmd(app, out),
		newStatsCmd(app, out),
		newCreateCmd(app, out),
		newUpdateCmd(app, out),
		newDeleteCmd(app, out),
		newBatchDeleteCmd(app, out),
		newSortCmd(app, out),
		newFeatureCmd(app, out),
	)

	return root
}
