package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmanzanog/showcase/internal/application"
	"github.com/jmanzanog/showcase/internal/domain"
	"github.com/spf13/cobra"
)

type printerFunc func(cmd *cobra.Command) *printer

func newListCmd(app *App, out printerFunc) *cobra.Command {
	var query domain.ListQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries with optional filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Service.ListPortfolios(cmd.Context(), query)
			if err != nil {
				return err
			}
			return out(cmd).entries(result, query.Normalized())
		},
	}

	cmd.Flags().StringVar(&query.ProjectType, "type", "", "Filter by project type (or \"all\")")
	cmd.Flags().StringVar(&query.Status, "status", "", "Filter by status (or \"all\")")
	cmd.Flags().StringVar(&query.Keyword, "keyword", "", "Case-insensitive match on title, description or technology")
	cmd.Flags().StringVar(&query.Mode, "mode", "", "Filter by display mode (light or dark)")
	cmd.Flags().IntVar(&query.Page, "page", domain.DefaultPage, "Page number, starting at 1")
	cmd.Flags().IntVar(&query.PageSize, "page-size", domain.DefaultPageSize, "Entries per page")

	return cmd
}

func newGetCmd(app *App, out printerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one entry in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Service.GetPortfolioByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return out(cmd).entry(entry)
		},
	}
}

func newStatsCmd(app *App, out printerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show counts by type, status and top technologies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Service.GetStats(cmd.Context())
			if err != nil {
				return err
			}
			return out(cmd).stats(stats)
		},
	}
}

// patchFlags binds the editable entry fields to flags. Only flags the user
// actually set end up in the patch.
type patchFlags struct {
	title, description, cover, projectType, status string
	demo, github, mode                             string
	overview, role, duration, client               string
	challenge, solution                            string
	technologies, gallery                          []string
	featured                                       bool
	sortOrder                                      int
}

func (f *patchFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "Title")
	flags.StringVar(&f.description, "description", "", "Short description")
	flags.StringVar(&f.cover, "cover", "", "Cover image URL")
	flags.StringVar(&f.projectType, "type", "", "Project type")
	flags.StringVar(&f.status, "status", "", "Status (developing, completed, archived)")
	flags.StringSliceVar(&f.technologies, "tech", nil, "Technologies, comma separated or repeated")
	flags.StringVar(&f.demo, "demo", "", "Demo URL")
	flags.StringVar(&f.github, "github", "", "Repository URL")
	flags.BoolVar(&f.featured, "featured", false, "Mark as featured")
	flags.IntVar(&f.sortOrder, "sort-order", 0, "Display position")
	flags.StringVar(&f.mode, "mode", "", "Display mode (light or dark)")
	flags.StringVar(&f.overview, "overview", "", "Detail overview")
	flags.StringVar(&f.role, "role", "", "Role on the project")
	flags.StringVar(&f.duration, "duration", "", "Project duration")
	flags.StringVar(&f.client, "client", "", "Client name")
	flags.StringVar(&f.challenge, "challenge", "", "Main challenge")
	flags.StringVar(&f.solution, "solution", "", "Solution summary")
	flags.StringSliceVar(&f.gallery, "gallery", nil, "Gallery image URLs")
}

func (f *patchFlags) patch(cmd *cobra.Command) domain.EntryPatch {
	changed := cmd.Flags().Changed
	str := func(name, v string) *string {
		if !changed(name) {
			return nil
		}
		return &v
	}

	p := domain.EntryPatch{
		Title:       str("title", f.title),
		Description: str("description", f.description),
		CoverURL:    str("cover", f.cover),
		DemoURL:     str("demo", f.demo),
		GithubURL:   str("github", f.github),
		Overview:    str("overview", f.overview),
		Role:        str("role", f.role),
		Duration:    str("duration", f.duration),
		Client:      str("client", f.client),
		Challenge:   str("challenge", f.challenge),
		Solution:    str("solution", f.solution),
	}
	if changed("type") {
		pt := domain.ProjectType(f.projectType)
		p.ProjectType = &pt
	}
	if changed("status") {
		s := domain.Status(f.status)
		p.Status = &s
	}
	if changed("mode") {
		m := domain.Mode(f.mode)
		p.Mode = &m
	}
	if changed("tech") {
		p.Technologies = append([]string{}, f.technologies...)
	}
	if changed("gallery") {
		p.GalleryImages = append([]string{}, f.gallery...)
	}
	if changed("featured") {
		featured := f.featured
		p.Featured = &featured
	}
	if changed("sort-order") {
		order := f.sortOrder
		p.SortOrder = &order
	}
	return p
}

func newCreateCmd(app *App, out printerFunc) *cobra.Command {
	flags := &patchFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Service.CreatePortfolio(cmd.Context(), flags.patch(cmd))
			if err != nil {
				return err
			}
			return out(cmd).entry(entry)
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newUpdateCmd(app *App, out printerFunc) *cobra.Command {
	flags := &patchFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Service.UpdatePortfolio(cmd.Context(), args[0], flags.patch(cmd))
			if err != nil {
				return err
			}
			return out(cmd).entry(entry)
		},
	}

	flags.register(cmd)
	return cmd
}

func newDeleteCmd(app *App, out printerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Service.DeletePortfolio(cmd.Context(), args[0]); err != nil {
				return err
			}
			return out(cmd).message(fmt.Sprintf("Deleted %s", args[0]), map[string]string{"deleted": args[0]})
		},
	}
}

func newBatchDeleteCmd(app *App, out printerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "batch-delete <id>...",
		Short: "Delete several entries; failures do not stop the others",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Service.BatchDeletePortfolios(cmd.Context(), args)
			if err != nil {
				return err
			}
			text := fmt.Sprintf("Deleted %d, failed %d", result.SuccessCount, result.FailedCount)
			if len(result.FailedIDs) > 0 {
				text += " (" + strings.Join(result.FailedIDs, ", ") + ")"
			}
			return out(cmd).message(text, result)
		},
	}
}

func newSortCmd(app *App, out printerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "sort <id>=<order>...",
		Short: "Assign display positions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := parseSortArgs(args)
			if err != nil {
				return err
			}
			result, err := app.Service.UpdateSortOrder(cmd.Context(), updates)
			if err != nil {
				return err
			}
			return out(cmd).message(fmt.Sprintf("Updated %d, failed %d", result.UpdatedCount, result.FailedCount), result)
		},
	}
}

func parseSortArgs(args []string) ([]application.SortOrderUpdate, error) {
	updates := make([]application.SortOrderUpdate, 0, len(args))
	for _, arg := range args {
		id, raw, ok := strings.Cut(arg, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid sort argument %q: expected <id>=<order>", arg)
		}
		order, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid sort order in %q: %w", arg, err)
		}
		updates = append(updates, application.SortOrderUpdate{ID: id, SortOrder: order})
	}
	return updates, nil
}

func newFeatureCmd(app *App, out printerFunc) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "feature <id>",
		Short: "Mark an entry as featured, or clear the flag with --off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Service.ToggleFeatured(cmd.Context(), args[0], !off)
			if err != nil {
				return err
			}
			return out(cmd).entry(entry)
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Clear the featured flag")
	return cmd
}
