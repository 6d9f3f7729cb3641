package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jmanzanog/showcase/internal/application"
	"github.com/jmanzanog/showcase/internal/domain"
)

var (
	styleHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("#409eff")).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#909399"))
	styleStar   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e6a23c"))
	styleBox    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#909399")).
			PaddingLeft(1).
			PaddingRight(1)
)

// printer writes command results either as indented JSON or as styled text.
type printer struct {
	w    io.Writer
	json bool
}

func (p *printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) entries(result *application.ListResult, query domain.ListQuery) error {
	if p.json {
		return p.writeJSON(result)
	}
	if len(result.List) == 0 {
		_, err := fmt.Fprintln(p.w, styleDim.Render("No entries match."))
		return err
	}

	rows := make([][]string, 0, len(result.List))
	for _, e := range result.List {
		featured := ""
		if e.Featured {
			featured = styleStar.Render("★")
		}
		rows = append(rows, []string{
			e.ID,
			truncate(e.Title, 32),
			e.ProjectType.Label(),
			statusBadge(e.Status),
			featured,
			strconv.Itoa(e.SortOrder),
			truncate(strings.Join(e.Technologies, ", "), 40),
		})
	}

	pages := 1
	if result.Total > 0 {
		pages = (result.Total-1)/query.PageSize + 1
	}
	footer := styleDim.Render(fmt.Sprintf("Page %d of %d, %d entries", query.Page, pages, result.Total))
	_, err := fmt.Fprint(p.w, renderTable(
		[]string{"ID", "TITLE", "TYPE", "STATUS", "★", "SORT", "TECHNOLOGIES"}, rows)+footer+"\n")
	return err
}

func (p *printer) entry(e *domain.Entry) error {
	if p.json {
		return p.writeJSON(e)
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render(e.Title) + "\n\n")
	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s  %s\n", styleDim.Render(fmt.Sprintf("%-12s", label)), value)
	}
	field("ID", e.ID)
	field("Type", e.ProjectType.Label())
	field("Status", statusBadge(e.Status))
	if e.Featured {
		field("Featured", styleStar.Render("★ yes"))
	}
	field("Sort order", strconv.Itoa(e.SortOrder))
	field("Mode", string(e.ResolvedMode()))
	field("Technologies", strings.Join(e.Technologies, ", "))
	field("Description", e.Description)
	field("Demo", e.DemoURL)
	field("Repository", e.GithubURL)
	field("Role", e.Role)
	field("Duration", e.Duration)
	field("Client", e.Client)
	field("Overview", e.Overview)
	field("Challenge", e.Challenge)
	field("Solution", e.Solution)
	if len(e.GalleryImages) > 0 {
		field("Gallery", strconv.Itoa(len(e.GalleryImages))+" images")
	}
	field("Created", e.CreatedAt.Format("2006-01-02 15:04"))
	field("Updated", e.UpdatedAt.Format("2006-01-02 15:04"))

	_, err := fmt.Fprintln(p.w, styleBox.Render(strings.TrimRight(b.String(), "\n")))
	return err
}

func (p *printer) stats(s *domain.StatsSummary) error {
	if p.json {
		return p.writeJSON(s)
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render(fmt.Sprintf("Total entries: %d", s.Total)) + "\n\n")

	typeRows := make([][]string, 0, len(domain.ProjectTypes))
	for _, t := range domain.ProjectTypes {
		if n := s.ByType[t]; n > 0 {
			typeRows = append(typeRows, []string{t.Label(), strconv.Itoa(n)})
		}
	}
	b.WriteString(renderTable([]string{"TYPE", "COUNT"}, typeRows) + "\n")

	statusRows := make([][]string, 0, len(domain.Statuses))
	for _, st := range domain.Statuses {
		statusRows = append(statusRows, []string{statusBadge(st), strconv.Itoa(s.ByStatus[st])})
	}
	b.WriteString(renderTable([]string{"STATUS", "COUNT"}, statusRows) + "\n")

	techRows := make([][]string, 0, len(s.TopTechnologies))
	for i, tc := range s.TopTechnologies {
		techRows = append(techRows, []string{strconv.Itoa(i + 1), tc.Name, strconv.Itoa(tc.Count)})
	}
	b.WriteString(renderTable([]string{"#", "TECHNOLOGY", "COUNT"}, techRows))

	_, err := fmt.Fprint(p.w, b.String())
	return err
}

// message prints text for humans and data for --json.
func (p *printer) message(text string, data any) error {
	if p.json {
		return p.writeJSON(data)
	}
	_, err := fmt.Fprintln(p.w, text)
	return err
}

func statusBadge(s domain.Status) string {
	color := s.Color()
	if color == "" {
		return s.Label()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("● " + s.Label())
}

// renderTable pads columns to their widest visible cell, so styled and wide
// characters line up.
func renderTable(headers []string, rows [][]string) string {
	const gap = 2

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style(cell))
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+gap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return styleHeader.Render(s) })
	separators := make([]string, len(widths))
	for i, w := range widths {
		separators[i] = strings.Repeat("─", w)
	}
	writeRow(separators, func(s string) string { return styleDim.Render(s) })
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
