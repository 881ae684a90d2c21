package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reteach/reteach-cli/internal/diagnostic"
	"github.com/reteach/reteach-cli/internal/gateway"
	"github.com/reteach/reteach-cli/internal/metrics"
	"github.com/reteach/reteach-cli/internal/router"
	"github.com/reteach/reteach-cli/internal/screen"
	"github.com/reteach/reteach-cli/internal/screens/results"
	"github.com/reteach/reteach-cli/internal/session"
	"github.com/reteach/reteach-cli/internal/ui/components"
	"github.com/reteach/reteach-cli/internal/ui/layout"
	"github.com/reteach/reteach-cli/internal/ui/theme"
)

// overviewMsg carries the fetched diagnostics overview.
type overviewMsg struct {
	Rows []diagnostic.DiagnosticRow
	Err  error
}

// deleteDoneMsg reports the outcome of a delete request. Slug ties it
// back to the optimistically removed row.
type deleteDoneMsg struct {
	Slug string
	Err  error
}

const allCourses = "All courses"

// DashboardScreen shows every diagnostic the teacher has published,
// class-level KPIs, and per-row actions.
type DashboardScreen struct {
	client *gateway.Client
	store  *session.Store

	rows    []diagnostic.DiagnosticRow
	courses []string
	course  int
	cursor  int
	loading bool
	errMsg  string

	// Rollback state for an in-flight optimistic delete.
	deletedRow   diagnostic.DiagnosticRow
	deletedAt    int
	deletePended bool
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(client *gateway.Client, store *session.Store) *DashboardScreen {
	return &DashboardScreen{
		client:  client,
		store:   store,
		loading: true,
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return d.fetch()
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Results"},
		{Key: "F", Description: "Course filter"},
		{Key: "D", Description: "Delete"},
		{Key: "R", Description: "Refresh"},
	}
}

func (d *DashboardScreen) fetch() tea.Cmd {
	return func() tea.Msg {
		rows, err := d.client.FetchDiagnosticsOverview(context.Background())
		return overviewMsg{Rows: rows, Err: err}
	}
}

// visible returns the rows after the active course filter.
func (d *DashboardScreen) visible() []diagnostic.DiagnosticRow {
	if d.course == 0 {
		return d.rows
	}
	return metrics.FilterCourse(d.rows, d.courses[d.course])
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewMsg:
		d.loading = false
		if msg.Err != nil {
			d.errMsg = msg.Err.Error()
			return d, nil
		}
		d.errMsg = ""
		d.rows = msg.Rows
		d.courses = append([]string{allCourses}, metrics.Courses(msg.Rows)...)
		if d.course >= len(d.courses) {
			d.course = 0
		}
		d.clampCursor()
		return d, nil

	case deleteDoneMsg:
		d.deletePended = false
		if msg.Err == nil {
			// Drop the recovered-link record when it pointed at the
			// form that was just deleted.
			if d.store.PublishInfo().FormSlug == msg.Slug {
				d.store.ClearPublishInfo(context.Background())
			}
			return d, nil
		}
		// Put the optimistically removed row back where it was, unless a
		// row with the same slug is already present.
		d.errMsg = "Delete failed: " + msg.Err.Error()
		for i := range d.rows {
			if d.rows[i].Slug == msg.Slug {
				return d, nil
			}
		}
		at := d.deletedAt
		if at > len(d.rows) {
			at = len(d.rows)
		}
		d.rows = append(d.rows[:at], append([]diagnostic.DiagnosticRow{d.deletedRow}, d.rows[at:]...)...)
		d.clampCursor()
		return d, nil

	case tea.KeyMsg:
		return d.handleKey(msg)
	}

	return d, nil
}

func (d *DashboardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	visible := d.visible()

	switch msg.String() {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(visible)-1 {
			d.cursor++
		}
	case "f":
		if len(d.courses) > 0 {
			d.course = (d.course + 1) % len(d.courses)
			d.clampCursor()
		}
	case "r":
		// Refetching while a delete is unresolved would leave the
		// rollback row pointing into a replaced list.
		if d.deletePended {
			return d, nil
		}
		d.loading = true
		return d, d.fetch()
	case "d":
		return d.deleteSelected()
	case "enter":
		if d.cursor < len(visible) {
			row := visible[d.cursor]
			formID := row.FormUUID
			if formID == "" {
				formID = row.ID
			}
			return d, func() tea.Msg {
				return router.PushScreenMsg{Screen: results.New(d.client, formID, row.Name)}
			}
		}
	}

	return d, nil
}

// deleteSelected removes the row immediately and reconciles when the
// backend answers. One delete in flight at a time.
func (d *DashboardScreen) deleteSelected() (screen.Screen, tea.Cmd) {
	if d.deletePended {
		return d, nil
	}
	visible := d.visible()
	if d.cursor >= len(visible) {
		return d, nil
	}
	row := visible[d.cursor]

	for i := range d.rows {
		if d.rows[i].Slug == row.Slug {
			d.deletedRow = d.rows[i]
			d.deletedAt = i
			d.rows = append(d.rows[:i], d.rows[i+1:]...)
			break
		}
	}
	d.deletePended = true
	d.clampCursor()

	return d, func() tea.Msg {
		err := d.client.DeleteForm(context.Background(), row.Slug)
		return deleteDoneMsg{Slug: row.Slug, Err: err}
	}
}

func (d *DashboardScreen) clampCursor() {
	n := len(d.visible())
	if d.cursor >= n {
		d.cursor = n - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (d *DashboardScreen) View(width, height int) string {
	var b strings.Builder

	if d.loading {
		b.WriteString(theme.Hint.Render("Loading diagnostics..."))
	} else {
		visible := d.visible()
		kpis := metrics.Compute(visible)

		b.WriteString(d.renderKPIs(kpis))
		b.WriteString("\n\n")
		b.WriteString(theme.Label.Render("Filter: "))
		if len(d.courses) > 0 {
			b.WriteString(theme.Body.Render("◂ " + d.courses[d.course] + " ▸"))
		}
		b.WriteString("\n\n")
		b.WriteString(d.renderRows(visible))
	}

	if d.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorBox.Render(d.errMsg))
	}

	card := theme.Card.Width(min(width-4, 94)).Render(b.String())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

func (d *DashboardScreen) renderKPIs(k metrics.KPIs) string {
	weak := "—"
	if k.HasWeakTopic {
		weak = k.TopWeakTopic
	}
	strong := "—"
	if k.HasStrongTopic {
		strong = k.StrongestTopic
	}

	cells := []string{
		kpiCell("Readiness", fmt.Sprintf("%d%%", k.Readiness)),
		kpiCell("Weakest topic", weak),
		kpiCell("Strongest topic", strong),
		kpiCell("Needs attention", fmt.Sprintf("%d", k.NeedsAttention)),
		kpiCell("Active", fmt.Sprintf("%d", k.ActiveCount)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func kpiCell(label, value string) string {
	return lipgloss.NewStyle().Padding(0, 2).Render(
		theme.Label.Render(label) + "\n" +
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(value))
}

func (d *DashboardScreen) renderRows(rows []diagnostic.DiagnosticRow) string {
	if len(rows) == 0 {
		return theme.Hint.Render("No diagnostics yet. Create one from the home screen.")
	}

	var b strings.Builder
	for i, row := range rows {
		status := theme.Good.Render(string(row.Status))
		if row.Status == diagnostic.StatusArchived {
			status = theme.Hint.Render(string(row.Status))
		}

		bar := components.NewProgressBar("", row.CompletionPct/100, true, 24)
		line := fmt.Sprintf("%-28s %-14s %3d resp  %s  %s",
			truncate(row.Name, 28), truncate(row.Course, 14), row.Responses, bar.View(), status)

		if i == d.cursor {
			b.WriteString(theme.Selected.Render("▸ "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(line)
		b.WriteString("\n")

		if i == d.cursor && len(row.WeakTopics) > 0 {
			b.WriteString(theme.Hint.Render("    weak: " + strings.Join(row.WeakTopics, ", ")))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
