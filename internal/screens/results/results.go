package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reteach/reteach-cli/internal/diagnostic"
	"github.com/reteach/reteach-cli/internal/gateway"
	"github.com/reteach/reteach-cli/internal/screen"
	"github.com/reteach/reteach-cli/internal/ui/components"
	"github.com/reteach/reteach-cli/internal/ui/layout"
	"github.com/reteach/reteach-cli/internal/ui/theme"
)

// Topics scoring below this are called out as gaps.
const weakCutoffPct = 60.0

// resultsMsg carries the fetched per-topic results.
type resultsMsg struct {
	Results diagnostic.ResultSet
	Err     error
}

// ResultsScreen shows per-topic correctness for one published form.
type ResultsScreen struct {
	client   *gateway.Client
	formID   string
	fallback string

	results diagnostic.ResultSet
	loading bool
	errMsg  string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for the given form. fallbackTitle is shown
// while loading and when the backend omits a title.
func New(client *gateway.Client, formID, fallbackTitle string) *ResultsScreen {
	return &ResultsScreen{
		client:   client,
		formID:   formID,
		fallback: fallbackTitle,
		loading:  true,
	}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		res, err := r.client.FetchResults(context.Background(), r.formID)
		return resultsMsg{Results: res, Err: err}
	}
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsMsg:
		r.loading = false
		if msg.Err != nil {
			r.errMsg = msg.Err.Error()
			return r, nil
		}
		r.errMsg = ""
		r.results = msg.Results
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "r" && !r.loading {
			r.loading = true
			return r, r.Init()
		}
	}

	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	var b strings.Builder

	title := r.results.FormTitle
	if title == "" {
		title = r.fallback
	}
	b.WriteString(theme.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case r.loading:
		b.WriteString(theme.Hint.Render("Loading results..."))
	case r.errMsg != "":
		b.WriteString(theme.ErrorBox.Render(r.errMsg))
	case r.results.TotalResponses == 0:
		b.WriteString(theme.Hint.Render("No submissions yet. Share the form link and check back."))
	default:
		b.WriteString(theme.Label.Render(fmt.Sprintf("%d responses", r.results.TotalResponses)))
		b.WriteString("\n\n")
		barWidth := min(width-20, 70)
		for _, ts := range r.results.Topics {
			bar := components.NewProgressBar(
				fmt.Sprintf("%-30s", truncate(ts.Topic, 30)),
				ts.CorrectPct/100, true, barWidth)
			b.WriteString(bar.View())
			if ts.CorrectPct < weakCutoffPct {
				b.WriteString(theme.Bad.Render("  ▼ gap"))
			}
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d students answered", ts.N)))
			b.WriteString("\n")
		}
	}

	card := theme.Card.Width(min(width-4, 94)).Render(b.String())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
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
