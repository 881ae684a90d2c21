package publish

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reteach/reteach-cli/internal/diagnostic"
	"github.com/reteach/reteach-cli/internal/gateway"
	"github.com/reteach/reteach-cli/internal/router"
	"github.com/reteach/reteach-cli/internal/screen"
	"github.com/reteach/reteach-cli/internal/session"
	"github.com/reteach/reteach-cli/internal/ui/components"
	"github.com/reteach/reteach-cli/internal/ui/layout"
	"github.com/reteach/reteach-cli/internal/ui/theme"
)

// resolvedMsg carries the outcome of publish-info resolution.
type resolvedMsg struct {
	Info diagnostic.PublishInfo
	OK   bool
}

// PublishScreen shows the shareable form link for the last published
// diagnostic. It resolves the publish record from the session first and
// falls back to the persisted mirror, so the link survives restarts.
type PublishScreen struct {
	client *gateway.Client
	store  *session.Store

	info     diagnostic.PublishInfo
	resolved bool
}

var _ screen.Screen = (*PublishScreen)(nil)
var _ screen.KeyHintProvider = (*PublishScreen)(nil)

// New creates a new PublishScreen.
func New(client *gateway.Client, store *session.Store) *PublishScreen {
	return &PublishScreen{
		client: client,
		store:  store,
	}
}

func (p *PublishScreen) Init() tea.Cmd {
	return func() tea.Msg {
		info, ok := session.ResolvePublishInfo(
			context.Background(), p.store, nil, p.client.BaseURL())
		return resolvedMsg{Info: info, OK: ok}
	}
}

func (p *PublishScreen) Title() string {
	return "Published"
}

func (p *PublishScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PublishScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(resolvedMsg); ok {
		if !msg.OK {
			// Nothing published and nothing recoverable.
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		}
		p.info = msg.Info
		p.resolved = true
	}
	return p, nil
}

func (p *PublishScreen) View(width, height int) string {
	steps := components.NewStepper([]string{"Create", "Review", "Preview", "Publish"}, 3)

	var b strings.Builder
	b.WriteString(steps.View())
	b.WriteString("\n\n")

	if !p.resolved {
		b.WriteString(theme.Hint.Render("Looking up your published form..."))
	} else {
		b.WriteString(theme.Good.Render("✓ Your diagnostic is live"))
		b.WriteString("\n\n")
		b.WriteString(theme.Label.Render("Share this link with your students:"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("  " + p.info.FormURL))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Slug: " + p.info.FormSlug + "   Form ID: " + p.info.FormID))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Results appear on the dashboard as students submit."))
	}

	card := theme.Card.Width(min(width-4, 90)).Render(b.String())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}
