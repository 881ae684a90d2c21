package home

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reteach/reteach-cli/internal/config"
	"github.com/reteach/reteach-cli/internal/gateway"
	"github.com/reteach/reteach-cli/internal/router"
	"github.com/reteach/reteach-cli/internal/screen"
	"github.com/reteach/reteach-cli/internal/screens/create"
	"github.com/reteach/reteach-cli/internal/screens/dashboard"
	"github.com/reteach/reteach-cli/internal/screens/publish"
	"github.com/reteach/reteach-cli/internal/screens/students"
	"github.com/reteach/reteach-cli/internal/session"
	"github.com/reteach/reteach-cli/internal/ui/components"
	"github.com/reteach/reteach-cli/internal/ui/theme"
)

// onboardingMsg carries the teacher's onboarding status. Failures are
// dropped: the home screen renders the same either way.
type onboardingMsg struct {
	Completed  bool
	CourseName string
	Err        error
}

// HomeScreen is the main entry screen of the application.
type HomeScreen struct {
	cfg    config.Config
	client *gateway.Client
	store  *session.Store
	menu   components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(cfg config.Config, client *gateway.Client, store *session.Store) *HomeScreen {
	items := []components.MenuItem{
		{Label: "NEW DIAGNOSTIC", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: create.New(client, store)}
			}
		}},
		{Label: "DASHBOARD", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: dashboard.New(client, store)}
			}
		}},
		{Label: "LAST PUBLISHED FORM", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: publish.New(client, store)}
			}
		}},
		{Label: "STUDENTS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: students.New(client)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		cfg:    cfg,
		client: client,
		store:  store,
		menu:   components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.cfg.TeacherEmail == "" {
		return nil
	}
	return h.fetchOnboarding()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case onboardingMsg:
		if msg.Err == nil {
			h.store.SetCourseName(msg.CourseName)
			if msg.Completed {
				h.store.CompleteOnboarding()
			}
		}
		return h, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}

	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Render("reTeach")
	subtitle := theme.Subtitle.Render("Know what your class is missing before you teach it")

	course := ""
	if name := h.store.CourseName(); name != "" {
		course = theme.Hint.Render("Course: " + name)
	}

	parts := []string{title, "", subtitle}
	if course != "" {
		parts = append(parts, "", course)
	}
	parts = append(parts, "", "", h.menu.View())

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// fetchOnboarding loads the teacher profile in the background.
func (h *HomeScreen) fetchOnboarding() tea.Cmd {
	return func() tea.Msg {
		completed, courseName, err := h.client.OnboardingStatus(context.Background())
		return onboardingMsg{Completed: completed, CourseName: courseName, Err: err}
	}
}
