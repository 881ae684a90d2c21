package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reteach/reteach-cli/internal/config"
	"github.com/reteach/reteach-cli/internal/gateway"
	"github.com/reteach/reteach-cli/internal/recovery"
	"github.com/reteach/reteach-cli/internal/router"
	"github.com/reteach/reteach-cli/internal/screen"
	"github.com/reteach/reteach-cli/internal/screens/home"
	"github.com/reteach/reteach-cli/internal/session"
	"github.com/reteach/reteach-cli/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	teacher string
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(cfg config.Config, client *gateway.Client, store *session.Store) AppModel {
	homeScreen := home.New(cfg, client, store)
	return AppModel{
		router:  router.New(homeScreen),
		teacher: cfg.TeacherEmail,
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.teacher, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok && hp.KeyHints() != nil {
		footerHints = hp.KeyHints()
		footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run wires the dependencies and starts the Bubble Tea program.
func Run(cfg config.Config) error {
	dbPath := cfg.DBPath
	if dbPath == "" {
		p, err := recovery.DefaultDBPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Warning: recovery store unavailable:", err)
		}
		dbPath = p
	}

	var mirror session.Mirror
	if dbPath != "" {
		if err := recovery.EnsureDir(dbPath); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: recovery store unavailable:", err)
		} else if rec, err := recovery.Open(dbPath); err == nil {
			mirror = rec
			defer rec.Close()
		} else {
			fmt.Fprintln(os.Stderr, "Warning: recovery store unavailable:", err)
		}
	}

	store := session.NewStore(mirror)
	client := gateway.New(cfg)

	p := tea.NewProgram(newAppModel(cfg, client, store))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
