package students

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reteach/reteach-cli/internal/diagnostic"
	"github.com/reteach/reteach-cli/internal/gateway"
	"github.com/reteach/reteach-cli/internal/screen"
	"github.com/reteach/reteach-cli/internal/ui/layout"
	"github.com/reteach/reteach-cli/internal/ui/theme"
)

// rosterMsg carries the fetched student roster.
type rosterMsg struct {
	Students []diagnostic.Student
	Err      error
}

// removeDoneMsg reports the outcome of a roster removal.
type removeDoneMsg struct {
	StudentID string
	Err       error
}

// StudentsScreen shows the class roster with each student's activity.
type StudentsScreen struct {
	client *gateway.Client

	students []diagnostic.Student
	cursor   int
	loading  bool
	errMsg   string

	removedStudent diagnostic.Student
	removedAt      int
	removePended   bool
}

var _ screen.Screen = (*StudentsScreen)(nil)
var _ screen.KeyHintProvider = (*StudentsScreen)(nil)

// New creates a new StudentsScreen.
func New(client *gateway.Client) *StudentsScreen {
	return &StudentsScreen{
		client:  client,
		loading: true,
	}
}

func (s *StudentsScreen) Init() tea.Cmd {
	return s.fetch()
}

func (s *StudentsScreen) Title() string {
	return "Students"
}

func (s *StudentsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "D", Description: "Remove"},
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StudentsScreen) fetch() tea.Cmd {
	return func() tea.Msg {
		students, err := s.client.ListStudents(context.Background())
		return rosterMsg{Students: students, Err: err}
	}
}

func (s *StudentsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case rosterMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.students = msg.Students
		s.clampCursor()
		return s, nil

	case removeDoneMsg:
		s.removePended = false
		if msg.Err != nil {
			at := s.removedAt
			if at > len(s.students) {
				at = len(s.students)
			}
			s.students = append(s.students[:at], append([]diagnostic.Student{s.removedStudent}, s.students[at:]...)...)
			s.errMsg = "Remove failed: " + msg.Err.Error()
			s.clampCursor()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *StudentsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.students)-1 {
			s.cursor++
		}
	case "r":
		if !s.loading {
			s.loading = true
			return s, s.fetch()
		}
	case "d":
		return s.removeSelected()
	}
	return s, nil
}

// removeSelected drops the student immediately and restores the row if
// the backend rejects the removal.
func (s *StudentsScreen) removeSelected() (screen.Screen, tea.Cmd) {
	if s.removePended || s.cursor >= len(s.students) {
		return s, nil
	}

	s.removedStudent = s.students[s.cursor]
	s.removedAt = s.cursor
	s.students = append(s.students[:s.cursor], s.students[s.cursor+1:]...)
	s.removePended = true
	s.clampCursor()

	id := s.removedStudent.ID
	return s, func() tea.Msg {
		err := s.client.RemoveStudent(context.Background(), id)
		return removeDoneMsg{StudentID: id, Err: err}
	}
}

func (s *StudentsScreen) clampCursor() {
	if s.cursor >= len(s.students) {
		s.cursor = len(s.students) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *StudentsScreen) View(width, height int) string {
	var b strings.Builder

	switch {
	case s.loading:
		b.WriteString(theme.Hint.Render("Loading roster..."))
	case len(s.students) == 0:
		b.WriteString(theme.Hint.Render("No students yet. They join by opening a form link."))
	default:
		b.WriteString(theme.Label.Render(fmt.Sprintf("%-28s %-30s %10s  %s", "Name", "Email", "Completed", "Last active")))
		b.WriteString("\n")
		for i, st := range s.students {
			line := fmt.Sprintf("%-28s %-30s %10d  %s",
				truncate(st.Name, 28), truncate(st.Email, 30), st.FormsCompleted, st.LastActivity)
			if i == s.cursor {
				b.WriteString(theme.Selected.Render("▸ " + line))
			} else {
				b.WriteString(theme.Unselected.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorBox.Render(s.errMsg))
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
