package create

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reteach/reteach-cli/internal/diagnostic"
	"github.com/reteach/reteach-cli/internal/gateway"
	"github.com/reteach/reteach-cli/internal/router"
	"github.com/reteach/reteach-cli/internal/screen"
	"github.com/reteach/reteach-cli/internal/screens/review"
	"github.com/reteach/reteach-cli/internal/session"
	"github.com/reteach/reteach-cli/internal/ui/components"
	"github.com/reteach/reteach-cli/internal/ui/layout"
	"github.com/reteach/reteach-cli/internal/ui/theme"
)

// topicsParsedMsg is sent when syllabus parsing completes.
type topicsParsedMsg struct {
	Topics []diagnostic.Topic
	Err    error
}

// Focusable fields, in tab order.
const (
	focusTitle = iota
	focusSyllabus
	focusLevel
	focusKind
	focusSubmit
	focusCount
)

var courseLevels = []string{"intro", "intermediate", "advanced"}

var assessmentKinds = []gateway.AssessmentType{
	gateway.AssessmentQuiz,
	gateway.AssessmentSurvey,
}

// CreateScreen collects the diagnostic title and syllabus text, then
// extracts a topic list from it.
type CreateScreen struct {
	client *gateway.Client
	store  *session.Store

	title    components.TextInput
	syllabus textarea.Model
	level    int
	kind     int
	focus    int

	parsing bool
	errMsg  string
}

var _ screen.Screen = (*CreateScreen)(nil)
var _ screen.KeyHintProvider = (*CreateScreen)(nil)

// New creates a new CreateScreen.
func New(client *gateway.Client, store *session.Store) *CreateScreen {
	ta := textarea.New()
	ta.Placeholder = "Paste your syllabus or unit outline here..."
	ta.SetHeight(8)

	title := components.NewTextInput("e.g. Unit 3 Diagnostic", false, 80)

	return &CreateScreen{
		client:   client,
		store:    store,
		title:    title,
		syllabus: ta,
	}
}

func (c *CreateScreen) Init() tea.Cmd {
	return c.title.Init()
}

func (c *CreateScreen) Title() string {
	return "New Diagnostic"
}

func (c *CreateScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Extract topics"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CreateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topicsParsedMsg:
		c.parsing = false
		if msg.Err != nil {
			c.errMsg = msg.Err.Error()
			return c, nil
		}
		c.errMsg = ""
		c.store.SetTitle(strings.TrimSpace(c.title.Value()))
		c.store.SetAssessmentType(string(assessmentKinds[c.kind]))
		c.store.SetTopics(msg.Topics)
		return c, func() tea.Msg {
			return router.PushScreenMsg{Screen: review.New(c.client, c.store)}
		}

	case tea.KeyMsg:
		if c.parsing {
			return c, nil
		}
		return c.handleKey(msg)
	}

	return c, nil
}

func (c *CreateScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		c.focus = (c.focus + 1) % focusCount
		return c, c.syncFocus()
	case "shift+tab":
		c.focus = (c.focus - 1 + focusCount) % focusCount
		return c, c.syncFocus()
	}

	switch c.focus {
	case focusTitle:
		if msg.String() == "enter" {
			c.focus = focusSyllabus
			return c, c.syncFocus()
		}
		var cmd tea.Cmd
		c.title, cmd = c.title.Update(msg)
		return c, cmd

	case focusSyllabus:
		var cmd tea.Cmd
		c.syllabus, cmd = c.syllabus.Update(msg)
		return c, cmd

	case focusLevel:
		switch msg.String() {
		case "left", "h":
			c.level = (c.level - 1 + len(courseLevels)) % len(courseLevels)
		case "right", "l", "enter", "space":
			c.level = (c.level + 1) % len(courseLevels)
		}
		return c, nil

	case focusKind:
		switch msg.String() {
		case "left", "h", "right", "l", "enter", "space":
			c.kind = (c.kind + 1) % len(assessmentKinds)
		}
		return c, nil

	case focusSubmit:
		if msg.String() == "enter" {
			return c.submit()
		}
	}

	return c, nil
}

// syncFocus keeps the input widgets' focus in step with the tab cursor.
func (c *CreateScreen) syncFocus() tea.Cmd {
	if c.focus == focusSyllabus {
		c.title.Model.Blur()
		return c.syllabus.Focus()
	}
	c.syllabus.Blur()
	if c.focus == focusTitle {
		return c.title.Model.Focus()
	}
	c.title.Model.Blur()
	return nil
}

func (c *CreateScreen) submit() (screen.Screen, tea.Cmd) {
	title := strings.TrimSpace(c.title.Value())
	if title == "" {
		c.errMsg = "Give the diagnostic a title first."
		c.focus = focusTitle
		return c, c.syncFocus()
	}
	if strings.TrimSpace(c.syllabus.Value()) == "" {
		c.errMsg = "Paste some syllabus text first."
		c.focus = focusSyllabus
		return c, c.syncFocus()
	}

	c.errMsg = ""
	c.parsing = true
	syllabusText := c.syllabus.Value()
	level := courseLevels[c.level]

	return c, func() tea.Msg {
		topics, err := c.client.ParseTopics(context.Background(), syllabusText, level)
		return topicsParsedMsg{Topics: topics, Err: err}
	}
}

func (c *CreateScreen) View(width, height int) string {
	steps := components.NewStepper([]string{"Create", "Review", "Preview", "Publish"}, 0)

	var b strings.Builder
	b.WriteString(steps.View())
	b.WriteString("\n\n")

	b.WriteString(c.fieldLabel(focusTitle, "Title"))
	b.WriteString("\n")
	b.WriteString(c.title.View())
	b.WriteString("\n\n")

	b.WriteString(c.fieldLabel(focusSyllabus, "Syllabus"))
	b.WriteString("\n")
	b.WriteString(c.syllabus.View())
	b.WriteString("\n\n")

	b.WriteString(c.fieldLabel(focusLevel, "Course level"))
	b.WriteString("  ")
	b.WriteString(theme.Body.Render("◂ " + courseLevels[c.level] + " ▸"))
	b.WriteString("\n\n")

	b.WriteString(c.fieldLabel(focusKind, "Assessment type"))
	b.WriteString("  ")
	b.WriteString(theme.Body.Render("◂ " + string(assessmentKinds[c.kind]) + " ▸"))
	b.WriteString("\n\n")

	if c.parsing {
		b.WriteString(theme.Hint.Render("Extracting topics from your syllabus..."))
	} else {
		btn := components.NewButton("Extract Topics", c.focus == focusSubmit, nil)
		b.WriteString(btn.View())
	}

	if c.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorBox.Render(c.errMsg))
	}

	card := theme.Card.Width(min(width-4, 90)).Render(b.String())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

func (c *CreateScreen) fieldLabel(field int, label string) string {
	if c.focus == field {
		return theme.Selected.Render("▸ " + label)
	}
	return theme.Label.Render("  " + label)
}
