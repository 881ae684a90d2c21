package review

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reteach/reteach-cli/internal/diagnostic"
	"github.com/reteach/reteach-cli/internal/gateway"
	"github.com/reteach/reteach-cli/internal/router"
	"github.com/reteach/reteach-cli/internal/screen"
	"github.com/reteach/reteach-cli/internal/screens/preview"
	"github.com/reteach/reteach-cli/internal/session"
	"github.com/reteach/reteach-cli/internal/ui/components"
	"github.com/reteach/reteach-cli/internal/ui/layout"
	"github.com/reteach/reteach-cli/internal/ui/theme"
)

// questionsGeneratedMsg is sent when question generation completes.
// Epoch identifies the generation attempt it answers.
type questionsGeneratedMsg struct {
	Epoch     uint64
	Questions []diagnostic.Question
	Err       error
}

// Editing sub-modes.
const (
	modeBrowse = iota
	modeEditWeight
	modeAddTopic
)

// ReviewScreen lets the teacher adjust the extracted topic list before
// generating questions: rename weights, drop topics, add missed ones.
type ReviewScreen struct {
	client *gateway.Client
	store  *session.Store

	cursor     int
	mode       int
	input      components.TextInput
	generating bool
	errMsg     string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a new ReviewScreen.
func New(client *gateway.Client, store *session.Store) *ReviewScreen {
	return &ReviewScreen{
		client: client,
		store:  store,
	}
}

func (r *ReviewScreen) Init() tea.Cmd {
	if ok, _ := r.store.Guard(session.StepReview); !ok {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

func (r *ReviewScreen) Title() string {
	return "Review Topics"
}

func (r *ReviewScreen) KeyHints() []layout.KeyHint {
	switch r.mode {
	case modeEditWeight:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save weight"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeAddTopic:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Add topic"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "E", Description: "Edit weight"},
		{Key: "A", Description: "Add"},
		{Key: "D", Description: "Delete"},
		{Key: "G", Description: "Generate questions"},
	}
}

func (r *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsGeneratedMsg:
		return r.handleGenerated(msg)

	case tea.KeyMsg:
		if r.generating {
			return r, nil
		}
		switch r.mode {
		case modeEditWeight:
			return r.handleEditWeightKey(msg)
		case modeAddTopic:
			return r.handleAddTopicKey(msg)
		}
		return r.handleBrowseKey(msg)
	}

	return r, nil
}

func (r *ReviewScreen) handleBrowseKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	topics := r.store.Topics()

	switch msg.String() {
	case "up", "k":
		if r.cursor > 0 {
			r.cursor--
		}
	case "down", "j":
		if r.cursor < len(topics)-1 {
			r.cursor++
		}
	case "e":
		if r.cursor < len(topics) {
			r.mode = modeEditWeight
			r.input = components.NewTextInput("weight %", true, 3)
			return r, r.input.Init()
		}
	case "a":
		r.mode = modeAddTopic
		r.input = components.NewTextInput("topic name", false, 60)
		return r, r.input.Init()
	case "d":
		if r.cursor < len(topics) {
			r.store.RemoveTopic(topics[r.cursor].ID)
			if r.cursor > 0 {
				r.cursor--
			}
		}
	case "g", "enter":
		return r.generate()
	}

	return r, nil
}

func (r *ReviewScreen) handleEditWeightKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		r.mode = modeBrowse
		return r, nil
	case "enter":
		pct, err := r.input.NumericValue()
		if err != nil || pct < 0 || pct > 100 {
			r.input.Submit(false)
			return r, nil
		}
		topics := r.store.Topics()
		if r.cursor < len(topics) {
			r.store.UpdateTopic(topics[r.cursor].ID, func(t *diagnostic.Topic) {
				t.Weight = float64(pct) / 100
			})
		}
		r.mode = modeBrowse
		return r, nil
	}

	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

func (r *ReviewScreen) handleAddTopicKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		r.mode = modeBrowse
		return r, nil
	case "enter":
		name := strings.TrimSpace(r.input.Value())
		if name == "" {
			r.input.Submit(false)
			return r, nil
		}
		r.store.AddTopic(diagnostic.Topic{
			ID:      diagnostic.NewTopicID(),
			Name:    name,
			Prereqs: []string{},
		})
		r.mode = modeBrowse
		return r, nil
	}

	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

func (r *ReviewScreen) generate() (screen.Screen, tea.Cmd) {
	topics := r.store.Topics()
	if len(topics) == 0 {
		r.errMsg = "Add at least one topic before generating."
		return r, nil
	}

	r.errMsg = ""
	r.generating = true
	epoch := r.store.BeginGeneration()
	kind := gateway.AssessmentType(r.store.AssessmentType())
	if kind == "" {
		kind = gateway.AssessmentQuiz
	}

	return r, func() tea.Msg {
		questions, err := r.client.GenerateQuestions(
			context.Background(), topics, 0, kind, "")
		return questionsGeneratedMsg{Epoch: epoch, Questions: questions, Err: err}
	}
}

func (r *ReviewScreen) handleGenerated(msg questionsGeneratedMsg) (screen.Screen, tea.Cmd) {
	r.generating = false
	if msg.Err != nil {
		r.errMsg = msg.Err.Error()
		return r, nil
	}
	if !r.store.SetQuestionsAt(msg.Epoch, msg.Questions) {
		// A newer generation superseded this response.
		return r, nil
	}
	return r, func() tea.Msg {
		return router.PushScreenMsg{Screen: preview.New(r.client, r.store)}
	}
}

func (r *ReviewScreen) View(width, height int) string {
	topics := r.store.Topics()
	steps := components.NewStepper([]string{"Create", "Review", "Preview", "Publish"}, 1)

	var b strings.Builder
	b.WriteString(steps.View())
	b.WriteString("\n\n")

	var sum float64
	for i, t := range topics {
		sum += t.Weight
		line := fmt.Sprintf("%-40s %3.0f%%", t.Name, t.Weight*100)
		if i == r.cursor && r.mode == modeBrowse {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(topics) > 0 && diagnostic.ValidateWeights(topics) != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).
			Render(fmt.Sprintf("⚠ Weights sum to %.0f%%, not 100%%. Generation still works; weights only steer emphasis.", sum*100)))
		b.WriteString("\n")
	}

	switch r.mode {
	case modeEditWeight:
		b.WriteString("\n")
		b.WriteString(theme.Label.Render("New weight (%): "))
		b.WriteString(r.input.View())
	case modeAddTopic:
		b.WriteString("\n")
		b.WriteString(theme.Label.Render("New topic: "))
		b.WriteString(r.input.View())
	}

	if r.generating {
		n := len(topics) * gateway.QuestionsPerTopic
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Generating %d questions...", n)))
	}

	if r.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorBox.Render(r.errMsg))
	}

	card := theme.Card.Width(min(width-4, 90)).Render(b.String())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}
