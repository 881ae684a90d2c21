package preview

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
	"github.com/reteach/reteach-cli/internal/screens/publish"
	"github.com/reteach/reteach-cli/internal/session"
	"github.com/reteach/reteach-cli/internal/ui/components"
	"github.com/reteach/reteach-cli/internal/ui/layout"
	"github.com/reteach/reteach-cli/internal/ui/theme"
)

// publishedMsg is sent when the publish request completes.
type publishedMsg struct {
	Info diagnostic.PublishInfo
	Err  error
}

// PreviewScreen shows the generated questions one at a time and lets
// the teacher edit stems, re-mark answers, and drop questions before
// publishing.
type PreviewScreen struct {
	client *gateway.Client
	store  *session.Store

	index       int
	options     components.OptionList
	editingStem bool
	stemInput   components.TextInput
	publishing  bool
	errMsg      string
}

var _ screen.Screen = (*PreviewScreen)(nil)
var _ screen.KeyHintProvider = (*PreviewScreen)(nil)

// New creates a new PreviewScreen.
func New(client *gateway.Client, store *session.Store) *PreviewScreen {
	p := &PreviewScreen{
		client: client,
		store:  store,
	}
	p.loadQuestion()
	return p
}

func (p *PreviewScreen) Init() tea.Cmd {
	if ok, _ := p.store.Guard(session.StepPreview); !ok {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

func (p *PreviewScreen) Title() string {
	return "Preview Questions"
}

func (p *PreviewScreen) KeyHints() []layout.KeyHint {
	if p.editingStem {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save stem"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Question"},
		{Key: "↑↓ Enter", Description: "Mark answer"},
		{Key: "E", Description: "Edit stem"},
		{Key: "D", Description: "Delete"},
		{Key: "P", Description: "Publish"},
	}
}

// loadQuestion syncs the option list with the question under the cursor.
func (p *PreviewScreen) loadQuestion() {
	questions := p.store.Questions()
	if len(questions) == 0 {
		p.options = components.OptionList{}
		return
	}
	if p.index >= len(questions) {
		p.index = len(questions) - 1
	}
	q := questions[p.index]
	p.options = components.NewOptionList(q.Stem, q.Options, q.AnswerIndex)
	p.options.Focused = true
}

func (p *PreviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case publishedMsg:
		return p.handlePublished(msg)

	case tea.KeyMsg:
		if p.publishing {
			return p, nil
		}
		if p.editingStem {
			return p.handleStemKey(msg)
		}
		return p.handleKey(msg)
	}

	return p, nil
}

func (p *PreviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	questions := p.store.Questions()

	switch msg.String() {
	case "left", "h":
		if p.index > 0 {
			p.index--
			p.loadQuestion()
		}
		return p, nil
	case "right", "l":
		if p.index < len(questions)-1 {
			p.index++
			p.loadQuestion()
		}
		return p, nil
	case "e":
		if p.index < len(questions) {
			p.editingStem = true
			p.stemInput = components.NewTextInput("question stem", false, 200)
			p.stemInput.Model.SetValue(questions[p.index].Stem)
			return p, p.stemInput.Init()
		}
		return p, nil
	case "d":
		if p.index < len(questions) {
			p.store.RemoveQuestion(questions[p.index].ID)
			if len(p.store.Questions()) == 0 {
				return p, func() tea.Msg { return router.PopScreenMsg{} }
			}
			p.loadQuestion()
		}
		return p, nil
	case "p":
		return p.publish()
	}

	// Option navigation and answer re-marking.
	before := p.options.AnswerIndex
	var cmd tea.Cmd
	p.options, cmd = p.options.Update(msg)
	if p.options.AnswerIndex != before && p.index < len(questions) {
		answer := p.options.AnswerIndex
		p.store.UpdateQuestion(questions[p.index].ID, func(q *diagnostic.Question) {
			q.AnswerIndex = answer
		})
	}
	return p, cmd
}

func (p *PreviewScreen) handleStemKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.editingStem = false
		return p, nil
	case "enter":
		stem := strings.TrimSpace(p.stemInput.Value())
		if stem == "" {
			p.stemInput.Submit(false)
			return p, nil
		}
		questions := p.store.Questions()
		if p.index < len(questions) {
			p.store.UpdateQuestion(questions[p.index].ID, func(q *diagnostic.Question) {
				q.Stem = stem
			})
		}
		p.editingStem = false
		p.loadQuestion()
		return p, nil
	}

	var cmd tea.Cmd
	p.stemInput, cmd = p.stemInput.Update(msg)
	return p, cmd
}

func (p *PreviewScreen) publish() (screen.Screen, tea.Cmd) {
	if !p.store.TryBeginPublish() {
		return p, nil
	}

	p.errMsg = ""
	p.publishing = true
	title := p.store.Title()
	if title == "" {
		title = "Class Diagnostic"
	}
	questions := p.store.Questions()

	return p, func() tea.Msg {
		info, err := p.client.CreateForm(context.Background(), title, questions)
		return publishedMsg{Info: info, Err: err}
	}
}

func (p *PreviewScreen) handlePublished(msg publishedMsg) (screen.Screen, tea.Cmd) {
	p.publishing = false
	p.store.EndPublish()
	if msg.Err != nil {
		p.errMsg = msg.Err.Error()
		return p, nil
	}
	p.store.SetPublishInfo(context.Background(), msg.Info)
	// Replace rather than push: once published, backing out of the
	// confirmation should land on review, not a stale preview.
	return p, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: publish.New(p.client, p.store)}
	}
}

func (p *PreviewScreen) View(width, height int) string {
	questions := p.store.Questions()
	steps := components.NewStepper([]string{"Create", "Review", "Preview", "Publish"}, 2)

	var b strings.Builder
	b.WriteString(steps.View())
	b.WriteString("\n\n")

	if len(questions) == 0 {
		b.WriteString(theme.Hint.Render("No questions left."))
	} else {
		q := questions[p.index]
		b.WriteString(theme.Label.Render(fmt.Sprintf("Question %d of %d", p.index+1, len(questions))))
		b.WriteString("   ")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%s · %s · %s", q.Topic, q.Difficulty, q.Bloom)))
		b.WriteString("\n\n")

		if p.editingStem {
			b.WriteString(theme.Label.Render("Stem: "))
			b.WriteString(p.stemInput.View())
			b.WriteString("\n")
		} else {
			b.WriteString(p.options.View())
		}

		if q.Rationale != "" && !p.editingStem {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render("Why: " + q.Rationale))
			b.WriteString("\n")
		}
	}

	if p.publishing {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Publishing..."))
	}

	if p.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorBox.Render(p.errMsg))
	}

	card := theme.Card.Width(min(width-4, 90)).Render(b.String())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}
