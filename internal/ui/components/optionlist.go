package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reteach/reteach-cli/internal/ui/theme"
)

// OptionList renders a question's answer options with the correct choice
// marked. It is used on the question preview, where the teacher can move
// a cursor over options and re-mark which one is correct.
type OptionList struct {
	Stem        string
	Options     []string
	AnswerIndex int
	Cursor      int
	Focused     bool
}

// NewOptionList creates an option list for one question.
func NewOptionList(stem string, options []string, answerIndex int) OptionList {
	return OptionList{
		Stem:        stem,
		Options:     options,
		AnswerIndex: answerIndex,
		Cursor:      0,
	}
}

// Init returns nil.
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement and answer re-marking.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if !o.Focused {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "enter", "space":
		o.AnswerIndex = o.Cursor
	}

	return o, nil
}

// View renders the stem and lettered options.
func (o OptionList) View() string {
	stemStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := stemStyle.Render(o.Stem) + "\n\n"

	labels := []string{"A", "B", "C", "D"}

	for i, opt := range o.Options {
		label := "?"
		if i < len(labels) {
			label = labels[i]
		}

		prefix := "  "
		if o.Focused && i == o.Cursor {
			prefix = "▸ "
		}

		marker := " "
		if i == o.AnswerIndex {
			marker = "✓"
		}

		line := fmt.Sprintf("%s%s)  %s  %s", prefix, label, opt, marker)

		switch {
		case i == o.AnswerIndex:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case o.Focused && i == o.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
