package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/reteach/reteach-cli/internal/ui/theme"
)

// Stepper renders the wizard step trail shown at the top of each
// diagnostic-builder screen, e.g. "Create ─ Review ─ Preview ─ Publish".
type Stepper struct {
	Steps   []string
	Current int
}

// NewStepper creates a stepper with the given step labels.
func NewStepper(steps []string, current int) Stepper {
	return Stepper{Steps: steps, Current: current}
}

// View renders the step trail.
func (s Stepper) View() string {
	parts := make([]string, 0, len(s.Steps))
	for i, step := range s.Steps {
		switch {
		case i < s.Current:
			parts = append(parts, lipgloss.NewStyle().
				Foreground(theme.Success).
				Render("✓ "+step))
		case i == s.Current:
			parts = append(parts, lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Render("● "+step))
		default:
			parts = append(parts, lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("○ "+step))
		}
	}

	sep := lipgloss.NewStyle().Foreground(theme.Border).Render(" ── ")
	return strings.Join(parts, sep)
}
