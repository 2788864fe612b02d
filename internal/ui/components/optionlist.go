package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikhilv/quizstack/internal/ui/theme"
)

// OptionList presents answer options in display (shuffled) order.
// Correctness is by option text, not position, since the display order
// changes on every reveal.
type OptionList struct {
	Options       []string
	CorrectAnswer string
	Selected      int
	Submitted     bool
	Chosen        string
}

// NewOptionList creates an option list over the given display order.
func NewOptionList(options []string, correctAnswer string) OptionList {
	return OptionList{
		Options:       options,
		CorrectAnswer: correctAnswer,
		Selected:      0,
	}
}

// Init returns nil.
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. After submission
// all input is ignored; the choice is locked in.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Submitted {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	case "enter":
		if o.Selected >= 0 && o.Selected < len(o.Options) {
			o.Submitted = true
			o.Chosen = o.Options[o.Selected]
		}
	}

	return o, nil
}

// View renders the option list.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected && !o.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		if o.Submitted {
			switch {
			case opt == o.CorrectAnswer:
				s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
			case opt == o.Chosen:
				s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			if i == o.Selected {
				s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
			} else {
				s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
			}
		}
	}

	return s
}

// IsCorrect returns true if the chosen option is the correct answer.
func (o OptionList) IsCorrect() bool {
	return o.Submitted && o.Chosen == o.CorrectAnswer
}
