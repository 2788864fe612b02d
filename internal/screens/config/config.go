package config

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikhilv/quizstack/internal/quiz"
	"github.com/nikhilv/quizstack/internal/router"
	"github.com/nikhilv/quizstack/internal/screen"
	quizscreen "github.com/nikhilv/quizstack/internal/screens/quiz"
	"github.com/nikhilv/quizstack/internal/ui/components"
	"github.com/nikhilv/quizstack/internal/ui/layout"
	"github.com/nikhilv/quizstack/internal/ui/theme"
)

// setsLoadedMsg delivers the stored question sets.
type setsLoadedMsg struct {
	Sets []quiz.QuestionSet
	Err  error
}

// defaultQuestionCount matches the original configuration default.
const defaultQuestionCount = 10

// ConfigScreen chooses a question set and a question count, then
// starts a quiz run.
type ConfigScreen struct {
	repo     quiz.Repository
	sets     []quiz.QuestionSet
	selected int
	count    components.TextInput
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ConfigScreen)(nil)
var _ screen.KeyHintProvider = (*ConfigScreen)(nil)

// New creates a new ConfigScreen.
func New(repo quiz.Repository) *ConfigScreen {
	count := components.NewTextInput("10", true, 4)
	count.Model.SetValue(fmt.Sprintf("%d", defaultQuestionCount))
	return &ConfigScreen{
		repo:  repo,
		count: count,
	}
}

func (s *ConfigScreen) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			sets, err := s.repo.QuestionSets(context.Background())
			return setsLoadedMsg{Sets: sets, Err: err}
		},
		s.count.Init(),
	)
}

func (s *ConfigScreen) Title() string {
	return "Configure"
}

func (s *ConfigScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Question set"},
		{Key: "0-9", Description: "Count"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ConfigScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sets = msg.Sets
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sets)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s.startQuiz()
		}
	}

	var cmd tea.Cmd
	s.count, cmd = s.count.Update(msg)
	return s, cmd
}

// startQuiz clamps the requested count to [1, len(questions)] and
// replaces this screen with an active quiz run.
func (s *ConfigScreen) startQuiz() (screen.Screen, tea.Cmd) {
	if len(s.sets) == 0 {
		return s, nil
	}

	set := s.sets[s.selected]
	if len(set.Questions) == 0 {
		s.errMsg = fmt.Sprintf("%q has no questions", set.Name)
		return s, nil
	}

	n, err := s.count.NumericValue()
	if err != nil || n < 1 {
		n = 1
	}
	if n > len(set.Questions) {
		n = len(set.Questions)
	}

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: quizscreen.New(s.repo, set, n)}
	}
}

func (s *ConfigScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Configure quiz"))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
		return b.String()
	}

	if !s.loaded {
		b.WriteString(theme.Subtitle.Width(width).Render("Loading question sets..."))
		return b.String()
	}

	if len(s.sets) == 0 {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render("No question sets available. Upload one first."))
		return b.String()
	}

	var list strings.Builder
	for i, set := range s.sets {
		line := fmt.Sprintf("%s (%d questions)", set.Name, len(set.Questions))
		if i == s.selected {
			list.WriteString(theme.Selected.Render("  ▸ " + line))
		} else {
			list.WriteString(theme.Unselected.Render("    " + line))
		}
		list.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(list.String()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Number of questions: " + s.count.View()))

	return b.String()
}
