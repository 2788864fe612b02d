package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikhilv/quizstack/internal/quiz"
	"github.com/nikhilv/quizstack/internal/router"
	"github.com/nikhilv/quizstack/internal/screen"
	"github.com/nikhilv/quizstack/internal/screens/dashboard"
	sess "github.com/nikhilv/quizstack/internal/session"
	"github.com/nikhilv/quizstack/internal/ui/components"
	"github.com/nikhilv/quizstack/internal/ui/layout"
	"github.com/nikhilv/quizstack/internal/ui/theme"
)

// QuizScreen runs one quiz session over a picked subset of questions.
type QuizScreen struct {
	repo    quiz.Repository
	state   *sess.Session
	setName string
	rng     *rand.Rand
	options components.OptionList

	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New starts a session over n questions picked at random from the set.
func New(repo quiz.Repository, set quiz.QuestionSet, n int) *QuizScreen {
	rng := sess.NewRNG()
	picked := sess.Pick(set.Questions, n, rng)
	return &QuizScreen{
		repo:    repo,
		state:   sess.New(set.ID, picked, time.Now()),
		setName: set.Name,
		rng:     rng,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon run"},
			{Key: "N", Description: "Keep going"},
		}
	}

	switch s.state.Phase {
	case sess.PhaseAwaitingReveal:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Show options"},
			{Key: "Esc", Description: "Quit"},
		}
	case sess.PhaseAwaitingAnswer:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		next := "Next question"
		if s.state.OnLastQuestion() {
			next = "Finish"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: next},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch kmsg.String() {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if kmsg.String() == "esc" {
		s.showingQuitConfirm = true
		return s, nil
	}

	switch s.state.Phase {
	case sess.PhaseAwaitingReveal:
		if kmsg.String() == "enter" || kmsg.String() == "space" {
			sess.Reveal(s.state, s.rng)
			s.options = components.NewOptionList(s.state.Shuffled, s.state.Current().CorrectAnswer)
		}
		return s, nil

	case sess.PhaseAwaitingAnswer:
		var cmd tea.Cmd
		s.options, cmd = s.options.Update(msg)
		if s.options.Submitted {
			if err := sess.Select(context.Background(), s.state, s.repo, s.options.Chosen); err != nil {
				s.errMsg = fmt.Sprintf("Failed to record answer: %v", err)
			}
		}
		return s, cmd

	case sess.PhaseAnswered:
		if kmsg.String() == "enter" || kmsg.String() == "space" {
			if err := sess.Advance(context.Background(), s.state, s.repo, time.Now()); err != nil {
				s.errMsg = fmt.Sprintf("Failed to save attempt: %v", err)
				return s, nil
			}
			if s.state.Phase == sess.PhaseCompleted {
				return s, func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: dashboard.New(s.repo)}
				}
			}
		}
		return s, nil
	}

	return s, nil
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n" + s.errMsg)
	}
	if s.showingQuitConfirm {
		return s.renderQuitConfirm(width)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("Abandon this run?"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).
		Render("Progress in this run will not be saved."))
	return b.String()
}

func (s *QuizScreen) renderQuestion(width int) string {
	q := s.state.Current()

	var b strings.Builder
	b.WriteString("\n")

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", s.state.Index+1, len(s.state.Questions)),
		float64(s.state.Index)/float64(len(s.state.Questions)),
		false,
		min(width-8, 60),
	)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(progress.View()))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).
		Render(fmt.Sprintf("%s   Score: %d", s.setName, s.state.Score)))
	b.WriteString("\n\n")

	question := theme.Card.Width(min(width-8, 72)).Render(q.Text)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(question))
	b.WriteString("\n\n")

	switch s.state.Phase {
	case sess.PhaseAwaitingReveal:
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render("Think about your answer, then press Enter to show the options"))

	case sess.PhaseAwaitingAnswer:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(s.options.View()))

	case sess.PhaseAnswered:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(s.options.View()))
		b.WriteString("\n")
		b.WriteString(s.renderVerdict(width, q))
	}

	return b.String()
}

func (s *QuizScreen) renderVerdict(width int, q quiz.Question) string {
	var b strings.Builder

	if s.state.LastCorrect {
		b.WriteString(theme.Correct.Width(width).Align(lipgloss.Center).Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render("Incorrect"))
	}
	b.WriteString("\n\n")

	explanation := theme.Card.Width(min(width-8, 72)).
		Render(lipgloss.NewStyle().Foreground(theme.TextDim).Render(q.Explanation))
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(explanation))

	return b.String()
}
