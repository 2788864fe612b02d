package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikhilv/quizstack/internal/quiz"
	"github.com/nikhilv/quizstack/internal/router"
	"github.com/nikhilv/quizstack/internal/screen"
	"github.com/nikhilv/quizstack/internal/screens/config"
	"github.com/nikhilv/quizstack/internal/screens/dashboard"
	"github.com/nikhilv/quizstack/internal/screens/upload"
	"github.com/nikhilv/quizstack/internal/ui/components"
	"github.com/nikhilv/quizstack/internal/ui/theme"
)

// HomeScreen is the main entry screen of the application.
type HomeScreen struct {
	repo         quiz.Repository
	menu         components.Menu
	setCount     int
	attemptCount int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(repo quiz.Repository) *HomeScreen {
	s := &HomeScreen{repo: repo}

	ctx := context.Background()
	if sets, err := repo.QuestionSets(ctx); err == nil {
		s.setCount = len(sets)
	}
	if attempts, err := repo.Attempts(ctx); err == nil {
		s.attemptCount = len(attempts)
	}

	s.menu = components.NewMenu([]components.MenuItem{
		{
			Label: "Upload question set",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: upload.New(repo)}
				}
			},
		},
		{
			Label:    "Start quiz",
			Disabled: s.setCount == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: config.New(repo)}
				}
			},
		},
		{
			Label: "Dashboard",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: dashboard.New(repo)}
				}
			},
		},
		{
			Label: "Quit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	})

	return s
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Title() string {
	return "Home"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("QuizStack"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Import question sets, run quizzes, track your progress"))
	b.WriteString("\n\n")

	menu := s.menu.View()
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(menu))

	if s.setCount == 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render("No question sets yet. Upload one to get started."))
	}

	return b.String()
}

// Counts returns the stored set and attempt counts for the header.
func (s *HomeScreen) Counts() (sets, attempts int) {
	return s.setCount, s.attemptCount
}
