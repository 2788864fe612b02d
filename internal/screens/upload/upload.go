package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikhilv/quizstack/internal/ingest"
	"github.com/nikhilv/quizstack/internal/quiz"
	"github.com/nikhilv/quizstack/internal/router"
	"github.com/nikhilv/quizstack/internal/screen"
	"github.com/nikhilv/quizstack/internal/ui/components"
	"github.com/nikhilv/quizstack/internal/ui/layout"
	"github.com/nikhilv/quizstack/internal/ui/theme"
)

// importDoneMsg reports the outcome of one import attempt.
type importDoneMsg struct {
	SetName   string
	Questions int
	Err       error
}

// UploadScreen imports a question-set document from a file path.
type UploadScreen struct {
	repo    quiz.Repository
	input   components.TextInput
	status  string
	failed  bool
	loading bool
}

var _ screen.Screen = (*UploadScreen)(nil)
var _ screen.KeyHintProvider = (*UploadScreen)(nil)

// New creates a new UploadScreen.
func New(repo quiz.Repository) *UploadScreen {
	return &UploadScreen{
		repo:  repo,
		input: components.NewTextInput("Path to question set (JSON)...", false, 120),
	}
}

func (s *UploadScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *UploadScreen) Title() string {
	return "Upload"
}

func (s *UploadScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Import"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *UploadScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case importDoneMsg:
		s.loading = false
		if msg.Err != nil {
			s.failed = true
			s.status = importErrorMessage(msg.Err)
		} else {
			s.failed = false
			s.status = fmt.Sprintf("Imported %q (%d questions)", msg.SetName, msg.Questions)
			s.input = components.NewTextInput("Path to question set (JSON)...", false, 120)
			return s, s.input.Init()
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			path := strings.TrimSpace(s.input.Value())
			if path == "" || s.loading {
				return s, nil
			}
			s.loading = true
			s.status = ""
			return s, s.importFile(path)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// importFile validates and stores the document. A document that fails
// parsing or validation is discarded and never reaches the repository.
func (s *UploadScreen) importFile(path string) tea.Cmd {
	return func() tea.Msg {
		set, err := ingest.LoadFile(path)
		if err != nil {
			return importDoneMsg{Err: err}
		}
		if err := s.repo.SaveQuestionSet(context.Background(), set); err != nil {
			return importDoneMsg{Err: err}
		}
		return importDoneMsg{SetName: set.Name, Questions: len(set.Questions)}
	}
}

func (s *UploadScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Upload a question set"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("JSON files only"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("File: " + s.input.View()))
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString(theme.Subtitle.Width(width).Render("Importing..."))
	case s.status != "" && s.failed:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.status))
	case s.status != "":
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render(s.status))
	}

	return b.String()
}

// importErrorMessage maps ingestion failures to the two user-facing
// notifications; anything else surfaces as-is.
func importErrorMessage(err error) string {
	switch {
	case errors.Is(err, ingest.ErrMalformedJSON):
		return "Error parsing JSON file"
	case errors.Is(err, ingest.ErrInvalidDocument):
		return "Invalid question set format"
	default:
		return err.Error()
	}
}
