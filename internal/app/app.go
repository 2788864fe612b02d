package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikhilv/quizstack/internal/quiz"
	"github.com/nikhilv/quizstack/internal/router"
	"github.com/nikhilv/quizstack/internal/screen"
	"github.com/nikhilv/quizstack/internal/screens/home"
	"github.com/nikhilv/quizstack/internal/ui/layout"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	Repo quiz.Repository
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	repo   quiz.Repository
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Repo)
	return AppModel{
		repo:   opts.Repo,
		router: router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc is owned by the active screen: some screens confirm
		// before leaving. Only ctrl+c quits unconditionally.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	sets, attempts := m.counts()
	header := layout.RenderHeader(title, sets, attempts, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			footerHints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// counts reads the header tallies. Lookup failures render as zero
// rather than blocking the frame.
func (m AppModel) counts() (sets, attempts int) {
	ctx := context.Background()
	if s, err := m.repo.QuestionSets(ctx); err == nil {
		sets = len(s)
	}
	if a, err := m.repo.Attempts(ctx); err == nil {
		attempts = len(a)
	}
	return sets, attempts
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
