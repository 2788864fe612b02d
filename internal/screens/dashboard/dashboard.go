package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikhilv/quizstack/internal/quiz"
	"github.com/nikhilv/quizstack/internal/report"
	"github.com/nikhilv/quizstack/internal/router"
	"github.com/nikhilv/quizstack/internal/screen"
	"github.com/nikhilv/quizstack/internal/ui/layout"
	"github.com/nikhilv/quizstack/internal/ui/theme"
)

type dataLoadedMsg struct {
	Attempts []quiz.Attempt
	Stats    []quiz.QuestionStats
	Sets     []quiz.QuestionSet
	Err      error
}

// recentLimit caps the attempts table.
const recentLimit = 5

// DashboardScreen displays aggregate performance over stored attempts.
type DashboardScreen struct {
	repo     quiz.Repository
	attempts []quiz.Attempt
	stats    []quiz.QuestionStats
	sets     []quiz.QuestionSet

	// filter is an index into sets, or -1 for all sets.
	filter    int
	showGraph bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(repo quiz.Repository) *DashboardScreen {
	return &DashboardScreen{
		repo:   repo,
		filter: -1,
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		attempts, err := s.repo.Attempts(ctx)
		if err != nil {
			return dataLoadedMsg{Err: err}
		}
		stats, err := s.repo.QuestionStats(ctx)
		if err != nil {
			return dataLoadedMsg{Err: err}
		}
		sets, err := s.repo.QuestionSets(ctx)
		if err != nil {
			return dataLoadedMsg{Err: err}
		}

		return dataLoadedMsg{Attempts: attempts, Stats: stats, Sets: sets}
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "F", Description: "Filter set"},
		{Key: "G", Description: "Graph"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dataLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.stats = msg.Stats
			s.sets = msg.Sets
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "f", "F":
			// Cycle all sets, then back to the combined view.
			s.filter++
			if s.filter >= len(s.sets) {
				s.filter = -1
			}
			return s, nil
		case "g", "G":
			s.showGraph = !s.showGraph
			return s, nil
		}
	}
	return s, nil
}

// filterSetID returns the active filter's set ID, or "" for all.
func (s *DashboardScreen) filterSetID() string {
	if s.filter < 0 || s.filter >= len(s.sets) {
		return ""
	}
	return s.sets[s.filter].ID
}

func (s *DashboardScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading dashboard...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quiz runs yet. Take a quiz first!")
	}

	setID := s.filterSetID()
	attempts := report.FilterAttempts(s.attempts, setID)
	stats := report.FilterStats(s.stats, setID)
	sum := report.Summarize(attempts, stats)

	var b strings.Builder
	b.WriteString("\n")

	filterLabel := "All question sets"
	if setID != "" {
		filterLabel = s.sets[s.filter].Name
	}
	b.WriteString(theme.Subtitle.Width(width).Render("Showing: " + filterLabel))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderCards(sum)))
	b.WriteString("\n\n")

	if s.showGraph {
		b.WriteString(s.renderGraph(width, attempts))
	} else {
		b.WriteString(s.renderRecent(width, attempts))
	}

	return b.String()
}

func (s *DashboardScreen) renderCards(sum report.Summary) string {
	card := func(label, value string) string {
		inner := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(value) +
			"\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
		return theme.Card.Width(18).Align(lipgloss.Center).Render(inner)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Avg score", fmt.Sprintf("%.0f%%", sum.AverageScore)),
		" ",
		card("Questions", fmt.Sprintf("%d", sum.TotalQuestions)),
		" ",
		card("Success rate", fmt.Sprintf("%.0f%%", sum.AverageSuccessRate)),
		" ",
		card("Time spent", fmt.Sprintf("%dh %dm", sum.Hours(), sum.Minutes())),
	)
}

func (s *DashboardScreen) renderRecent(width int, attempts []quiz.Attempt) string {
	rows := report.Recent(attempts, s.sets, recentLimit)

	var b strings.Builder
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent runs")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, row := range rows {
		date := row.Date
		if len(date) >= 10 {
			date = date[:10]
		}
		line := fmt.Sprintf("  %s  %-24s  %d/%d  %.0f%%  %dm",
			date, truncate(row.SetName, 24), row.Score, row.Total, row.ScorePercent, row.Minutes)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if row.ScorePercent >= 80 {
			style = style.Foreground(theme.Success)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

// graphHeight is the number of character rows in the score graph.
const graphHeight = 8

func (s *DashboardScreen) renderGraph(width int, attempts []quiz.Attempt) string {
	points := report.TimeSeries(attempts)

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Score over time")))
	b.WriteString("\n\n")

	if len(points) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No dated runs to plot")))
		return b.String()
	}

	maxCols := min(width-16, 40)
	if len(points) > maxCols {
		points = points[len(points)-maxCols:]
	}

	barStyle := lipgloss.NewStyle().Foreground(theme.Secondary)
	axisStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	for row := graphHeight; row >= 1; row-- {
		threshold := float64(row) / float64(graphHeight) * 100

		label := "    "
		if row == graphHeight {
			label = "100%"
		} else if row == graphHeight/2 {
			label = " 50%"
		}

		line := axisStyle.Render(label+" │ ") + renderBarRow(points, threshold, barStyle)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	axis := axisStyle.Render("     └" + strings.Repeat("─", len(points)*2))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, axis))
	b.WriteString("\n")

	span := fmt.Sprintf("%s  to  %s",
		points[0].Date.Format("Jan 02"),
		points[len(points)-1].Date.Format("Jan 02"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, axisStyle.Render(span)))

	return b.String()
}

func renderBarRow(points []report.Point, threshold float64, style lipgloss.Style) string {
	var row strings.Builder
	for _, p := range points {
		if p.ScorePercent >= threshold {
			row.WriteString(style.Render("█ "))
		} else {
			row.WriteString("  ")
		}
	}
	return row.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
