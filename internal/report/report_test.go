package report

import (
	"math"
	"testing"

	"github.com/nikhilv/quizstack/internal/quiz"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil, nil)

	if sum.AverageScore != 0 {
		t.Errorf("averageScore = %v, want 0", sum.AverageScore)
	}
	if sum.AverageSuccessRate != 0 {
		t.Errorf("averageSuccessRate = %v, want 0", sum.AverageSuccessRate)
	}
	if sum.TotalQuestions != 0 || sum.TotalTimeSpent != 0 || sum.TotalAttempts != 0 {
		t.Errorf("expected zero summary, got %+v", sum)
	}
}

func TestSummarize_Metrics(t *testing.T) {
	attempts := []quiz.Attempt{
		{QuestionSetID: "s1", Score: 1, TotalQuestions: 2, TimeSpent: 3_600_000}, // 50%
		{QuestionSetID: "s1", Score: 3, TotalQuestions: 3, TimeSpent: 120_000},   // 100%
	}
	stats := []quiz.QuestionStats{
		{ID: "q1", Attempts: 1, SuccessRate: 100},
		{ID: "q2", Attempts: 1, SuccessRate: 0},
	}

	sum := Summarize(attempts, stats)

	if !almostEqual(sum.AverageScore, 75) {
		t.Errorf("averageScore = %v, want 75", sum.AverageScore)
	}
	if sum.TotalQuestions != 2 {
		t.Errorf("totalQuestions = %d, want 2", sum.TotalQuestions)
	}
	if !almostEqual(sum.AverageSuccessRate, 50) {
		t.Errorf("averageSuccessRate = %v, want 50", sum.AverageSuccessRate)
	}
	if sum.TotalTimeSpent != 3_720_000 {
		t.Errorf("totalTimeSpent = %d, want 3720000", sum.TotalTimeSpent)
	}
	if sum.Hours() != 1 || sum.Minutes() != 2 {
		t.Errorf("time = %dh %dm, want 1h 2m", sum.Hours(), sum.Minutes())
	}
}

func TestFilterAttempts(t *testing.T) {
	attempts := []quiz.Attempt{
		{QuestionSetID: "s1", Score: 1, TotalQuestions: 1},
		{QuestionSetID: "s2", Score: 0, TotalQuestions: 1},
	}

	filtered := FilterAttempts(attempts, "s1")
	if len(filtered) != 1 || filtered[0].QuestionSetID != "s1" {
		t.Errorf("filtered = %+v, want single s1 attempt", filtered)
	}

	all := FilterAttempts(attempts, "")
	if len(all) != 2 {
		t.Errorf("empty filter returned %d attempts, want 2", len(all))
	}
}

func TestFilterStats(t *testing.T) {
	stats := []quiz.QuestionStats{
		{ID: "q1", QuestionSetID: "s1"},
		{ID: "q2", QuestionSetID: "s2"},
	}

	filtered := FilterStats(stats, "s2")
	if len(filtered) != 1 || filtered[0].ID != "q2" {
		t.Errorf("filtered = %+v, want single q2 record", filtered)
	}
}

func TestRecent_LastFiveReversed(t *testing.T) {
	sets := []quiz.QuestionSet{{ID: "s1", Name: "Basics"}}

	var attempts []quiz.Attempt
	for i := 0; i < 7; i++ {
		attempts = append(attempts, quiz.Attempt{
			Date:           "2026-09-01T10:00:00Z",
			QuestionSetID:  "s1",
			Score:          i,
			TotalQuestions: 10,
			TimeSpent:      60_000,
		})
	}

	rows := Recent(attempts, sets, 5)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	// Most recent first: scores 6, 5, 4, 3, 2.
	for i, wantScore := range []int{6, 5, 4, 3, 2} {
		if rows[i].Score != wantScore {
			t.Errorf("rows[%d].Score = %d, want %d", i, rows[i].Score, wantScore)
		}
	}
	if rows[0].SetName != "Basics" {
		t.Errorf("setName = %q, want Basics", rows[0].SetName)
	}
	if rows[0].Minutes != 1 {
		t.Errorf("minutes = %d, want 1", rows[0].Minutes)
	}
}

func TestRecent_UnknownSetFallback(t *testing.T) {
	attempts := []quiz.Attempt{
		{Date: "2026-09-01T10:00:00Z", QuestionSetID: "ghost", Score: 1, TotalQuestions: 1},
	}

	rows := Recent(attempts, nil, 5)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].SetName != "Unknown set" {
		t.Errorf("setName = %q, want placeholder", rows[0].SetName)
	}
}

func TestTimeSeries_SortedAscending(t *testing.T) {
	attempts := []quiz.Attempt{
		{Date: "2026-09-02T10:00:00Z", Score: 1, TotalQuestions: 2},
		{Date: "2026-09-01T10:00:00Z", Score: 2, TotalQuestions: 2},
		{Date: "not-a-date", Score: 1, TotalQuestions: 1},
	}

	points := TimeSeries(attempts)
	if len(points) != 2 {
		t.Fatalf("expected 2 points (bad date skipped), got %d", len(points))
	}
	if !points[0].Date.Before(points[1].Date) {
		t.Error("points not sorted ascending by date")
	}
	if !almostEqual(points[0].ScorePercent, 100) || !almostEqual(points[1].ScorePercent, 50) {
		t.Errorf("points = %+v", points)
	}
}

func TestFilteredSummary_ScenarioFromTwoSets(t *testing.T) {
	attempts := []quiz.Attempt{
		{Date: "2026-09-01T10:00:00Z", QuestionSetID: "s1", Score: 1, TotalQuestions: 1},
		{Date: "2026-09-01T11:00:00Z", QuestionSetID: "s2", Score: 0, TotalQuestions: 1},
	}

	filtered := FilterAttempts(attempts, "s1")
	sum := Summarize(filtered, nil)

	if sum.TotalAttempts != 1 {
		t.Fatalf("expected exactly 1 matching attempt, got %d", sum.TotalAttempts)
	}
	if !almostEqual(sum.AverageScore, 100) {
		t.Errorf("averageScore = %v, want 100", sum.AverageScore)
	}
}
