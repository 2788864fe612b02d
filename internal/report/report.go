// Package report derives dashboard metrics from stored attempts and
// question stats. Everything here is a pure function over a
// repository snapshot; nothing is cached between views.
package report

import (
	"sort"
	"time"

	"github.com/nikhilv/quizstack/internal/quiz"
)

// Summary is the set of headline dashboard metrics.
type Summary struct {
	// AverageScore is the mean attempt score as a percentage, 0 when
	// there are no attempts.
	AverageScore float64

	// TotalAttempts is the number of attempts considered.
	TotalAttempts int

	// TotalQuestions is the sum of per-question attempt counts.
	TotalQuestions int

	// AverageSuccessRate is the mean per-question success rate, 0 when
	// there are no stats records.
	AverageSuccessRate float64

	// TotalTimeSpent is the summed attempt duration in milliseconds.
	TotalTimeSpent int64
}

// Hours returns the whole hours of total time spent.
func (s Summary) Hours() int {
	return int(s.TotalTimeSpent / 3_600_000)
}

// Minutes returns the remaining whole minutes of total time spent.
func (s Summary) Minutes() int {
	return int(s.TotalTimeSpent % 3_600_000 / 60_000)
}

// FilterAttempts returns the attempts for the given question set, or
// all attempts when setID is empty.
func FilterAttempts(attempts []quiz.Attempt, setID string) []quiz.Attempt {
	if setID == "" {
		return attempts
	}
	var out []quiz.Attempt
	for _, a := range attempts {
		if a.QuestionSetID == setID {
			out = append(out, a)
		}
	}
	return out
}

// FilterStats returns the stats records for the given question set,
// or all records when setID is empty.
func FilterStats(stats []quiz.QuestionStats, setID string) []quiz.QuestionStats {
	if setID == "" {
		return stats
	}
	var out []quiz.QuestionStats
	for _, s := range stats {
		if s.QuestionSetID == setID {
			out = append(out, s)
		}
	}
	return out
}

// Summarize computes the headline metrics over the given (already
// filtered) attempts and stats. Every division is guarded: empty
// inputs yield zeros, never NaN.
func Summarize(attempts []quiz.Attempt, stats []quiz.QuestionStats) Summary {
	var sum Summary
	sum.TotalAttempts = len(attempts)

	var scoreTotal float64
	for _, a := range attempts {
		if a.TotalQuestions > 0 {
			scoreTotal += float64(a.Score) / float64(a.TotalQuestions) * 100
		}
		sum.TotalTimeSpent += a.TimeSpent
	}
	if len(attempts) > 0 {
		sum.AverageScore = scoreTotal / float64(len(attempts))
	}

	var rateTotal float64
	for _, s := range stats {
		sum.TotalQuestions += s.Attempts
		rateTotal += s.SuccessRate
	}
	if len(stats) > 0 {
		sum.AverageSuccessRate = rateTotal / float64(len(stats))
	}

	return sum
}

// AttemptRow is one row of the recent-attempts table.
type AttemptRow struct {
	Date         string
	SetName      string
	ScorePercent float64
	Score        int
	Total        int
	Minutes      int
}

// unknownSetLabel is shown when an attempt references a set that is
// not (or no longer) in the store.
const unknownSetLabel = "Unknown set"

// Recent returns up to n of the given attempts as display rows, most
// recent first, with set IDs resolved to display names.
func Recent(attempts []quiz.Attempt, sets []quiz.QuestionSet, n int) []AttemptRow {
	names := make(map[string]string, len(sets))
	for _, set := range sets {
		if _, ok := names[set.ID]; !ok {
			names[set.ID] = set.Name
		}
	}

	start := len(attempts) - n
	if start < 0 {
		start = 0
	}
	recent := attempts[start:]

	rows := make([]AttemptRow, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		a := recent[i]
		name, ok := names[a.QuestionSetID]
		if !ok {
			name = unknownSetLabel
		}
		var pct float64
		if a.TotalQuestions > 0 {
			pct = float64(a.Score) / float64(a.TotalQuestions) * 100
		}
		rows = append(rows, AttemptRow{
			Date:         a.Date,
			SetName:      name,
			ScorePercent: pct,
			Score:        a.Score,
			Total:        a.TotalQuestions,
			Minutes:      int(a.TimeSpent / 60_000),
		})
	}
	return rows
}

// Point is one sample of the score-over-time series.
type Point struct {
	Date         time.Time
	ScorePercent float64
}

// TimeSeries converts attempts into score-percentage points sorted
// ascending by date. Attempts with unparseable dates are skipped.
func TimeSeries(attempts []quiz.Attempt) []Point {
	points := make([]Point, 0, len(attempts))
	for _, a := range attempts {
		ts, err := time.Parse(time.RFC3339, a.Date)
		if err != nil {
			continue
		}
		var pct float64
		if a.TotalQuestions > 0 {
			pct = float64(a.Score) / float64(a.TotalQuestions) * 100
		}
		points = append(points, Point{Date: ts, ScorePercent: pct})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}
