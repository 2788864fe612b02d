package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikhilv/quizstack/internal/quiz"
	"github.com/nikhilv/quizstack/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz performance statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		attempts, err := st.Attempts(ctx)
		if err != nil {
			return fmt.Errorf("load attempts: %w", err)
		}
		stats, err := st.QuestionStats(ctx)
		if err != nil {
			return fmt.Errorf("load question stats: %w", err)
		}
		sets, err := st.QuestionSets(ctx)
		if err != nil {
			return fmt.Errorf("load question sets: %w", err)
		}

		filter, _ := cmd.Flags().GetString("set")
		setID := ""
		if filter != "" {
			setID, err = matchSet(sets, filter)
			if err != nil {
				return err
			}
			attempts = report.FilterAttempts(attempts, setID)
			stats = report.FilterStats(stats, setID)
		}

		if len(attempts) == 0 {
			fmt.Println("No quiz runs recorded.")
			return nil
		}

		sum := report.Summarize(attempts, stats)
		fmt.Printf("Quiz runs:          %d\n", sum.TotalAttempts)
		fmt.Printf("Average score:      %.0f%%\n", sum.AverageScore)
		fmt.Printf("Questions answered: %d\n", sum.TotalQuestions)
		fmt.Printf("Avg success rate:   %.0f%%\n", sum.AverageSuccessRate)
		fmt.Printf("Time spent:         %dh %dm\n", sum.Hours(), sum.Minutes())

		fmt.Println("\nRecent runs:")
		for _, row := range report.Recent(attempts, sets, 5) {
			date := row.Date
			if len(date) >= 10 {
				date = date[:10]
			}
			fmt.Printf("  %s  %-24s  %d/%d (%.0f%%)\n",
				date, row.SetName, row.Score, row.Total, row.ScorePercent)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("set", "", "Limit statistics to one question set (ID or name)")
}

// matchSet resolves a --set argument to a set ID, accepting either the
// exact ID or a case-insensitive name.
func matchSet(sets []quiz.QuestionSet, filter string) (string, error) {
	for _, set := range sets {
		if set.ID == filter || strings.EqualFold(set.Name, filter) {
			return set.ID, nil
		}
	}
	return "", fmt.Errorf("no question set matching %q", filter)
}
