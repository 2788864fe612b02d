package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikhilv/quizstack/internal/app"
	"github.com/nikhilv/quizstack/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizstack",
	Short: "Terminal quiz runner",
	Long:  "QuizStack is a terminal app for importing question sets, running quizzes, and tracking performance over time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZSTACK_DB env var)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZSTACK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the path and opens the backing database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// runApp opens the store and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	return app.Run(app.Options{Repo: st})
}
