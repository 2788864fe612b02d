package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored question sets, attempts, and stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Println("This deletes every stored question set, quiz run, and stats record.")
			fmt.Println("Re-run with --force to proceed.")
			return nil
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset store: %w", err)
		}
		fmt.Println("All data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation notice")
}
