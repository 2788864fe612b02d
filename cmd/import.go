package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikhilv/quizstack/internal/ingest"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a question set from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := ingest.LoadFile(args[0])
		if err != nil {
			switch {
			case errors.Is(err, ingest.ErrMalformedJSON):
				return errors.New("Error parsing JSON file")
			case errors.Is(err, ingest.ErrInvalidDocument):
				return errors.New("Invalid question set format")
			default:
				return err
			}
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SaveQuestionSet(cmd.Context(), set); err != nil {
			return fmt.Errorf("save question set: %w", err)
		}

		fmt.Printf("Imported %q (%d questions)\n", set.Name, len(set.Questions))
		return nil
	},
}
