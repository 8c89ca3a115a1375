package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cppla/askboard/storage"
)

func newImportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the stored corpus with a JSON export",
		Long: `Replace the stored corpus with the questions in a JSON export.

Older exports without per-user ballots are accepted; their single vote is
kept as the anonymous viewer's.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			corpus, err := storage.Decode(data)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			board, closeFn, err := openStore(cmd.Context(), s.cfg, cliLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer closeFn()

			if err := board.Replace(cmd.Context(), corpus); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d questions\n", len(board.ListQuestions()))
			return nil
		},
	}
}
