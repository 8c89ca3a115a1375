package cli

import (
	"github.com/spf13/cobra"

	"github.com/cppla/askboard/storage"
)

func newExportCmd(s *session) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored corpus as JSON",
		Long:  "Write the stored corpus as a JSON array of questions, to stdout or to --out.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, closeFn, err := openStore(cmd.Context(), s.cfg, cliLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer closeFn()

			corpus := board.Snapshot()
			if out != "" {
				return storage.NewFile(out).Save(cmd.Context(), corpus)
			}
			data, err := storage.Encode(corpus)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
