package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cppla/askboard/similarity"
)

func newSimilarCmd(s *session) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "similar <question-id>",
		Short: "List the questions most related to a question",
		Example: `  askboard similar 1709294400000
  askboard similar 1709294400000 --limit 5 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}

			board, closeFn, err := openStore(cmd.Context(), s.cfg, cliLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer closeFn()

			focal, err := board.GetQuestion(id)
			if err != nil {
				return err
			}
			related, err := board.Related(id, limit)
			if err != nil {
				return err
			}

			type row struct {
				ID    int64   `json:"id"`
				Score float64 `json:"score"`
				Title string  `json:"title"`
			}
			rows := make([]row, 0, len(related))
			for _, q := range related {
				rows = append(rows, row{ID: q.ID, Score: similarity.Score(focal, q), Title: q.Title})
			}

			out := cmd.OutOrStdout()
			if s.jsonMode {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSCORE\tTITLE")
			for _, r := range rows {
				fmt.Fprintf(tw, "%d\t%.2f\t%s\n", r.ID, r.Score, r.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of questions (default from config)")
	return cmd
}
