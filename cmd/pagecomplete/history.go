package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/pagecomplete/internal/importer"
)

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var (
		limit    int
		importID int64
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show executed imports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			filter := importer.RunFilter{Limit: limit}
			if cmd.Flags().Changed("import") {
				filter.ImportID = &importID
			}
			runs, err := a.history.List(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No imports")
				return nil
			}

			fmt.Fprintf(out, "  %-8s %-7s %-7s %-8s %-7s %-12s\n", "IMPORT", "TOTAL", "ADDED", "SKIPPED", "ERRORS", "FINISHED")
			fmt.Fprintln(out, "  "+strings.Repeat("-", 56))
			for _, r := range runs {
				fmt.Fprintf(out, "  %-8d %-7d %-7d %-8d %-7d %-12s\n",
					r.ImportID, r.Total, r.Added, r.Skipped, r.Errors, formatTimeAgo(r.FinishedAt))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	cmd.Flags().Int64Var(&importID, "import", 0, "Only runs of this import id")
	return cmd
}
