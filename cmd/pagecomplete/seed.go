package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmunix/pagecomplete/internal/lms"
)

func newSeedCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixtures.toml>",
		Short: "Load courses, pages and users from a fixtures file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			fixtures, err := lms.DecodeFixtures(f)
			if err != nil {
				return err
			}

			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			res, err := a.catalog.Seed(cmd.Context(), fixtures)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, res)
			}
			fmt.Fprintf(out, "Courses: %d added, %d skipped\n", res.CoursesAdded, res.CoursesSkipped)
			fmt.Fprintf(out, "Pages:   %d added\n", res.PagesAdded)
			fmt.Fprintf(out, "Users:   %d added, %d skipped\n", res.UsersAdded, res.UsersSkipped)
			return nil
		},
	}
}
