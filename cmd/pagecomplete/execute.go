package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vmunix/pagecomplete/internal/tracker"
)

func newExecuteCmd(opts *globalOptions) *cobra.Command {
	var (
		courseCol int
		userCol   int
		format    string
	)

	cmd := &cobra.Command{
		Use:   "execute <import-id>",
		Short: "Execute a stored import",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid import id %q", args[0])
			}
			mode, err := tracker.ParseMode(format)
			if err != nil {
				return err
			}

			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			mapping := a.mapping()
			if cmd.Flags().Changed("course-col") {
				mapping.CourseIDNumber = courseCol
			}
			if cmd.Flags().Changed("user-col") {
				mapping.UserUsername = userCol
			}

			session, err := a.parser.Reopen(cmd.Context(), id, mapping)
			if err != nil {
				return err
			}
			tr := tracker.New(cmd.OutOrStdout(), mode)
			if _, err := a.importer.Execute(cmd.Context(), session, tr); err != nil {
				return err
			}
			return tr.Err()
		},
	}

	cmd.Flags().IntVar(&courseCol, "course-col", 0, "Column index of COURSE_IDNUMBER, -1 when absent (default from config)")
	cmd.Flags().IntVar(&userCol, "user-col", 1, "Column index of USER_USERNAME, -1 when absent (default from config)")
	cmd.Flags().StringVar(&format, "format", "plain", "Report format: plain, html, json, silent")
	return cmd
}
