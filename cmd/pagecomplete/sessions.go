package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newSessionsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage stored import sessions",
	}
	cmd.AddCommand(
		newSessionsListCmd(opts),
		newSessionsRmCmd(opts),
		newSessionsReleaseCmd(opts),
		newSessionsPruneCmd(opts),
	)
	return cmd
}

func newSessionsListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored import sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			list, err := a.sessions.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, list)
			}
			if len(list) == 0 {
				fmt.Fprintln(out, "No sessions")
				return nil
			}

			fmt.Fprintf(out, "  %-6s %-8s %-10s %-10s %-12s\n", "ID", "ROWS", "DELIMITER", "STATE", "CREATED")
			fmt.Fprintln(out, "  "+strings.Repeat("-", 52))
			for _, s := range list {
				state := "pending"
				if s.Started() {
					state = "started"
				}
				fmt.Fprintf(out, "  %-6d %-8d %-10s %-10s %-12s\n",
					s.ID, s.RowCount, s.Delimiter, state, formatTimeAgo(s.CreatedAt))
			}
			return nil
		},
	}
}

func newSessionsRmCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <import-id>",
		Short: "Remove a stored import session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid import id %q", args[0])
			}
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.sessions.Cleanup(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed import %d\n", id)
			return nil
		},
	}
}

// newSessionsReleaseCmd clears the started flag left by a run whose
// process died before finishing.
func newSessionsReleaseCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "release <import-id>",
		Short: "Allow a stopped import to be executed again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid import id %q", args[0])
			}
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.sessions.ReleaseStarted(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Released import %d\n", id)
			return nil
		},
	}
}

func newSessionsPruneCmd(opts *globalOptions) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove sessions older than the session TTL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if !cmd.Flags().Changed("older-than") {
				olderThan = a.cfg.Import.SessionTTL.Duration
			}
			n, err := a.sessions.Prune(cmd.Context(), olderThan)
			if err != nil {
				return fmt.Errorf("prune sessions: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d session(s)\n", n)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Age threshold (default: import.session_ttl)")
	return cmd
}
