package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/pagecomplete/internal/events"
)

func newEventsCmd(opts *globalOptions) *cobra.Command {
	var (
		limit     int
		eventType string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recorded events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			list, err := a.eventLog.Query(events.Filter{EventType: eventType, Limit: limit})
			if err != nil {
				return fmt.Errorf("failed to query events: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, list)
			}
			if len(list) == 0 {
				fmt.Fprintln(out, "No events")
				return nil
			}

			fmt.Fprintf(out, "Events (%d):\n\n", len(list))
			fmt.Fprintf(out, "  %-12s %-28s %-15s\n", "TIME", "TYPE", "ENTITY")
			fmt.Fprintln(out, "  "+strings.Repeat("-", 57))
			for _, e := range list {
				entity := fmt.Sprintf("%s/%d", e.EntityType, e.EntityID)
				fmt.Fprintf(out, "  %-12s %-28s %-15s\n", formatTimeAgo(e.OccurredAt), e.EventType, entity)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of events to show")
	cmd.Flags().StringVarP(&eventType, "type", "t", "", "Only events of this type")
	return cmd
}
