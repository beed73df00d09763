package main

import (
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	dbPath     string
	logLevel   string
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "pagecomplete",
		Short: "Bulk-load page completion records",
		Long: `pagecomplete - bulk-load page activity completions

Reads a delimited file of (COURSE_IDNUMBER, USER_USERNAME) rows and marks
the page activity of each course as viewed by the user, enrolling the
user as a student first when needed.

Uploads run in two phases: "preview" parses the file and stores it under
an import id, "execute" runs a stored import. "upload" does both.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: discovered)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Database path (overrides config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")

	root.Version = version
	root.SetVersionTemplate("pagecomplete {{.Version}}\n")

	root.AddCommand(
		newUploadCmd(opts),
		newPreviewCmd(opts),
		newExecuteCmd(opts),
		newSessionsCmd(opts),
		newHistoryCmd(opts),
		newEventsCmd(opts),
		newSeedCmd(opts),
		newInitCmd(),
		newServeCmd(opts),
	)
	return root
}
