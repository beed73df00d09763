package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmunix/pagecomplete/internal/config"
)

func newInitCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "", "Config path (default: user config dir)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	return cmd
}
