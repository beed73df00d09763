package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/vmunix/pagecomplete/internal/server"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log, cmd.ErrOrStderr())

			db, err := openDB(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			custom, _ := utf8.DecodeRuneInString(cfg.Import.CustomDelimiter)
			mapping := configMapping(cfg)
			runner := server.NewRunner(db, server.Config{
				Addr:            cfg.Server.Addr(),
				CustomDelimiter: custom,
				StudentRole:     cfg.Import.StudentRole,
				Mapping:         &mapping,
				SessionTTL:      cfg.Import.SessionTTL.Duration,
				PruneInterval:   cfg.Server.PruneInterval.Duration,
				EventRetention:  cfg.Server.EventRetention.Duration,
			}, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("starting pagecomplete", "version", version, "addr", cfg.Server.Addr())
			if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info("pagecomplete stopped")
			return nil
		},
	}
}
