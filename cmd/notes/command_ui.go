package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"notes/internal/app"
	"notes/internal/config"
	"notes/internal/logging"
	"notes/internal/store"
)

func newUICommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Run the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUICommand(cmd, wiring, opts)
		},
	}
}

// runUICommand logs to the UI log file instead of stderr, which the
// terminal UI owns while it runs.
func runUICommand(cmd *cobra.Command, wiring commandWiring, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	logger := logging.Nop()
	if wiring.openUILog != nil {
		fileLogger, closer, err := wiring.openUILog(cfg)
		if err == nil {
			logger = fileLogger
			defer closer.Close()
		}
	}
	env, err := wiring.newEnv(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("ui starting", logging.F("api", cfg.BaseURL()))
	return wiring.runUI(cmd, env.store, app.Options{
		Markdown: cfg.MarkdownEnabled(),
		Dark:     cfg.DarkTheme(),
	})
}

func runTerminalUI(cmd *cobra.Command, s *store.Store, opts app.Options) error {
	return app.Run(cmd.Context(), s, opts)
}

func openUILog(cfg config.Config) (logging.Logger, io.Closer, error) {
	path, err := config.UILogPath()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	return logging.OpenFile(path, logging.ParseLevel(cfg.LogLevel()), logging.ParseFormat(cfg.LogFormat()))
}
