package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"notes/internal/app"
	"notes/internal/client"
	"notes/internal/config"
	"notes/internal/logging"
	"notes/internal/store"
)

// apiFactory builds the backend for one command invocation.
type apiFactory func(cfg config.Config, logger logging.Logger) (store.API, error)

type commandWiring struct {
	stdout          io.Writer
	stderr          io.Writer
	stdin           io.Reader
	newAPI          apiFactory
	runUI           func(cmd *cobra.Command, s *store.Store, opts app.Options) error
	copyToClipboard func(text string) error
	openUILog       func(cfg config.Config) (logging.Logger, io.Closer, error)
	version         string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:          stdout,
		stderr:          stderr,
		stdin:           os.Stdin,
		newAPI:          newNotesAPI,
		runUI:           runTerminalUI,
		copyToClipboard: app.CopyToClipboard,
		openUILog:       openUILog,
		version:         buildVersion(),
	}
}

func newNotesAPI(cfg config.Config, logger logging.Logger) (store.API, error) {
	c, err := client.New(cfg, client.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return c, nil
}

type rootOptions struct {
	configPath string
	apiURL     string
	verbose    bool
}

func newRootCommand(wiring commandWiring) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "notes",
		Short:         "Browse and edit your notes from the terminal",
		Version:       wiring.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUICommand(cmd, wiring, opts)
		},
	}
	root.SetOut(wiring.stdout)
	root.SetErr(wiring.stderr)
	if wiring.stdin != nil {
		root.SetIn(wiring.stdin)
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.notes/config.toml)")
	flags.StringVar(&opts.apiURL, "api", "", "notes API base URL (overrides config and "+config.EnvAPIURL+")")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		newUICommand(wiring, opts),
		newListCommand(wiring, opts),
		newTagsCommand(wiring, opts),
		newShowCommand(wiring, opts),
		newAddCommand(wiring, opts),
		newEditCommand(wiring, opts),
		newRemoveCommand(wiring, opts),
		newWhoamiCommand(wiring, opts),
		newLoginCommand(wiring, opts),
		newLogoutCommand(wiring, opts),
		newConfigCommand(wiring, opts),
	)
	return root
}
