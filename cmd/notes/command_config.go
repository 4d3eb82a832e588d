package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notes/internal/config"
)

func newConfigCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if !defaults {
				loaded, err := loadConfig(opts)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			data, err := cfg.Encode()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = wiring.stdout.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print built-in defaults instead of the effective config")
	return cmd
}
