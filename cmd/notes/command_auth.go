package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notes/internal/store"
)

func newWhoamiCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := wiring.env(opts)
			if err != nil {
				return err
			}
			if err := env.store.Initialize(cmd.Context()); err != nil {
				return err
			}
			user := env.store.Snapshot().AuthUser
			if user == nil {
				fmt.Fprintln(wiring.stdout, "not signed in")
				return nil
			}
			if user.Email != "" && user.Email != user.DisplayName() {
				fmt.Fprintf(wiring.stdout, "%s <%s>\n", user.DisplayName(), user.Email)
				return nil
			}
			fmt.Fprintln(wiring.stdout, user.DisplayName())
			return nil
		},
	}
}

func newLoginCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Print the sign-in URL and copy it to the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := wiring.env(opts)
			if err != nil {
				return err
			}
			loginURL, err := env.store.Login(cmd.Context())
			fmt.Fprintf(wiring.stdout, "Open this URL to sign in:\n  %s\n", loginURL)
			if err != nil {
				fmt.Fprintf(wiring.stderr, "could not copy the URL to the clipboard: %v\n", err)
				return nil
			}
			fmt.Fprintln(wiring.stdout, "(copied to clipboard)")
			return nil
		},
	}
}

func newLogoutCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := wiring.env(opts)
			if err != nil {
				return err
			}
			if err := env.store.SetAuth(cmd.Context(), store.AuthLogout); err != nil {
				return err
			}
			fmt.Fprintln(wiring.stdout, "signed out")
			return nil
		},
	}
}
