package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"notes/internal/app"
	"notes/internal/store"
	"notes/internal/types"
)

const showWidth = 80

func newListCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var (
		search string
		tags   []string
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List notes, optionally filtered by text and tags",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := wiring.signedInEnv(cmd, opts)
			if err != nil {
				return err
			}
			state := env.store.SetFilter(store.WithSearch(search), store.WithTags(tags...))
			switch {
			case len(state.Notes) == 0:
				fmt.Fprintln(wiring.stdout, "No notes yet.")
			case len(state.FilteredNotes) == 0:
				fmt.Fprintln(wiring.stdout, "No notes found.")
			default:
				printNotes(wiring.stdout, state.FilteredNotes)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive text to match in title or body")
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "require tag (repeatable)")
	return cmd
}

func newTagsCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the distinct tags across your notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := wiring.signedInEnv(cmd, opts)
			if err != nil {
				return err
			}
			for _, tag := range env.store.Snapshot().Tags() {
				fmt.Fprintln(wiring.stdout, tag)
			}
			return nil
		},
	}
}

func newShowCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := wiring.signedInEnv(cmd, opts)
			if err != nil {
				return err
			}
			if !env.store.SelectNote(args[0]) {
				return fmt.Errorf("note %q not found", args[0])
			}
			note := env.store.Snapshot().SelectedNote()
			markdown := env.cfg.MarkdownEnabled() && !raw
			printNote(wiring.stdout, note, markdown, env.cfg.DarkTheme())
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the body without markdown rendering")
	return cmd
}

func printNote(out io.Writer, note *types.Note, markdown, dark bool) {
	title := note.Title
	if strings.TrimSpace(title) == "" {
		title = "<Untitled>"
	}
	fmt.Fprintln(out, title)
	if len(note.Tags) > 0 {
		fmt.Fprintf(out, "tags: %s\n", strings.Join(note.Tags, ", "))
	}
	if !note.UpdatedAt.IsZero() {
		fmt.Fprintf(out, "updated: %s\n", note.UpdatedAt.Local().Format(dateLayout))
	}
	body := note.Body
	if markdown {
		body = app.RenderMarkdown(body, showWidth, dark)
	}
	if strings.TrimSpace(body) != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, body)
	}
}

// readBody resolves the --body flag; "-" reads the body from stdin.
func readBody(cmd *cobra.Command, body string) (string, error) {
	if body != "-" {
		return body, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(data), nil
}

func newAddCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var (
		title string
		body  string
		tags  []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := wiring.signedInEnv(cmd, opts)
			if err != nil {
				return err
			}
			text, err := readBody(cmd, body)
			if err != nil {
				return err
			}
			env.store.AddNote()
			saved, err := env.store.SaveNote(cmd.Context(), types.Draft{Title: title, Body: text, Tags: tags})
			if err != nil {
				return err
			}
			if saved != nil && saved.ID != "" {
				fmt.Fprintf(wiring.stdout, "created %s\n", saved.ID)
			} else {
				fmt.Fprintln(wiring.stdout, "created")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "note title (required)")
	cmd.Flags().StringVar(&body, "body", "", `note body; "-" reads stdin`)
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "tag (repeatable)")
	return cmd
}

func newEditCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var (
		title string
		body  string
		tags  []string
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a note; fields not given keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := wiring.signedInEnv(cmd, opts)
			if err != nil {
				return err
			}
			id := args[0]
			if !env.store.EditNote(id) {
				return fmt.Errorf("note %q not found", id)
			}
			draft := types.DraftFromNote(env.store.Snapshot().SelectedNote())
			flags := cmd.Flags()
			if flags.Changed("title") {
				draft.Title = title
			}
			if flags.Changed("body") {
				if draft.Body, err = readBody(cmd, body); err != nil {
					return err
				}
			}
			if flags.Changed("tag") {
				draft.Tags = tags
			}
			if _, err := env.store.SaveNote(cmd.Context(), draft); err != nil {
				return err
			}
			fmt.Fprintf(wiring.stdout, "updated %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&body, "body", "", `new body; "-" reads stdin`)
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "replace tags (repeatable)")
	return cmd
}

func newRemoveCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := wiring.signedInEnv(cmd, opts)
			if err != nil {
				return err
			}
			if err := env.store.DeleteNote(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(wiring.stdout, "deleted %s\n", args[0])
			return nil
		},
	}
}
