package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"notes/internal/store"
	"notes/internal/types"
)

const requestTimeout = 15 * time.Second

func waitForStateCmd(updates <-chan store.State) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg{state: state}
	}
}

func initializeCmd(ctx context.Context, s *store.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return opDoneMsg{op: opInitialize, err: s.Initialize(ctx)}
	}
}

func refreshCmd(ctx context.Context, s *store.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return opDoneMsg{op: opRefresh, err: s.Refresh(ctx)}
	}
}

func saveNoteCmd(ctx context.Context, s *store.Store, draft types.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		_, err := s.SaveNote(ctx, draft)
		return opDoneMsg{op: opSave, err: err}
	}
}

func deleteNoteCmd(ctx context.Context, s *store.Store, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return opDoneMsg{op: opDelete, err: s.DeleteNote(ctx, id)}
	}
}

func logoutCmd(ctx context.Context, s *store.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return opDoneMsg{op: opLogout, err: s.SetAuth(ctx, store.AuthLogout)}
	}
}

func loginCmd(ctx context.Context, s *store.Store) tea.Cmd {
	return func() tea.Msg {
		loginURL, err := s.Login(ctx)
		return loginMsg{url: loginURL, err: err}
	}
}

func copyCmd(what, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := copyTextToClipboard(text)
		return copiedMsg{what: what, err: err}
	}
}

// forwardLatest keeps only the newest snapshot in a one-slot channel so the
// store never blocks on a slow UI.
func forwardLatest(updates chan store.State) func(store.State) {
	return func(state store.State) {
		for {
			select {
			case updates <- state:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	}
}
