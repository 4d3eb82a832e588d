package store

import (
	"context"
	"fmt"
	"strings"

	"notes/internal/logging"
)

type AuthAction int

const (
	AuthLogin AuthAction = iota
	AuthLogout
)

func (a AuthAction) String() string {
	switch a {
	case AuthLogin:
		return "login"
	case AuthLogout:
		return "logout"
	default:
		return fmt.Sprintf("AuthAction(%d)", int(a))
	}
}

func ParseAuthAction(raw string) (AuthAction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "login":
		return AuthLogin, nil
	case "logout":
		return AuthLogout, nil
	default:
		return 0, fmt.Errorf("unknown auth action %q", raw)
	}
}

// SetAuth routes action to its handler.
func (s *Store) SetAuth(ctx context.Context, action AuthAction) error {
	switch action {
	case AuthLogin:
		_, err := s.Login(ctx)
		return err
	case AuthLogout:
		return s.Logout(ctx)
	default:
		return fmt.Errorf("unsupported auth action: %s", action)
	}
}

// Login hands the backend's login URL to the configured handler. Only the
// loading flag changes while the handler runs.
func (s *Store) Login(ctx context.Context) (string, error) {
	loginURL := s.auth.LoginURL()
	if s.onLogin == nil {
		return loginURL, nil
	}
	s.update(func(st *State) {
		st.Loading = true
	})
	err := s.onLogin(ctx, loginURL)
	s.update(func(st *State) {
		st.Loading = false
	})
	if err != nil {
		s.logger.Warn("login handoff failed", logging.F("err", err))
		return loginURL, err
	}
	return loginURL, nil
}

// Logout signs out at the backend and then reinitializes from a fresh state,
// as a page reload would. A failed logout call is still followed by the
// reinitialize so the store reflects whatever the backend now reports.
func (s *Store) Logout(ctx context.Context) error {
	s.update(func(st *State) {
		st.Loading = true
	})
	logoutErr := s.auth.Logout(ctx)
	if logoutErr != nil {
		s.logger.Warn("logout failed", logging.F("err", logoutErr))
	}
	s.update(func(st *State) {
		version := st.Version
		*st = initialState()
		st.Version = version
		st.Loading = true
	})
	if err := s.Initialize(ctx); err != nil {
		return err
	}
	if logoutErr != nil {
		return &RequestError{Message: MsgLogoutFailed, Err: logoutErr}
	}
	return nil
}
