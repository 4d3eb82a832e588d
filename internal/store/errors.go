package store

import "fmt"

// Fixed messages surfaced to the user. Callers must not branch on them; use
// errors.As with the error types below instead.
const (
	MsgLoadFailed    = "Failed to load notes."
	MsgSaveFailed    = "Could not save note!"
	MsgDeleteFailed  = "Could not delete!"
	MsgLogoutFailed  = "Could not sign out!"
	MsgTitleRequired = "Title is required"
	MsgIDRequired    = "Note id is required"
)

// ValidationError blocks an action before anything is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// RequestError wraps a failed request: a non-2xx response or a transport
// failure. Message is one of the fixed store messages.
type RequestError struct {
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (%v)", e.Message, e.Err)
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
