package store

import (
	"context"
	"strings"
	"sync"

	"notes/internal/client"
	"notes/internal/logging"
	"notes/internal/types"
)

type NotesAPI interface {
	ListNotes(ctx context.Context) ([]*types.Note, error)
	CreateNote(ctx context.Context, input types.NoteInput) (*types.Note, error)
	UpdateNote(ctx context.Context, id string, input types.NoteInput) (*types.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

type AuthAPI interface {
	Me(ctx context.Context) (*types.User, error)
	LoginURL() string
	Logout(ctx context.Context) error
}

type API interface {
	NotesAPI
	AuthAPI
}

// LoginHandler hands the login URL to whatever drives the backend's
// browser flow.
type LoginHandler func(ctx context.Context, loginURL string) error

// State is a snapshot of the store. Snapshots never share slices with the
// store or with each other.
type State struct {
	Version        uint64
	Notes          []*types.Note
	Filter         Filter
	FilteredNotes  []*types.Note
	SelectedNoteID string
	Editing        bool
	AuthUser       *types.User
	Loading        bool
	Error          string
}

func (s State) SignedIn() bool {
	return s.AuthUser != nil
}

// FindNote looks up a cached note by id.
func (s State) FindNote(id string) *types.Note {
	if id == "" {
		return nil
	}
	for _, note := range s.Notes {
		if note.ID == id {
			return note
		}
	}
	return nil
}

func (s State) SelectedNote() *types.Note {
	return s.FindNote(s.SelectedNoteID)
}

// Tags lists the distinct tags of all cached notes.
func (s State) Tags() []string {
	return CollectTags(s.Notes)
}

func (s State) clone() State {
	out := s
	out.Notes = cloneNotes(s.Notes)
	out.FilteredNotes = FilterNotes(out.Notes, s.Filter)
	out.Filter = s.Filter.clone()
	if s.AuthUser != nil {
		user := *s.AuthUser
		out.AuthUser = &user
	}
	return out
}

func (s *State) recompute() {
	s.FilteredNotes = FilterNotes(s.Notes, s.Filter)
}

func (s *State) replaceNotes(notes []*types.Note) {
	s.Notes = uniqueNotes(notes)
	s.recompute()
	if s.SelectedNoteID != "" && s.FindNote(s.SelectedNoteID) == nil {
		s.SelectedNoteID = ""
	}
}

type Option func(*Store)

func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithLoginHandler(handler LoginHandler) Option {
	return func(s *Store) {
		s.onLogin = handler
	}
}

// Store holds the cached notes, the filter, and the selection/edit state,
// and keeps them in sync with the notes API. Requests run without holding
// the lock; their results are applied in a single update.
type Store struct {
	notes   NotesAPI
	auth    AuthAPI
	logger  logging.Logger
	onLogin LoginHandler

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

func New(api API, opts ...Option) *Store {
	s := &Store{
		notes:  api,
		auth:   api,
		logger: logging.Nop(),
		subs:   map[int]func(State){},
	}
	s.state = initialState()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func initialState() State {
	return State{
		Notes:         []*types.Note{},
		FilteredNotes: []*types.Note{},
	}
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a snapshot after every change. fn runs on
// the goroutine that made the change and must not block.
func (s *Store) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) update(fn func(*State)) State {
	s.mu.Lock()
	fn(&s.state)
	s.state.Version++
	snapshot := s.state.clone()
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot.clone())
	}
	return snapshot
}

// Initialize resolves the signed-in user and loads their notes. A non-2xx
// whoami leaves the store signed out without listing notes.
func (s *Store) Initialize(ctx context.Context) error {
	s.update(func(st *State) {
		st.Loading = true
		st.Error = ""
	})

	user, err := s.auth.Me(ctx)
	if err != nil {
		if client.AsAPIError(err) != nil {
			s.logger.Info("signed out", logging.F("err", err))
			s.update(func(st *State) {
				st.AuthUser = nil
				st.replaceNotes(nil)
				st.Loading = false
			})
			return nil
		}
		return s.fail(MsgLoadFailed, "whoami failed", err)
	}
	s.update(func(st *State) {
		st.AuthUser = user
	})

	notes, err := s.notes.ListNotes(ctx)
	if err != nil {
		return s.fail(MsgLoadFailed, "list notes failed", err)
	}
	s.update(func(st *State) {
		st.replaceNotes(notes)
		st.Loading = false
	})
	s.logger.Debug("notes loaded", logging.F("count", len(notes)), logging.F("user", user.ID))
	return nil
}

// Refresh re-lists notes under the current filter and drops a selection that
// no longer resolves.
func (s *Store) Refresh(ctx context.Context) error {
	s.update(func(st *State) {
		st.Loading = true
		st.Error = ""
	})
	notes, err := s.notes.ListNotes(ctx)
	if err != nil {
		return s.fail(MsgLoadFailed, "refresh failed", err)
	}
	s.update(func(st *State) {
		st.replaceNotes(notes)
		st.Loading = false
	})
	return nil
}

// SetFilter applies opts and recomputes the filtered view. With no options
// the filter is unchanged.
func (s *Store) SetFilter(opts ...FilterOption) State {
	return s.update(func(st *State) {
		for _, opt := range opts {
			if opt != nil {
				opt(&st.Filter)
			}
		}
		st.recompute()
	})
}

// ToggleTag adds tag to the required set, or removes it if already present.
func (s *Store) ToggleTag(tag string) State {
	return s.update(func(st *State) {
		if st.Filter.HasTag(tag) {
			kept := make([]string, 0, len(st.Filter.Tags))
			for _, t := range st.Filter.Tags {
				if t != tag {
					kept = append(kept, t)
				}
			}
			st.Filter.Tags = kept
		} else {
			st.Filter.Tags = append(st.Filter.Tags, tag)
		}
		st.recompute()
	})
}

// SelectNote shows id in read mode. Unknown ids are ignored.
func (s *Store) SelectNote(id string) bool {
	return s.navigate(id, false)
}

// EditNote opens the editor on id. Unknown ids are ignored.
func (s *Store) EditNote(id string) bool {
	return s.navigate(id, true)
}

func (s *Store) navigate(id string, editing bool) bool {
	s.mu.Lock()
	known := s.state.FindNote(id) != nil
	s.mu.Unlock()
	if !known {
		s.logger.Debug("ignoring unknown note", logging.F("id", id))
		return false
	}
	s.update(func(st *State) {
		if st.FindNote(id) == nil {
			return
		}
		st.SelectedNoteID = id
		st.Editing = editing
	})
	return true
}

// AddNote opens the editor on a blank draft.
func (s *Store) AddNote() {
	s.update(func(st *State) {
		st.SelectedNoteID = ""
		st.Editing = true
	})
}

func (s *Store) CancelEdit() {
	s.update(func(st *State) {
		st.Editing = false
	})
}

// SaveNote creates or updates the note behind draft, then re-lists and closes
// the editor. On failure the editor stays open so the draft is not lost.
func (s *Store) SaveNote(ctx context.Context, draft types.Draft) (*types.Note, error) {
	input, err := PrepareDraft(draft)
	if err != nil {
		return nil, err
	}

	s.update(func(st *State) {
		st.Loading = true
		st.Error = ""
	})
	var saved *types.Note
	id := strings.TrimSpace(draft.ID)
	if id != "" {
		saved, err = s.notes.UpdateNote(ctx, id, input)
	} else {
		saved, err = s.notes.CreateNote(ctx, input)
	}
	if err != nil {
		return nil, s.fail(MsgSaveFailed, "save failed", err, logging.F("id", id))
	}

	notes, listErr := s.notes.ListNotes(ctx)
	s.update(func(st *State) {
		if listErr == nil {
			st.replaceNotes(notes)
		} else {
			st.Error = MsgLoadFailed
		}
		st.Editing = false
		st.Loading = false
	})
	if listErr != nil {
		s.logger.Warn("refresh after save failed", logging.F("err", listErr))
	}
	return saved, nil
}

// DeleteNote deletes id, re-lists, closes the editor, and clears the
// selection if it pointed at id.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &ValidationError{Message: MsgIDRequired}
	}

	s.update(func(st *State) {
		st.Loading = true
		st.Error = ""
	})
	if err := s.notes.DeleteNote(ctx, id); err != nil {
		return s.fail(MsgDeleteFailed, "delete failed", err, logging.F("id", id))
	}

	notes, listErr := s.notes.ListNotes(ctx)
	s.update(func(st *State) {
		if st.SelectedNoteID == id {
			st.SelectedNoteID = ""
		}
		if listErr == nil {
			st.replaceNotes(notes)
		} else {
			st.Error = MsgLoadFailed
		}
		st.Editing = false
		st.Loading = false
	})
	if listErr != nil {
		s.logger.Warn("refresh after delete failed", logging.F("err", listErr))
	}
	return nil
}

func (s *Store) fail(message, logMsg string, err error, fields ...logging.Field) error {
	s.logger.Warn(logMsg, append(fields, logging.F("err", err))...)
	s.update(func(st *State) {
		st.Error = message
		st.Loading = false
	})
	return &RequestError{Message: message, Err: err}
}

func cloneNotes(notes []*types.Note) []*types.Note {
	out := make([]*types.Note, 0, len(notes))
	for _, note := range notes {
		if note == nil {
			continue
		}
		out = append(out, note.Clone())
	}
	return out
}

func uniqueNotes(notes []*types.Note) []*types.Note {
	out := make([]*types.Note, 0, len(notes))
	seen := map[string]struct{}{}
	for _, note := range notes {
		if note == nil {
			continue
		}
		if _, ok := seen[note.ID]; ok {
			continue
		}
		seen[note.ID] = struct{}{}
		out = append(out, note.Clone())
	}
	return out
}
