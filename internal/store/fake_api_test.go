package store

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"notes/internal/client"
	"notes/internal/types"
)

var errTransport = errors.New("connection refused")

type createCall struct {
	input types.NoteInput
}

type updateCall struct {
	id    string
	input types.NoteInput
}

type fakeAPI struct {
	mu sync.Mutex

	user  *types.User
	meErr error

	notes     []*types.Note
	listErr   error
	listCalls int

	createErr   error
	createCalls []createCall
	updateErr   error
	updateCalls []updateCall
	deleteErr   error
	deleteCalls []string

	logoutErr   error
	logoutCalls int
	nextID      int
}

func newFakeAPI(notes ...*types.Note) *fakeAPI {
	return &fakeAPI{
		user:   &types.User{ID: "u1", Name: "Ada", Email: "ada@example.com"},
		notes:  notes,
		nextID: 100,
	}
}

func signedOut() error {
	return &client.APIError{StatusCode: http.StatusUnauthorized, Message: "unauthorized"}
}

func (f *fakeAPI) Me(ctx context.Context) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.meErr != nil {
		return nil, f.meErr
	}
	user := *f.user
	return &user, nil
}

func (f *fakeAPI) LoginURL() string {
	return "http://notes.test/api/auth/login"
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.meErr = signedOut()
	return nil
}

func (f *fakeAPI) ListNotes(ctx context.Context) ([]*types.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*types.Note, 0, len(f.notes))
	for _, note := range f.notes {
		out = append(out, note.Clone())
	}
	return out, nil
}

func (f *fakeAPI) CreateNote(ctx context.Context, input types.NoteInput) (*types.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, createCall{input: input})
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	note := &types.Note{ID: strconv.Itoa(f.nextID), Title: input.Title, Body: input.Body, Tags: input.Tags}
	f.notes = append(f.notes, note)
	return note.Clone(), nil
}

func (f *fakeAPI) UpdateNote(ctx context.Context, id string, input types.NoteInput) (*types.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls = append(f.updateCalls, updateCall{id: id, input: input})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for _, note := range f.notes {
		if note.ID == id {
			note.Title = input.Title
			note.Body = input.Body
			note.Tags = input.Tags
			return note.Clone(), nil
		}
	}
	return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "not found"}
}

func (f *fakeAPI) DeleteNote(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.notes[:0]
	for _, note := range f.notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	f.notes = kept
	return nil
}

func sampleNotes() []*types.Note {
	return []*types.Note{
		{ID: "1", Title: "Shopping", Body: "Milk and eggs", Tags: []string{"home"}},
		{ID: "2", Title: "Work", Body: "Quarterly report", Tags: []string{"office"}},
		{ID: "3", Title: "Garden", Body: "Buy MILK for the cat", Tags: []string{"home", "outside"}},
	}
}
