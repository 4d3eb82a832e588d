package app

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"notes/internal/client"
	"notes/internal/types"
)

type fakeNotesAPI struct {
	mu        sync.Mutex
	user      *types.User
	notes     []*types.Note
	created   []types.NoteInput
	deleted   []string
	logouts   int
	createErr error
	nextID    int
}

func newFakeNotesAPI() *fakeNotesAPI {
	updated := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	return &fakeNotesAPI{
		user: &types.User{ID: "u1", Name: "Ada", Email: "ada@example.com"},
		notes: []*types.Note{
			{ID: "1", Title: "Shopping", Body: "Milk and eggs", Tags: []string{"home"}, UpdatedAt: updated},
			{ID: "2", Title: "Work", Body: "Quarterly report", Tags: []string{"office"}, UpdatedAt: updated},
			{ID: "3", Title: "", Body: "no title here", UpdatedAt: updated},
		},
		nextID: 10,
	}
}

func (f *fakeNotesAPI) Me(context.Context) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user == nil {
		return nil, &client.APIError{StatusCode: http.StatusUnauthorized, Message: "unauthorized"}
	}
	user := *f.user
	return &user, nil
}

func (f *fakeNotesAPI) LoginURL() string { return "http://notes.test/api/auth/login" }

func (f *fakeNotesAPI) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.user = nil
	return nil
}

func (f *fakeNotesAPI) ListNotes(context.Context) ([]*types.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.Note, 0, len(f.notes))
	for _, note := range f.notes {
		out = append(out, note.Clone())
	}
	return out, nil
}

func (f *fakeNotesAPI) CreateNote(_ context.Context, input types.NoteInput) (*types.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, input)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	note := &types.Note{ID: strconv.Itoa(f.nextID), Title: input.Title, Body: input.Body, Tags: input.Tags}
	f.notes = append(f.notes, note)
	return note.Clone(), nil
}

func (f *fakeNotesAPI) UpdateNote(_ context.Context, id string, input types.NoteInput) (*types.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, note := range f.notes {
		if note.ID == id {
			note.Title, note.Body, note.Tags = input.Title, input.Body, input.Tags
			return note.Clone(), nil
		}
	}
	return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "not found"}
}

func (f *fakeNotesAPI) DeleteNote(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	kept := f.notes[:0]
	for _, note := range f.notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	f.notes = kept
	return nil
}
