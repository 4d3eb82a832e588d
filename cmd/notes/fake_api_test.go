package main

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"notes/internal/client"
	"notes/internal/types"
)

type fakeAPI struct {
	mu      sync.Mutex
	user    *types.User
	notes   []*types.Note
	created []types.NoteInput
	updated map[string]types.NoteInput
	deleted []string
	logouts int
	nextID  int
}

func newFakeAPI() *fakeAPI {
	updated := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	return &fakeAPI{
		user: &types.User{ID: "u1", Name: "Ada", Email: "ada@example.com"},
		notes: []*types.Note{
			{ID: "1", Title: "Shopping", Body: "Milk and eggs", Tags: []string{"home"}, UpdatedAt: updated},
			{ID: "2", Title: "Work", Body: "Quarterly report", Tags: []string{"office", "q3"}, UpdatedAt: updated},
		},
		updated: map[string]types.NoteInput{},
		nextID:  10,
	}
}

func (f *fakeAPI) Me(context.Context) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user == nil {
		return nil, &client.APIError{StatusCode: http.StatusUnauthorized, Message: "unauthorized"}
	}
	user := *f.user
	return &user, nil
}

func (f *fakeAPI) LoginURL() string { return "http://notes.test/api/auth/login" }

func (f *fakeAPI) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.user = nil
	return nil
}

func (f *fakeAPI) ListNotes(context.Context) ([]*types.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.Note, 0, len(f.notes))
	for _, note := range f.notes {
		out = append(out, note.Clone())
	}
	return out, nil
}

func (f *fakeAPI) CreateNote(_ context.Context, input types.NoteInput) (*types.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, input)
	f.nextID++
	note := &types.Note{ID: strconv.Itoa(f.nextID), Title: input.Title, Body: input.Body, Tags: input.Tags}
	f.notes = append(f.notes, note)
	return note.Clone(), nil
}

func (f *fakeAPI) UpdateNote(_ context.Context, id string, input types.NoteInput) (*types.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated[id] = input
	for _, note := range f.notes {
		if note.ID == id {
			note.Title, note.Body, note.Tags = input.Title, input.Body, input.Tags
			return note.Clone(), nil
		}
	}
	return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "not found"}
}

func (f *fakeAPI) DeleteNote(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}
