package types

import "time"

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasTag reports whether tag is one of the note's tags. Matching is exact.
func (n *Note) HasTag(tag string) bool {
	if n == nil {
		return false
	}
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with n.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	copy := *n
	if n.Tags != nil {
		copy.Tags = append([]string(nil), n.Tags...)
	}
	return &copy
}

// NoteInput is the body sent on create and update.
type NoteInput struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

// Draft is an in-progress edit held by an editor. An empty ID means the note
// has not been persisted yet.
type Draft struct {
	ID    string
	Title string
	Body  string
	Tags  []string
}

func (d Draft) IsNew() bool {
	return d.ID == ""
}

// DraftFromNote pre-fills a draft from a cached note; nil yields a blank draft.
func DraftFromNote(note *Note) Draft {
	if note == nil {
		return Draft{}
	}
	return Draft{
		ID:    note.ID,
		Title: note.Title,
		Body:  note.Body,
		Tags:  append([]string(nil), note.Tags...),
	}
}
