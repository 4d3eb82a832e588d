package app

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"notes/internal/types"
)

func typeText(e *noteEditor, text string) {
	for _, r := range text {
		e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestEditorLoadAndDraft(t *testing.T) {
	e := newNoteEditor()
	e.Load(types.Draft{ID: "7", Title: "Plan", Body: "steps", Tags: []string{"work", " ", "work", "q3"}})

	draft := e.Draft()
	if draft.ID != "7" || draft.Title != "Plan" || draft.Body != "steps" {
		t.Fatalf("unexpected draft %#v", draft)
	}
	if !reflect.DeepEqual(draft.Tags, []string{"work", "q3"}) {
		t.Fatalf("expected blank and duplicate tags dropped, got %#v", draft.Tags)
	}
	if e.IsNew() || e.SaveLabel() != "Update" {
		t.Fatalf("expected persisted draft to show Update, got %q", e.SaveLabel())
	}
}

func TestEditorNewDraftLabels(t *testing.T) {
	e := newNoteEditor()
	e.Load(types.Draft{})
	if !e.IsNew() || e.SaveLabel() != "Save" {
		t.Fatalf("expected new draft to show Save, got %q", e.SaveLabel())
	}
	view := e.View(defaultKeyMap())
	if strings.Contains(view, "Delete") {
		t.Fatalf("expected no delete action for a new draft")
	}
}

func TestEditorTagInput(t *testing.T) {
	e := newNoteEditor()
	e.Load(types.Draft{})
	e.focus(fieldTags)

	typeText(e, "home")
	e.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(e, "home")
	e.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !reflect.DeepEqual(e.tags, []string{"home"}) {
		t.Fatalf("expected duplicate tag to be ignored, got %#v", e.tags)
	}
	if e.tagInput.Value() != "home" {
		t.Fatalf("expected rejected tag to stay in the input, got %q", e.tagInput.Value())
	}

	e.tagInput.SetValue("")
	e.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if len(e.tags) != 0 {
		t.Fatalf("expected backspace on empty input to remove last tag, got %#v", e.tags)
	}

	typeText(e, "pending")
	if got := e.Draft().Tags; !reflect.DeepEqual(got, []string{"pending"}) {
		t.Fatalf("expected pending tag in draft, got %#v", got)
	}
}

func TestEditorFieldCycling(t *testing.T) {
	e := newNoteEditor()
	e.Load(types.Draft{})
	if e.field != fieldTitle {
		t.Fatalf("expected title focus after load")
	}
	e.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if e.field != fieldBody {
		t.Fatalf("expected enter in title to move to body, got %v", e.field)
	}
	e.NextField()
	e.NextField()
	if e.field != fieldTitle {
		t.Fatalf("expected focus to wrap to title, got %v", e.field)
	}
	e.PrevField()
	if e.field != fieldTags {
		t.Fatalf("expected shift+tab to wrap to tags, got %v", e.field)
	}
}

func TestEditorShowsError(t *testing.T) {
	e := newNoteEditor()
	e.Load(types.Draft{})
	e.SetError("Title is required")
	if !strings.Contains(e.View(defaultKeyMap()), "Title is required") {
		t.Fatalf("expected error in editor view")
	}
	e.Load(types.Draft{})
	if e.err != "" {
		t.Fatalf("expected load to clear error")
	}
}

func TestEditorReturnsUntouchedFieldsAsLoaded(t *testing.T) {
	cases := []struct {
		name  string
		draft types.Draft
	}{
		{name: "long title", draft: types.Draft{ID: "1", Title: strings.Repeat("t", 250), Body: "b"}},
		{name: "tabs in body", draft: types.Draft{ID: "1", Title: "x", Body: "```\nfunc main() {\n\tfmt.Println(1)\n}\n```"}},
		{name: "tab in title", draft: types.Draft{ID: "1", Title: "a\tb", Body: "b"}},
		{name: "trailing whitespace", draft: types.Draft{ID: "1", Title: "title  ", Body: "line  \n\n"}},
		{name: "multi-line body", draft: types.Draft{ID: "1", Title: "x", Body: strings.Repeat("line\n", 150)}},
		{name: "tags as typed", draft: types.Draft{ID: "1", Title: "x", Tags: []string{" work", "home "}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newNoteEditor()
			e.Load(tc.draft)
			got := e.Draft()
			if got.Title != tc.draft.Title {
				t.Fatalf("title changed: %q -> %q", tc.draft.Title, got.Title)
			}
			if got.Body != tc.draft.Body {
				t.Fatalf("body changed: %q -> %q", tc.draft.Body, got.Body)
			}
			if len(tc.draft.Tags) > 0 && !reflect.DeepEqual(got.Tags, tc.draft.Tags) {
				t.Fatalf("tags changed: %#v -> %#v", tc.draft.Tags, got.Tags)
			}
		})
	}
}

func TestEditorEditedBodyIsReturned(t *testing.T) {
	e := newNoteEditor()
	e.Load(types.Draft{ID: "1", Title: "x", Body: "a\tb"})
	e.focus(fieldBody)
	typeText(e, "c")
	if got := e.Draft().Body; got == "a\tb" || !strings.Contains(got, "c") {
		t.Fatalf("expected edited body, got %q", got)
	}
	if got := e.Draft().Title; got != "x" {
		t.Fatalf("expected untouched title, got %q", got)
	}
}
