package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notes/internal/types"
)

func ids(notes []*types.Note) []string {
	out := make([]string, 0, len(notes))
	for _, note := range notes {
		out = append(out, note.ID)
	}
	return out
}

func TestFilterMatches(t *testing.T) {
	notes := sampleNotes()
	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "empty filter keeps all", filter: Filter{}, want: []string{"1", "2", "3"}},
		{name: "search title case-insensitive", filter: Filter{Search: "WORK"}, want: []string{"2"}},
		{name: "search body", filter: Filter{Search: "milk"}, want: []string{"1", "3"}},
		{name: "whitespace search is empty", filter: Filter{Search: "   "}, want: []string{"1", "2", "3"}},
		{name: "single tag", filter: Filter{Tags: []string{"home"}}, want: []string{"1", "3"}},
		{name: "every tag required", filter: Filter{Tags: []string{"home", "outside"}}, want: []string{"3"}},
		{name: "tags are exact", filter: Filter{Tags: []string{"Home"}}, want: []string{}},
		{name: "search and tags", filter: Filter{Search: "eggs", Tags: []string{"home"}}, want: []string{"1"}},
		{name: "no match", filter: Filter{Search: "zebra"}, want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(FilterNotes(notes, tc.filter)))
		})
	}
}

func TestFilteredNotesAreSubsetOfNotes(t *testing.T) {
	notes := sampleNotes()
	filter := Filter{Search: "o", Tags: []string{"home"}}
	filtered := FilterNotes(notes, filter)
	for _, note := range notes {
		want := filter.Matches(note)
		got := false
		for _, f := range filtered {
			if f == note {
				got = true
			}
		}
		assert.Equal(t, want, got, "note %s", note.ID)
	}
}

func TestWithTagsDropsDuplicates(t *testing.T) {
	var f Filter
	WithTags("a", "b", "a")(&f)
	assert.Equal(t, []string{"a", "b"}, f.Tags)
	WithSearch("x")(&f)
	assert.Equal(t, "x", f.Search)
	assert.False(t, f.IsZero())
}

func TestCollectTags(t *testing.T) {
	assert.Equal(t, []string{"home", "office", "outside"}, CollectTags(sampleNotes()))
	assert.Empty(t, CollectTags(nil))
}
