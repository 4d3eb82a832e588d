package store

import (
	"strings"

	"notes/internal/types"
)

type Filter struct {
	Search string
	Tags   []string
}

// FilterOption changes one part of the filter. Options that are not passed
// keep their current value.
type FilterOption func(*Filter)

func WithSearch(search string) FilterOption {
	return func(f *Filter) {
		f.Search = search
	}
}

// WithTags replaces the required tag set. Duplicates are dropped.
func WithTags(tags ...string) FilterOption {
	return func(f *Filter) {
		f.Tags = uniqueTags(tags)
	}
}

func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" && len(f.Tags) == 0
}

func (f Filter) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Matches reports whether note passes the filter: the search text appears in
// the title or body ignoring case, and every filter tag is on the note.
func (f Filter) Matches(note *types.Note) bool {
	if note == nil {
		return false
	}
	if strings.TrimSpace(f.Search) != "" {
		query := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(note.Title), query) &&
			!strings.Contains(strings.ToLower(note.Body), query) {
			return false
		}
	}
	for _, tag := range f.Tags {
		if !note.HasTag(tag) {
			return false
		}
	}
	return true
}

func (f Filter) clone() Filter {
	return Filter{Search: f.Search, Tags: append([]string(nil), f.Tags...)}
}

// FilterNotes keeps list order.
func FilterNotes(notes []*types.Note, filter Filter) []*types.Note {
	out := make([]*types.Note, 0, len(notes))
	for _, note := range notes {
		if filter.Matches(note) {
			out = append(out, note)
		}
	}
	return out
}

// CollectTags returns the distinct tags across notes in first-seen order.
func CollectTags(notes []*types.Note) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, note := range notes {
		if note == nil {
			continue
		}
		for _, tag := range note.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

func uniqueTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := map[string]struct{}{}
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
