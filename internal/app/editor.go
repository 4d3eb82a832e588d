package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"notes/internal/types"
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldBody
	fieldTags
	fieldCount
)

// noteEditor owns the draft while it is being edited. The store never sees
// the draft until it is saved.
type noteEditor struct {
	id string
	// loaded holds the draft as given to Load. The inputs normalize what
	// they display (tabs become spaces), so fields whose shown value has
	// not changed since Load are returned as loaded.
	loaded      types.Draft
	loadedTitle string
	loadedBody  string

	title    textinput.Model
	body     textarea.Model
	tagInput textinput.Model
	tags     []string
	field    editorField
	err      string
}

func newNoteEditor() *noteEditor {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.CharLimit = 0

	body := textarea.New()
	body.Placeholder = "Write your note here..."
	body.ShowLineNumbers = false
	body.CharLimit = 0
	body.SetHeight(10)

	tagInput := textinput.New()
	tagInput.Placeholder = "+tag"
	tagInput.Prompt = ""
	tagInput.CharLimit = 64

	return &noteEditor{title: title, body: body, tagInput: tagInput}
}

// Load replaces the editor contents with draft and focuses the title.
func (e *noteEditor) Load(draft types.Draft) tea.Cmd {
	e.id = draft.ID
	e.loaded = draft
	e.title.SetValue(draft.Title)
	e.body.SetValue(draft.Body)
	e.loadedTitle = e.title.Value()
	e.loadedBody = e.body.Value()
	e.tagInput.SetValue("")
	e.tags = nil
	for _, tag := range draft.Tags {
		e.addTag(tag)
	}
	e.err = ""
	return e.focus(fieldTitle)
}

func (e *noteEditor) Draft() types.Draft {
	tags := append([]string(nil), e.tags...)
	if pending := e.tagInput.Value(); strings.TrimSpace(pending) != "" && !containsTag(tags, pending) {
		tags = append(tags, pending)
	}
	title := e.title.Value()
	if title == e.loadedTitle {
		title = e.loaded.Title
	}
	body := e.body.Value()
	if body == e.loadedBody {
		body = e.loaded.Body
	}
	return types.Draft{
		ID:    e.id,
		Title: title,
		Body:  body,
		Tags:  tags,
	}
}

func (e *noteEditor) IsNew() bool {
	return e.id == ""
}

func (e *noteEditor) SaveLabel() string {
	if e.IsNew() {
		return "Save"
	}
	return "Update"
}

func (e *noteEditor) SetError(msg string) {
	e.err = msg
}

func (e *noteEditor) SetSize(width, height int) {
	if width < 10 {
		width = 10
	}
	e.title.Width = width
	e.tagInput.Width = width / 2
	e.body.SetWidth(width)
	bodyHeight := height - 8
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	e.body.SetHeight(bodyHeight)
}

func (e *noteEditor) NextField() tea.Cmd {
	return e.focus((e.field + 1) % fieldCount)
}

func (e *noteEditor) PrevField() tea.Cmd {
	return e.focus((e.field + fieldCount - 1) % fieldCount)
}

func (e *noteEditor) focus(field editorField) tea.Cmd {
	e.field = field
	e.title.Blur()
	e.body.Blur()
	e.tagInput.Blur()
	switch field {
	case fieldBody:
		return e.body.Focus()
	case fieldTags:
		return e.tagInput.Focus()
	default:
		return e.title.Focus()
	}
}

// addTag keeps tag as typed and ignores blanks and duplicates.
func (e *noteEditor) addTag(tag string) bool {
	if strings.TrimSpace(tag) == "" || containsTag(e.tags, tag) {
		return false
	}
	e.tags = append(e.tags, tag)
	return true
}

func (e *noteEditor) removeLastTag() bool {
	if len(e.tags) == 0 {
		return false
	}
	e.tags = e.tags[:len(e.tags)-1]
	return true
}

// Update routes input to the focused field. Enter in the tag field commits
// the pending tag; backspace on an empty tag field removes the last one.
func (e *noteEditor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch e.field {
	case fieldTitle:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
			return e.focus(fieldBody)
		}
		e.title, cmd = e.title.Update(msg)
	case fieldBody:
		e.body, cmd = e.body.Update(msg)
	case fieldTags:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.Type {
			case tea.KeyEnter:
				if e.addTag(e.tagInput.Value()) {
					e.tagInput.SetValue("")
				}
				return nil
			case tea.KeyBackspace:
				if e.tagInput.Value() == "" {
					e.removeLastTag()
					return nil
				}
			}
		}
		e.tagInput, cmd = e.tagInput.Update(msg)
	}
	return cmd
}

func (e *noteEditor) View(keys keyMap) string {
	var b strings.Builder
	label := func(name string, field editorField) string {
		if e.field == field {
			return focusedLabelStyle.Render(name)
		}
		return labelStyle.Render(name)
	}
	b.WriteString(label("Title", fieldTitle))
	b.WriteString("\n")
	b.WriteString(e.title.View())
	b.WriteString("\n\n")
	b.WriteString(label("Body", fieldBody))
	b.WriteString("\n")
	b.WriteString(e.body.View())
	b.WriteString("\n\n")
	b.WriteString(label("Tags", fieldTags))
	b.WriteString("\n")
	chips := make([]string, 0, len(e.tags)+1)
	for _, tag := range e.tags {
		chips = append(chips, tagStyle.Render(tag))
	}
	chips = append(chips, e.tagInput.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, joinWithSpaces(chips)...))
	if e.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(e.err))
	}
	b.WriteString("\n\n")
	actions := []string{keys.Save.Help().Key + " " + e.SaveLabel()}
	if !e.IsNew() {
		actions = append(actions, keys.Delete.Help().Key+" Delete")
	}
	actions = append(actions, keys.Cancel.Help().Key+" Cancel")
	b.WriteString(helpStyle.Render(strings.Join(actions, "  ")))
	return b.String()
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func joinWithSpaces(parts []string) []string {
	if len(parts) < 2 {
		return parts
	}
	out := make([]string, 0, len(parts)*2-1)
	for i, part := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, part)
	}
	return out
}
