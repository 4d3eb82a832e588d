package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"notes/internal/store"
	"notes/internal/types"
)

const (
	untitledLabel  = "<Untitled>"
	emptyListText  = "No notes found."
	emptyStoreText = "No notes yet. Press n to add your first note."
	loadingText    = "Loading..."
	dateLayout     = "2006-01-02"
)

// truncate cuts plain text to width cells.
func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

func noteTitle(note *types.Note) string {
	if note == nil || strings.TrimSpace(note.Title) == "" {
		return untitledLabel
	}
	return note.Title
}

func renderAuthBar(user *types.User, keys keyMap, width int) string {
	authKey := keys.Auth.Help().Key
	if user == nil {
		return truncate("Signed out  ["+authKey+"] Login", width)
	}
	name := user.DisplayName()
	right := "[" + authKey + "] Logout"
	name = truncate(name, width-runewidth.StringWidth(right)-2)
	return userStyle.Render(name) + "  " + helpStyle.Render(right)
}

// renderTagBar lists the known tags numbered for toggling; active tags are
// highlighted.
func renderTagBar(tags []string, filter store.Filter, width int) string {
	if len(tags) == 0 {
		return metaStyle.Render("no tags")
	}
	var lines []string
	line := ""
	lineWidth := 0
	for i, tag := range tags {
		label := tag
		if i < 9 {
			label = fmt.Sprintf("%d:%s", i+1, tag)
		}
		label = truncate(label, width)
		cell := runewidth.StringWidth(label)
		rendered := tagStyle.Render(label)
		if filter.HasTag(tag) {
			rendered = activeTagStyle.Render(label)
		}
		if lineWidth > 0 && lineWidth+1+cell > width {
			lines = append(lines, line)
			line, lineWidth = "", 0
		}
		if lineWidth > 0 {
			line += " "
			lineWidth++
		}
		line += rendered
		lineWidth += cell
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderNoteRow(note *types.Note, width int, cursor, selected bool) string {
	prefix := "  "
	if cursor {
		prefix = "> "
	}
	title := truncate(noteTitle(note), width-2)
	switch {
	case cursor:
		title = cursorStyle.Render(title)
	case selected:
		title = selectedStyle.Render(title)
	}
	row := prefix + title

	var meta []string
	if len(note.Tags) > 0 {
		meta = append(meta, "#"+strings.Join(note.Tags, " #"))
	}
	if !note.UpdatedAt.IsZero() {
		meta = append(meta, note.UpdatedAt.Local().Format(dateLayout))
	}
	if len(meta) > 0 {
		row += "\n  " + metaStyle.Render(truncate(strings.Join(meta, "  "), width-2))
	}
	return row
}

func renderNoteList(notes []*types.Note, selectedID string, cursor, width, height int) string {
	if len(notes) == 0 {
		return metaStyle.Render(emptyListText)
	}
	// Two lines per row at most; keep the cursor in view.
	visible := height / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(notes) {
		end = len(notes)
	}
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		note := notes[i]
		rows = append(rows, renderNoteRow(note, width, i == cursor, note.ID == selectedID))
	}
	return strings.Join(rows, "\n")
}

func renderHelp(bindings []key.Binding, width int) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(truncate(strings.Join(parts, " · "), width))
}

func (m *Model) sidebarView(width, height int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Notes"))
	b.WriteString(helpStyle.Render(fmt.Sprintf("  %d/%d", len(m.state.FilteredNotes), len(m.state.Notes))))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")
	b.WriteString(renderTagBar(m.state.Tags(), m.state.Filter, width))
	b.WriteString("\n\n")
	if m.state.SignedIn() {
		b.WriteString(userStyle.Render(truncate(m.state.AuthUser.DisplayName(), width)))
		if m.state.AuthUser.Email != "" && m.state.AuthUser.Email != m.state.AuthUser.DisplayName() {
			b.WriteString("\n")
			b.WriteString(metaStyle.Render(truncate(m.state.AuthUser.Email, width)))
		}
	} else {
		b.WriteString(metaStyle.Render("not signed in"))
	}
	return sidebarStyle.Width(width).Height(height).Render(b.String())
}

func (m *Model) mainView(width, height int) string {
	var sections []string
	sections = append(sections, renderAuthBar(m.state.AuthUser, m.keys, width))
	if m.state.Loading {
		sections = append(sections, m.spinner.View()+" "+loadingText)
	}
	if m.state.Error != "" {
		sections = append(sections, errorStyle.Render(truncate(m.state.Error, width)))
	}

	used := lipgloss.Height(strings.Join(sections, "\n")) + 3
	body := height - used
	if body < 3 {
		body = 3
	}

	switch {
	case m.state.Editing && m.editor != nil:
		sections = append(sections, "", m.editor.View(m.keys))
	case len(m.state.Notes) == 0 && !m.state.Loading:
		sections = append(sections, "", metaStyle.Render(emptyStoreText))
	default:
		listHeight := body
		preview := ""
		if selected := m.state.SelectedNote(); selected != nil {
			listHeight = body / 2
			preview = m.previewView(selected, width, body-listHeight-1)
		}
		sections = append(sections, "", renderNoteList(m.state.FilteredNotes, m.state.SelectedNoteID, m.cursor, width, listHeight))
		if preview != "" {
			sections = append(sections, "", preview)
		}
	}

	help := m.keys.listHelp()
	if m.state.Editing {
		help = m.keys.editorHelp()
	}
	footer := renderHelp(help, width)
	if m.status != "" {
		footer = statusStyle.Render(truncate(m.status, width)) + "\n" + footer
	}
	content := strings.Join(sections, "\n")
	gap := height - lipgloss.Height(content) - lipgloss.Height(footer)
	if gap > 0 {
		content += strings.Repeat("\n", gap)
	}
	return mainStyle.Width(width).Render(content + "\n" + footer)
}

func (m *Model) previewView(note *types.Note, width, height int) string {
	if height < 2 {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(truncate(noteTitle(note), width)))
	b.WriteString("\n")
	body := note.Body
	if m.markdown {
		body = RenderMarkdown(body, width, m.dark)
	}
	b.WriteString(clipLines(body, width, height-1))
	return b.String()
}
