package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Edit      key.Binding
	New       key.Binding
	Search    key.Binding
	ClearTags key.Binding
	Refresh   key.Binding
	Copy      key.Binding
	Auth      key.Binding
	Quit      key.Binding

	Save      key.Binding
	Cancel    key.Binding
	Delete    key.Binding
	NextField key.Binding
	PrevField key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		New:       key.NewBinding(key.WithKeys("n", "+"), key.WithHelp("n", "new")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ClearTags: key.NewBinding(key.WithKeys("0"), key.WithHelp("1-9/0", "tags")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Auth:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "login/logout")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Delete:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab")),
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Open, k.Edit, k.New, k.Search, k.ClearTags, k.Refresh, k.Copy, k.Auth, k.Quit}
}

func (k keyMap) editorHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel, k.Delete, k.NextField}
}
