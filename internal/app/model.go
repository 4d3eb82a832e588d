package app

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"notes/internal/store"
	"notes/internal/types"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	sidebarWidth  = 28
	minMainWidth  = 30
)

type focusArea int

const (
	focusList focusArea = iota
	focusSearch
	focusEditor
)

type Options struct {
	Markdown bool
	Dark     bool
}

// Model is the terminal front-end. It renders store snapshots and turns key
// presses into store operations; every network call runs in a tea.Cmd.
type Model struct {
	ctx         context.Context
	store       *store.Store
	keys        keyMap
	state       store.State
	updates     chan store.State
	unsubscribe func()

	search  textinput.Model
	editor  *noteEditor
	spinner spinner.Model
	focus   focusArea
	cursor  int

	width    int
	height   int
	status   string
	markdown bool
	dark     bool
}

func NewModel(ctx context.Context, s *store.Store, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "
	search.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	updates := make(chan store.State, 1)
	m := &Model{
		ctx:      ctx,
		store:    s,
		keys:     defaultKeyMap(),
		state:    s.Snapshot(),
		updates:  updates,
		search:   search,
		spinner:  sp,
		width:    defaultWidth,
		height:   defaultHeight,
		markdown: opts.Markdown,
		dark:     opts.Dark,
	}
	m.unsubscribe = s.Subscribe(forwardLatest(updates))
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Run drives the model until the user quits or ctx is cancelled.
func Run(ctx context.Context, s *store.Store, opts Options) error {
	m := NewModel(ctx, s, opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Close detaches the model from the store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		waitForStateCmd(m.updates),
		initializeCmd(m.ctx, m.store),
		m.spinner.Tick,
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case stateMsg:
		cmd := m.applyState(msg.state)
		return m, tea.Batch(cmd, waitForStateCmd(m.updates))
	case opDoneMsg:
		return m, m.handleOpDone(msg)
	case loginMsg:
		switch {
		case msg.err != nil:
			m.status = "login failed: " + msg.err.Error()
		case msg.url != "":
			m.status = "Sign in at " + msg.url
		}
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied " + msg.what
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	sideWidth, mainWidth := m.paneWidths()
	height := m.height - 1
	if height < 5 {
		height = 5
	}
	if sideWidth == 0 {
		return m.mainView(mainWidth, height)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.sidebarView(sideWidth, height),
		m.mainView(mainWidth, height),
	)
}

func (m *Model) paneWidths() (int, int) {
	if m.width < sidebarWidth+minMainWidth {
		return 0, m.width - 1
	}
	return sidebarWidth, m.width - sidebarWidth - 3
}

func (m *Model) resize(width, height int) {
	if width > 0 {
		m.width = width
	}
	if height > 0 {
		m.height = height
	}
	sideWidth, mainWidth := m.paneWidths()
	if sideWidth > 0 {
		m.search.Width = sideWidth - 3
	} else {
		m.search.Width = mainWidth - 3
	}
	if m.editor != nil {
		m.editor.SetSize(mainWidth-1, m.height-6)
	}
}

// applyState adopts a newer snapshot, opening or closing the editor when the
// store's edit mode changes.
func (m *Model) applyState(state store.State) tea.Cmd {
	if state.Version < m.state.Version {
		return nil
	}
	prev := m.state
	m.state = state
	m.clampCursor()

	switch {
	case state.Editing && (!prev.Editing || m.editor == nil || prev.SelectedNoteID != state.SelectedNoteID):
		return m.openEditor()
	case !state.Editing && m.editor != nil:
		m.editor = nil
		if m.focus == focusEditor {
			m.focus = focusList
		}
	}
	return nil
}

func (m *Model) openEditor() tea.Cmd {
	m.editor = newNoteEditor()
	_, mainWidth := m.paneWidths()
	m.editor.SetSize(mainWidth-1, m.height-6)
	m.focus = focusEditor
	m.search.Blur()
	draft := types.Draft{}
	if note := m.state.SelectedNote(); note != nil {
		draft = types.DraftFromNote(note)
	}
	return m.editor.Load(draft)
}

func (m *Model) clampCursor() {
	n := len(m.state.FilteredNotes)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) handleOpDone(msg opDoneMsg) tea.Cmd {
	if msg.err == nil {
		switch msg.op {
		case opSave:
			m.status = "saved"
		case opDelete:
			m.status = "deleted"
		case opLogout:
			m.status = "signed out"
		}
		return nil
	}
	var verr *store.ValidationError
	if errors.As(msg.err, &verr) {
		if m.editor != nil {
			m.editor.SetError(verr.Message)
		} else {
			m.status = verr.Message
		}
		return nil
	}
	// Request failures are already visible through State.Error.
	m.status = ""
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	switch m.focus {
	case focusEditor:
		return m.handleEditorKey(msg)
	case focusSearch:
		return m.handleSearchKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	if m.editor == nil {
		m.focus = focusList
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Save):
		m.editor.SetError("")
		return saveNoteCmd(m.ctx, m.store, m.editor.Draft())
	case key.Matches(msg, m.keys.Cancel):
		m.store.CancelEdit()
		return nil
	case key.Matches(msg, m.keys.Delete):
		if m.editor.IsNew() {
			return nil
		}
		return deleteNoteCmd(m.ctx, m.store, m.editor.id)
	case key.Matches(msg, m.keys.NextField):
		return m.editor.NextField()
	case key.Matches(msg, m.keys.PrevField):
		return m.editor.PrevField()
	}
	return m.editor.Update(msg)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.search.Blur()
		m.focus = focusList
		return nil
	}
	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before {
		m.store.SetFilter(store.WithSearch(value))
		m.cursor = 0
	}
	return cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
		idx, _ := strconv.Atoi(string(msg.Runes))
		tags := m.state.Tags()
		if idx-1 < len(tags) {
			m.store.ToggleTag(tags[idx-1])
			m.cursor = 0
		}
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.FilteredNotes)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if note := m.cursorNote(); note != nil {
			m.store.SelectNote(note.ID)
		}
	case key.Matches(msg, m.keys.Edit):
		if note := m.cursorNote(); note != nil {
			m.store.EditNote(note.ID)
		}
	case key.Matches(msg, m.keys.New):
		if m.state.SignedIn() {
			m.store.AddNote()
		} else {
			m.status = "sign in to add notes"
		}
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		return m.search.Focus()
	case key.Matches(msg, m.keys.ClearTags):
		if len(m.state.Filter.Tags) > 0 {
			m.store.SetFilter(store.WithTags())
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Refresh):
		m.status = ""
		if m.state.SignedIn() {
			return refreshCmd(m.ctx, m.store)
		}
		return initializeCmd(m.ctx, m.store)
	case key.Matches(msg, m.keys.Copy):
		note := m.state.SelectedNote()
		if note == nil {
			note = m.cursorNote()
		}
		if note == nil || strings.TrimSpace(note.Body) == "" {
			m.status = "nothing to copy"
			return nil
		}
		return copyCmd("note", note.Body)
	case key.Matches(msg, m.keys.Auth):
		if m.state.SignedIn() {
			return logoutCmd(m.ctx, m.store)
		}
		return loginCmd(m.ctx, m.store)
	}
	return nil
}

func (m *Model) cursorNote() *types.Note {
	if m.cursor < 0 || m.cursor >= len(m.state.FilteredNotes) {
		return nil
	}
	return m.state.FilteredNotes[m.cursor]
}
