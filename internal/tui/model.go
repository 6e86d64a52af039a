// Package tui is the interactive terminal view over a todolist.Store.
// Every key press maps to one store operation; the model itself only tracks
// the cursor, the active input field and the status line.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/taskks/internal/model"
	"github.com/Makepad-fr/taskks/internal/todolist"
	"github.com/Makepad-fr/taskks/internal/ui"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeRename
	modeSearch
)

// Options tune rendering.
type Options struct {
	ProgressWidth int
}

// Model implements tea.Model.
type Model struct {
	store *todolist.Store
	opt   Options
	keys  keyMap
	help  help.Model

	mode     mode
	input    textinput.Model
	renameID string
	cursor   int // index into the filtered list

	status    string
	statusErr bool

	width, height int
}

func New(store *todolist.Store, opt Options) Model {
	if opt.ProgressWidth <= 0 {
		opt.ProgressWidth = 28
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	h := help.New()
	h.Styles.ShortKey = ui.Current().Help
	h.Styles.ShortDesc = ui.Current().Help

	return Model{
		store:  store,
		opt:    opt,
		keys:   defaultKeys(),
		help:   h,
		input:  ti,
		width:  80,
		height: 24,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
// The store persists after each change, so nothing is written on exit.
func Run(store *todolist.Store, opt Options) error {
	_, err := tea.NewProgram(New(store, opt), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	if m.mode != modeList {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.statusErr = "", false
	visible := m.store.Filtered()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		if m.store.Search() == "" {
			return m, tea.Quit
		}
		m.store.SetSearch("")
		m.clamp()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.move(-1, false)
	case key.Matches(msg, m.keys.Down):
		m.move(1, false)
	case key.Matches(msg, m.keys.RangeUp):
		m.move(-1, true)
	case key.Matches(msg, m.keys.RangeDown):
		m.move(1, true)

	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.RangeSel):
		if t, ok := m.current(visible); ok {
			m.store.ToggleSelected(t.ID, key.Matches(msg, m.keys.RangeSel))
		}
	case key.Matches(msg, m.keys.SelectAll):
		m.store.ToggleSelectAll()
	case key.Matches(msg, m.keys.Complete):
		if t, ok := m.current(visible); ok {
			m.store.ToggleCompleted(t.ID)
		}
	case key.Matches(msg, m.keys.Remove):
		if t, ok := m.current(visible); ok {
			m.store.Remove(t.ID)
			m.setStatus("removed (u to undo)", false)
			m.clamp()
		}
	case key.Matches(msg, m.keys.CompleteSelected):
		if n := m.store.ToggleCompleteSelected(); n == 0 {
			m.setStatus("nothing selected", true)
		} else {
			m.setStatus(fmt.Sprintf("toggled %d", n), false)
		}
	case key.Matches(msg, m.keys.RemoveSelected):
		if n := m.store.RemoveSelected(); n == 0 {
			m.setStatus("nothing selected", true)
		} else {
			m.setStatus(fmt.Sprintf("removed %d (u to undo)", n), false)
			m.clamp()
		}
	case key.Matches(msg, m.keys.CompleteAll):
		m.store.ToggleCompleteAll()
	case key.Matches(msg, m.keys.Undo):
		if m.store.Undo() {
			m.setStatus("undone", false)
		}

	case key.Matches(msg, m.keys.Add):
		return m.startInput(modeAdd, "", "New task title...")
	case key.Matches(msg, m.keys.Rename):
		if t, ok := m.current(visible); ok {
			m.renameID = t.ID
			return m.startInput(modeRename, t.Title, "Edit task title...")
		}
	case key.Matches(msg, m.keys.Search):
		return m.startInput(modeSearch, m.store.Search(), "Search...")
	}
	return m, nil
}

func (m Model) startInput(md mode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = placeholder
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) stopInput() Model {
	m.mode = modeList
	m.renameID = ""
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		value := m.input.Value()
		switch m.mode {
		case modeAdd:
			if _, ok := m.store.Add(value); !ok {
				m.setStatus("title cannot be empty", true)
				return m, nil
			}
			m.setStatus("added", false)
			m.cursor = len(m.store.Filtered()) - 1
			m.clamp()
		case modeRename:
			if !m.store.Rename(m.renameID, value) {
				m.setStatus("title cannot be empty", true)
				return m, nil
			}
			m.setStatus("renamed", false)
		}
		return m.stopInput(), nil
	case tea.KeyEsc:
		if m.mode == modeSearch {
			m.store.SetSearch("")
			m.clamp()
		}
		return m.stopInput(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		m.store.SetSearch(m.input.Value())
		m.clamp()
	}
	return m, cmd
}

// move shifts the cursor; with extend it range-selects from the anchor to the
// new position, as a shift+arrow would.
func (m *Model) move(delta int, extend bool) {
	visible := m.store.Filtered()
	if len(visible) == 0 {
		return
	}
	m.clamp()
	if extend && m.store.Anchor() == "" {
		m.store.ToggleSelected(visible[m.cursor].ID, false)
	}
	m.cursor = max(0, min(len(visible)-1, m.cursor+delta))
	if extend {
		m.store.ToggleSelected(visible[m.cursor].ID, true)
	}
}

func (m *Model) clamp() {
	n := len(m.store.Filtered())
	m.cursor = max(0, min(n-1, m.cursor))
}

func (m Model) current(visible []model.Todo) (model.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(visible) {
		return model.Todo{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m Model) View() string {
	t := ui.Current()
	done, pending := m.store.Stats()
	lines := []string{ui.Header(done, pending), ""}

	if m.store.Len() == 0 {
		lines = append(lines, t.Muted.Render("No Todos"))
	} else {
		lines = append(lines, m.toolbar()...)
		lines = append(lines, "")
		lines = append(lines, m.listLines()...)
	}

	if m.mode != modeList {
		title := map[mode]string{modeAdd: "Add task", modeRename: "Edit task", modeSearch: "Search"}[m.mode]
		box := lipgloss.NewStyle().Border(t.Border).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		lines = append(lines, box.Render(title+"\n"+m.input.View()))
	}
	if m.status != "" {
		style := t.Muted
		if m.statusErr {
			style = t.Error
		}
		lines = append(lines, style.Render(m.status))
	}
	lines = append(lines, m.help.View(m.keys))
	return ui.Panel(lines)
}

func (m Model) toolbar() []string {
	t := ui.Current()
	completeAll := "complete all"
	if m.store.AllCompleted() {
		completeAll = "uncomplete all"
	}
	actions := t.Help.Render("C toggle selected · D remove selected · T " + completeAll)
	if len(m.store.Selected()) == 0 {
		actions = t.Help.Render("T " + completeAll)
	}
	out := []string{
		t.Muted.Render(ui.ProgressBar(m.store.Progress(), m.opt.ProgressWidth)),
		fmt.Sprintf("%s Select all   %s", ui.SelectAllBox(m.store.AllChecked(), m.store.Indeterminate()), actions),
	}
	if q := m.store.Search(); q != "" && m.mode != modeSearch {
		out = append(out, t.Accent.Render("/ "+q))
	}
	return out
}

// listLines renders the filtered todos around the cursor, numbered by their
// position in the full list.
func (m Model) listLines() []string {
	t := ui.Current()
	visible := m.store.Filtered()
	if len(visible) == 0 {
		return []string{t.Muted.Render("no matches")}
	}
	pos := map[string]int{}
	for i, todo := range m.store.Todos() {
		pos[todo.ID] = i + 1
	}

	rows := max(3, m.height-12)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(len(visible), start+rows)

	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		prefix := "  "
		if i == m.cursor && m.mode == modeList {
			prefix = t.Cursor.Render(">") + " "
		}
		out = append(out, prefix+ui.TodoLine(pos[visible[i].ID], visible[i]))
	}
	if hidden := len(visible) - (end - start); hidden > 0 {
		out = append(out, t.Muted.Render(fmt.Sprintf("  … %d more", hidden)))
	}
	return out
}
