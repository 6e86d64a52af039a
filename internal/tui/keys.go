package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down           key.Binding
	RangeUp, RangeDown key.Binding
	Select, RangeSel   key.Binding
	SelectAll          key.Binding
	Complete, Remove   key.Binding
	CompleteSelected   key.Binding
	RemoveSelected     key.Binding
	CompleteAll        key.Binding
	Add, Rename        key.Binding
	Search             key.Binding
	Undo               key.Binding
	Help, Quit, Back   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:               key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:             key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		RangeUp:          key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("⇧↑", "extend up")),
		RangeDown:        key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("⇧↓", "extend down")),
		Select:           key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "select")),
		RangeSel:         key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "select range")),
		SelectAll:        key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		Complete:         key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter/c", "complete")),
		Remove:           key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		CompleteSelected: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "complete selected")),
		RemoveSelected:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "remove selected")),
		CompleteAll:      key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "complete all")),
		Add:              key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Rename:           key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Search:           key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Undo:             key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Help:             key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:             key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Back:             key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Select, k.Complete, k.Remove, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.RangeUp, k.RangeDown},
		{k.Select, k.RangeSel, k.SelectAll},
		{k.Complete, k.Remove, k.Rename, k.Add},
		{k.CompleteSelected, k.RemoveSelected, k.CompleteAll, k.Undo},
		{k.Search, k.Back, k.Help, k.Quit},
	}
}
