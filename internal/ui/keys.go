package ui

import "github.com/charmbracelet/bubbles/key"

// GState represents the state for "gg" navigation.
type GState int

const (
	GStateIdle GState = iota
	GStateFirstG
)

// KeyMap defines all keybindings for nav mode.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	NextColumn   key.Binding
	PrevColumn   key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	ToggleDetail key.Binding
	SortAsc      key.Binding
	SortDesc     key.Binding
	ToggleSort   key.Binding
	Filter       key.Binding
	ResetFilters key.Binding
	MoveLeft     key.Binding
	MoveRight    key.Binding
	Edit         key.Binding
	Check        key.Binding
	Copy         key.Binding
	Reload       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		NextColumn: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab/l", "next col"),
		),
		PrevColumn: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("shift+tab/h", "prev col"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "½ page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "½ page up"),
		),
		ToggleDetail: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "expand/collapse"),
		),
		SortAsc: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort asc"),
		),
		SortDesc: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "sort desc"),
		),
		ToggleSort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "toggle sort"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter col"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "reset filters"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "move col left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "move col right"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit detail"),
		),
		Check: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle checkbox"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy cell"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.NextColumn, k.ToggleDetail, k.SortAsc, k.Filter, k.Edit, k.Help, k.Quit}
}

// FullHelp returns the bindings shown on the help screen.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp},
		{k.NextColumn, k.PrevColumn, k.MoveLeft, k.MoveRight},
		{k.SortAsc, k.SortDesc, k.ToggleSort, k.Filter, k.ResetFilters},
		{k.ToggleDetail, k.Edit, k.Check, k.Copy},
		{k.Reload, k.Help, k.Quit},
	}
}

// FormKeyMap defines keybindings for the detail form.
type FormKeyMap struct {
	NextField  key.Binding
	PrevField  key.Binding
	NextLine   key.Binding
	PrevLine   key.Binding
	AddLine    key.Binding
	DeleteLine key.Binding
	Save       key.Binding
	Cancel     key.Binding
}

// DefaultFormKeyMap returns the default form keybindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		NextLine: key.NewBinding(
			key.WithKeys("ctrl+n", "pgdown"),
			key.WithHelp("ctrl+n", "next line"),
		),
		PrevLine: key.NewBinding(
			key.WithKeys("ctrl+p", "pgup"),
			key.WithHelp("ctrl+p", "prev line"),
		),
		AddLine: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "add line"),
		),
		DeleteLine: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "delete line"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns the bindings shown in the form footer.
func (k FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.NextLine, k.AddLine, k.DeleteLine, k.Save, k.Cancel}
}

// FullHelp returns the form bindings grouped for the help screen.
func (k FormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField},
		{k.NextLine, k.PrevLine, k.AddLine, k.DeleteLine},
		{k.Save, k.Cancel},
	}
}

// FilterKeyMap defines keybindings for the filter menu.
type FilterKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Close  key.Binding
}

// DefaultFilterKeyMap returns the default filter menu keybindings.
func DefaultFilterKeyMap() FilterKeyMap {
	return FilterKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " ", "x"),
			key.WithHelp("space", "toggle"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "f", "q"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ShortHelp returns the bindings shown under the filter menu.
func (k FilterKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Toggle, k.Close}
}

// FullHelp returns the filter bindings grouped for the help screen.
func (k FilterKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Toggle, k.Close}}
}
