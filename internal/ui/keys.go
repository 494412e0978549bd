package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the normal-mode bindings shown in the footer and the help pager
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Remove   key.Binding
	Choose   key.Binding
	Path     key.Binding
	Paste    key.Binding
	Clear    key.Binding
	Upload   key.Binding
	Log      key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Choose: key.NewBinding(
			key.WithKeys("o", "enter", " "),
			key.WithHelp("o/enter", "choose"),
		),
		Path: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add path"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p", "ctrl+v"),
			key.WithHelp("p", "paste"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
		Log: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log"),
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

// setSelectionState disables the bindings that need files or an idle uploader
func (k *keyMap) setSelectionState(count int, uploading bool) {
	has := count > 0
	k.MoveUp.SetEnabled(has)
	k.MoveDown.SetEnabled(has)
	k.Remove.SetEnabled(has)
	k.Clear.SetEnabled(has && !uploading)
	k.Upload.SetEnabled(has && !uploading)
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Paste, k.Remove, k.Upload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Choose, k.Path, k.Paste, k.Remove, k.Clear},
		{k.Upload, k.Log, k.Help, k.Quit},
	}
}
