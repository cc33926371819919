package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Focus  key.Binding
	Add    key.Binding
	Remove key.Binding
	Clear  key.Binding
	Start  key.Binding
	Pause  key.Binding
	Reset  key.Binding
	Search key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Add:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add CDS")),
		Remove: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Clear:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear plasmid")),
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Pause:  key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pause/resume")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// bindings returns the footer help for the current mode.
func (k keyMap) bindings(searching, running bool) []key.Binding {
	if searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
			k.Cancel,
		}
	}
	if running {
		return []key.Binding{k.Pause, k.Reset, k.Add, k.Remove, k.Quit}
	}
	return []key.Binding{k.Up, k.Down, k.Focus, k.Add, k.Remove, k.Clear, k.Search, k.Start, k.Reset, k.Quit}
}
