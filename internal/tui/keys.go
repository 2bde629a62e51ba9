package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	Todo       key.Binding
	InProgress key.Binding
	Done       key.Binding
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:       key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "left")),
		Right:      key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "right")),
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Todo:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "todo")),
		InProgress: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "in progress")),
		Done:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.InProgress, k.Done, k.Add, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Todo, k.InProgress, k.Done},
		{k.Add, k.Edit, k.Delete},
		{k.Reload, k.Help, k.Quit},
	}
}
