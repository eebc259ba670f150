package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	QuitPlain key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Retry     key.Binding
	RetryAny  key.Binding
	Copy      key.Binding
	Delete    key.Binding
	ClearAll  key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("ctrl+c")),
	QuitPlain: key.NewBinding(key.WithKeys("q")),
	NextFocus: key.NewBinding(key.WithKeys("tab")),
	PrevFocus: key.NewBinding(key.WithKeys("shift+tab")),
	Submit:    key.NewBinding(key.WithKeys("ctrl+s")),
	Cancel:    key.NewBinding(key.WithKeys("esc")),
	Left:      key.NewBinding(key.WithKeys("left", "h")),
	Right:     key.NewBinding(key.WithKeys("right", "l")),
	Up:        key.NewBinding(key.WithKeys("up", "k")),
	Down:      key.NewBinding(key.WithKeys("down", "j")),
	Enter:     key.NewBinding(key.WithKeys("enter")),
	Retry:     key.NewBinding(key.WithKeys("r")),
	RetryAny:  key.NewBinding(key.WithKeys("ctrl+r")),
	Copy:      key.NewBinding(key.WithKeys("c")),
	Delete:    key.NewBinding(key.WithKeys("d")),
	ClearAll:  key.NewBinding(key.WithKeys("D")),
}
