package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the contact screen responds to.
type keyMap struct {
	Submit key.Binding
	Next   key.Binding
	Cancel key.Binding
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Delete key.Binding
	Quit   key.Binding
	Force  key.Binding
}

// bindingSet adapts a slice of bindings to help.KeyMap.
type bindingSet []key.Binding

// ShortHelp returns the bindings for the help bar.
func (s bindingSet) ShortHelp() []key.Binding { return s }

// FullHelp returns the bindings as a single column.
func (s bindingSet) FullHelp() [][]key.Binding { return [][]key.Binding{s} }

// DefaultKeyMap returns the key bindings for the contact screen.
func DefaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel edit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "u"),
			key.WithHelp("enter/u", "update"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Force: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// formHelp returns the bindings shown while a form field has focus.
func (k keyMap) formHelp(editing bool) bindingSet {
	if editing {
		return bindingSet{k.Submit, k.Next, k.Cancel, k.Force}
	}
	return bindingSet{k.Submit, k.Next, k.Force}
}

// listHelp returns the bindings shown while the contact list has focus.
func (k keyMap) listHelp() bindingSet {
	return bindingSet{k.Up, k.Down, k.Edit, k.Delete, k.Next, k.Quit}
}
