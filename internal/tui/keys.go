package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause  key.Binding
	Step   key.Binding
	Reseed key.Binding
	Clear  key.Binding
	Panic  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Pause:  key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")),
		Step:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "step")),
		Reseed: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reseed")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Panic:  key.NewBinding(key.WithKeys("!"), key.WithHelp("!", "all notes off")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Reseed, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step, k.Reseed, k.Clear},
		{k.Panic, k.Help, k.Quit},
	}
}
