package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"mtodo/internal/infrastructure/config"
)

// keyMap defines the list-mode keybindings
type keyMap struct {
	Up             key.Binding
	Down           key.Binding
	Add            key.Binding
	Edit           key.Binding
	Toggle         key.Binding
	Delete         key.Binding
	ClearCompleted key.Binding
	Search         key.Binding
	Category       key.Binding
	Priority       key.Binding
	Backup         key.Binding
	Dismiss        key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Search, k.Category, k.Priority, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Add, k.Edit, k.Toggle, k.Delete},
		{k.Search, k.Category, k.Priority, k.Dismiss},
		{k.ClearCompleted, k.Backup, k.Help, k.Quit},
	}
}

// formKeyMap defines the add/edit form keybindings
type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Urgent key.Binding
	Submit key.Binding
	Cancel key.Binding
}

var keys = defaultKeyMap(config.Default().Keybindings)

var formKeys = formKeyMap{
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Urgent: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "toggle urgent")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// InitKeybindings initializes keybindings from config
func InitKeybindings(cfg *config.Config) {
	keys = defaultKeyMap(cfg.Keybindings)
}

func defaultKeyMap(kb config.KeybindingsConfig) keyMap {
	return keyMap{
		Up:             binding(kb.Up, "move up"),
		Down:           binding(kb.Down, "move down"),
		Add:            binding(kb.Add, "add"),
		Edit:           binding(kb.Edit, "edit"),
		Toggle:         binding(kb.Toggle, "toggle done"),
		Delete:         binding(kb.Delete, "delete"),
		ClearCompleted: binding(kb.ClearCompleted, "clear completed"),
		Search:         binding(kb.Search, "search"),
		Category:       binding(kb.Category, "category"),
		Priority:       binding(kb.Priority, "priority"),
		Backup:         binding(kb.Backup, "backup"),
		Dismiss:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filters")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:           binding(kb.Quit, "quit"),
	}
}

func binding(keys []string, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	labels := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			labels[i] = "space"
		} else {
			labels[i] = k
		}
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(labels, "/"), desc),
	)
}
