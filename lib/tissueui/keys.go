// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissueui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the tissuebox TUI. The letter
// keys apply in normal mode only; line-input modes consume keystrokes
// as text and recognize just Confirm and Cancel.
type KeyMap struct {
	// Navigation.
	Up   key.Binding
	Down key.Binding

	// Mode entry.
	Help      key.Binding
	Add       key.Binding
	Describe  key.Binding
	Tag       key.Binding
	EditTitle key.Binding
	Copy      key.Binding
	Commit    key.Binding
	Publish   key.Binding
	Remove    key.Binding
	Restore   key.Binding
	Filter    key.Binding

	// Star toggle. Starring a second time from elsewhere in the list
	// jumps the cursor to the starred tissue.
	Star key.Binding

	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k, with h/l as aliases) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "h", "up", "left"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "l", "down", "right"),
		key.WithHelp("j/↓", "down"),
	),
	Help: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H", "help"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Describe: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "describe"),
	),
	Tag: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "tag"),
	),
	EditTitle: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit title"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Commit: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "commit"),
	),
	Publish: key.NewBinding(
		key.WithKeys("P"),
		key.WithHelp("P", "publish"),
	),
	Remove: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "remove"),
	),
	Restore: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "restore"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Star: key.NewBinding(
		key.WithKeys("*"),
		key.WithHelp("*", "star"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
