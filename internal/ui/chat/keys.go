// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	Submit       key.Binding
	Quit         key.Binding
	Close        key.Binding
	Decline      key.Binding
	Ticket       key.Binding
	APILog       key.Binding
	DevMode      key.Binding
	Commands     key.Binding
	Complete     key.Binding
	SwitchFocus  key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	ScrollTop    key.Binding
	ScrollBottom key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Decline: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "just chat"),
		),
		Ticket: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "ticket"),
		),
		APILog: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "API log"),
		),
		DevMode: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "dev"),
		),
		Commands: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "commands"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "complete"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "expert box"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		ScrollTop: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "top"),
		),
		ScrollBottom: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("End", "bottom"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar for the chat screen.
func (k KeyMap) ShortHelp(devMode bool) []key.Binding {
	bindings := []key.Binding{k.Submit, k.Ticket, k.APILog, k.DevMode, k.Commands}
	if devMode {
		bindings = append(bindings, k.SwitchFocus)
	}
	return append(bindings, k.Quit)
}

// PreChatHelp returns the bindings shown before the chat starts.
func (k KeyMap) PreChatHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Decline, k.Ticket, k.Quit}
}
