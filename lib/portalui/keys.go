// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the console.
type KeyMap struct {
	// List navigation.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Tab switching. Tabs are disabled on the login screen and the
	// operator tab is hidden unless the operator console is enabled.
	TabDashboard key.Binding
	TabTickets   key.Binding
	TabPayments  key.Binding
	TabChat      key.Binding
	TabOperator  key.Binding

	// Actions.
	Select  key.Binding // Open the selected row.
	Submit  key.Binding // Submit the active form.
	Cancel  key.Binding // Dismiss the active form or go back.
	New     key.Binding // Open the ticket creation form.
	Comment key.Binding // Open the comment form (operator detail).
	Respond key.Binding // Send the AI response (operator detail).
	Filter  key.Binding // Open the queue filter form (operator queue).
	Refresh key.Binding
	Logout  key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	TabDashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "profile"),
	),
	TabTickets: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "tickets"),
	),
	TabPayments: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "payments"),
	),
	TabChat: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "chat"),
	),
	TabOperator: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "operator"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new ticket"),
	),
	Comment: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "comment"),
	),
	Respond: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "send response"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter queue"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Logout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "log out"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
