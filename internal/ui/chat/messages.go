// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/logiassist-tui/internal/commands"
	"github.com/jeranaias/logiassist-tui/internal/session"
)

// =============================================================================
// COMMAND RESULT MESSAGES
// =============================================================================

// DispatchDoneMsg reports that a chat submission finished running.
type DispatchDoneMsg struct {
	Outcome commands.Outcome
	Err     error
}

// InventoryDoneMsg reports that the pre-chat inventory lookup finished.
type InventoryDoneMsg struct {
	Err error
}

// =============================================================================
// COMMAND CONSTRUCTORS
// =============================================================================

// submitCmd runs one chat submission off the update loop.
func submitCmd(sess *session.Session, input string) tea.Cmd {
	return func() tea.Msg {
		out, err := sess.Submit(context.Background(), input)
		return DispatchDoneMsg{Outcome: out, Err: err}
	}
}

// inventoryCmd runs the pre-chat inventory lookup off the update loop.
func inventoryCmd(sess *session.Session, raw string) tea.Cmd {
	return func() tea.Msg {
		return InventoryDoneMsg{Err: sess.ProvideInventory(context.Background(), raw)}
	}
}
