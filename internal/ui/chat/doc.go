// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view for the logiassist TUI.

The view is a Bubble Tea model over a session.Session. It never touches the
conversation directly: every submission goes through the session, which runs
the command and appends the resulting turns. The view re-renders the
transcript from the store when a command finishes.

# Screens

  - Pre-chat: asks for an inventory number. Enter starts the chat with a
    lookup, Ctrl+N starts it without one.
  - Chat: header, transcript, input box and, in developer mode, the
    expert-answer box.
  - Ticket: the ticketform overlay. A confirmed ticket is linked to the chat.
  - API log: the last gateway response, pretty-printed.

# Key Bindings

	Enter      send the input
	Tab        complete a slash command
	Shift+Tab  switch between the input and the expert box (developer mode)
	Ctrl+D     toggle developer mode
	Ctrl+O     show or hide the command list in the welcome turn
	Ctrl+T     open the ticket form
	Ctrl+L     open the API response log
	Esc        close an overlay
	Ctrl+C     quit

# Usage

	sess := session.New(dispatcher)
	m := chat.New(styles.NewTheme("auto"), sess, client)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
*/
package chat
