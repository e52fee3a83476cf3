// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session is the chat state machine.
//
// A chat starts in the pre-chat phase, where the user may give an inventory
// number, decline, or file a ticket. Any of these opens the chat. Once
// active, every submission goes through the command dispatcher.
//
// # Key Types
//
//   - State: phase, developer mode, pending expert answer and linked ticket,
//     with pure transition methods
//   - Session: owns the State, the conversation and the busy flag
//
// # Usage
//
//	sess := session.New(dispatcher, session.WithLogger(logger))
//	sess.Decline()
//	out, err := sess.Submit(ctx, "/ezoi asset 1234")
//
// Only one submission runs at a time. A second one while the first is in
// flight returns ErrBusy; a submission before the chat opens returns
// ErrInactive.
package session
