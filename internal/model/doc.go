// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and turns.
//
// This package defines the core domain types shared by the dispatcher, the
// session state machine and the views.
//
// # Key Types
//
//   - Conversation: append-only log of turns for one session
//   - Turn: single entry with role, text and the welcome flag
//   - Role: speaker enumeration (user, assistant, developer, system)
//   - Ticket: a submitted support ticket, linked into chat context
//   - Program, ItemType: EZOI/Windchill and Asset/Inventory
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.AppendUser("Where is item 1234?")
//	for t := range conv.All() {
//	    fmt.Printf("%s: %s\n", t.Role, t.Text)
//	}
package model
