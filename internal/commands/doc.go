// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands turns chat input into intents and runs them.
//
// # Key Types
//
//   - Registry: slash commands in match order
//   - Parser: input plus session state to Intent
//   - Intent: InventoryLookup, Help, FreeText or TrainingCorrection
//   - Dispatcher: runs an Intent against the gateway and appends turns
//   - Completer: tab completion for command names and enum arguments
//
// # Built-in Commands
//
//   - /ezoi <asset|inventory> <number>: look up an EZOI item
//   - /help: link to the logistics resource page
//
// # Usage
//
//	d := commands.NewDispatcher(client, conv)
//	out := d.Dispatch(ctx, commands.Request{Input: "/ezoi asset 1234"})
//	if out.Err != nil {
//	    // already shown in conv
//	}
package commands
