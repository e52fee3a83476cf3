// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "github.com/jeranaias/logiassist-tui/internal/model"

// Intent is the parsed meaning of one line of user input.
// The concrete types are InventoryLookup, Help, FreeText and TrainingCorrection.
type Intent interface {
	// Kind is a short name for logging.
	Kind() string

	// Remote reports whether running the intent calls the gateway.
	Remote() bool

	isIntent()
}

// InventoryLookup fetches an EZOI item and summarizes it.
type InventoryLookup struct {
	ItemType   model.ItemType
	ItemNumber string

	// TypedAs is the item type as the user spelled it, used in the turns
	// shown for the lookup. Empty means the lower-case wire form.
	TypedAs string
}

// DisplayType is the item type shown in the searching turn and the reply.
func (l InventoryLookup) DisplayType() string {
	if l.TypedAs != "" {
		return l.TypedAs
	}
	return l.ItemType.Wire()
}

// Help shows the fixed resource link. It never calls the gateway.
type Help struct{}

// FreeText asks the assistant. The outbound prompt is built at run time
// from the conversation snapshot, the linked ticket and Text.
type FreeText struct {
	Text string
}

// TrainingCorrection stores a question and the expert's answer to it.
type TrainingCorrection struct {
	Question     string
	ExpertAnswer string
}

func (InventoryLookup) Kind() string    { return "inventory_lookup" }
func (Help) Kind() string               { return "help" }
func (FreeText) Kind() string           { return "free_text" }
func (TrainingCorrection) Kind() string { return "training_correction" }

func (InventoryLookup) Remote() bool    { return true }
func (Help) Remote() bool               { return false }
func (FreeText) Remote() bool           { return true }
func (TrainingCorrection) Remote() bool { return true }

func (InventoryLookup) isIntent()    {}
func (Help) isIntent()               {}
func (FreeText) isIntent()           {}
func (TrainingCorrection) isIntent() {}
