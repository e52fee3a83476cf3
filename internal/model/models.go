// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and turns.
package model

import (
	"fmt"
	"strings"
)

// =============================================================================
// PROGRAMS
// =============================================================================

// Program identifies the logistics system a ticket or item belongs to.
type Program string

const (
	ProgramEZOI      Program = "EZOI"
	ProgramWindchill Program = "Windchill"
)

// Programs lists the supported programs in display order.
var Programs = []Program{ProgramEZOI, ProgramWindchill}

// ParseProgram resolves a program name case-insensitively.
func ParseProgram(s string) (Program, error) {
	for _, p := range Programs {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown program %q (expected EZOI or Windchill)", s)
}

// UsesItemType reports whether items in the program are split by item type.
func (p Program) UsesItemType() bool {
	return p == ProgramEZOI
}

// =============================================================================
// ITEM TYPES
// =============================================================================

// ItemType is the EZOI item category.
type ItemType string

const (
	ItemTypeAsset     ItemType = "Asset"
	ItemTypeInventory ItemType = "Inventory"
)

// ItemTypes lists the EZOI item types in display order.
var ItemTypes = []ItemType{ItemTypeAsset, ItemTypeInventory}

// ParseItemType resolves an item type case-insensitively.
func ParseItemType(s string) (ItemType, bool) {
	for _, t := range ItemTypes {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Wire returns the lower-case form the backend expects in lookups.
func (t ItemType) Wire() string {
	return strings.ToLower(string(t))
}

// =============================================================================
// TICKET
// =============================================================================

// Ticket is a submitted support ticket. The ID is assigned by the backend.
type Ticket struct {
	ID               string   `json:"id"`
	UserName         string   `json:"userName"`
	Email            string   `json:"email"`
	Program          Program  `json:"program"`
	ItemType         ItemType `json:"itemType,omitempty"`
	ItemNumber       string   `json:"itemNumber"`
	ErrorTitle       string   `json:"errorTitle,omitempty"`
	ErrorDescription string   `json:"errorDescription,omitempty"`
}

// LinkedNotice is the system turn text announcing that chat is now linked to t.
func (t Ticket) LinkedNotice() string {
	itemType := ""
	if t.ItemType != "" {
		itemType = " " + string(t.ItemType)
	}
	return fmt.Sprintf("New ticket submitted: #%s for %s%s #%s. Chat context is now linked to this ticket.",
		t.ID, t.Program, itemType, t.ItemNumber)
}

// ContextSummary is the ticket context line given to the assistant.
func (t Ticket) ContextSummary() string {
	return fmt.Sprintf("Current Ticket Context: #%s, Program: %s, Item: %s.", t.ID, t.Program, t.ItemNumber)
}
