// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and turns.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the speaker of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleDeveloper Role = "developer"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleDeveloper:
		return "Expert"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// RendersLinks reports whether links in turns of this role are shown as
// hyperlinks. User and expert text is shown exactly as typed.
func (r Role) RendersLinks() bool {
	return r == RoleAssistant || r == RoleSystem
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is a single entry in the conversation log.
// Turns are values: once appended to a Conversation they are never changed.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text,omitempty"`
	IsWelcome bool      `json:"is_welcome,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTurn creates a turn with a generated ID.
func NewTurn(role Role, text string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewUserTurn creates a user turn.
func NewUserTurn(text string) Turn {
	return NewTurn(RoleUser, text)
}

// NewAssistantTurn creates an assistant turn.
func NewAssistantTurn(text string) Turn {
	return NewTurn(RoleAssistant, text)
}

// NewDeveloperTurn creates a developer (expert answer) turn.
func NewDeveloperTurn(text string) Turn {
	return NewTurn(RoleDeveloper, text)
}

// NewSystemTurn creates a system turn.
func NewSystemTurn(text string) Turn {
	return NewTurn(RoleSystem, text)
}

// NewWelcomeTurn creates the synthetic greeting shown when chat opens.
// It carries no text; the view renders the greeting itself.
func NewWelcomeTurn() Turn {
	t := NewTurn(RoleAssistant, "")
	t.IsWelcome = true
	return t
}

// HasText reports whether the turn carries text. Only the welcome turn does not.
func (t Turn) HasText() bool {
	return !t.IsWelcome
}

// Preview returns a truncated preview of the turn text.
// Uses rune-based truncation to handle Unicode correctly.
func (t Turn) Preview(maxLen int) string {
	runes := []rune(t.Text)
	if len(runes) <= maxLen {
		return t.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
