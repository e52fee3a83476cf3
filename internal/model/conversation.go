// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and turns.
package model

import (
	"iter"
	"slices"
	"sync"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the ordered, append-only log of chat turns for one session.
// Insertion order is display order and is also the history order handed to the
// assistant backend. There is no removal operation.
//
// The lock exists because the TUI renders from its own goroutine while a
// command appends from a tea.Cmd goroutine.
type Conversation struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{turns: make([]Turn, 0, 16)}
}

// =============================================================================
// TURN MANAGEMENT
// =============================================================================

// Append adds a turn to the end of the log.
func (c *Conversation) Append(t Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, t)
}

// AppendUser creates and appends a user turn.
func (c *Conversation) AppendUser(text string) Turn {
	t := NewUserTurn(text)
	c.Append(t)
	return t
}

// AppendAssistant creates and appends an assistant turn.
func (c *Conversation) AppendAssistant(text string) Turn {
	t := NewAssistantTurn(text)
	c.Append(t)
	return t
}

// AppendDeveloper creates and appends a developer turn.
func (c *Conversation) AppendDeveloper(text string) Turn {
	t := NewDeveloperTurn(text)
	c.Append(t)
	return t
}

// AppendSystem creates and appends a system turn.
func (c *Conversation) AppendSystem(text string) Turn {
	t := NewSystemTurn(text)
	c.Append(t)
	return t
}

// AppendWelcomeIfEmpty inserts the welcome turn when the log is empty.
// The check and the append happen under one lock so at most one welcome
// turn can ever be inserted.
func (c *Conversation) AppendWelcomeIfEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.turns) != 0 {
		return false
	}
	c.turns = append(c.turns, NewWelcomeTurn())
	return true
}

// Turns returns a snapshot copy of the log at call time.
func (c *Conversation) Turns() []Turn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.turns)
}

// All returns an iterator over a snapshot of the log taken at call time.
// The iterator can be ranged over any number of times.
func (c *Conversation) All() iter.Seq[Turn] {
	return slices.Values(c.Turns())
}

// Last returns the most recent turn.
func (c *Conversation) Last() (Turn, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.turns) == 0 {
		return Turn{}, false
	}
	return c.turns[len(c.turns)-1], true
}

// LastByRole returns the most recent turn spoken by role.
func (c *Conversation) LastByRole(role Role) (Turn, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := len(c.turns) - 1; i >= 0; i-- {
		if c.turns[i].Role == role {
			return c.turns[i], true
		}
	}
	return Turn{}, false
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.turns)
}

// IsEmpty returns true if there are no turns.
func (c *Conversation) IsEmpty() bool {
	return c.Len() == 0
}
