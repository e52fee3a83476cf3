// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"

	"github.com/jeranaias/logiassist-tui/internal/commands"
	"github.com/jeranaias/logiassist-tui/internal/model"
)

// =============================================================================
// PHASE
// =============================================================================

// Phase is where the chat is in its lifecycle.
type Phase int

const (
	// PhasePreChat asks for an inventory number before chatting.
	PhasePreChat Phase = iota

	// PhaseActive accepts chat input. There is no way back to PhasePreChat.
	PhaseActive
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhasePreChat:
		return "pre-chat"
	case PhaseActive:
		return "active"
	default:
		return "unknown"
	}
}

// =============================================================================
// STATE
// =============================================================================

// State is the session state that input is parsed and run against.
// Transitions are pure: each returns a new State and leaves the receiver
// untouched.
type State struct {
	Phase               Phase
	DeveloperMode       bool
	PendingExpertAnswer string
	LinkedTicket        *model.Ticket
}

// Activate moves to PhaseActive. It is a no-op when already active.
func (s State) Activate() State {
	s.Phase = PhaseActive
	return s
}

// LinkTicket activates the chat and makes t the linked ticket, replacing
// any earlier one.
func (s State) LinkTicket(t model.Ticket) State {
	s = s.Activate()
	s.LinkedTicket = &t
	return s
}

// WithDeveloperMode turns developer mode on or off. Turning it off drops
// the pending expert answer.
func (s State) WithDeveloperMode(on bool) State {
	s.DeveloperMode = on
	if !on {
		s.PendingExpertAnswer = ""
	}
	return s
}

// WithExpertAnswer sets the expert answer for the next training pair.
func (s State) WithExpertAnswer(answer string) State {
	s.PendingExpertAnswer = answer
	return s
}

// TrainingArmed reports whether the next input becomes a training pair.
func (s State) TrainingArmed() bool {
	return s.DeveloperMode && strings.TrimSpace(s.PendingExpertAnswer) != ""
}

// ParseState returns the fields the parser needs.
func (s State) ParseState() commands.ParseState {
	return commands.ParseState{
		DeveloperMode:       s.DeveloperMode,
		PendingExpertAnswer: s.PendingExpertAnswer,
	}
}
