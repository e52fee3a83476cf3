// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the chat state machine: the pre-chat prompt, the
// active chat, developer-mode training and the linked ticket.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jeranaias/logiassist-tui/internal/commands"
	"github.com/jeranaias/logiassist-tui/internal/field"
	"github.com/jeranaias/logiassist-tui/internal/gateway"
	"github.com/jeranaias/logiassist-tui/internal/model"
)

// previewLen caps the turn text written to the log.
const previewLen = 60

var (
	// ErrBusy is returned when a command is already in flight.
	ErrBusy = errors.New("a request is already in progress")

	// ErrInactive is returned for chat input before the chat is active.
	ErrInactive = errors.New("chat is not active yet")

	// ErrNoInventoryNumber is returned when the pre-chat entry has no digits.
	ErrNoInventoryNumber = errors.New("enter an inventory number")
)

// Session owns one conversation and its state. All methods are safe for
// concurrent use; at most one remote command runs at a time.
type Session struct {
	mu    sync.Mutex
	state State

	busy       atomic.Bool
	dispatcher *commands.Dispatcher
	conv       *model.Conversation
	logger     *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDeveloperMode starts the session in developer mode.
func WithDeveloperMode(on bool) Option {
	return func(s *Session) {
		s.state = s.state.WithDeveloperMode(on)
	}
}

// New creates a session in PhasePreChat around d and its conversation.
func New(d *commands.Dispatcher, opts ...Option) *Session {
	s := &Session{
		dispatcher: d,
		conv:       d.Conversation(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Conversation returns the session's turn log.
func (s *Session) Conversation() *model.Conversation {
	return s.conv
}

// Registry returns the slash commands the session understands.
func (s *Session) Registry() *commands.Registry {
	return s.dispatcher.Parser().Registry()
}

// Busy reports whether a command is in flight.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Decline skips the inventory prompt and opens the chat.
func (s *Session) Decline() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activateLocked()
}

// ProvideInventory answers the pre-chat prompt with an inventory number.
// raw is normalized to digits; the chat opens and a lookup for the number
// runs as if the user had typed "/ezoi inventory <number>".
func (s *Session) ProvideInventory(ctx context.Context, raw string) error {
	number := field.FormatInventoryEntry(raw)
	if number == "" {
		return ErrNoInventoryNumber
	}
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.busy.Store(false)

	s.mu.Lock()
	s.activateLocked()
	s.mu.Unlock()

	s.conv.AppendUser("/ezoi inventory " + number)
	s.logger.Info("inventory provided", zap.String("item_number", number))
	return s.dispatcher.Lookup(ctx, commands.InventoryLookup{
		ItemType:   model.ItemTypeInventory,
		ItemNumber: number,
	})
}

// TicketSubmitted links t to the chat. It opens the chat if needed and
// appends one system turn announcing the ticket.
func (s *Session) TicketSubmitted(t model.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activateLocked()
	s.state = s.state.LinkTicket(t)
	s.conv.AppendSystem(t.LinkedNotice())
	s.logger.Info("ticket linked", zap.String("ticket_id", t.ID), zap.String("program", string(t.Program)))
}

// SetDeveloperMode turns developer mode on or off.
func (s *Session) SetDeveloperMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithDeveloperMode(on)
}

// ToggleDeveloperMode flips developer mode and returns the new setting.
func (s *Session) ToggleDeveloperMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithDeveloperMode(!s.state.DeveloperMode)
	return s.state.DeveloperMode
}

// SetExpertAnswer sets the expert answer the next input is paired with.
func (s *Session) SetExpertAnswer(answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithExpertAnswer(answer)
}

// activateLocked enters PhaseActive. The first entry inserts the welcome
// turn when the log is still empty. Callers hold s.mu.
func (s *Session) activateLocked() {
	if s.state.Phase == PhaseActive {
		return
	}
	s.state = s.state.Activate()
	if s.conv.AppendWelcomeIfEmpty() {
		s.logger.Debug("chat activated with welcome turn")
	}
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submit runs one line of chat input. Blank input is ignored.
//
// It returns ErrInactive before the chat opens and ErrBusy while another
// command is in flight; neither touches the conversation. Otherwise the
// command's own failures are already in the conversation and reported in
// the Outcome. A training pair clears the pending expert answer whether or
// not saving it succeeded.
func (s *Session) Submit(ctx context.Context, input string) (commands.Outcome, error) {
	if strings.TrimSpace(input) == "" {
		return commands.Outcome{}, nil
	}

	st := s.State()
	if st.Phase != PhaseActive {
		return commands.Outcome{}, ErrInactive
	}
	if !s.busy.CompareAndSwap(false, true) {
		return commands.Outcome{}, ErrBusy
	}
	defer s.busy.Store(false)

	out := s.dispatcher.Dispatch(ctx, commands.Request{
		Input:               input,
		DeveloperMode:       st.DeveloperMode,
		PendingExpertAnswer: st.PendingExpertAnswer,
		LinkedTicket:        st.LinkedTicket,
	})

	if _, ok := out.Intent.(commands.TrainingCorrection); ok {
		s.SetExpertAnswer("")
	}
	switch {
	case gateway.IsRemoteError(out.Err):
		s.logger.Warn("backend rejected command", zap.String("input", input), zap.Error(out.Err))
	case out.Err != nil:
		s.logger.Debug("command failed", zap.String("input", input), zap.Error(out.Err))
	}
	if last, ok := s.conv.Last(); ok {
		s.logger.Debug("turn appended",
			zap.String("role", string(last.Role)),
			zap.String("preview", last.Preview(previewLen)))
	}
	return out, nil
}
