// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/logiassist-tui/internal/commands"
	"github.com/jeranaias/logiassist-tui/internal/gateway"
	"github.com/jeranaias/logiassist-tui/internal/model"
)

// stubGateway replies with body, or err, after release is closed (if set).
type stubGateway struct {
	mu      sync.Mutex
	body    string
	err     error
	release chan struct{}
	started chan struct{}
	calls   []any
}

func (g *stubGateway) Invoke(_ context.Context, payload any) (*gateway.Response, error) {
	g.mu.Lock()
	g.calls = append(g.calls, payload)
	g.mu.Unlock()

	if g.started != nil {
		close(g.started)
	}
	if g.release != nil {
		<-g.release
	}
	if g.err != nil {
		return nil, g.err
	}
	return &gateway.Response{StatusCode: 200, Body: []byte(g.body)}, nil
}

func (g *stubGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func newTestSession(gw *stubGateway, opts ...Option) *Session {
	return New(commands.NewDispatcher(gw, model.NewConversation()), opts...)
}

// =============================================================================
// STATE TESTS
// =============================================================================

func TestStateTransitionsArePure(t *testing.T) {
	var s State
	active := s.Activate()

	assert.Equal(t, PhasePreChat, s.Phase)
	assert.Equal(t, PhaseActive, active.Phase)
	assert.Equal(t, PhaseActive, active.Activate().Phase)

	linked := s.LinkTicket(model.Ticket{ID: "1"})
	assert.Nil(t, s.LinkedTicket)
	require.NotNil(t, linked.LinkedTicket)
	assert.Equal(t, PhaseActive, linked.Phase)

	relinked := linked.LinkTicket(model.Ticket{ID: "2"})
	assert.Equal(t, "1", linked.LinkedTicket.ID)
	assert.Equal(t, "2", relinked.LinkedTicket.ID)
}

func TestStateTrainingArmed(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"off", State{}, false},
		{"dev mode only", State{DeveloperMode: true}, false},
		{"answer only", State{PendingExpertAnswer: "A"}, false},
		{"blank answer", State{DeveloperMode: true, PendingExpertAnswer: " \n"}, false},
		{"armed", State{DeveloperMode: true, PendingExpertAnswer: "A"}, true},
	}

	for _, tc := range tests {
		if got := tc.state.TrainingArmed(); got != tc.want {
			t.Errorf("%s: TrainingArmed() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestStateDeveloperModeOffDropsAnswer(t *testing.T) {
	s := State{}.WithDeveloperMode(true).WithExpertAnswer("A")
	assert.Equal(t, "A", s.PendingExpertAnswer)
	assert.Empty(t, s.WithDeveloperMode(false).PendingExpertAnswer)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "pre-chat", PhasePreChat.String())
	assert.Equal(t, "active", PhaseActive.String())
	assert.Equal(t, "unknown", Phase(9).String())
}

// =============================================================================
// SESSION TESTS
// =============================================================================

func TestDeclineInsertsOneWelcome(t *testing.T) {
	s := newTestSession(&stubGateway{})

	s.Decline()
	s.Decline()

	assert.Equal(t, PhaseActive, s.State().Phase)
	turns := s.Conversation().Turns()
	require.Len(t, turns, 1)
	assert.True(t, turns[0].IsWelcome)
}

func TestSubmitBeforeActive(t *testing.T) {
	gw := &stubGateway{}
	s := newTestSession(gw)

	_, err := s.Submit(context.Background(), "/help")
	assert.ErrorIs(t, err, ErrInactive)
	assert.True(t, s.Conversation().IsEmpty())
	assert.Zero(t, gw.callCount())
}

func TestSubmitBlankIgnored(t *testing.T) {
	s := newTestSession(&stubGateway{})
	s.Decline()

	out, err := s.Submit(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, out.Intent)
	assert.Equal(t, 1, s.Conversation().Len())
}

func TestTicketInPreChat(t *testing.T) {
	s := newTestSession(&stubGateway{})

	s.TicketSubmitted(model.Ticket{ID: "T-100", Program: model.ProgramEZOI, ItemType: model.ItemTypeAsset, ItemNumber: "1234"})

	st := s.State()
	assert.Equal(t, PhaseActive, st.Phase)
	require.NotNil(t, st.LinkedTicket)
	assert.Equal(t, "T-100", st.LinkedTicket.ID)

	turns := s.Conversation().Turns()
	require.Len(t, turns, 2)
	assert.True(t, turns[0].IsWelcome)
	assert.Equal(t, model.RoleSystem, turns[1].Role)
	assert.Contains(t, turns[1].Text, "#T-100")
	assert.Equal(t, "New ticket submitted: #T-100 for EZOI Asset #1234. Chat context is now linked to this ticket.", turns[1].Text)
}

func TestSecondTicketReplacesLink(t *testing.T) {
	s := newTestSession(&stubGateway{})
	s.TicketSubmitted(model.Ticket{ID: "1", Program: model.ProgramEZOI, ItemNumber: "0001"})
	before := s.Conversation().Len()

	s.TicketSubmitted(model.Ticket{ID: "2", Program: model.ProgramWindchill, ItemNumber: "HW-0000-0002"})

	assert.Equal(t, before+1, s.Conversation().Len())
	assert.Equal(t, "2", s.State().LinkedTicket.ID)

	welcomes := 0
	for turn := range s.Conversation().All() {
		if turn.IsWelcome {
			welcomes++
		}
	}
	assert.Equal(t, 1, welcomes)

	last, _ := s.Conversation().Last()
	assert.Contains(t, last.Text, "#2 for Windchill #HW-0000-0002")
}

func TestLinkedTicketReachesPrompt(t *testing.T) {
	gw := &stubGateway{body: `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`}
	s := newTestSession(gw)
	s.TicketSubmitted(model.Ticket{ID: "77", Program: model.ProgramEZOI, ItemNumber: "4321"})

	_, err := s.Submit(context.Background(), "any update?")
	require.NoError(t, err)

	require.Equal(t, 1, gw.callCount())
	req := gw.calls[0].(gateway.AIRequest)
	assert.Contains(t, req.Prompt, "Current Ticket Context: #77, Program: EZOI, Item: 4321.")
	assert.Contains(t, req.Prompt, "system: New ticket submitted: #77")
	assert.True(t, strings.HasSuffix(req.Prompt, "user: any update?\n\nassistant:"))
}

func TestProvideInventory(t *testing.T) {
	gw := &stubGateway{body: `{"item":{"name":"Cable"}}`}
	s := newTestSession(gw)

	err := s.ProvideInventory(context.Background(), " 12-34 ")
	require.NoError(t, err)

	assert.Equal(t, PhaseActive, s.State().Phase)
	require.Equal(t, 1, gw.callCount())
	assert.Equal(t, gateway.EzoiDataRequest{
		Action:     gateway.ActionGetEzoiData,
		ItemType:   "inventory",
		ItemNumber: "1234",
	}, gw.calls[0])

	turns := s.Conversation().Turns()
	require.Len(t, turns, 4)
	assert.True(t, turns[0].IsWelcome)
	assert.Equal(t, "/ezoi inventory 1234", turns[1].Text)
	assert.Equal(t, model.RoleSystem, turns[2].Role)
	assert.Contains(t, turns[3].Text, "Name: Cable")
}

func TestProvideInventoryNeedsDigits(t *testing.T) {
	gw := &stubGateway{}
	s := newTestSession(gw)

	assert.ErrorIs(t, s.ProvideInventory(context.Background(), "abc"), ErrNoInventoryNumber)
	assert.Equal(t, PhasePreChat, s.State().Phase)
	assert.Zero(t, gw.callCount())
}

func TestTrainingClearsPendingAnswer(t *testing.T) {
	for _, gwErr := range []error{nil, errors.New("sheet locked")} {
		gw := &stubGateway{body: `{"status":"success"}`, err: gwErr}
		s := newTestSession(gw, WithDeveloperMode(true))
		s.Decline()
		s.SetExpertAnswer("Check the Tickets tab.")

		out, err := s.Submit(context.Background(), "/help")
		require.NoError(t, err)
		assert.Equal(t, commands.TrainingCorrection{Question: "/help", ExpertAnswer: "Check the Tickets tab."}, out.Intent)
		assert.Equal(t, gwErr, out.Err)
		assert.Empty(t, s.State().PendingExpertAnswer)
		assert.True(t, s.State().DeveloperMode)
	}
}

func TestToggleDeveloperMode(t *testing.T) {
	s := newTestSession(&stubGateway{})
	assert.True(t, s.ToggleDeveloperMode())
	s.SetExpertAnswer("A")
	assert.False(t, s.ToggleDeveloperMode())
	assert.Empty(t, s.State().PendingExpertAnswer)
}

func TestSubmitWhileBusy(t *testing.T) {
	gw := &stubGateway{
		body:    `{"candidates":[{"content":{"parts":[{"text":"done"}]}}]}`,
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	s := newTestSession(gw)
	s.Decline()

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "first")
		done <- err
	}()

	select {
	case <-gw.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first submit never reached the gateway")
	}
	assert.True(t, s.Busy())

	lenBefore := s.Conversation().Len()
	_, err := s.Submit(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, s.ProvideInventory(context.Background(), "1"), ErrBusy)
	assert.Equal(t, lenBefore, s.Conversation().Len())

	close(gw.release)
	require.NoError(t, <-done)
	assert.False(t, s.Busy())
	assert.Equal(t, 1, gw.callCount())

	last, _ := s.Conversation().Last()
	assert.Equal(t, "done", last.Text)
}

func TestHelpNeedsNoGateway(t *testing.T) {
	gw := &stubGateway{}
	s := newTestSession(gw)
	s.Decline()

	out, err := s.Submit(context.Background(), "/help")
	require.NoError(t, err)
	assert.NoError(t, out.Err)
	assert.Zero(t, gw.callCount())
	assert.Len(t, s.Registry().All(), 2)
}

func TestSubmitLogsRemoteFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gw := &stubGateway{err: &gateway.RemoteError{Message: "sheet locked", Status: 500}}
	s := newTestSession(gw, WithLogger(zap.New(core)))
	s.Decline()

	out, err := s.Submit(context.Background(), "where is my order?")
	require.NoError(t, err)
	require.Error(t, out.Err)

	warned := logs.FilterMessage("backend rejected command").All()
	require.Len(t, warned, 1)
	assert.Equal(t, zapcore.WarnLevel, warned[0].Level)

	appended := logs.FilterMessage("turn appended").All()
	require.Len(t, appended, 1)
	assert.Equal(t, "An error occurred: sheet locked", appended[0].ContextMap()["preview"])
}

func TestSubmitLogsPreviewOfLongReply(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	reply := strings.Repeat("é", previewLen+10)
	gw := &stubGateway{body: `{"candidates":[{"content":{"parts":[{"text":"` + reply + `"}]}}]}`}
	s := newTestSession(gw, WithLogger(zap.New(core)))
	s.Decline()

	_, err := s.Submit(context.Background(), "hi")
	require.NoError(t, err)

	assert.Empty(t, logs.FilterMessage("backend rejected command").All())
	appended := logs.FilterMessage("turn appended").All()
	require.Len(t, appended, 1)
	preview := appended[0].ContextMap()["preview"].(string)
	assert.Equal(t, previewLen, len([]rune(preview)))
	assert.True(t, strings.HasSuffix(preview, "..."))
}
