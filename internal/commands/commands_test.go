// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/jeranaias/logiassist-tui/internal/gateway"
	"github.com/jeranaias/logiassist-tui/internal/model"
)

// fakeGateway records payloads and replies with a fixed body or error.
type fakeGateway struct {
	body  string
	err   error
	calls []any
}

func (f *fakeGateway) Invoke(_ context.Context, payload any) (*gateway.Response, error) {
	f.calls = append(f.calls, payload)
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.Response{StatusCode: 200, Body: []byte(f.body)}, nil
}

func newTestDispatcher(gw *fakeGateway) (*Dispatcher, *model.Conversation) {
	conv := model.NewConversation()
	return NewDispatcher(gw, conv), conv
}

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestIsCommand(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/help", true},
		{"/ezoi asset 1234", true},
		{"  /help", true},
		{"hello", false},
		{"hello /help", false},
		{"", false},
		{"/", true},
	}

	for _, tc := range tests {
		got := IsCommand(tc.input)
		if got != tc.want {
			t.Errorf("IsCommand(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestExtractCommandName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/help", "/help"},
		{"/ezoi asset 1234", "/ezoi"},
		{"  /help  ", "/help"},
		{"hello", ""},
		{"/", "/"},
	}

	for _, tc := range tests {
		got := ExtractCommandName(tc.input)
		if got != tc.want {
			t.Errorf("ExtractCommandName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	p := NewParser(NewRegistry())

	tests := []struct {
		name  string
		input string
		state ParseState
		want  Intent
	}{
		{"asset lookup", "/ezoi asset 1234", ParseState{}, InventoryLookup{ItemType: model.ItemTypeAsset, ItemNumber: "1234", TypedAs: "asset"}},
		{"case insensitive", "/EZOI Inventory 99", ParseState{}, InventoryLookup{ItemType: model.ItemTypeInventory, ItemNumber: "99", TypedAs: "Inventory"}},
		{"number verbatim", "/ezoi asset ab-12", ParseState{}, InventoryLookup{ItemType: model.ItemTypeAsset, ItemNumber: "ab-12", TypedAs: "asset"}},
		{"help", "/help", ParseState{}, Help{}},
		{"help upper", "/HELP", ParseState{}, Help{}},
		{"help with args is free text", "/help me", ParseState{}, FreeText{Text: "/help me"}},
		{"free text", "where is my order?", ParseState{}, FreeText{Text: "where is my order?"}},
		{"dev mode without answer", "/help", ParseState{DeveloperMode: true}, Help{}},
		{"pending answer without dev mode", "/help", ParseState{PendingExpertAnswer: "A"}, Help{}},
		{"training beats help", "/help", ParseState{DeveloperMode: true, PendingExpertAnswer: "A"},
			TrainingCorrection{Question: "/help", ExpertAnswer: "A"}},
		{"training beats ezoi", "/ezoi bogus", ParseState{DeveloperMode: true, PendingExpertAnswer: "A"},
			TrainingCorrection{Question: "/ezoi bogus", ExpertAnswer: "A"}},
		{"blank answer is not armed", "hi", ParseState{DeveloperMode: true, PendingExpertAnswer: "  "}, FreeText{Text: "hi"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.Parse(tc.input, tc.state)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseMalformedEzoi(t *testing.T) {
	p := NewParser(NewRegistry())

	inputs := []string{
		"/ezoi",
		"/ezoi asset",
		"/ezoi bogus 12",
		"/ezoi asset 12 34",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := p.Parse(input, ParseState{})
			var merr *MalformedCommandError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, "/ezoi", merr.Command)
			assert.Equal(t, "Invalid command. Use format: `/ezoi <asset|inventory> <number>`", err.Error())
		})
	}
}

func TestValidateArgs(t *testing.T) {
	cmd := NewRegistry().Get("/ezoi")
	require.NotNil(t, cmd)

	assert.NoError(t, ValidateArgs(cmd, []string{"ASSET", "1"}))

	var verr *ValidationError
	require.ErrorAs(t, ValidateArgs(cmd, []string{"bogus", "1"}), &verr)
	assert.Equal(t, "itemType", verr.Arg)
	assert.Contains(t, verr.Error(), "expected: asset, inventory")

	require.ErrorAs(t, ValidateArgs(cmd, nil), &verr)
	assert.Equal(t, "required argument missing", verr.Message)
}

func TestRegistryUsages(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"/ezoi <asset|inventory> <number>", "/help"}, r.Usages())
	assert.Nil(t, r.Lookup("/nope"))
}

// =============================================================================
// DISPATCHER TESTS
// =============================================================================

func TestDispatchInventoryLookup(t *testing.T) {
	gw := &fakeGateway{body: `{"item":{"name":"Widget","custom_fields":[{"id":35860,"value":"PO-1"}]}}`}
	d, conv := newTestDispatcher(gw)

	out := d.Dispatch(context.Background(), Request{Input: "/ezoi inventory 1234"})
	require.NoError(t, out.Err)

	require.Len(t, gw.calls, 1)
	assert.Equal(t, gateway.EzoiDataRequest{
		Action:     gateway.ActionGetEzoiData,
		ItemType:   "inventory",
		ItemNumber: "1234",
	}, gw.calls[0])

	turns := conv.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, model.RoleUser, turns[0].Role)
	assert.Equal(t, model.RoleSystem, turns[1].Role)
	assert.Equal(t, "Searching EZOI for inventory #1234...", turns[1].Text)

	reply := turns[2]
	assert.Equal(t, model.RoleAssistant, reply.Role)
	assert.Contains(t, reply.Text, "Name: Widget")
	assert.Contains(t, reply.Text, "PO #: PO-1")
	assert.Contains(t, reply.Text, "Windchill #: N/A")
	assert.Contains(t, reply.Text, "Net Quantity: 0")
}

func TestDispatchInventoryNotFound(t *testing.T) {
	for _, body := range []string{`{}`, `{"item":null}`, `{"item":false}`, `{"item":""}`, `{"item":0}`} {
		gw := &fakeGateway{body: body}
		d, conv := newTestDispatcher(gw)

		out := d.Dispatch(context.Background(), Request{Input: "/ezoi asset 0001"})
		require.NoError(t, out.Err)

		last, ok := conv.Last()
		require.True(t, ok)
		assert.Equal(t, "No matching asset found for #0001.", last.Text)
	}
}

func TestDispatchInventoryShowsTypedItemType(t *testing.T) {
	gw := &fakeGateway{body: `{"item":{"name":"Widget"}}`}
	d, conv := newTestDispatcher(gw)

	out := d.Dispatch(context.Background(), Request{Input: "/EZOI ASSET 1234"})
	require.NoError(t, out.Err)

	require.Len(t, gw.calls, 1)
	assert.Equal(t, "asset", gw.calls[0].(gateway.EzoiDataRequest).ItemType)

	turns := conv.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, "Searching EZOI for ASSET #1234...", turns[1].Text)
	assert.True(t, strings.HasPrefix(turns[2].Text, "EZOI Data for ASSET #1234:"), turns[2].Text)

	gw.body = `{"item":""}`
	d.Dispatch(context.Background(), Request{Input: "/ezoi Inventory 8"})
	last, ok := conv.Last()
	require.True(t, ok)
	assert.Equal(t, "No matching Inventory found for #8.", last.Text)
}

func TestItemPresent(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{}`, false},
		{`{"item":null}`, false},
		{`{"item":false}`, false},
		{`{"item":0}`, false},
		{`{"item":""}`, false},
		{`{"item":true}`, true},
		{`{"item":1}`, true},
		{`{"item":"x"}`, true},
		{`{"item":{}}`, true},
		{`{"item":[]}`, true},
		{`{"item":{"name":"Widget"}}`, true},
	}
	for _, tc := range tests {
		if got := itemPresent(gjson.Get(tc.body, "item")); got != tc.want {
			t.Errorf("itemPresent(%s) = %v, want %v", tc.body, got, tc.want)
		}
	}
}

func TestDispatchInventoryFailure(t *testing.T) {
	gw := &fakeGateway{err: &gateway.RemoteError{Message: "EZOI is down", Status: 500}}
	d, conv := newTestDispatcher(gw)

	out := d.Dispatch(context.Background(), Request{Input: "/ezoi asset 1234"})
	require.Error(t, out.Err)
	assert.True(t, gateway.IsRemoteError(out.Err))

	turns := conv.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, model.RoleSystem, turns[1].Role)
	assert.True(t, strings.HasPrefix(turns[1].Text, "Searching EZOI"))
	assert.Equal(t, model.RoleAssistant, turns[2].Role)
	assert.Equal(t, "An error occurred: EZOI is down", turns[2].Text)
}

func TestDispatchMalformedMakesNoCall(t *testing.T) {
	gw := &fakeGateway{}
	d, conv := newTestDispatcher(gw)

	out := d.Dispatch(context.Background(), Request{Input: "/ezoi bogus 12"})

	var merr *MalformedCommandError
	require.ErrorAs(t, out.Err, &merr)
	assert.Nil(t, out.Intent)
	assert.Empty(t, gw.calls)

	last, ok := conv.Last()
	require.True(t, ok)
	assert.Equal(t, model.RoleAssistant, last.Role)
	assert.Contains(t, last.Text, "/ezoi <asset|inventory> <number>")
}

func TestDispatchHelp(t *testing.T) {
	gw := &fakeGateway{}
	d, conv := newTestDispatcher(gw)

	out := d.Dispatch(context.Background(), Request{Input: "/help"})
	require.NoError(t, out.Err)
	assert.Equal(t, Help{}, out.Intent)
	assert.Empty(t, gw.calls)

	last, _ := conv.Last()
	assert.Contains(t, last.Text, "Logistics Resource Page")
	assert.Contains(t, last.Text, DefaultResourceURL)
}

func TestDispatchHelpResourceURL(t *testing.T) {
	conv := model.NewConversation()
	d := NewDispatcher(&fakeGateway{}, conv, WithResourceURL("https://example.com/guide"))

	d.Dispatch(context.Background(), Request{Input: "/help"})
	last, _ := conv.Last()
	assert.Contains(t, last.Text, "(https://example.com/guide)")
}

func TestDispatchFreeText(t *testing.T) {
	gw := &fakeGateway{body: `{"candidates":[{"content":{"parts":[{"text":"It ships Monday."}]}}]}`}
	d, conv := newTestDispatcher(gw)
	conv.AppendWelcomeIfEmpty()
	conv.AppendAssistant("Hello there")

	ticket := &model.Ticket{ID: "T-9", Program: model.ProgramEZOI, ItemNumber: "1234"}
	out := d.Dispatch(context.Background(), Request{Input: "When does it ship?", LinkedTicket: ticket})
	require.NoError(t, out.Err)

	require.Len(t, gw.calls, 1)
	req, ok := gw.calls[0].(gateway.AIRequest)
	require.True(t, ok)
	assert.Equal(t, gateway.ActionGetAIResponse, req.Action)
	assert.Equal(t, BuildPrompt(
		[]model.Turn{model.NewWelcomeTurn(), model.NewAssistantTurn("Hello there")},
		ticket, "When does it ship?"), req.Prompt)

	last, _ := conv.Last()
	assert.Equal(t, model.RoleAssistant, last.Role)
	assert.Equal(t, "It ships Monday.", last.Text)
	assert.Equal(t, 4, conv.Len())
}

func TestDispatchFreeTextFallback(t *testing.T) {
	gw := &fakeGateway{body: `{"candidates":[]}`}
	d, conv := newTestDispatcher(gw)

	out := d.Dispatch(context.Background(), Request{Input: "hi"})
	require.NoError(t, out.Err)

	last, _ := conv.Last()
	assert.Equal(t, FallbackReply, last.Text)
}

func TestDispatchFreeTextFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection refused")}
	d, conv := newTestDispatcher(gw)

	out := d.Dispatch(context.Background(), Request{Input: "hi"})
	require.Error(t, out.Err)

	last, _ := conv.Last()
	assert.Equal(t, "An error occurred: connection refused", last.Text)
}

func TestDispatchTrainingCorrection(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantLast string
	}{
		{"saved", nil, TrainingSavedMessage},
		{"failed", &gateway.RemoteError{Message: "sheet locked"}, "Error saving training data: sheet locked"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{body: `{"status":"success"}`, err: tc.err}
			d, conv := newTestDispatcher(gw)

			out := d.Dispatch(context.Background(), Request{
				Input:               "/ezoi asset 1",
				DeveloperMode:       true,
				PendingExpertAnswer: "Use the asset tab.",
			})
			assert.Equal(t, TrainingCorrection{Question: "/ezoi asset 1", ExpertAnswer: "Use the asset tab."}, out.Intent)

			require.Len(t, gw.calls, 1)
			assert.Equal(t, gateway.TrainingDataRequest{
				Action:       gateway.ActionSaveTrainingData,
				UserQuestion: "/ezoi asset 1",
				ExpertAnswer: "Use the asset tab.",
			}, gw.calls[0])

			turns := conv.Turns()
			require.Len(t, turns, 3)
			assert.Equal(t, model.RoleUser, turns[0].Role)
			assert.Equal(t, model.RoleDeveloper, turns[1].Role)
			assert.Equal(t, "Use the asset tab.", turns[1].Text)
			assert.Equal(t, model.RoleSystem, turns[2].Role)
			assert.Equal(t, tc.wantLast, turns[2].Text)
		})
	}
}

// =============================================================================
// PROMPT AND SUMMARY TESTS
// =============================================================================

func TestBuildPrompt(t *testing.T) {
	history := []model.Turn{
		model.NewWelcomeTurn(),
		model.NewUserTurn("hello"),
		model.NewAssistantTurn("Hi, how can I help?"),
	}

	got := BuildPrompt(history, nil, "where is PO-1?")
	want := Persona + " " + NoTicketContext + "\n\nHistory:\n" +
		"user: hello\n" +
		"assistant: Hi, how can I help?\n" +
		"user: where is PO-1?\n\nassistant:"
	assert.Equal(t, want, got)

	ticket := &model.Ticket{ID: "42", Program: model.ProgramWindchill, ItemNumber: "HW-0000-0001"}
	got = BuildPrompt(nil, ticket, "status?")
	assert.True(t, strings.HasPrefix(got, Persona+"\nCurrent Ticket Context: #42, Program: Windchill, Item: HW-0000-0001."))
	assert.NotContains(t, got, NoTicketContext)
}

func TestFormatItemSummary(t *testing.T) {
	item := gjson.Parse(`{
		"name": "Scope",
		"description": "",
		"product_model_number": "M-7",
		"vendor_name": null,
		"location_name": "Bldg 6",
		"net_quantity": 3,
		"custom_fields": [
			{"id": 35884, "value": "HW-1111-2222"},
			{"id": 35860, "value": ""}
		]
	}`)

	got := FormatItemSummary("asset", "1234", item)
	want := "EZOI Data for asset #1234:\n" +
		"Name: Scope\n" +
		"Description: N/A\n" +
		"Windchill #: HW-1111-2222\n" +
		"Model #: M-7\n" +
		"Vendor: N/A\n" +
		"Location: Bldg 6\n" +
		"PO #: N/A\n" +
		"Net Quantity: 3"
	assert.Equal(t, want, got)
}

func TestExtractReplyShape(t *testing.T) {
	_, err := ExtractReply(&gateway.Response{StatusCode: 200, Body: []byte(`{"candidates":[{"content":{}}]}`)})
	var serr *UnexpectedShapeError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, gateway.ActionGetAIResponse, serr.Action)
}

// =============================================================================
// COMPLETION TESTS
// =============================================================================

func TestComplete(t *testing.T) {
	c := NewCompleter(NewRegistry())

	tests := []struct {
		input string
		want  []string
	}{
		{"/", []string{"/ezoi", "/help"}},
		{"/he", []string{"/help"}},
		{"/ezoi ", []string{"asset", "inventory"}},
		{"/ezoi IN", []string{"inventory"}},
		{"/ezoi asset ", nil},
		{"hello", nil},
	}

	for _, tc := range tests {
		var got []string
		for _, comp := range c.Complete(tc.input) {
			got = append(got, comp.Value)
		}
		assert.ElementsMatch(t, tc.want, got, "Complete(%q)", tc.input)
	}
}

func TestCompleterLines(t *testing.T) {
	c := NewCompleter(NewRegistry())
	assert.Equal(t, []string{"/ezoi asset"}, c.Lines("/ezoi as"))
	assert.Equal(t, []string{"/help"}, c.Lines("/hel"))
}

func TestCompletionState(t *testing.T) {
	var cs CompletionState
	assert.False(t, cs.Active())
	assert.Equal(t, "", cs.Accept())

	cs.Update("/", []Completion{{Value: "/ezoi"}, {Value: "/help"}})
	assert.Equal(t, "/ezoi", cs.Accept())
	cs.Next()
	assert.Equal(t, "/help", cs.Accept())
	cs.Next()
	assert.Equal(t, "/ezoi", cs.Accept())

	cs.Clear()
	assert.False(t, cs.Active())
}
