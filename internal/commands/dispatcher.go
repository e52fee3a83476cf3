// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeranaias/logiassist-tui/internal/gateway"
	"github.com/jeranaias/logiassist-tui/internal/model"
)

// DefaultResourceURL is the page linked from the /help reply.
const DefaultResourceURL = "https://commons.lbl.gov/spaces/ALSU/pages/205818555/EZ+Office+Inventory+Management+and+Tracking"

// Fixed reply texts.
const (
	TrainingSavedMessage = "Training data saved successfully!"
)

// Invoker sends one action payload to the backend.
// *gateway.Client is the production implementation.
type Invoker interface {
	Invoke(ctx context.Context, payload any) (*gateway.Response, error)
}

// =============================================================================
// DISPATCHER
// =============================================================================

// Request is one line of user input plus the session state it runs against.
type Request struct {
	Input               string
	DeveloperMode       bool
	PendingExpertAnswer string
	LinkedTicket        *model.Ticket
}

// Outcome reports what a dispatch did.
type Outcome struct {
	// Intent is the parsed intent, nil when parsing failed.
	Intent Intent

	// Err is the failure shown to the user, if any. It has already been
	// written to the conversation; callers use it for logging and exit codes.
	Err error
}

// Dispatcher parses input, runs the resulting intent and appends every
// produced turn to the conversation.
//
// A Dispatcher runs one request at a time. Callers serialize access; the
// session layer does this with its busy flag.
type Dispatcher struct {
	gw          Invoker
	conv        *model.Conversation
	parser      *Parser
	logger      *zap.Logger
	resourceURL string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatchLogger sets the logger. The default discards everything.
func WithDispatchLogger(logger *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithResourceURL overrides the /help link target.
func WithResourceURL(url string) DispatcherOption {
	return func(d *Dispatcher) {
		if url != "" {
			d.resourceURL = url
		}
	}
}

// WithParser overrides the parser, e.g. to add commands to the registry.
func WithParser(p *Parser) DispatcherOption {
	return func(d *Dispatcher) {
		if p != nil {
			d.parser = p
		}
	}
}

// NewDispatcher creates a dispatcher writing to conv and calling gw.
func NewDispatcher(gw Invoker, conv *model.Conversation, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		gw:          gw,
		conv:        conv,
		parser:      NewParser(NewRegistry()),
		logger:      zap.NewNop(),
		resourceURL: DefaultResourceURL,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parser returns the dispatcher's parser.
func (d *Dispatcher) Parser() *Parser {
	return d.parser
}

// Conversation returns the store the dispatcher writes to.
func (d *Dispatcher) Conversation() *model.Conversation {
	return d.conv
}

// Dispatch parses req.Input and runs it. A malformed slash command appends
// the user turn and a usage reply without calling the gateway.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Outcome {
	intent, err := d.parser.Parse(req.Input, ParseState{
		DeveloperMode:       req.DeveloperMode,
		PendingExpertAnswer: req.PendingExpertAnswer,
	})
	if err != nil {
		d.logger.Info("malformed command", zap.String("input", req.Input), zap.Error(err))
		d.conv.AppendUser(req.Input)
		d.conv.AppendAssistant(err.Error())
		return Outcome{Err: err}
	}
	return Outcome{Intent: intent, Err: d.Execute(ctx, req.Input, intent, req.LinkedTicket)}
}

// Execute runs an already parsed intent. input is the raw text shown as the
// user turn.
func (d *Dispatcher) Execute(ctx context.Context, input string, intent Intent, linked *model.Ticket) error {
	d.logger.Debug("dispatch", zap.String("intent", intent.Kind()))

	if tc, ok := intent.(TrainingCorrection); ok {
		return d.saveTraining(ctx, tc)
	}

	history := d.conv.Turns()
	d.conv.AppendUser(input)

	switch it := intent.(type) {
	case Help:
		d.conv.AppendAssistant(HelpText(d.resourceURL))
		return nil
	case InventoryLookup:
		return d.lookup(ctx, it)
	case FreeText:
		return d.ask(ctx, BuildPrompt(history, linked, it.Text))
	default:
		return fmt.Errorf("unknown intent %T", intent)
	}
}

// Lookup runs an inventory lookup without a user turn. The pre-chat
// inventory prompt uses it after appending its own user turn.
func (d *Dispatcher) Lookup(ctx context.Context, l InventoryLookup) error {
	return d.lookup(ctx, l)
}

// HelpText is the fixed /help reply.
func HelpText(resourceURL string) string {
	return "For detailed guides and resources, you can visit the [Logistics Resource Page](" + resourceURL +
		"). It's a great place to find information on inventory management and tracking."
}

// ErrorText is the assistant turn shown for a failed remote call.
func ErrorText(err error) string {
	return "An error occurred: " + err.Error()
}

// =============================================================================
// HANDLERS
// =============================================================================

func (d *Dispatcher) lookup(ctx context.Context, l InventoryLookup) error {
	itemType := l.ItemType.Wire()
	shown := l.DisplayType()
	d.conv.AppendSystem(fmt.Sprintf("Searching EZOI for %s #%s...", shown, l.ItemNumber))

	resp, err := d.gw.Invoke(ctx, gateway.EzoiDataRequest{
		Action:     gateway.ActionGetEzoiData,
		ItemType:   itemType,
		ItemNumber: l.ItemNumber,
	})
	if err != nil {
		d.logger.Warn("inventory lookup failed",
			zap.String("item_type", itemType),
			zap.String("item_number", l.ItemNumber),
			zap.Error(err))
		d.conv.AppendAssistant(ErrorText(err))
		return err
	}

	item := resp.Get("item")
	if !itemPresent(item) {
		d.conv.AppendAssistant(NotFoundMessage(shown, l.ItemNumber))
		return nil
	}
	d.conv.AppendAssistant(FormatItemSummary(shown, l.ItemNumber, item))
	return nil
}

func (d *Dispatcher) ask(ctx context.Context, prompt string) error {
	resp, err := d.gw.Invoke(ctx, gateway.AIRequest{
		Action: gateway.ActionGetAIResponse,
		Prompt: prompt,
	})
	if err != nil {
		d.logger.Warn("assistant request failed", zap.Error(err))
		d.conv.AppendAssistant(ErrorText(err))
		return err
	}

	reply, err := ExtractReply(resp)
	if err != nil {
		d.logger.Warn("unexpected assistant reply", zap.Error(err))
		reply = FallbackReply
	}
	d.conv.AppendAssistant(reply)
	return nil
}

func (d *Dispatcher) saveTraining(ctx context.Context, tc TrainingCorrection) error {
	d.conv.AppendUser(tc.Question)
	d.conv.AppendDeveloper(tc.ExpertAnswer)

	_, err := d.gw.Invoke(ctx, gateway.TrainingDataRequest{
		Action:       gateway.ActionSaveTrainingData,
		UserQuestion: tc.Question,
		ExpertAnswer: tc.ExpertAnswer,
	})
	if err != nil {
		d.logger.Warn("saving training data failed", zap.Error(err))
		d.conv.AppendSystem("Error saving training data: " + err.Error())
		return err
	}
	d.conv.AppendSystem(TrainingSavedMessage)
	return nil
}
