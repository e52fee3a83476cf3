// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jeranaias/logiassist-tui/internal/gateway"
	"github.com/jeranaias/logiassist-tui/internal/model"
)

const (
	// Persona is the fixed instruction that opens every assistant prompt.
	Persona = "You are the Logistics AI Assistant. Provide concise, professional help. Keep responses to 1-3 sentences."

	// NoTicketContext replaces the ticket summary when no ticket is linked.
	NoTicketContext = "No ticket has been submitted yet."

	// FallbackReply is shown when an assistant reply has no text.
	FallbackReply = "I'm having trouble responding right now."

	// WelcomeText is the greeting shown for the welcome turn.
	WelcomeText = "Hello! I am the Logistics AI Assistant. You can ask me general questions or use commands for specific actions."

	// replyTextPath locates the reply text in a getAiResponse result.
	replyTextPath = "candidates.0.content.parts.0.text"
)

// BuildPrompt renders the single outbound prompt for a FreeText query.
//
// history is the conversation snapshot taken before the current input was
// appended. Each turn becomes one "role: text" line in store order; the
// welcome turn has no text and is skipped.
func BuildPrompt(history []model.Turn, linked *model.Ticket, input string) string {
	var b strings.Builder
	b.WriteString(Persona)
	if linked != nil {
		b.WriteString("\n")
		b.WriteString(linked.ContextSummary())
	} else {
		b.WriteString(" ")
		b.WriteString(NoTicketContext)
	}

	b.WriteString("\n\nHistory:\n")
	for _, t := range history {
		if !t.HasText() {
			continue
		}
		b.WriteString(t.Role.String())
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	b.WriteString("user: ")
	b.WriteString(input)
	b.WriteString("\n\nassistant:")
	return b.String()
}

// ExtractReply pulls the first candidate's first text part out of a
// getAiResponse reply.
func ExtractReply(resp *gateway.Response) (string, error) {
	text := resp.Get(replyTextPath)
	if text.Type != gjson.String || text.Str == "" {
		return "", &UnexpectedShapeError{Action: gateway.ActionGetAIResponse, Path: replyTextPath}
	}
	return text.Str, nil
}
