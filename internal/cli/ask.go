// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question to the assistant.
//
// Examples:
//   logiassist ask "How do I transfer an asset?"
//   logiassist ask /help
//   logiassist ask --json where is the loading dock

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/logiassist-tui/internal/links"
	"github.com/jeranaias/logiassist-tui/internal/model"
)

// NewAskCommand builds "logiassist ask".
func NewAskCommand(root *RootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the assistant one question and print the reply",
		Long: `Ask sends one line to the assistant, exactly as if it were typed into
the chat, and prints the reply. Slash commands such as /help work too.`,
		Example: `  logiassist ask "How do I transfer an asset?"
  logiassist ask /help`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root)
			if err != nil {
				return err
			}
			defer a.Close()

			question := strings.Join(args, " ")
			a.session.Decline()
			outcome, err := a.session.Submit(cmd.Context(), question)
			if err != nil {
				return err
			}

			reply := lastText(a.session, model.RoleAssistant)
			data := AskData{Question: question, Reply: reply}
			return report(cmd, root.JSON, "ask", data, outcome.Err, func(w io.Writer) {
				fmt.Fprintln(w, links.Plain(reply))
			})
		},
	}
}
