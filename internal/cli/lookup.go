// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// lookup.go - One-shot EZOI item lookup.
//
// Examples:
//   logiassist lookup asset 1234
//   logiassist lookup inventory 00571 --json

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jeranaias/logiassist-tui/internal/model"
)

// NewLookupCommand builds "logiassist lookup".
func NewLookupCommand(root *RootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <asset|inventory> <number>",
		Short: "Look up an EZOI asset or inventory item",
		Example: `  logiassist lookup asset 1234
  logiassist lookup inventory 00571`,
		Args: exactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return []string{"asset", "inventory"}, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			itemType, ok := model.ParseItemType(args[0])
			if !ok {
				return &UsageError{Err: fmt.Errorf("item type must be asset or inventory, got %q", args[0])}
			}

			a, err := newApp(root)
			if err != nil {
				return err
			}
			defer a.Close()

			a.session.Decline()
			outcome, err := a.session.Submit(cmd.Context(), fmt.Sprintf("/ezoi %s %s", itemType.Wire(), args[1]))
			if err != nil {
				return err
			}

			summary := lastText(a.session, model.RoleAssistant)
			data := LookupData{ItemType: itemType.Wire(), ItemNumber: args[1], Summary: summary}
			return report(cmd, root.JSON, "lookup", data, outcome.Err, func(w io.Writer) {
				fmt.Fprintln(w, summary)
			})
		},
	}
}
