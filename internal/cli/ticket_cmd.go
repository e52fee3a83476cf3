// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ticket_cmd.go - Submit a support ticket from the command line.
//
// Examples:
//   logiassist ticket --name Pat --email pat@lbl.gov --program EZOI \
//       --item-type asset --item 1234 --title "Wrong location"
//   logiassist ticket --name Pat --email pat@lbl.gov --program Windchill \
//       --item hw12345678
//
// The item number is formatted the same way the ticket form formats it
// while typing. Validation and remote failures exit with status 1.

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jeranaias/logiassist-tui/internal/field"
	"github.com/jeranaias/logiassist-tui/internal/model"
	"github.com/jeranaias/logiassist-tui/internal/ticket"
)

// TicketFlags are the ticket form fields as flags.
type TicketFlags struct {
	Name        string
	Email       string
	Program     string
	ItemType    string
	Item        string
	Title       string
	Description string
}

// BindFlags registers the flags on fs.
func (f *TicketFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Name, "name", f.Name, "your name (required)")
	fs.StringVar(&f.Email, "email", f.Email, "your email (required)")
	fs.StringVar(&f.Program, "program", f.Program, "EZOI or Windchill (required)")
	fs.StringVar(&f.ItemType, "item-type", f.ItemType, "asset or inventory (EZOI only)")
	fs.StringVar(&f.Item, "item", f.Item, "item number, e.g. 1234 or HW-0000-0000 (required)")
	fs.StringVar(&f.Title, "title", f.Title, "error title or summary")
	fs.StringVar(&f.Description, "description", f.Description, "error description")
}

// Request converts the flags into a ticket request. Unknown program or item
// type names become validation errors.
func (f *TicketFlags) Request() (ticket.Request, error) {
	req := ticket.Request{
		UserName:         f.Name,
		Email:            f.Email,
		ErrorTitle:       f.Title,
		ErrorDescription: f.Description,
	}

	if f.Program != "" {
		program, err := model.ParseProgram(f.Program)
		if err != nil {
			return req, &ticket.ValidationError{Field: "program", Message: err.Error()}
		}
		req.Program = program
	}
	if f.ItemType != "" && req.Program.UsesItemType() {
		itemType, ok := model.ParseItemType(f.ItemType)
		if !ok {
			return req, &ticket.ValidationError{
				Field:   "itemType",
				Message: fmt.Sprintf("unknown item type %q (expected asset or inventory)", f.ItemType),
			}
		}
		req.ItemType = itemType
	}
	req.ItemNumber = field.FormatItemNumber(req.Program, f.Item)

	return req, req.Validate()
}

// NewTicketCommand builds "logiassist ticket".
func NewTicketCommand(root *RootFlags) *cobra.Command {
	f := &TicketFlags{}

	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Submit a support ticket",
		Example: `  logiassist ticket --name Pat --email pat@lbl.gov --program EZOI --item-type asset --item 1234
  logiassist ticket --name Pat --email pat@lbl.gov --program Windchill --item HW-1234-5678`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := f.Request()
			if err != nil {
				return report(cmd, root.JSON, "ticket", nil, err, func(io.Writer) {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", ErrorStyle.Render("[ERROR]"), err)
				})
			}

			a, err := newApp(root)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := ticket.Submit(cmd.Context(), a.client, req)
			if err != nil {
				return report(cmd, root.JSON, "ticket", nil, err, func(io.Writer) {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", ErrorStyle.Render("[ERROR]"), err)
				})
			}

			data := TicketData{Ticket: *t, Notice: t.LinkedNotice()}
			return report(cmd, root.JSON, "ticket", data, nil, func(w io.Writer) {
				fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf("Ticket #%s submitted.", t.ID)))
				fmt.Fprintln(w, DimStyle.Render(t.LinkedNotice()))
			})
		},
	}

	f.BindFlags(cmd.Flags())
	return cmd
}
