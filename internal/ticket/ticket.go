// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ticket validates and submits support tickets.
package ticket

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/logiassist-tui/internal/field"
	"github.com/jeranaias/logiassist-tui/internal/gateway"
	"github.com/jeranaias/logiassist-tui/internal/model"
)

// Messages shown for failed submissions.
const (
	MissingContactMessage = "Please fill out Name and Email."
	UnknownErrorMessage   = "The script returned an unknown error."
	MissingSheetMessage   = "Submission failed: Could not find the 'Tickets' tab in the Google Sheet."
)

// missingSheetMarker is what the backend says when its Tickets sheet is gone.
const missingSheetMarker = "Cannot read properties of null (reading 'appendRow')"

// Invoker sends one action payload to the backend.
type Invoker interface {
	Invoke(ctx context.Context, payload any) (*gateway.Response, error)
}

// Request is a ticket as entered in the form.
type Request struct {
	UserName         string
	Email            string
	Program          model.Program
	ItemType         model.ItemType
	ItemNumber       string
	ErrorTitle       string
	ErrorDescription string
}

// =============================================================================
// ERRORS
// =============================================================================

// ValidationError blocks a submission before any call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SubmitError is a failed submission, worded for the user.
type SubmitError struct {
	Cause error
}

func (e *SubmitError) Error() string {
	msg := e.Cause.Error()
	if strings.Contains(msg, missingSheetMarker) {
		return MissingSheetMessage
	}
	return "Failed to submit the ticket: " + msg
}

func (e *SubmitError) Unwrap() error {
	return e.Cause
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the fields in the order the form reports them: contact
// details first, then program, item type and item number.
func (r Request) Validate() error {
	if strings.TrimSpace(r.UserName) == "" || strings.TrimSpace(r.Email) == "" {
		return &ValidationError{Field: "contact", Message: MissingContactMessage}
	}

	switch r.Program {
	case model.ProgramEZOI, model.ProgramWindchill:
	default:
		return &ValidationError{Field: "program", Message: "Please choose a program (EZOI or Windchill)."}
	}

	if r.Program.UsesItemType() {
		if _, ok := model.ParseItemType(string(r.ItemType)); !ok {
			return &ValidationError{Field: "itemType", Message: "Please choose an EZOI item type (Asset or Inventory)."}
		}
	}

	if !field.ValidItemNumber(r.Program, r.ItemNumber) {
		return &ValidationError{
			Field:   "itemNumber",
			Message: fmt.Sprintf("Please enter a valid %s #. (e.g., %s)", r.Program, field.ItemNumberExample(r.Program)),
		}
	}
	return nil
}

// payload builds the submitTicket body. Windchill tickets carry no item type.
func (r Request) payload() gateway.SubmitTicketRequest {
	p := gateway.SubmitTicketRequest{
		Action:           gateway.ActionSubmitTicket,
		UserName:         r.UserName,
		Email:            r.Email,
		Program:          string(r.Program),
		ItemNumber:       r.ItemNumber,
		ErrorTitle:       r.ErrorTitle,
		ErrorDescription: r.ErrorDescription,
	}
	if r.Program.UsesItemType() {
		p.ItemType = string(r.ItemType)
	}
	return p
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submit validates r and files it. It returns a *ValidationError without
// calling the backend, or a *SubmitError when the backend does not confirm
// the ticket with status "success" and a ticketId.
func Submit(ctx context.Context, inv Invoker, r Request) (*model.Ticket, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	p := r.payload()
	resp, err := inv.Invoke(ctx, p)
	if err != nil {
		return nil, &SubmitError{Cause: err}
	}

	id := resp.Get("ticketId").String()
	if resp.Status() != gateway.StatusSuccess || id == "" {
		msg := resp.Message()
		if msg == "" {
			msg = UnknownErrorMessage
		}
		return nil, &SubmitError{Cause: errors.New(msg)}
	}

	return &model.Ticket{
		ID:               id,
		UserName:         r.UserName,
		Email:            r.Email,
		Program:          r.Program,
		ItemType:         model.ItemType(p.ItemType),
		ItemNumber:       r.ItemNumber,
		ErrorTitle:       r.ErrorTitle,
		ErrorDescription: r.ErrorDescription,
	}, nil
}
