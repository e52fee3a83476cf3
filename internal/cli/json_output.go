// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for the one-shot commands.
//
// With --json, ask, lookup and ticket print one JSONResponse on stdout
// instead of styled text, so scripts can consume them.

package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/jeranaias/logiassist-tui/internal/model"
)

// JSONResponse is the response envelope for every command in JSON mode.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data any `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC3339 time the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data any) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a failed JSON response. data may carry the
// partial result, such as the error text the assistant showed.
func NewJSONErrorResponse(command string, data any, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      data,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the response to w as indented JSON.
func (r *JSONResponse) Print(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// AskData is the data returned by the ask command.
type AskData struct {
	Question string `json:"question"`
	Reply    string `json:"reply"`
}

// LookupData is the data returned by the lookup command.
type LookupData struct {
	ItemType   string `json:"item_type"`
	ItemNumber string `json:"item_number"`
	Summary    string `json:"summary"`
}

// TicketData is the data returned by the ticket command.
type TicketData struct {
	Ticket model.Ticket `json:"ticket"`
	Notice string       `json:"notice"`
}

// VersionData is the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}
