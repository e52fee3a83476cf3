// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "fmt"

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError represents an argument validation error.
type ValidationError struct {
	Command  string
	Arg      string
	Message  string
	Got      string
	Expected string
}

func (e *ValidationError) Error() string {
	msg := e.Command + ": " + e.Message
	if e.Arg != "" {
		msg += " for argument '" + e.Arg + "'"
	}
	if e.Got != "" {
		msg += " (got: " + e.Got + ")"
	}
	if e.Expected != "" {
		msg += " - expected: " + e.Expected
	}
	return msg
}

// =============================================================================
// MALFORMED COMMAND ERROR
// =============================================================================

// MalformedCommandError is a slash command with the wrong shape. It is
// reported to the user as a usage message and never reaches the gateway.
type MalformedCommandError struct {
	Command string
	Usage   string
	Cause   error
}

// Error returns the user-facing usage message.
func (e *MalformedCommandError) Error() string {
	return fmt.Sprintf("Invalid command. Use format: `%s`", e.Usage)
}

func (e *MalformedCommandError) Unwrap() error {
	return e.Cause
}

// =============================================================================
// UNEXPECTED SHAPE ERROR
// =============================================================================

// UnexpectedShapeError means a successful reply lacked an expected field.
// It is logged and replaced with a default display string, never shown.
type UnexpectedShapeError struct {
	Action string
	Path   string
}

func (e *UnexpectedShapeError) Error() string {
	return fmt.Sprintf("%s reply has no %s", e.Action, e.Path)
}
