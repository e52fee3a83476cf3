// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
)

// =============================================================================
// PARSER
// =============================================================================

// ParseState is the part of the session state that changes how input parses.
type ParseState struct {
	DeveloperMode       bool
	PendingExpertAnswer string
}

// trainingArmed reports whether the next input completes a training pair.
func (s ParseState) trainingArmed() bool {
	return s.DeveloperMode && strings.TrimSpace(s.PendingExpertAnswer) != ""
}

// Parser turns user input into an Intent.
type Parser struct {
	registry *Registry
}

// NewParser creates a new parser with the given registry.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Registry returns the parser's command registry.
func (p *Parser) Registry() *Registry {
	return p.registry
}

// Parse applies the parsing rules in order:
//
//  1. Developer mode with a pending expert answer: the input is the question
//     half of a TrainingCorrection, whatever it looks like.
//  2. A registered slash command (/ezoi by prefix, /help exactly, both
//     case-insensitive).
//  3. Anything else is FreeText.
//
// A slash command with the wrong shape returns a *MalformedCommandError.
func (p *Parser) Parse(input string, state ParseState) (Intent, error) {
	if state.trainingArmed() {
		return TrainingCorrection{Question: input, ExpertAnswer: state.PendingExpertAnswer}, nil
	}

	trimmed := strings.TrimSpace(input)
	if cmd := p.registry.Lookup(trimmed); cmd != nil {
		return cmd.Build(cmd, strings.Fields(trimmed))
	}

	return FreeText{Text: input}, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// IsCommand returns true if the input appears to be a command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// ExtractCommandName extracts just the command name from input.
// e.g., "/ezoi asset 1234" -> "/ezoi"
func ExtractCommandName(input string) string {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return ""
	}
	fields := strings.Fields(input)
	return fields[0]
}

// ValidateArgs validates arguments against a command's argument definitions.
func ValidateArgs(cmd *Command, args []string) error {
	if cmd == nil {
		return nil
	}

	for i, argDef := range cmd.Args {
		if argDef.Required && i >= len(args) {
			return &ValidationError{
				Command:  cmd.Name,
				Arg:      argDef.Name,
				Message:  "required argument missing",
				Expected: argDef.Description,
			}
		}

		if i < len(args) && argDef.Type == ArgTypeEnum && len(argDef.Values) > 0 {
			valid := false
			for _, v := range argDef.Values {
				if strings.EqualFold(args[i], v) {
					valid = true
					break
				}
			}
			if !valid {
				return &ValidationError{
					Command:  cmd.Name,
					Arg:      argDef.Name,
					Message:  "invalid value",
					Got:      args[i],
					Expected: strings.Join(argDef.Values, ", "),
				}
			}
		}
	}

	return nil
}
