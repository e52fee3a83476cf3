// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system and the chat dispatcher.
package commands

import (
	"strings"

	"github.com/jeranaias/logiassist-tui/internal/model"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// MatchMode controls how a command name is compared with user input.
// Both modes ignore case.
type MatchMode int

const (
	MatchExact  MatchMode = iota // Input equals the name
	MatchPrefix                  // Input starts with the name
)

// Command represents a slash command that can be parsed into an Intent.
type Command struct {
	// Name is the command name (e.g., "/help")
	Name string

	// Description is shown in the welcome command list
	Description string

	// Usage shows argument syntax (e.g., "/ezoi <asset|inventory> <number>")
	Usage string

	// Args defines the expected arguments
	Args []ArgDef

	// Match selects exact or prefix matching
	Match MatchMode

	// Build turns the whitespace-split tokens (command first) into an Intent.
	Build func(cmd *Command, tokens []string) (Intent, error)
}

// ArgDef defines an argument for a command.
type ArgDef struct {
	// Name of the argument
	Name string

	// Required indicates if the argument must be provided
	Required bool

	// Type determines validation behavior
	Type ArgType

	// Description explains the argument
	Description string

	// Values for enum types
	Values []string
}

// ArgType indicates how an argument is validated.
type ArgType int

const (
	ArgTypeString ArgType = iota // Free-form string
	ArgTypeEnum                  // One of predefined values
)

// matches reports whether input (already trimmed) selects this command.
func (c *Command) matches(input string) bool {
	lower := strings.ToLower(input)
	name := strings.ToLower(c.Name)
	switch c.Match {
	case MatchPrefix:
		return strings.HasPrefix(lower, name)
	default:
		return lower == name
	}
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds the registered commands in registration order.
// Order matters: the first matching command wins.
type Registry struct {
	commands map[string]*Command
	ordered  []*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	if _, exists := r.commands[cmd.Name]; !exists {
		r.ordered = append(r.ordered, cmd)
	} else {
		for i, c := range r.ordered {
			if c.Name == cmd.Name {
				r.ordered[i] = cmd
			}
		}
	}
	r.commands[cmd.Name] = cmd
}

// Get retrieves a command by name.
func (r *Registry) Get(name string) *Command {
	return r.commands[name]
}

// All returns all registered commands in registration order.
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Usages returns the usage line of every command, for the welcome turn's
// command list.
func (r *Registry) Usages() []string {
	out := make([]string, 0, len(r.ordered))
	for _, c := range r.ordered {
		if c.Usage != "" {
			out = append(out, c.Usage)
		} else {
			out = append(out, c.Name)
		}
	}
	return out
}

// Lookup returns the first command that input selects, or nil.
func (r *Registry) Lookup(input string) *Command {
	for _, c := range r.ordered {
		if c.matches(input) {
			return c
		}
	}
	return nil
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/ezoi",
		Description: "Look up an EZOI asset or inventory item",
		Usage:       "/ezoi <asset|inventory> <number>",
		Args: []ArgDef{
			{
				Name:        "itemType",
				Required:    true,
				Type:        ArgTypeEnum,
				Values:      []string{"asset", "inventory"},
				Description: "Item type",
			},
			{Name: "itemNumber", Required: true, Type: ArgTypeString, Description: "Item number"},
		},
		Match: MatchPrefix,
		Build: buildInventoryLookup,
	})

	r.Register(&Command{
		Name:        "/help",
		Description: "Show where to find logistics guides",
		Match:       MatchExact,
		Build: func(*Command, []string) (Intent, error) {
			return Help{}, nil
		},
	})
}

// buildInventoryLookup requires exactly: /ezoi <asset|inventory> <number>.
// The item number is taken verbatim.
func buildInventoryLookup(cmd *Command, tokens []string) (Intent, error) {
	if len(tokens) != 1+len(cmd.Args) {
		return nil, &MalformedCommandError{Command: cmd.Name, Usage: cmd.Usage}
	}
	args := tokens[1:]
	if err := ValidateArgs(cmd, args); err != nil {
		return nil, &MalformedCommandError{Command: cmd.Name, Usage: cmd.Usage, Cause: err}
	}
	itemType, ok := model.ParseItemType(args[0])
	if !ok {
		return nil, &MalformedCommandError{Command: cmd.Name, Usage: cmd.Usage}
	}
	return InventoryLookup{ItemType: itemType, ItemNumber: args[1], TypedAs: args[0]}, nil
}
