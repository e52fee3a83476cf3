// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"
)

// Completion is one tab-completion candidate.
type Completion struct {
	Value       string // Text that replaces the word being completed
	Display     string
	Description string
	Score       int
}

// =============================================================================
// COMPLETER
// =============================================================================

// Completer offers command names and enum argument values for slash input.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a new completer with the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns candidates for the last word of input.
// Free text has no completions.
func (c *Completer) Complete(input string) []Completion {
	if !strings.HasPrefix(strings.TrimLeft(input, " \t"), "/") {
		return nil
	}

	parts := strings.Fields(input)
	trailingSpace := strings.HasSuffix(input, " ")

	// Still typing the command name?
	if len(parts) == 1 && !trailingSpace {
		return c.completeCommands(parts[0])
	}

	cmd := c.registry.Get(strings.ToLower(parts[0]))
	if cmd == nil {
		return nil
	}

	argIndex := len(parts) - 2
	partial := parts[len(parts)-1]
	if trailingSpace {
		argIndex++
		partial = ""
	}
	return c.completeArg(cmd, argIndex, partial)
}

// Lines returns whole replacement lines for input, the form line editors
// expect.
func (c *Completer) Lines(input string) []string {
	completions := c.Complete(input)
	if len(completions) == 0 {
		return nil
	}

	head := input
	if i := strings.LastIndexAny(input, " \t"); i >= 0 {
		head = input[:i+1]
	} else {
		head = ""
	}

	out := make([]string, 0, len(completions))
	for _, comp := range completions {
		out = append(out, head+comp.Value)
	}
	return out
}

func (c *Completer) completeCommands(partial string) []Completion {
	var completions []Completion
	partial = strings.ToLower(partial)

	for _, cmd := range c.registry.All() {
		if strings.HasPrefix(strings.ToLower(cmd.Name), partial) {
			completions = append(completions, Completion{
				Value:       cmd.Name,
				Display:     cmd.Name,
				Description: cmd.Description,
				Score:       calculateScore(cmd.Name, partial),
			})
		}
	}

	sortCompletions(completions)
	return completions
}

func (c *Completer) completeArg(cmd *Command, argIndex int, partial string) []Completion {
	if argIndex < 0 || argIndex >= len(cmd.Args) {
		return nil
	}

	arg := cmd.Args[argIndex]
	if arg.Type != ArgTypeEnum {
		return nil
	}

	var completions []Completion
	lower := strings.ToLower(partial)
	for _, value := range arg.Values {
		if strings.HasPrefix(value, lower) {
			completions = append(completions, Completion{
				Value:       value,
				Display:     value,
				Description: arg.Description,
				Score:       calculateScore(value, lower),
			})
		}
	}

	sortCompletions(completions)
	return completions
}

// calculateScore ranks a candidate. Higher is better.
func calculateScore(value, partial string) int {
	value = strings.ToLower(value)
	partial = strings.ToLower(partial)

	score := 100
	if value == partial {
		return score + 100
	}
	if strings.HasPrefix(value, partial) {
		score += 50
		score += 20 - len(value)
	}
	score -= len(value) / 2
	return score
}

// sortCompletions sorts completions by score (descending), then alphabetically.
func sortCompletions(completions []Completion) {
	sort.Slice(completions, func(i, j int) bool {
		if completions[i].Score != completions[j].Score {
			return completions[i].Score > completions[j].Score
		}
		return completions[i].Value < completions[j].Value
	})
}

// =============================================================================
// COMPLETION NAVIGATION
// =============================================================================

// CompletionState cycles through the candidates for one input.
type CompletionState struct {
	OriginalInput string
	Completions   []Completion
	Selected      int
}

// Update replaces the candidates and selects the first one.
func (cs *CompletionState) Update(input string, completions []Completion) {
	cs.OriginalInput = input
	cs.Completions = completions
	cs.Selected = 0
}

// Active reports whether there are candidates to cycle through.
func (cs *CompletionState) Active() bool {
	return len(cs.Completions) > 0
}

// Next moves to the next completion.
func (cs *CompletionState) Next() {
	if len(cs.Completions) == 0 {
		return
	}
	cs.Selected = (cs.Selected + 1) % len(cs.Completions)
}

// Accept returns the selected value, or "" when there is none.
func (cs *CompletionState) Accept() string {
	if cs.Selected < 0 || cs.Selected >= len(cs.Completions) {
		return ""
	}
	return cs.Completions[cs.Selected].Value
}

// Clear drops all candidates.
func (cs *CompletionState) Clear() {
	*cs = CompletionState{}
}
