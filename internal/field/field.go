// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package field normalizes raw keystrokes into item number formats.
//
// Every formatter is pure and re-derives its output from the whole raw value,
// so it can be applied on every keystroke. Formatters never fail and are
// idempotent: Format(Format(x)) == Format(x).
package field

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"

	"github.com/jeranaias/logiassist-tui/internal/model"
)

const (
	// EZOIItemNumberLen is the fixed length of an EZOI item number.
	EZOIItemNumberLen = 4

	// WindchillItemNumberLen is the length of a complete Windchill number (PREFIX-####-####).
	WindchillItemNumberLen = 12
)

var (
	ezoiItemNumberRe      = regexp.MustCompile(`^\d{4}$`)
	windchillItemNumberRe = regexp.MustCompile(`^(AL|HW)-\d{4}-\d{4}$`)

	// windchillGroupsRe splits a cleaned value into prefix and up to two digit groups.
	// Anything after the second group is discarded.
	windchillGroupsRe = regexp.MustCompile(`^(HW|AL)-?(\d{0,4})-?(\d{0,4}).*$`)
	windchillCharsRe  = regexp.MustCompile(`[^A-Z0-9-]`)
)

// =============================================================================
// EZOI
// =============================================================================

// FormatEZOIItemNumber keeps the first four digits of raw.
func FormatEZOIItemNumber(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) > EZOIItemNumberLen {
		digits = digits[:EZOIItemNumberLen]
	}
	return digits
}

// ValidEZOIItemNumber reports whether s is exactly four digits.
func ValidEZOIItemNumber(s string) bool {
	return ezoiItemNumberRe.MatchString(s)
}

// FormatInventoryEntry keeps every digit of raw. It backs the pre-chat
// inventory prompt, which has no length cap.
func FormatInventoryEntry(raw string) string {
	return digitsOnly(raw)
}

// =============================================================================
// WINDCHILL
// =============================================================================

// FormatWindchillItemNumber upper-cases raw, drops characters outside
// [A-Z0-9-] and regroups the result as PREFIX-####-####.
//
// A value that is still being typed ("H", "A") is kept as is so the prefix
// can be entered one keystroke at a time. Any other value that does not start
// with HW or AL normalizes to the empty string.
func FormatWindchillItemNumber(raw string) string {
	cleaned := windchillCharsRe.ReplaceAllString(strings.ToUpper(width.Fold.String(raw)), "")

	m := windchillGroupsRe.FindStringSubmatch(cleaned)
	if m == nil {
		if cleaned == "H" || cleaned == "A" {
			return cleaned
		}
		return ""
	}

	var b strings.Builder
	b.WriteString(m[1])
	if m[2] != "" {
		b.WriteString("-")
		b.WriteString(m[2])
	}
	if m[3] != "" {
		b.WriteString("-")
		b.WriteString(m[3])
	}

	out := b.String()
	if len(out) > WindchillItemNumberLen {
		out = out[:WindchillItemNumberLen]
	}
	return out
}

// ValidWindchillItemNumber reports whether s is a complete (AL|HW)-####-#### number.
func ValidWindchillItemNumber(s string) bool {
	return windchillItemNumberRe.MatchString(s)
}

// =============================================================================
// PROGRAM DISPATCH
// =============================================================================

// FormatItemNumber applies the formatter for program. Unknown programs pass
// raw through unchanged.
func FormatItemNumber(program model.Program, raw string) string {
	switch program {
	case model.ProgramEZOI:
		return FormatEZOIItemNumber(raw)
	case model.ProgramWindchill:
		return FormatWindchillItemNumber(raw)
	default:
		return raw
	}
}

// ValidItemNumber applies the validity predicate for program.
func ValidItemNumber(program model.Program, s string) bool {
	switch program {
	case model.ProgramEZOI:
		return ValidEZOIItemNumber(s)
	case model.ProgramWindchill:
		return ValidWindchillItemNumber(s)
	default:
		return false
	}
}

// ItemNumberExample is the placeholder shown for program.
func ItemNumberExample(program model.Program) string {
	switch program {
	case model.ProgramEZOI:
		return "1234"
	case model.ProgramWindchill:
		return "HW-0000-0000"
	default:
		return ""
	}
}

// digitsOnly returns the ASCII digits of raw, after folding full-width
// digits to their ASCII form.
func digitsOnly(raw string) string {
	folded := width.Fold.String(raw)
	var b strings.Builder
	b.Grow(len(folded))
	for i := 0; i < len(folded); i++ {
		if c := folded[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
