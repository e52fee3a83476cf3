// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared output styles for the CLI commands.
//
// Colors are disabled for non-TTY output and when NO_COLOR is set.

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/logiassist-tui/internal/model"
	"github.com/jeranaias/logiassist-tui/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES FOR ALL CLI COMMANDS
// =============================================================================

var (
	// TitleStyle is used for banners and headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Indigo)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Width(14)

	// SuccessStyle is used for confirmations
	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)

	// ErrorStyle is used for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// WarningStyle is used for notices
	WarningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// DimStyle is used for hints
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)

// roleStyles color the role label of each printed turn.
var roleStyles = map[model.Role]lipgloss.Style{
	model.RoleUser:      lipgloss.NewStyle().Foreground(styles.Indigo).Bold(true),
	model.RoleAssistant: lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true),
	model.RoleDeveloper: lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true),
	model.RoleSystem:    lipgloss.NewStyle().Foreground(styles.Amber),
}

// RenderRole renders the label printed before a turn.
func RenderRole(role model.Role) string {
	label := styles.RoleIndicators[string(role)] + " " + role.DisplayName() + ":"
	if st, ok := roleStyles[role]; ok {
		return st.Render(label)
	}
	return label
}

// RenderSeparator renders a horizontal rule of the given width.
func RenderSeparator(width int) string {
	if width <= 0 {
		width = 30
	}
	return DimStyle.Render(strings.Repeat("─", width))
}
