// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER AND STATUS
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderHint  lipgloss.Style
	DevBadge    lipgloss.Style
	StatusBar   lipgloss.Style
	ShortcutKey lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	DeveloperBubble lipgloss.Style
	SystemBubble    lipgloss.Style
	RoleLabel       lipgloss.Style
	WelcomeCommands lipgloss.Style
	LinkStyle       lipgloss.Style

	// ==========================================================================
	// INPUT AREA
	// ==========================================================================

	InputContainer  lipgloss.Style
	ExpertContainer lipgloss.Style
	Spinner         lipgloss.Style
	ThinkingText    lipgloss.Style

	// ==========================================================================
	// OVERLAYS AND FORMS
	// ==========================================================================

	OverlayBox    lipgloss.Style
	OverlayTitle  lipgloss.Style
	FormLabel     lipgloss.Style
	FormChoice    lipgloss.Style
	FormSelected  lipgloss.Style
	ErrorText     lipgloss.Style
	SuccessText   lipgloss.Style
	MutedText     lipgloss.Style
	PreChatBox    lipgloss.Style
	PreChatButton lipgloss.Style
}

// NewTheme creates a theme for mode ("dark", "light" or "auto"). Auto asks
// the terminal for its background.
func NewTheme(mode string) *Theme {
	t := &Theme{ColorProfile: termenv.ColorProfile()}

	switch strings.ToLower(mode) {
	case "dark":
		t.IsDark = true
	case "light":
		t.IsDark = false
	default:
		t.IsDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(t.IsDark)

	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.HeaderHint = lipgloss.NewStyle().Foreground(TextMuted)
	t.DevBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Emerald).
		Padding(0, 1)
	t.StatusBar = lipgloss.NewStyle().Foreground(TextMuted).Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().Bold(true).Foreground(Indigo)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		Padding(0, 1).
		MarginLeft(4)
	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Background(AssistantBubbleBg).
		Padding(0, 1).
		MarginRight(4)
	t.DeveloperBubble = lipgloss.NewStyle().
		Foreground(DeveloperBubbleFg).
		Background(DeveloperBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(DeveloperBubbleBorder).
		Padding(0, 1)
	t.SystemBubble = lipgloss.NewStyle().
		Foreground(SystemBubbleFg).
		Background(SystemBubbleBg).
		Padding(0, 1).
		Align(lipgloss.Center)
	t.RoleLabel = lipgloss.NewStyle().Foreground(TextMuted)
	t.WelcomeCommands = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1).
		MarginTop(1)
	t.LinkStyle = lipgloss.NewStyle().Foreground(LinkColor).Underline(true)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(0, 1)
	t.ExpertContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Emerald).
		Padding(0, 1)
	t.Spinner = lipgloss.NewStyle().Foreground(Indigo)
	t.ThinkingText = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	t.OverlayBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(1, 2)
	t.OverlayTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary).MarginBottom(1)
	t.FormLabel = lipgloss.NewStyle().Foreground(TextSecondary)
	t.FormChoice = lipgloss.NewStyle().Foreground(TextSecondary).Padding(0, 1)
	t.FormSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 1)
	t.ErrorText = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.SuccessText = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.MutedText = lipgloss.NewStyle().Foreground(TextMuted)
	t.PreChatBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 2).
		Align(lipgloss.Center)
	t.PreChatButton = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 2)
}

// BubbleFor returns the bubble style for a role name.
func (t *Theme) BubbleFor(role string) lipgloss.Style {
	switch role {
	case "user":
		return t.UserBubble
	case "developer":
		return t.DeveloperBubble
	case "system":
		return t.SystemBubble
	default:
		return t.AssistantBubble
	}
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// BubbleWidth is the widest a message bubble may be at the current size.
func (t *Theme) BubbleWidth() int {
	switch t.GetLayoutMode() {
	case LayoutNarrow:
		return max(t.Width-6, 20)
	case LayoutMedium:
		return t.Width * 3 / 4
	default:
		return 80
	}
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
