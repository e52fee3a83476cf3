// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the palette and lipgloss styles for the logiassist
// TUI. All colors are lipgloss.AdaptiveColor values so they follow the
// terminal's light or dark background.
package styles
