// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/logiassist-tui/internal/ui/chat"
	"github.com/jeranaias/logiassist-tui/internal/ui/styles"
)

// runTUI runs the full-screen chat until the user quits.
func runTUI(a *app) error {
	theme := styles.NewTheme(a.cfg.UI.Theme)
	m := chat.New(theme, a.session, a.client, chat.WithLogger(a.logger))

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI failed: %w", err)
	}
	return nil
}
