// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/pretty"

	"github.com/jeranaias/logiassist-tui/internal/commands"
	"github.com/jeranaias/logiassist-tui/internal/links"
	"github.com/jeranaias/logiassist-tui/internal/model"
	"github.com/jeranaias/logiassist-tui/internal/session"
	"github.com/jeranaias/logiassist-tui/internal/ui/styles"
)

const (
	headerTitle  = "AI Support Chat"
	noAPIContent = "No API response to display yet."
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// render draws the screen in front.
// Chat layout: header (1) + transcript (viewport) + notice (1) + input (3)
// + [expert box (5)] + status bar (1). transcriptHeight mirrors these rows.
func (m Model) render() string {
	switch m.screen {
	case ScreenTicket:
		return m.renderOverlay(m.form.View())
	case ScreenLog:
		return m.renderOverlay(m.renderAPILog())
	}

	if m.session.State().Phase == session.PhasePreChat {
		return m.renderPreChat()
	}

	parts := []string{
		m.renderHeader(),
		m.viewport.View(),
		m.renderNotice(),
		m.renderInput(),
	}
	if m.session.State().DeveloperMode {
		parts = append(parts, m.renderExpert())
	}
	parts = append(parts, m.renderStatusBar(m.keyMap.ShortHelp(m.session.State().DeveloperMode)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// =============================================================================
// HEADER AND STATUS
// =============================================================================

func (m Model) renderHeader() string {
	st := m.session.State()

	content := m.theme.HeaderTitle.Render(headerTitle)
	if st.DeveloperMode {
		content += " " + m.theme.DevBadge.Render("DEV")
	}
	if st.LinkedTicket != nil {
		content += m.theme.HeaderHint.Render(" | Ticket #" + st.LinkedTicket.ID)
	}
	content += m.theme.HeaderHint.Render(" | Ctrl+L API Log")

	return m.theme.Header.Width(m.contentWidth()).MaxHeight(1).Render(content)
}

func (m Model) renderNotice() string {
	if m.statusMsg == "" {
		return ""
	}
	return m.theme.ErrorText.Render(m.statusMsg)
}

func (m Model) renderStatusBar(bindings []key.Binding) string {
	items := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		items = append(items, m.theme.ShortcutKey.Render(h.Key)+" "+h.Desc)
	}
	return m.theme.StatusBar.Width(m.contentWidth()).MaxHeight(1).Render(strings.Join(items, "  "))
}

// =============================================================================
// INPUT AREA
// =============================================================================

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(max(m.contentWidth()-2, 10)).Render(m.input.View())
}

func (m Model) renderExpert() string {
	return m.theme.ExpertContainer.Width(max(m.contentWidth()-2, 10)).Render(m.expert.View())
}

// =============================================================================
// PRE-CHAT
// =============================================================================

func (m Model) renderPreChat() string {
	lines := []string{
		m.theme.OverlayTitle.Render("Chat with an AI Assistant"),
		"Do you have an inventory number?",
		"",
		m.inventory.View(),
		"",
		m.theme.PreChatButton.Render("Enter") + " Yes, start chat",
		m.theme.PreChatButton.Render("Ctrl+N") + " No, just ask a question",
		m.theme.PreChatButton.Render("Ctrl+T") + " Submit a ticket",
	}
	if m.busy {
		lines = append(lines, "", m.spinner.View()+m.theme.ThinkingText.Render(" Looking it up..."))
	}
	if m.statusMsg != "" {
		lines = append(lines, "", m.theme.ErrorText.Render(m.statusMsg))
	}

	box := m.theme.PreChatBox.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	body := box
	if m.height > 2 {
		body = lipgloss.Place(m.contentWidth(), m.height-2, lipgloss.Center, lipgloss.Center, box)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusBar(m.keyMap.PreChatHelp()),
	)
}

// =============================================================================
// OVERLAYS
// =============================================================================

func (m Model) renderOverlay(content string) string {
	if m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.contentWidth(), m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderAPILog pretty-prints the raw body of the last gateway response.
func (m Model) renderAPILog() string {
	body := noAPIContent
	if raw := m.backend.LastResponse(); len(raw) > 0 {
		body = strings.TrimRight(string(pretty.Pretty(raw)), "\n")
	}
	if m.height > 6 {
		lines := strings.Split(body, "\n")
		if limit := m.height - 6; len(lines) > limit {
			body = strings.Join(lines[:limit], "\n") + "\n..."
		}
	}
	return m.theme.OverlayBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.OverlayTitle.Render("API Response Log"),
		"",
		body,
		"",
		m.theme.MutedText.Render("Esc to close"),
	))
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderTranscript draws every turn in store order.
func (m Model) renderTranscript() string {
	turns := m.session.Conversation().Turns()
	blocks := make([]string, 0, len(turns)+1)
	for _, t := range turns {
		blocks = append(blocks, m.renderTurn(t))
	}
	if m.busy {
		blocks = append(blocks, m.spinner.View()+m.theme.ThinkingText.Render(" Thinking..."))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderTurn(t model.Turn) string {
	width := m.contentWidth()
	bubbleWidth := min(m.theme.BubbleWidth(), width-2)
	if bubbleWidth <= 0 {
		bubbleWidth = width
	}

	var body string
	switch {
	case t.IsWelcome:
		body = m.renderWelcome()
	case t.Role.RendersLinks():
		body = links.Render(t.Text, m.theme.LinkStyle)
	default:
		body = t.Text
	}

	label := m.theme.RoleLabel.Render(styles.RoleIndicators[string(t.Role)] + " " + t.Role.DisplayName())
	bubble := m.theme.BubbleFor(string(t.Role)).Width(bubbleWidth).Render(body)

	switch t.Role {
	case model.RoleUser:
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	case model.RoleSystem:
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, bubble)
	default:
		return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
	}
}

// renderWelcome draws the greeting and, when toggled on, the command list.
func (m Model) renderWelcome() string {
	lines := []string{commands.WelcomeText}
	if m.showCommands {
		lines = append(lines, "", "Available commands:")
		for _, usage := range m.session.Registry().Usages() {
			lines = append(lines, m.theme.WelcomeCommands.Render(usage))
		}
		lines = append(lines, "", m.theme.MutedText.Render("Ctrl+O hide commands"))
	} else {
		lines = append(lines, m.theme.MutedText.Render("Ctrl+O see commands"))
	}
	return strings.Join(lines, "\n")
}
