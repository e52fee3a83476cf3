// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ticketform provides the support ticket form for the TUI.
package ticketform

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/logiassist-tui/internal/field"
	"github.com/jeranaias/logiassist-tui/internal/model"
	"github.com/jeranaias/logiassist-tui/internal/ticket"
	"github.com/jeranaias/logiassist-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SubmittedMsg is emitted when the backend confirms a ticket.
type SubmittedMsg struct {
	Ticket model.Ticket
}

// submitResultMsg carries the outcome of the submitTicket call.
type submitResultMsg struct {
	ticket *model.Ticket
	err    error
}

// =============================================================================
// FIELDS
// =============================================================================

// Field identifies a focusable form element.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldProgram
	FieldItemType
	FieldItemNumber
	FieldTitle
	FieldDescription
	FieldSubmit
	fieldCount
)

// KeyMap defines the form's key bindings.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Submit key.Binding
}

// DefaultKeyMap returns the default key bindings for the form.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("Tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("S-Tab", "previous field")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("<-", "previous choice")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("->", "next choice")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("C-s", "submit ticket")),
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the ticket form.
type Model struct {
	theme   *styles.Theme
	keyMap  KeyMap
	invoker ticket.Invoker

	name        textinput.Model
	email       textinput.Model
	itemNumber  textinput.Model
	title       textinput.Model
	description textarea.Model
	spinner     spinner.Model

	program  model.Program
	itemType model.ItemType
	focus    Field

	submitting bool
	errMsg     string
	lastTicket *model.Ticket

	width int
}

// New creates a form that submits through inv.
func New(theme *styles.Theme, inv ticket.Invoker) Model {
	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholder
		ti.CharLimit = 256
		ti.Width = 40
		return ti
	}
	itemNumber := newInput("Choose a program first")
	itemNumber.CharLimit = 64

	desc := textarea.New()
	desc.Placeholder = "Error Description (Optional)"
	desc.ShowLineNumbers = false
	desc.SetHeight(3)
	desc.SetWidth(40)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: styles.LineSpinner.Frames, FPS: styles.LineSpinner.Duration()}

	m := Model{
		theme:       theme,
		keyMap:      DefaultKeyMap(),
		invoker:     inv,
		name:        newInput("Your name"),
		email:       newInput("you@example.com"),
		itemNumber:  itemNumber,
		title:       newInput("Error Title / Summary (Optional)"),
		description: desc,
		spinner:     sp,
	}
	m.name.Focus()
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Focused returns the focused field.
func (m Model) Focused() Field {
	return m.focus
}

// Submitting reports whether a submission is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// Error returns the message of the last failed validation or submission.
func (m Model) Error() string {
	return m.errMsg
}

// LastTicket returns the most recently confirmed ticket, if any.
func (m Model) LastTicket() *model.Ticket {
	return m.lastTicket
}

// SetWidth sets the width available to the form.
func (m *Model) SetWidth(w int) {
	m.width = w
	inner := max(w-20, 20)
	m.name.Width = inner
	m.email.Width = inner
	m.itemNumber.Width = inner
	m.title.Width = inner
	m.description.SetWidth(inner)
}

// Request returns the form contents as a ticket request.
func (m Model) Request() ticket.Request {
	req := ticket.Request{
		UserName:         m.name.Value(),
		Email:            m.email.Value(),
		Program:          m.program,
		ItemNumber:       m.itemNumber.Value(),
		ErrorTitle:       m.title.Value(),
		ErrorDescription: m.description.Value(),
	}
	if m.program.UsesItemType() {
		req.ItemType = m.itemType
	}
	return req
}

// SetProgram selects a program. Changing it clears the item type and number.
func (m *Model) SetProgram(p model.Program) {
	if p == m.program {
		return
	}
	m.program = p
	m.itemType = ""
	m.itemNumber.SetValue("")
	m.itemNumber.Placeholder = "e.g., " + field.ItemNumberExample(p)
}

// SetItemType selects the EZOI item type.
func (m *Model) SetItemType(t model.ItemType) {
	m.itemType = t
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		return m.handleResult(msg)

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()
	case key.Matches(msg, m.keyMap.Next):
		// Tab inside the description moves on; down arrow stays in the text.
		if m.focus == FieldDescription && msg.String() == "down" {
			break
		}
		return m.moveFocus(1), nil
	case key.Matches(msg, m.keyMap.Prev):
		if m.focus == FieldDescription && msg.String() == "up" {
			break
		}
		return m.moveFocus(-1), nil
	case key.Matches(msg, m.keyMap.Left), key.Matches(msg, m.keyMap.Right):
		delta := 1
		if key.Matches(msg, m.keyMap.Left) {
			delta = -1
		}
		switch m.focus {
		case FieldProgram:
			m.SetProgram(cycle(model.Programs, m.program, delta))
			return m, nil
		case FieldItemType:
			m.SetItemType(cycle(model.ItemTypes, m.itemType, delta))
			return m, nil
		}
	case msg.Type == tea.KeyEnter && m.focus == FieldSubmit:
		return m.submit()
	case msg.Type == tea.KeyEnter && m.focus != FieldDescription:
		return m.moveFocus(1), nil
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused text field. The item number is
// re-formatted from scratch after every change.
func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FieldName:
		m.name, cmd = m.name.Update(msg)
	case FieldEmail:
		m.email, cmd = m.email.Update(msg)
	case FieldItemNumber:
		if m.program == "" {
			return m, nil
		}
		m.itemNumber, cmd = m.itemNumber.Update(msg)
		formatted := field.FormatItemNumber(m.program, m.itemNumber.Value())
		if formatted != m.itemNumber.Value() {
			m.itemNumber.SetValue(formatted)
			m.itemNumber.CursorEnd()
		}
	case FieldTitle:
		m.title, cmd = m.title.Update(msg)
	case FieldDescription:
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

func (m Model) moveFocus(delta int) Model {
	next := m.focus
	for {
		next = Field((int(next) + delta + int(fieldCount)) % int(fieldCount))
		if next == FieldItemType && !m.program.UsesItemType() {
			continue
		}
		break
	}
	m.focus = next

	m.name.Blur()
	m.email.Blur()
	m.itemNumber.Blur()
	m.title.Blur()
	m.description.Blur()
	switch m.focus {
	case FieldName:
		m.name.Focus()
	case FieldEmail:
		m.email.Focus()
	case FieldItemNumber:
		m.itemNumber.Focus()
	case FieldTitle:
		m.title.Focus()
	case FieldDescription:
		m.description.Focus()
	}
	return m
}

func (m Model) submit() (Model, tea.Cmd) {
	req := m.Request()
	if err := req.Validate(); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.errMsg = ""
	m.submitting = true
	inv := m.invoker
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			t, err := ticket.Submit(context.Background(), inv, req)
			return submitResultMsg{ticket: t, err: err}
		},
	)
}

func (m Model) handleResult(msg submitResultMsg) (Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		return m, nil
	}

	t := *msg.ticket
	m.lastTicket = &t
	m.title.SetValue("")
	m.description.Reset()
	m.itemNumber.SetValue("")
	return m, func() tea.Msg { return SubmittedMsg{Ticket: t} }
}

func cycle[T comparable](values []T, current T, delta int) T {
	idx := -1
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		if delta < 0 {
			return values[len(values)-1]
		}
		return values[0]
	}
	return values[(idx+delta+len(values))%len(values)]
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the form.
func (m Model) View() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.OverlayTitle.Render("Submit a Support Ticket"))
	b.WriteString("\n")

	row := func(f Field, label, value string) {
		marker := "  "
		if m.focus == f {
			marker = t.ShortcutKey.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(t.FormLabel.Render(label))
		b.WriteString("\n  ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	row(FieldName, "Name (Mandatory)", m.name.View())
	row(FieldEmail, "Email (Mandatory)", m.email.View())
	row(FieldProgram, "Program", renderChoices(t, model.Programs, m.program))
	if m.program.UsesItemType() {
		row(FieldItemType, "EZOI Item Type", renderChoices(t, model.ItemTypes, m.itemType))
	}

	label := "Item # (Mandatory)"
	if m.program != "" {
		label = string(m.program) + " "
		if m.program.UsesItemType() && m.itemType != "" {
			label += string(m.itemType) + " "
		}
		label += "# (Mandatory)"
	}
	row(FieldItemNumber, label, m.itemNumber.View())
	row(FieldTitle, "Error Title / Summary (Optional)", m.title.View())
	row(FieldDescription, "Error Description (Optional)", m.description.View())

	button := t.FormChoice.Render("[ Submit Ticket ]")
	if m.focus == FieldSubmit {
		button = t.FormSelected.Render("[ Submit Ticket ]")
	}
	if m.submitting {
		button = t.Spinner.Render(m.spinner.View()) + " " + t.ThinkingText.Render("Submitting...")
	}
	b.WriteString("\n  " + button + "\n")

	if m.errMsg != "" {
		b.WriteString("\n" + t.ErrorText.Render(m.errMsg) + "\n")
	} else if m.lastTicket != nil {
		b.WriteString("\n" + t.SuccessText.Render("Ticket #"+m.lastTicket.ID+" submitted.") + "\n")
	}

	b.WriteString("\n" + t.MutedText.Render("Tab/S-Tab move  <-/-> choose  C-s submit  Esc back to chat"))
	return t.OverlayBox.Render(b.String())
}

func renderChoices[T ~string](theme *styles.Theme, values []T, selected T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v == selected {
			parts = append(parts, theme.FormSelected.Render(string(v)))
		} else {
			parts = append(parts, theme.FormChoice.Render(string(v)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
