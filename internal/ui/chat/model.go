// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/logiassist-tui/internal/commands"
	"github.com/jeranaias/logiassist-tui/internal/field"
	"github.com/jeranaias/logiassist-tui/internal/session"
	"github.com/jeranaias/logiassist-tui/internal/ticket"
	"github.com/jeranaias/logiassist-tui/internal/ui/styles"
	"github.com/jeranaias/logiassist-tui/internal/ui/ticketform"
)

// =============================================================================
// SCREENS
// =============================================================================

// Screen is the view currently in front.
type Screen int

const (
	ScreenChat   Screen = iota // Pre-chat prompt or transcript
	ScreenTicket               // Ticket form overlay
	ScreenLog                  // API response log overlay
)

const (
	chatPlaceholder      = "Type your message or command..."
	devChatPlaceholder   = "Enter the user's question here..."
	expertPlaceholder    = "Enter the correct expert response here..."
	inventoryPlaceholder = "Inventory # (digits only)"

	busyNotice      = "Please wait for the current request to finish."
	inventoryNotice = "Please enter an inventory number, or press Ctrl+N to just chat."
)

// Backend is what the chat view needs from the gateway: ticket submission
// and the raw body of the most recent response for the API log.
type Backend interface {
	ticket.Invoker
	LastResponse() json.RawMessage
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	theme   *styles.Theme
	keyMap  KeyMap
	logger  *zap.Logger
	session *session.Session
	backend Backend

	completer  *commands.Completer
	completion commands.CompletionState

	screen Screen
	form   ticketform.Model

	width  int
	height int

	viewport  viewport.Model
	input     textinput.Model
	expert    textarea.Model
	inventory textinput.Model
	spinner   spinner.Model

	focusExpert  bool
	showCommands bool
	busy         bool
	statusMsg    string
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for UI events.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates the chat view for sess. backend submits tickets and feeds the
// API log.
func New(theme *styles.Theme, sess *session.Session, backend Backend, opts ...Option) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = chatPlaceholder
	input.CharLimit = 4000
	input.Width = 60

	inventory := textinput.New()
	inventory.Prompt = ""
	inventory.Placeholder = inventoryPlaceholder
	inventory.CharLimit = 32
	inventory.Width = 24
	inventory.Focus()

	expert := textarea.New()
	expert.Placeholder = expertPlaceholder
	expert.ShowLineNumbers = false
	expert.SetHeight(3)
	expert.SetWidth(60)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: styles.DotsSpinner.Frames, FPS: styles.DotsSpinner.Duration()}
	sp.Style = theme.Spinner

	m := Model{
		theme:     theme,
		keyMap:    DefaultKeyMap(),
		logger:    zap.NewNop(),
		session:   sess,
		backend:   backend,
		completer: commands.NewCompleter(sess.Registry()),
		form:      ticketform.New(theme, backend),
		viewport:  viewport.New(80, 20),
		input:     input,
		expert:    expert,
		inventory: inventory,
		spinner:   sp,
	}
	for _, opt := range opts {
		opt(&m)
	}

	if sess.State().Phase == session.PhaseActive {
		m.input.Focus()
		m.inventory.Blur()
	}
	m.syncPlaceholder()
	m.refreshTranscript()
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Screen returns the view currently in front.
func (m Model) Screen() Screen {
	return m.screen
}

// Busy reports whether the view is waiting on a command.
func (m Model) Busy() bool {
	return m.busy
}

// Status returns the transient notice shown above the status bar.
func (m Model) Status() string {
	return m.statusMsg
}

// ShowingCommands reports whether the welcome turn lists the commands.
func (m Model) ShowingCommands() bool {
	return m.showCommands
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case DispatchDoneMsg:
		return m.handleDispatchDone(msg)

	case InventoryDoneMsg:
		return m.handleInventoryDone(msg)

	case ticketform.SubmittedMsg:
		return m.handleTicketSubmitted(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			m.refreshTranscript()
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// The form's own result messages arrive here even after it is closed.
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// View renders the current screen.
func (m Model) View() string {
	return m.render()
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	inner := max(msg.Width-6, 20)
	m.input.Width = inner - len(m.input.Prompt)
	m.expert.SetWidth(inner)
	m.form.SetWidth(msg.Width)

	m.viewport.Width = msg.Width
	m.viewport.Height = m.transcriptHeight()
	m.refreshTranscript()
	return m, nil
}

// transcriptHeight is the terminal height minus the fixed rows:
// header, input box (3), optional expert box (5), notice and status bar.
func (m Model) transcriptHeight() int {
	fixed := 1 + 3 + 1 + 1
	if m.session.State().DeveloperMode {
		fixed += 5
	}
	return max(m.height-fixed, 3)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenTicket:
		return m.handleTicketKey(msg)
	case ScreenLog:
		if key.Matches(msg, m.keyMap.Close, m.keyMap.APILog) {
			m.screen = ScreenChat
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Ticket):
		return m.openTicketForm()
	case key.Matches(msg, m.keyMap.APILog):
		m.screen = ScreenLog
		return m, nil
	}

	if m.session.State().Phase == session.PhasePreChat {
		return m.handlePreChatKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m Model) handleTicketKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Close) {
		m.screen = ScreenChat
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) openTicketForm() (tea.Model, tea.Cmd) {
	if !m.form.Submitting() {
		m.form = ticketform.New(m.theme, m.backend)
		m.form.SetWidth(m.width)
	}
	m.screen = ScreenTicket
	return m, m.form.Init()
}

func (m Model) handlePreChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Decline):
		m.session.Decline()
		m.logger.Debug("inventory prompt declined")
		return m.enterChat(), nil

	case key.Matches(msg, m.keyMap.Submit):
		if m.busy {
			m.statusMsg = busyNotice
			return m, nil
		}
		raw := m.inventory.Value()
		if field.FormatInventoryEntry(raw) == "" {
			m.statusMsg = inventoryNotice
			return m, nil
		}
		m.busy = true
		m.statusMsg = ""
		m.inventory.Reset()
		return m, tea.Batch(inventoryCmd(m.session, raw), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.inventory, cmd = m.inventory.Update(msg)
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keyMap.Complete) {
		m.completion.Clear()
	}

	switch {
	case key.Matches(msg, m.keyMap.DevMode):
		on := m.session.ToggleDeveloperMode()
		m.logger.Info("developer mode toggled", zap.Bool("on", on))
		if !on {
			m.expert.Reset()
			m.focusInput()
		}
		m.syncPlaceholder()
		m.viewport.Height = m.transcriptHeight()
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keyMap.Commands):
		m.showCommands = !m.showCommands
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keyMap.SwitchFocus):
		if m.session.State().DeveloperMode {
			if m.focusExpert {
				m.focusInput()
			} else {
				m.focusExpert = true
				m.input.Blur()
				return m, m.expert.Focus()
			}
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keyMap.ScrollTop):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keyMap.ScrollBottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	if m.focusExpert {
		var cmd tea.Cmd
		m.expert, cmd = m.expert.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()
	case key.Matches(msg, m.keyMap.Complete):
		return m.complete(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// complete fills the input with the next completion candidate.
func (m Model) complete() Model {
	if !m.completion.Active() {
		value := m.input.Value()
		m.completion.Update(value, m.completer.Complete(value))
		if !m.completion.Active() {
			return m
		}
	} else {
		m.completion.Next()
	}
	m.input.SetValue(replaceLastWord(m.completion.OriginalInput, m.completion.Accept()))
	m.input.CursorEnd()
	return m
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}
	if m.busy {
		m.statusMsg = busyNotice
		return m, nil
	}

	if m.session.State().DeveloperMode {
		m.session.SetExpertAnswer(m.expert.Value())
	}
	m.busy = true
	m.statusMsg = ""
	m.input.Reset()
	m.refreshTranscript()
	return m, tea.Batch(submitCmd(m.session, text), m.spinner.Tick)
}

// =============================================================================
// RESULT HANDLING
// =============================================================================

func (m Model) handleDispatchDone(msg DispatchDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	switch {
	case errors.Is(msg.Err, session.ErrBusy):
		m.statusMsg = busyNotice
	case msg.Err != nil:
		m.statusMsg = msg.Err.Error()
	}
	if _, ok := msg.Outcome.Intent.(commands.TrainingCorrection); ok {
		m.expert.Reset()
	}
	if msg.Outcome.Err != nil {
		m.logger.Debug("command failed", zap.Error(msg.Outcome.Err))
	}
	m.refreshTranscript()
	return m, nil
}

func (m Model) handleInventoryDone(msg InventoryDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	switch {
	case errors.Is(msg.Err, session.ErrNoInventoryNumber):
		m.statusMsg = inventoryNotice
		return m, nil
	case errors.Is(msg.Err, session.ErrBusy):
		m.statusMsg = busyNotice
		return m, nil
	}
	// Lookup failures are already in the transcript.
	return m.enterChat(), nil
}

func (m Model) handleTicketSubmitted(msg ticketform.SubmittedMsg) (tea.Model, tea.Cmd) {
	m.session.TicketSubmitted(msg.Ticket)
	m.screen = ScreenChat
	m.statusMsg = ""
	return m.enterChat(), nil
}

// =============================================================================
// HELPERS
// =============================================================================

// enterChat moves focus from the pre-chat prompt to the chat input.
func (m Model) enterChat() Model {
	m.inventory.Blur()
	if !m.focusExpert {
		m.input.Focus()
	}
	m.syncPlaceholder()
	m.viewport.Height = m.transcriptHeight()
	m.refreshTranscript()
	return m
}

func (m *Model) focusInput() {
	m.focusExpert = false
	m.expert.Blur()
	m.input.Focus()
}

func (m *Model) syncPlaceholder() {
	if m.session.State().DeveloperMode {
		m.input.Placeholder = devChatPlaceholder
	} else {
		m.input.Placeholder = chatPlaceholder
	}
}

// refreshTranscript re-renders the conversation into the viewport and
// scrolls to the newest turn.
func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// replaceLastWord swaps the word being typed at the end of input for word.
func replaceLastWord(input, word string) string {
	if i := strings.LastIndexAny(input, " \t"); i >= 0 {
		return input[:i+1] + word
	}
	return word
}
