// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode chat for logiassist.
//
// Handles "logiassist repl" (alias "chat") and the root command when the
// terminal is not interactive. Input goes through the same session as the
// TUI; every new turn is printed after each line.
//
// Command: repl
// Aliases: chat
//
// Interactive Commands (during chat):
//   /ezoi <asset|inventory> <number>   Look up an EZOI item
//   /help                              Show the resource link
//   /commands                          List commands
//   /dev                               Toggle developer mode
//   /expert <answer>                   Set the expert answer (developer mode)
//   /log                               Show the last API response
//   /quit, /exit                       Exit chat
//   Ctrl+D                             Exit chat

package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"github.com/jeranaias/logiassist-tui/internal/commands"
	"github.com/jeranaias/logiassist-tui/internal/config"
	"github.com/jeranaias/logiassist-tui/internal/links"
	"github.com/jeranaias/logiassist-tui/internal/model"
	"github.com/jeranaias/logiassist-tui/internal/session"
	"github.com/jeranaias/logiassist-tui/internal/util"
)

// =============================================================================
// INPUT
// =============================================================================

// LineReader reads one line after showing prompt. io.EOF ends the chat.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// ChatCLI provides input history, line editing and command completion.
type ChatCLI struct {
	line        *liner.State
	historyFile string
	logger      *zap.Logger
}

// NewChatCLI creates a ChatCLI that completes slash commands with completer.
func NewChatCLI(completer *commands.Completer, logger *zap.Logger) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completer.Lines)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
		logger:      logger,
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line of input. Non-blank lines go into the history.
func (c *ChatCLI) Prompt(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history, owner read/write only.
func (c *ChatCLI) SaveHistory() {
	saveHistory(c.historyFile, c.line.WriteHistory, c.logger)
}

// saveHistory writes the history produced by write to path. Failures are
// logged and otherwise ignored; losing history never ends a chat.
func saveHistory(path string, write func(io.Writer) (int, error), logger *zap.Logger) {
	var buf bytes.Buffer
	if _, err := write(&buf); err != nil {
		logger.Debug("reading chat history failed", zap.Error(err))
		return
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		logger.Debug("saving chat history failed", zap.String("path", path), zap.Error(err))
	}
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// plainReader reads lines from a non-terminal input such as a pipe.
type plainReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPlainReader(in io.Reader, out io.Writer) *plainReader {
	return &plainReader{scanner: bufio.NewScanner(in), out: out}
}

func (r *plainReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	fmt.Fprintln(r.out)
	return r.scanner.Text(), nil
}

// =============================================================================
// COMMAND
// =============================================================================

// NewChatCommand builds "logiassist repl".
func NewChatCommand(root *RootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "repl",
		Aliases: []string{"chat"},
		Short:   "Start a line-mode chat session",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(root)
			if err != nil {
				return err
			}
			defer a.Close()

			if !IsTTY() {
				return runREPL(cmd.Context(), a, newPlainReader(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
			}

			input := NewChatCLI(commands.NewCompleter(a.session.Registry()), a.logger)
			defer input.Close()
			return runREPL(cmd.Context(), a, input, cmd.OutOrStdout())
		},
	}
}

// =============================================================================
// LOOP
// =============================================================================

// repl is one line-mode chat.
type repl struct {
	session *session.Session
	log     interface{ LastResponse() json.RawMessage }
	in      LineReader
	out     io.Writer

	printed   int
	lastInput string
}

func runREPL(ctx context.Context, a *app, in LineReader, out io.Writer) error {
	r := &repl{session: a.session, log: a.client, in: in, out: out}
	return r.run(ctx)
}

func (r *repl) run(ctx context.Context) error {
	fmt.Fprintln(r.out, TitleStyle.Render("Logistics AI Assistant"))
	fmt.Fprintln(r.out, RenderSeparator(min(GetTerminalWidth(), 60)))

	if err := r.preChat(ctx); err != nil {
		return endOfInput(r.out, err)
	}

	for {
		line, err := r.in.Prompt(r.prompt())
		if err != nil {
			return endOfInput(r.out, err)
		}
		if r.handle(ctx, line) {
			return nil
		}
	}
}

// preChat asks for an inventory number before the chat opens.
func (r *repl) preChat(ctx context.Context) error {
	line, err := r.in.Prompt("Do you have an inventory number? (Enter to skip): ")
	if err != nil {
		return err
	}

	if strings.TrimSpace(line) == "" {
		r.session.Decline()
	} else if err := r.session.ProvideInventory(ctx, line); errors.Is(err, session.ErrNoInventoryNumber) {
		fmt.Fprintln(r.out, WarningStyle.Render("No digits found; starting without a lookup."))
		r.session.Decline()
	}
	r.printNew()
	return nil
}

// handle runs one line and reports whether the chat should end.
func (r *repl) handle(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	if commands.IsCommand(trimmed) {
		name := commands.ExtractCommandName(trimmed)
		rest := strings.TrimSpace(trimmed[len(name):])

		switch strings.ToLower(name) {
		case "/quit", "/exit":
			return true
		case "/dev":
			if r.session.ToggleDeveloperMode() {
				fmt.Fprintln(r.out, WarningStyle.Render("Developer mode on. Set an answer with /expert, then type the question."))
			} else {
				fmt.Fprintln(r.out, DimStyle.Render("Developer mode off."))
			}
			return false
		case "/expert":
			r.setExpert(rest)
			return false
		case "/log":
			r.printLog()
			return false
		case "/commands":
			r.printCommands()
			return false
		}
	}

	r.lastInput = trimmed
	if _, err := r.session.Submit(ctx, line); err != nil {
		fmt.Fprintln(r.out, ErrorStyle.Render(err.Error()))
	}
	r.printNew()
	return false
}

func (r *repl) setExpert(answer string) {
	if !r.session.State().DeveloperMode {
		fmt.Fprintln(r.out, WarningStyle.Render("Turn on developer mode first with /dev."))
		return
	}
	answer = strings.TrimSpace(answer)
	r.session.SetExpertAnswer(answer)
	if answer == "" {
		fmt.Fprintln(r.out, DimStyle.Render("Expert answer cleared."))
		return
	}
	fmt.Fprintln(r.out, DimStyle.Render("Expert answer set. The next question is saved as training data."))
}

func (r *repl) prompt() string {
	st := r.session.State()
	switch {
	case st.TrainingArmed():
		return "train> "
	case st.DeveloperMode:
		return "dev> "
	default:
		return "> "
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

// printNew prints the turns appended since the last call.
func (r *repl) printNew() {
	turns := r.session.Conversation().Turns()
	for _, t := range turns[r.printed:] {
		// The typed line is already on screen.
		if t.Role == model.RoleUser && strings.TrimSpace(t.Text) == r.lastInput {
			continue
		}
		r.printTurn(t)
	}
	r.printed = len(turns)
}

func (r *repl) printTurn(t model.Turn) {
	if t.IsWelcome {
		fmt.Fprintf(r.out, "%s %s\n", RenderRole(t.Role), commands.WelcomeText)
		fmt.Fprintln(r.out, DimStyle.Render("Commands: "+strings.Join(r.session.Registry().Usages(), ", ")+", /quit"))
		fmt.Fprintln(r.out)
		return
	}
	text := t.Text
	if t.Role.RendersLinks() {
		text = links.Plain(text)
	}
	fmt.Fprintf(r.out, "%s %s\n\n", RenderRole(t.Role), text)
}

func (r *repl) printLog() {
	raw := r.log.LastResponse()
	if len(raw) == 0 {
		fmt.Fprintln(r.out, DimStyle.Render("No API response to display yet."))
		return
	}
	body := pretty.Pretty(raw)
	if ColorsEnabled() {
		body = pretty.Color(body, nil)
	}
	fmt.Fprint(r.out, string(body))
}

func (r *repl) printCommands() {
	fmt.Fprintln(r.out, TitleStyle.Render("Available Commands"))
	for _, usage := range r.session.Registry().Usages() {
		fmt.Fprintln(r.out, "  "+usage)
	}
	for _, local := range []string{"/commands", "/dev", "/expert <answer>", "/log", "/quit"} {
		fmt.Fprintln(r.out, "  "+local)
	}
}

// endOfInput turns Ctrl+D and Ctrl+C into a clean exit.
func endOfInput(out io.Writer, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
		fmt.Fprintln(out)
		return nil
	}
	return err
}
