// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Root command, shared flags and per-invocation wiring.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jeranaias/logiassist-tui/internal/commands"
	"github.com/jeranaias/logiassist-tui/internal/config"
	"github.com/jeranaias/logiassist-tui/internal/gateway"
	"github.com/jeranaias/logiassist-tui/internal/logging"
	"github.com/jeranaias/logiassist-tui/internal/model"
	"github.com/jeranaias/logiassist-tui/internal/session"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// ROOT FLAGS
// =============================================================================

// RootFlags are the persistent flags every command accepts.
type RootFlags struct {
	ConfigPath string
	Endpoint   string
	Dev        bool
	JSON       bool
}

// BindFlags registers the flags on fs.
func (f *RootFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", f.ConfigPath, "config file (default ~/.logiassist/config.toml)")
	fs.StringVar(&f.Endpoint, "endpoint", f.Endpoint, "backend URL, overrides the config file")
	fs.BoolVar(&f.Dev, "dev", f.Dev, "start in developer mode")
	fs.BoolVar(&f.JSON, "json", f.JSON, "print results as JSON (ask, lookup, ticket, version)")
}

// loadConfig reads the config file and applies the flag overrides.
func (f *RootFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.ConfigPath != "" {
		cfg, err = config.LoadFromPath(f.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	if f.Endpoint != "" {
		cfg.Endpoint = f.Endpoint
	}
	if f.Dev {
		cfg.Assistant.DeveloperMode = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}
	return cfg, nil
}

// =============================================================================
// APP WIRING
// =============================================================================

// app is everything one invocation needs: config, logger, gateway client
// and a fresh chat session.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *gateway.Client
	session *session.Session
}

func newApp(f *RootFlags) (*app, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	client, err := gateway.New(cfg.Endpoint,
		gateway.WithLogger(logger),
		gateway.WithMaxResponseSize(cfg.MaxResponseBytes))
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	dispatcher := commands.NewDispatcher(client, model.NewConversation(),
		commands.WithDispatchLogger(logger),
		commands.WithResourceURL(cfg.Assistant.ResourceURL))
	sess := session.New(dispatcher,
		session.WithLogger(logger),
		session.WithDeveloperMode(cfg.Assistant.DeveloperMode))

	logger.Debug("started",
		zap.String("version", Version),
		zap.String("endpoint", cfg.Endpoint),
		zap.Bool("developer_mode", cfg.Assistant.DeveloperMode))

	return &app{cfg: cfg, logger: logger, client: client, session: sess}, nil
}

func (a *app) Close() {
	_ = a.logger.Sync()
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCommand builds the logiassist command tree.
func NewRootCommand() *cobra.Command {
	f := &RootFlags{}

	cmd := &cobra.Command{
		Use:   "logiassist",
		Short: "Terminal client for the Logistics AI Assistant",
		Long: `logiassist talks to the Logistics AI Assistant backend: ask questions,
look up EZOI items, submit support tickets and record expert answers.

Run without a subcommand for the full-screen chat. When stdin or stdout is
not a terminal the line-mode chat is used instead.`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(f)
			if err != nil {
				return err
			}
			defer a.Close()

			if CanRunTUI() {
				return runTUI(a)
			}
			return runREPL(cmd.Context(), a, newPlainReader(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
		},
	}

	f.BindFlags(cmd.PersistentFlags())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	cmd.AddCommand(
		NewChatCommand(f),
		NewAskCommand(f),
		NewLookupCommand(f),
		NewTicketCommand(f),
		NewConfigCommand(f),
		NewVersionCommand(f),
	)
	return cmd
}

// Execute runs the command line in args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var reported *reportedError
	if !errors.As(err, &reported) {
		jsonMode, _ := cmd.PersistentFlags().GetBool("json")
		if jsonMode {
			DisplayError(stdout, err, true)
		} else {
			DisplayError(stderr, err, false)
		}
	}
	return GetExitCode(err)
}

// =============================================================================
// HELPERS
// =============================================================================

// reportedError is a failure the command already printed.
type reportedError struct {
	Err error
}

func (e *reportedError) Error() string {
	return e.Err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.Err
}

// report prints data as text or JSON. A non-nil failure is printed too and
// returned so the exit code reflects it.
func report(cmd *cobra.Command, jsonMode bool, name string, data any, failure error, human func(w io.Writer)) error {
	if jsonMode {
		resp := NewJSONResponse(name, data)
		if failure != nil {
			resp = NewJSONErrorResponse(name, data, failure)
		}
		if err := resp.Print(cmd.OutOrStdout()); err != nil {
			return err
		}
	} else {
		human(cmd.OutOrStdout())
	}

	if failure != nil {
		return &reportedError{Err: failure}
	}
	return nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &UsageError{Err: fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())}
	}
	return nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &UsageError{Err: fmt.Errorf("%s accepts %d arg(s), received %d\nUsage: %s", cmd.Name(), n, len(args), cmd.UseLine())}
		}
		return nil
	}
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return &UsageError{Err: fmt.Errorf("%s requires at least %d arg(s)\nUsage: %s", cmd.Name(), n, cmd.UseLine())}
		}
		return nil
	}
}

// lastText returns the text of the newest turn with role, or "".
func lastText(sess *session.Session, role model.Role) string {
	t, ok := sess.Conversation().LastByRole(role)
	if !ok {
		return ""
	}
	return t.Text
}
