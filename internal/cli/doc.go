// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the logiassist command line.

# Commands

	logiassist                      full-screen chat (line mode when not a TTY)
	logiassist repl                 line-mode chat with history and completion
	logiassist ask <question>       one question, prints the reply
	logiassist lookup <type> <n>    one EZOI lookup, prints the item summary
	logiassist ticket --name ...    submit a support ticket
	logiassist config show|init|path
	logiassist version

# Global Flags

	--config PATH    config file (default ~/.logiassist/config.toml)
	--endpoint URL   backend URL
	--dev            start in developer mode
	--json           JSON output for ask, lookup, ticket and version

# Exit Codes

	0  success
	1  validation or backend failure
	2  bad command line
	3  configuration error
*/
package cli
