// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for logiassist.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the cli package)
//   - Environment variables (LOGIASSIST_*)
//   - ~/.logiassist/config.toml
//   - ~/.logiassist/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client, err := gateway.New(cfg.Endpoint, gateway.WithMaxResponseSize(cfg.MaxResponseBytes))
package config
