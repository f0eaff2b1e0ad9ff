// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/desk-foundation/desk/lib/config"
	"github.com/desk-foundation/desk/lib/portal"
	"github.com/desk-foundation/desk/lib/session"
)

// App bundles the shared dependencies every command needs: the loaded
// configuration, the session store, and the portal client. Constructed
// once per invocation and passed explicitly — no package-level state.
type App struct {
	Config   *config.Config
	Sessions *session.Store
	Portal   *portal.Client
}

// ConfigFlag is the value of the global --config flag, consulted by
// LoadApp before the DESK_CONFIG environment variable. Set by the root
// command's flag set.
var ConfigFlag string

// LoadApp loads configuration and wires the session store and portal
// client. The logger is scoped into the portal client for per-request
// debug logging.
func LoadApp(logger *slog.Logger) (*App, error) {
	var cfg *config.Config
	var err error
	if ConfigFlag != "" {
		cfg, err = config.LoadFile(ConfigFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	sessionFile := cfg.Session.File
	if sessionFile == "" {
		sessionFile = session.FilePath()
	}
	sessions := session.NewStore(sessionFile)

	client, err := portal.NewClient(portal.ClientConfig{
		BaseURL:  cfg.Portal.BaseURL,
		Sessions: sessions,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	return &App{Config: cfg, Sessions: sessions, Portal: client}, nil
}
