// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package console implements the "desk console" command: the
// full-screen interactive portal.
package console

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/desk-foundation/desk/cmd/desk/cli"
	"github.com/desk-foundation/desk/lib/portalui"
)

// Command returns the "console" command.
func Command() *cli.Command {
	var operator bool

	return &cli.Command{
		Name:    "console",
		Summary: "Open the interactive portal console",
		Description: `Open the full-screen portal console: profile, tickets, payments, and
the AI assistant in one tabbed interface. Opens on the login screen
when no session is stored.

With --operator (or operator.enabled in the config file) the console
adds the support queue tab: tickets across all clients, with client
history, internal comments, and AI response delivery.`,
		Usage: "desk console [--operator]",
		Examples: []cli.Example{
			{Description: "Open the client console", Command: "desk console"},
			{Description: "Open with the operator queue", Command: "desk console --operator"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("console", pflag.ContinueOnError)
			flagSet.BoolVar(&operator, "operator", false, "enable the operator queue tab")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			model := portalui.NewModel(app.Portal, app.Sessions)
			if operator || app.Config.Operator.Enabled {
				model.EnableOperator(app.Config.Operator.Author)
			}

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("console: %w", err)
			}
			return nil
		},
	}
}
