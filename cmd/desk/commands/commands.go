// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete desk CLI command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	authcmd "github.com/desk-foundation/desk/cmd/desk/auth"
	chatcmd "github.com/desk-foundation/desk/cmd/desk/chat"
	"github.com/desk-foundation/desk/cmd/desk/cli"
	consolecmd "github.com/desk-foundation/desk/cmd/desk/console"
	operatorcmd "github.com/desk-foundation/desk/cmd/desk/operator"
	paymentcmd "github.com/desk-foundation/desk/cmd/desk/payment"
	profilecmd "github.com/desk-foundation/desk/cmd/desk/profile"
	ticketcmd "github.com/desk-foundation/desk/cmd/desk/ticket"
	"github.com/desk-foundation/desk/lib/version"
)

// Root builds and returns the complete desk CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "desk",
		Description: `desk: terminal client for the support portal.

Manage your account from the shell — tickets, payments, profile, and
the AI assistant — or open the full-screen console. Identity is a
phone number saved locally after login; no passwords.`,
		Subcommands: []*cli.Command{
			authcmd.LoginCommand(),
			authcmd.LogoutCommand(),
			authcmd.WhoAmICommand(),
			authcmd.RegisterCommand(),
			profilecmd.Command(),
			ticketcmd.Command(),
			paymentcmd.Command(),
			chatcmd.Command(),
			operatorcmd.Command(),
			consolecmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("desk %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Log in with your phone number (saves session locally)",
				Command:     "desk login 5551234",
			},
			{
				Description: "Open the full-screen console",
				Command:     "desk console",
			},
			{
				Description: "File a support ticket",
				Command:     `desk ticket create --subject "Нет интернета" "Пропал интернет утром"`,
			},
			{
				Description: "Ask the AI assistant about your account",
				Command:     `desk chat "Какой у меня баланс?"`,
			},
			{
				Description: "Work the support queue",
				Command:     "desk operator queue --status new",
			},
		},
	}
}
