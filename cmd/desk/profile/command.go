// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package profile implements the "desk profile" command.
package profile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/desk-foundation/desk/cmd/desk/cli"
	"github.com/desk-foundation/desk/lib/portal"
)

// Command returns the "profile" command: fetches and prints the
// current client's profile.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Summary: "Show the current client profile",
		Usage:   "desk profile",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			user, err := app.Portal.Profile(ctx)
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Не удалось загрузить профиль"))
			}

			Print(os.Stdout, user)
			return nil
		},
	}
}

// Print writes the profile as an aligned field/value listing. Shared
// with tests; field labels mirror the portal's web dashboard.
func Print(w io.Writer, user *portal.User) {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "ФИО:\t%s\n", user.FullName)
	fmt.Fprintf(tw, "Телефон:\t%s\n", user.Phone)
	fmt.Fprintf(tw, "Тариф:\t%s\n", portal.OrPlaceholder(user.Tariff))
	fmt.Fprintf(tw, "Услуги:\t%s\n", user.Services)
	fmt.Fprintf(tw, "Баланс:\t%s\n", user.Balance)
	fmt.Fprintf(tw, "Задолженность:\t%s\n", user.Debt)
	tw.Flush()
}
