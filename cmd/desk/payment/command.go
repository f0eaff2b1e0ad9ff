// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package payment implements the "desk payment" command group.
package payment

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

// Command returns the "payment" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "payment",
		Summary: "View payment history",
		Subcommands: []*cli.Command{
			listCommand(),
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Summary: "List your payments",
		Usage:   "desk payment list",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			payments, err := app.Portal.Payments(ctx)
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Не удалось загрузить платежи"))
			}

			PrintList(os.Stdout, payments)
			return nil
		},
	}
}

// PrintList writes payments as an aligned table: date-only timestamp,
// amount, service, status.
func PrintList(w io.Writer, payments []portal.Payment) {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Дата\tСумма\tУслуга\tСтатус")
	for _, payment := range payments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			portal.FormatDate(payment.Date),
			payment.Amount,
			portal.OrPlaceholder(payment.Service),
			payment.Status,
		)
	}
	tw.Flush()
}
