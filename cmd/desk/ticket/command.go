// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket implements the "desk ticket" command group: the
// client-side ticket flows (create, list, show, status).
package ticket

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/desk-foundation/desk/cmd/desk/cli"
	"github.com/desk-foundation/desk/lib/portal"
)

// Command returns the "ticket" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "ticket",
		Summary: "Create and inspect support tickets",
		Subcommands: []*cli.Command{
			listCommand(),
			createCommand(),
			showCommand(),
			statusCommand(),
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Summary: "List your tickets",
		Usage:   "desk ticket list",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			tickets, err := app.Portal.Tickets(ctx)
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Не удалось загрузить заявки"))
			}

			PrintList(os.Stdout, tickets, false)
			return nil
		},
	}
}

func createCommand() *cli.Command {
	var subject string

	return &cli.Command{
		Name:    "create",
		Summary: "Create a new ticket",
		Description: `Create a support ticket. The category is assigned by the backend's
classifier and printed with the new ticket id.`,
		Usage: "desk ticket create --subject <subject> <text>",
		Examples: []cli.Example{
			{Description: "Report a billing problem", Command: `desk ticket create --subject "Billing" "Overcharged"`},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flagSet.StringVar(&subject, "subject", "", "ticket subject (required)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if strings.TrimSpace(subject) == "" || text == "" {
				return cli.Validation("Заполните тему и описание")
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			created, err := app.Portal.CreateTicket(ctx, subject, text)
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Ошибка создания заявки"))
			}

			fmt.Printf("Заявка №%d создана. Категория: %s\n", created.ID, created.Category)
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:    "show",
		Summary: "Show one ticket in full",
		Usage:   "desk ticket show <id>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			ticketID, err := parseTicketID(args)
			if err != nil {
				return err
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			ticket, err := app.Portal.Ticket(ctx, ticketID)
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Не удалось загрузить заявку"))
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(tw, "Заявка:\t№%d\n", ticket.ID)
			fmt.Fprintf(tw, "Тема:\t%s\n", portal.OrPlaceholder(ticket.Subject))
			fmt.Fprintf(tw, "Категория:\t%s\n", portal.OrPlaceholder(ticket.Category))
			fmt.Fprintf(tw, "Статус:\t%s\n", ticket.Status)
			fmt.Fprintf(tw, "Приоритет:\t%s\n", portal.OrPlaceholder(ticket.Priority))
			fmt.Fprintf(tw, "Создана:\t%s\n", portal.FormatTimestamp(ticket.CreatedAt))
			tw.Flush()
			fmt.Printf("\n%s\n", ticket.Text)
			if ticket.AIResponse != "" {
				fmt.Printf("\nОтвет поддержки:\n%s\n", ticket.AIResponse)
			}
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:    "status",
		Summary: "Update a ticket's status",
		Usage:   "desk ticket status <id> <status>",
		Examples: []cli.Example{
			{Description: "Move a ticket to in_progress", Command: "desk ticket status 42 in_progress"},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return cli.Validation("usage: desk ticket status <id> <status>")
			}
			ticketID, err := parseTicketID(args[:1])
			if err != nil {
				return err
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			updated, err := app.Portal.UpdateTicketStatus(ctx, ticketID, args[1])
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Не удалось обновить заявку"))
			}

			fmt.Printf("Заявка №%d: статус %s\n", updated.ID, updated.Status)
			return nil
		},
	}
}

// parseTicketID reads a single positional ticket id argument.
func parseTicketID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, cli.Validation("ticket id required")
	}
	ticketID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, cli.Validation("invalid ticket id %q", args[0])
	}
	return ticketID, nil
}

// PrintList writes tickets as an aligned table, one row per ticket.
// The operator form adds the assignee and client phone columns.
func PrintList(w io.Writer, tickets []portal.Ticket, operator bool) {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	if operator {
		fmt.Fprintln(tw, "ID\tТема\tКатегория\tСтатус\tИсполнитель\tКлиент\tСоздана")
	} else {
		fmt.Fprintln(tw, "ID\tТема\tКатегория\tСтатус\tСоздана")
	}
	for _, ticket := range tickets {
		if operator {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				ticket.ID,
				portal.OrPlaceholder(ticket.Subject),
				portal.OrPlaceholder(ticket.Category),
				ticket.Status,
				portal.OrPlaceholder(ticket.AssignedTo),
				portal.OrPlaceholder(ticket.ClientPhone),
				portal.FormatTimestamp(ticket.CreatedAt),
			)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				ticket.ID,
				portal.OrPlaceholder(ticket.Subject),
				portal.OrPlaceholder(ticket.Category),
				ticket.Status,
				portal.FormatTimestamp(ticket.CreatedAt),
			)
		}
	}
	tw.Flush()
}
