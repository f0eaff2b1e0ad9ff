// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package operator implements the "desk operator" command group: the
// support-side flows for working the ticket queue.
package operator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/desk-foundation/desk/cmd/desk/cli"
	"github.com/desk-foundation/desk/cmd/desk/ticket"
	"github.com/desk-foundation/desk/lib/portal"
)

// Command returns the "operator" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "operator",
		Summary: "Work the support ticket queue",
		Description: `Operator-side ticket flows: the shared queue across all clients,
ticket history and comments, and AI-drafted responses.`,
		Subcommands: []*cli.Command{
			queueCommand(),
			showCommand(),
			updateCommand(),
			commentCommand(),
			respondCommand(),
		},
	}
}

func queueCommand() *cli.Command {
	var category, status string

	return &cli.Command{
		Name:    "queue",
		Summary: "List tickets across all clients",
		Usage:   "desk operator queue [--category <category>] [--status <status>]",
		Examples: []cli.Example{
			{Description: "Open billing tickets", Command: "desk operator queue --category billing --status new"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("queue", pflag.ContinueOnError)
			flagSet.StringVar(&category, "category", "", "filter by category")
			flagSet.StringVar(&status, "status", "", "filter by status")
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

			tickets, err := app.Portal.OperatorTickets(ctx, category, status)
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Не удалось загрузить очередь заявок"))
			}

			ticket.PrintList(os.Stdout, tickets, true)
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:    "show",
		Summary: "Show a ticket's client history and comments",
		Usage:   "desk operator show <id>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			ticketID, err := parseTicketID(args)
			if err != nil {
				return err
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			history, err := app.Portal.TicketHistory(ctx, ticketID)
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Не удалось загрузить историю клиента"))
			}
			comments, err := app.Portal.Comments(ctx, ticketID)
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Не удалось загрузить комментарии"))
			}

			fmt.Println("История клиента:")
			fmt.Println(indentJSON(history))
			fmt.Println("\nКомментарии:")
			printComments(comments)
			return nil
		},
	}
}

func updateCommand() *cli.Command {
	var category, status, assignee, priority string

	return &cli.Command{
		Name:    "update",
		Summary: "Update a ticket's fields",
		Usage:   "desk operator update <id> [--status <status>] [--category <category>] [--assignee <name>] [--priority <priority>]",
		Examples: []cli.Example{
			{Description: "Take a ticket", Command: "desk operator update 42 --status in_progress --assignee ivanova"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flagSet.StringVar(&category, "category", "", "new category")
			flagSet.StringVar(&status, "status", "", "new status")
			flagSet.StringVar(&assignee, "assignee", "", "new assignee")
			flagSet.StringVar(&priority, "priority", "", "new priority")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			ticketID, err := parseTicketID(args)
			if err != nil {
				return err
			}

			var update portal.TicketUpdate
			set := func(target **string, value string) {
				if value != "" {
					*target = &value
				}
			}
			set(&update.Category, category)
			set(&update.Status, status)
			set(&update.AssignedTo, assignee)
			set(&update.Priority, priority)
			if update == (portal.TicketUpdate{}) {
				return cli.Validation("nothing to update: pass at least one of --status, --category, --assignee, --priority")
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			updated, err := app.Portal.UpdateOperatorTicket(ctx, ticketID, update)
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Не удалось обновить заявку"))
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(tw, "Заявка:\t№%d\n", updated.ID)
			fmt.Fprintf(tw, "Статус:\t%s\n", updated.Status)
			fmt.Fprintf(tw, "Категория:\t%s\n", portal.OrPlaceholder(updated.Category))
			fmt.Fprintf(tw, "Исполнитель:\t%s\n", portal.OrPlaceholder(updated.AssignedTo))
			fmt.Fprintf(tw, "Приоритет:\t%s\n", portal.OrPlaceholder(updated.Priority))
			tw.Flush()
			return nil
		},
	}
}

func commentCommand() *cli.Command {
	return &cli.Command{
		Name:    "comment",
		Summary: "Add an internal comment to a ticket",
		Usage:   "desk operator comment <id> <text>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			ticketID, err := parseTicketID(args)
			if err != nil {
				return err
			}
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return cli.Validation("comment text required")
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			comment, err := app.Portal.AddComment(ctx, ticketID, app.Config.Operator.Author, text)
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Не удалось добавить комментарий"))
			}

			fmt.Printf("Комментарий к заявке №%d добавлен (%s)\n", ticketID, comment.Author)
			return nil
		},
	}
}

func respondCommand() *cli.Command {
	var draft bool

	return &cli.Command{
		Name:    "respond",
		Summary: "Send an AI-generated response to the client",
		Description: `Generate an AI response for the ticket and deliver it to the client.
With --draft the response is generated and printed but not sent.`,
		Usage: "desk operator respond <id> [--draft]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("respond", pflag.ContinueOnError)
			flagSet.BoolVar(&draft, "draft", false, "generate without sending")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			ticketID, err := parseTicketID(args)
			if err != nil {
				return err
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			if draft {
				generated, err := app.Portal.GenerateResponse(ctx, ticketID)
				if err != nil {
					return cli.Internal("%s", portal.UserMessage(err, "Не удалось сгенерировать ответ"))
				}
				fmt.Println(generated.AIResponse)
				return nil
			}

			sent, err := app.Portal.SendResponse(ctx, ticketID)
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Не удалось отправить ответ"))
			}
			fmt.Printf("%s\n\n%s\n", sent.AIResponse, sent.Message)
			return nil
		},
	}
}

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

func printComments(comments []portal.Comment) {
	if len(comments) == 0 {
		fmt.Println(portal.Placeholder)
		return
	}
	for _, comment := range comments {
		fmt.Printf("[%s] %s: %s\n", portal.FormatTimestamp(comment.CreatedAt), comment.Author, comment.Text)
	}
}

// indentJSON pretty-prints the history document the backend returns.
// Its shape is backend-defined, so it is rendered as-is rather than
// decoded into a struct.
func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
