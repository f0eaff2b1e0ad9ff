// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package chat implements the one-shot "desk chat" command. The
// conversational surface lives in the console; this command is for a
// single question-and-answer exchange from the shell.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/desk-foundation/desk/cmd/desk/cli"
	"github.com/desk-foundation/desk/lib/portal"
)

// Command returns the "chat" command.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "chat",
		Summary: "Ask the AI assistant a question",
		Description: `Send one message to the AI assistant. The backend grounds the answer
in your profile, recent tickets, and payments before replying.`,
		Usage: "desk chat <message>",
		Examples: []cli.Example{
			{Description: "Ask about your balance", Command: `desk chat "Какой у меня баланс?"`},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			message := strings.TrimSpace(strings.Join(args, " "))
			if message == "" {
				return cli.Validation("Введите сообщение")
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			response, err := app.Portal.Chat(ctx, message)
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Не удалось получить ответ от AI"))
			}

			fmt.Println(response.AIMessage)
			return nil
		},
	}
}
