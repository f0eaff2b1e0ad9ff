// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth implements the session lifecycle commands: login,
// logout, whoami, and register.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/desk-foundation/desk/cmd/desk/cli"
	"github.com/desk-foundation/desk/lib/portal"
	"github.com/desk-foundation/desk/lib/session"
)

// LoginCommand returns the "login" command. A successful login
// persists the phone as the session identity; every subsequent
// command and the console use it transparently.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:    "login",
		Summary: "Log in with a phone number",
		Description: `Log in to the portal and save the session locally.

The portal authenticates by phone number alone. After login, commands
like "desk profile" and "desk ticket list" use the saved session — no
flags needed. The session file is stored at ~/.config/desk/session.json
(or $DESK_SESSION_FILE if set) with mode 0600.`,
		Usage: "desk login <phone>",
		Examples: []cli.Example{
			{Description: "Log in", Command: "desk login +79001234567"},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: desk login <phone>")
			}
			phone := strings.TrimSpace(args[0])
			if phone == "" {
				return cli.Validation("Введите телефон")
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			response, err := app.Portal.Login(ctx, phone)
			if err != nil {
				return loginError(err)
			}

			if err := app.Sessions.Save(phone); err != nil {
				return cli.Internal("saving session: %w", err)
			}

			logger.Info("logged in", "phone", phone, "session_file", app.Sessions.Path())
			fmt.Println(response.Message)
			return nil
		},
	}
}

// LogoutCommand returns the "logout" command. Clearing the session
// returns the client to the unauthenticated state.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Clear the saved session",
		Usage:   "desk logout",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}
			if err := app.Sessions.Clear(); err != nil {
				return cli.Internal("clearing session: %w", err)
			}
			fmt.Println("Сессия завершена")
			return nil
		},
	}
}

// WhoAmICommand returns the "whoami" command: prints the stored
// session identity without touching the network.
func WhoAmICommand() *cli.Command {
	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the current session identity",
		Usage:   "desk whoami",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}
			phone, err := app.Sessions.Load()
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					return cli.NotFound("%w", err)
				}
				return cli.Internal("loading session: %w", err)
			}
			fmt.Println(phone)
			return nil
		},
	}
}

// RegisterCommand returns the "register" command for creating a new
// client account.
func RegisterCommand() *cli.Command {
	var fullName string
	var email string

	return &cli.Command{
		Name:    "register",
		Summary: "Register a new client account",
		Usage:   "desk register <phone> --name <full name> --email <email>",
		Examples: []cli.Example{
			{Description: "Register and then log in", Command: `desk register +79001234567 --name "Иван Иванов" --email ivan@example.com`},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("register", pflag.ContinueOnError)
			flagSet.StringVar(&fullName, "name", "", "client full name (required)")
			flagSet.StringVar(&email, "email", "", "client email (required)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: desk register <phone> --name <full name> --email <email>")
			}
			if fullName == "" || email == "" {
				return cli.Validation("--name and --email are required")
			}

			app, err := cli.LoadApp(logger)
			if err != nil {
				return err
			}

			created, err := app.Portal.Register(ctx, portal.RegisterRequest{
				FullName: fullName,
				Phone:    strings.TrimSpace(args[0]),
				Email:    email,
			})
			if err != nil {
				return cli.Internal("%s", portal.UserMessage(err, "Ошибка регистрации"))
			}

			fmt.Printf("Клиент №%d зарегистрирован: %s\n", created.ID, created.FullName)
			return nil
		},
	}
}

// loginError maps a portal login failure to a categorized CLI error
// with the message the browser client would have alerted.
func loginError(err error) error {
	var portalErr *portal.Error
	if errors.As(err, &portalErr) {
		message := portalErr.UserMessage("Ошибка входа")
		switch portalErr.Kind {
		case portal.KindValidation:
			return cli.Validation("%s", message)
		case portal.KindTransport:
			return cli.Transient("Сетевая ошибка при логине: %v", portalErr.Unwrap())
		default:
			return cli.NotFound("%s", message)
		}
	}
	return cli.Internal("login: %w", err)
}
