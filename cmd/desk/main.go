// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/desk-foundation/desk/cmd/desk/cli"
	"github.com/desk-foundation/desk/cmd/desk/commands"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := extractConfigFlag(os.Args[1:])
	logger := cli.NewCommandLogger()
	return commands.Root().Execute(ctx, args, logger)
}

// extractConfigFlag pulls the global --config flag out of the argument
// list before dispatch, so it works in any position regardless of
// which subcommand is invoked.
func extractConfigFlag(args []string) []string {
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--config" && i+1 < len(args):
			cli.ConfigFlag = args[i+1]
			i++
		case strings.HasPrefix(arg, "--config="):
			cli.ConfigFlag = strings.TrimPrefix(arg, "--config=")
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining
}
