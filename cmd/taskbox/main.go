// Package main is the entry point for the taskbox CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskbox/internal/backend"
	"taskbox/internal/cli"
	"taskbox/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, backend.Open)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
