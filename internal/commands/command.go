// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"taskbox/internal/backend"
	"taskbox/internal/config"
	"taskbox/internal/exitcode"
	"taskbox/internal/source"
	"taskbox/internal/taskview"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsSource returns true if the command loads tasks.
	// Commands like help, version, login, logout return false.
	NeedsSource() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, settings).
	// src is nil if NeedsSource() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, src source.Source, args []string, out, errOut io.Writer) int
}

// now stamps task transitions.
var now = time.Now

// loadCollection loads a snapshot from src and wraps it in a collection.
// On failure it reports the error and returns the exit code to use.
func loadCollection(ctx context.Context, cfg *config.Config, src source.Source, errOut io.Writer) (taskview.Collection, bool, int) {
	log := cfg.Logger()

	snap, err := src.Load(ctx)
	if err != nil {
		log.Debug("source load failed", zap.String("source", src.Name()), zap.Error(err))
		return taskview.Collection{}, false, reportSourceError(errOut, err)
	}

	log.Debug("source loaded",
		zap.String("source", src.Name()),
		zap.Int("tasks", len(snap.Tasks)),
		zap.Bool("loading", snap.Loading),
	)
	return taskview.New(snap.Tasks), snap.Loading, exitcode.Success
}

// reportSourceError prints a load error and classifies it.
func reportSourceError(errOut io.Writer, err error) int {
	switch {
	case backend.IsUserError(err):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case backend.IsAuthError(err):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: source error: %v\n", err)
		return exitcode.SourceError
	}
}
