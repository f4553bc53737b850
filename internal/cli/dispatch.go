// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"taskbox/internal/backend"
	"taskbox/internal/commands"
	"taskbox/internal/config"
	"taskbox/internal/exitcode"
	"taskbox/internal/logging"
	"taskbox/internal/source"
)

// SourceFactory creates a Source from config.
// Used to inject the task source during dispatch.
type SourceFactory func(ctx context.Context, cfg *config.Config) (source.Source, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  SourceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and source factory.
// A nil factory selects backend.Open.
func NewDispatcher(registry *commands.Registry, factory SourceFactory) *Dispatcher {
	if factory == nil {
		factory = backend.Open
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	quiet     bool
	debug     bool

	source string
	story  string
	file   string
	list   string
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configDir, "config", "", "")
	fs.BoolVar(&f.quiet, "quiet", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
	fs.StringVar(&f.source, "source", "", "")
	fs.StringVar(&f.story, "story", "", "")
	fs.StringVar(&f.file, "file", "", "")
	fs.StringVar(&f.list, "list", "", "")
}

// apply overrides settings with the flags that were given explicitly.
func (f *commonFlags) apply(fs *flag.FlagSet, s *config.Settings) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "source":
			s.Source = strings.ToLower(strings.TrimSpace(f.source))
		case "story":
			s.Story = f.story
		case "file":
			s.File = f.file
		case "list":
			s.GoogleList = f.list
		}
	})
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return reportFlagError(errOut, err)
	}

	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug
	common.apply(fs, &cfg.Settings)

	cfg.Log = logging.New(cfg.Debug, errOut)
	defer func() { _ = cfg.Log.Sync() }()

	cfg.Log.Debug("dispatch",
		zap.String("command", cmd.Name()),
		zap.Strings("args", positionalArgs),
		zap.String("dir", cfg.Dir),
		zap.String("source", cfg.Settings.Source),
	)

	var src source.Source
	if cmd.NeedsSource() {
		src, err = d.factory(ctx, cfg)
		if err != nil {
			cfg.Log.Debug("source unavailable", zap.Error(err))
			return reportFactoryError(errOut, err)
		}
	}

	return cmd.Run(ctx, cfg, src, positionalArgs, out, errOut)
}

func reportFlagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	switch {
	case strings.HasPrefix(errStr, "flag needs an argument:"):
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
	case strings.HasPrefix(errStr, "flag provided but not defined:"):
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
	default:
		fmt.Fprintf(errOut, "error: %s\n", errStr)
	}
	return exitcode.UserError
}

func reportFactoryError(errOut io.Writer, err error) int {
	switch {
	case backend.IsUserError(err):
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	case errors.Is(err, backend.ErrNotLoggedIn):
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.AuthError
	case backend.IsAuthError(err):
		fmt.Fprintf(errOut, "error: auth error: %s\n", err)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: source error: %s\n", err)
		return exitcode.SourceError
	}
}
