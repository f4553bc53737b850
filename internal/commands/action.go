package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"taskbox/internal/config"
	"taskbox/internal/exitcode"
	"taskbox/internal/output"
	"taskbox/internal/source"
	"taskbox/internal/taskview"
)

func init() {
	Register(&PinCmd{})
	Register(&ArchiveCmd{})
}

// PinCmd implements the pin command.
type PinCmd struct{}

func (c *PinCmd) Name() string      { return "pin" }
func (c *PinCmd) Aliases() []string { return nil }
func (c *PinCmd) Synopsis() string  { return "Pin tasks to the top of the list" }
func (c *PinCmd) Usage() string     { return "taskbox pin <id>..." }
func (c *PinCmd) NeedsSource() bool { return true }

func (c *PinCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PinCmd) Run(ctx context.Context, cfg *config.Config, src source.Source, args []string, out, errOut io.Writer) int {
	return runAction(ctx, cfg, src, taskview.ActionPin, args, out, errOut)
}

// ArchiveCmd implements the archive command.
type ArchiveCmd struct{}

func (c *ArchiveCmd) Name() string      { return "archive" }
func (c *ArchiveCmd) Aliases() []string { return nil }
func (c *ArchiveCmd) Synopsis() string  { return "Archive tasks" }
func (c *ArchiveCmd) Usage() string     { return "taskbox archive <id>..." }
func (c *ArchiveCmd) NeedsSource() bool { return true }

func (c *ArchiveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ArchiveCmd) Run(ctx context.Context, cfg *config.Config, src source.Source, args []string, out, errOut io.Writer) int {
	return runAction(ctx, cfg, src, taskview.ActionArchive, args, out, errOut)
}

// runAction is the shared implementation for pin and archive.
// Ids are applied in argument order; unknown ids are ignored.
func runAction(ctx context.Context, cfg *config.Config, src source.Source, action taskview.Action, args []string, out, errOut io.Writer) int {
	ids, err := ParseTaskIDs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	coll, loading, code := loadCollection(ctx, cfg, src, errOut)
	if code != exitcode.Success {
		return code
	}

	log := cfg.Logger()
	for _, id := range ids {
		next, err := coll.Apply(action, id, now())
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		log.Debug("action applied",
			zap.Stringer("action", action),
			zap.Int("id", id),
			zap.Bool("changed", !next.Equal(coll)),
		)
		coll = next
	}

	output.FormatView(out, taskview.Present(loading, coll), cfg.Quiet)
	return exitcode.Success
}
