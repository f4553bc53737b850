package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskbox/internal/config"
	"taskbox/internal/exitcode"
	"taskbox/internal/output"
	"taskbox/internal/source"
	"taskbox/internal/taskview"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskbox` (no args) and `taskbox list`.
type ListCmd struct {
	all bool
}

// SetAll sets the --all flag (for testing).
func (c *ListCmd) SetAll(all bool) {
	c.all = all
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks, pinned first" }
func (c *ListCmd) Usage() string     { return "taskbox list [--all]" }
func (c *ListCmd) NeedsSource() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, src source.Source, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	coll, loading, code := loadCollection(ctx, cfg, src, errOut)
	if code != exitcode.Success {
		return code
	}

	if c.all {
		output.FormatAll(out, loading, coll, cfg.Quiet)
	} else {
		output.FormatView(out, taskview.Present(loading, coll), cfg.Quiet)
	}
	return exitcode.Success
}
