package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskbox/internal/config"
	"taskbox/internal/exitcode"
	"taskbox/internal/source"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskbox help" }
func (c *HelpCmd) NeedsSource() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, src source.Source, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskbox                                   List tasks, pinned first
  taskbox list [common flags] [--all]       List tasks (--all includes archived)
  taskbox pin [common flags] <id>...        Pin tasks and print the list
  taskbox archive [common flags] <id>...    Archive tasks and print the list
  taskbox session [common flags]            Read pin/archive events from stdin
  taskbox stories                           Print the built-in story catalog
  taskbox login [common flags]
  taskbox logout [common flags]
  taskbox help
  taskbox version

Common flags:
  --config <dir>     Override config directory
  --source <kind>    Task source: fixture, file or google
  --story <name>     Story for the fixture source
  --file <path>      Task file for the file source
  --list <name>      Google Tasks list for the google source
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr

Pin and archive changes are not written back to the source.
`
