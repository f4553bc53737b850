package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskbox/internal/backend/fixture"
	"taskbox/internal/config"
	"taskbox/internal/exitcode"
	"taskbox/internal/output"
	"taskbox/internal/source"
)

func init() {
	Register(&StoriesCmd{})
}

// StoriesCmd implements the stories command.
type StoriesCmd struct{}

func (c *StoriesCmd) Name() string      { return "stories" }
func (c *StoriesCmd) Aliases() []string { return nil }
func (c *StoriesCmd) Synopsis() string  { return "Print the built-in story catalog" }
func (c *StoriesCmd) Usage() string     { return "taskbox stories" }
func (c *StoriesCmd) NeedsSource() bool { return false }

func (c *StoriesCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StoriesCmd) Run(ctx context.Context, cfg *config.Config, src source.Source, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	for _, s := range fixture.Catalog() {
		output.FormatStory(out, s)
	}
	return exitcode.Success
}
