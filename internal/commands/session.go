package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"taskbox/internal/config"
	"taskbox/internal/exitcode"
	"taskbox/internal/output"
	"taskbox/internal/source"
	"taskbox/internal/taskview"
)

func init() {
	Register(&SessionCmd{})
}

// SessionCmd implements the session command.
// It reads one event per line and re-renders the list after every change.
type SessionCmd struct {
	in io.Reader
}

// SetInput sets the event stream (for testing). Defaults to stdin.
func (c *SessionCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *SessionCmd) Name() string      { return "session" }
func (c *SessionCmd) Aliases() []string { return nil }
func (c *SessionCmd) Synopsis() string  { return "Pin and archive tasks interactively" }
func (c *SessionCmd) Usage() string     { return "taskbox session" }
func (c *SessionCmd) NeedsSource() bool { return true }

func (c *SessionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SessionCmd) Run(ctx context.Context, cfg *config.Config, src source.Source, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	coll, loading, code := loadCollection(ctx, cfg, src, errOut)
	if code != exitcode.Success {
		return code
	}

	in := c.in
	if in == nil {
		in = os.Stdin
	}

	s := &session{cfg: cfg, log: cfg.Logger(), coll: coll, loading: loading, out: out, errOut: errOut}
	s.render()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, readErr := readLines(ctx, in)
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(errOut, "error: cancelled")
			return exitcode.UserError
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil && ctx.Err() == nil {
					fmt.Fprintf(errOut, "error: failed to read input: %v\n", err)
					return exitcode.UserError
				}
				return exitcode.Success
			}
			if !s.handle(line) {
				return exitcode.Success
			}
		}
	}
}

// readLines scans r on its own goroutine so cancellation is not held up by a
// blocked read. The error channel receives exactly one value before lines closes.
// A goroutine stuck in Read stays blocked until r returns.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}

// session holds the state of one interactive run.
// The collection is replaced, never modified, on each event.
type session struct {
	cfg     *config.Config
	log     *zap.Logger
	coll    taskview.Collection
	loading bool
	out     io.Writer
	errOut  io.Writer
}

// handle processes one input line. It returns false when the session should end.
func (s *session) handle(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	verb := strings.ToLower(fields[0])
	s.log.Debug("session event", zap.String("verb", verb), zap.Strings("args", fields[1:]))

	switch verb {
	case "quit", "exit", "q":
		return false
	case "list", "ls":
		s.render()
	case "all":
		output.FormatAll(s.out, s.loading, s.coll, s.cfg.Quiet)
	case "help", "?":
		fmt.Fprint(s.out, sessionHelpText)
	case "pin", "archive":
		s.act(verb, fields[1:])
	default:
		fmt.Fprintf(s.errOut, "error: unknown command: %s\n", fields[0])
	}
	return true
}

func (s *session) act(verb string, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(s.errOut, "error: usage: %s <id>\n", verb)
		return
	}

	action, err := taskview.ParseAction(verb)
	if err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return
	}
	id, err := ParseTaskID(args[0])
	if err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return
	}

	next, err := s.coll.Apply(action, id, now())
	if err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return
	}

	changed := !next.Equal(s.coll)
	s.log.Debug("action applied", zap.Stringer("action", action), zap.Int("id", id), zap.Bool("changed", changed))

	s.coll = next
	if changed {
		s.render()
	}
}

func (s *session) render() {
	output.FormatView(s.out, taskview.Present(s.loading, s.coll), s.cfg.Quiet)
}

const sessionHelpText = `Commands:
  pin <id>       Pin a task
  archive <id>   Archive a task
  list           Show the list
  all            Show every task, archived included
  help           Show this help
  quit           End the session
`
