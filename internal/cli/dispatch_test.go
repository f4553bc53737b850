package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskbox/internal/backend/googletasks"
	"taskbox/internal/cli"
	"taskbox/internal/commands"
	"taskbox/internal/config"
	"taskbox/internal/exitcode"
	"taskbox/internal/source"
	"taskbox/internal/task"
	"taskbox/internal/testutil"
)

// testFactory creates a source factory that returns the given FakeSource.
func testFactory(src *testutil.FakeSource) cli.SourceFactory {
	return func(ctx context.Context, cfg *config.Config) (source.Source, error) {
		return src, nil
	}
}

// run dispatches args against an isolated config directory.
func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	for _, key := range []string{"SOURCE", "STORY", "FILE", "GOOGLE_LIST"} {
		t.Setenv(config.EnvPrefix+"_"+key, "")
	}

	var outBuf, errBuf bytes.Buffer
	full := args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		full = append([]string{args[0], "--config", t.TempDir()}, args[1:]...)
	}
	code = d.Run(context.Background(), full, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func scenarioSource() *testutil.FakeSource {
	src := testutil.NewFakeSource()
	src.AddTaskWithState(1, "A", task.StateInbox)
	src.AddTaskWithState(2, "B", task.StatePinned)
	src.AddTaskWithState(3, "C", task.StateArchived)
	return src
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeSource()))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeSource()))

	_, stderr, code := run(t, dispatcher, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	src := testutil.NewFakeSource()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(src))

	stdout, stderr, code := run(t, dispatcher, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
	if src.Loads() != 0 {
		t.Error("help should not load tasks")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeSource()))

	stdout, _, code := run(t, dispatcher, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "taskbox 0.1.0\n" {
		t.Errorf("expected 'taskbox 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeSource()))

	_, stderr, code := run(t, dispatcher, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeSource()))

	_, stderr, code := run(t, dispatcher, "list", "--story")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -story\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	for _, key := range []string{"SOURCE", "STORY", "FILE", "GOOGLE_LIST"} {
		t.Setenv(config.EnvPrefix+"_"+key, "")
	}
	src := scenarioSource()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(src))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	expected := "   2  [ ] B *\n   1  [ ] A\n"
	if stdout.String() != expected {
		t.Errorf("expected %q, got %q", expected, stdout.String())
	}
	if src.Loads() != 1 {
		t.Errorf("expected one load, got %d", src.Loads())
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		stderr string
	}{
		{"auth", fmt.Errorf("%w: invalid token.json: bad", googletasks.ErrCredentials), exitcode.AuthError, "error: auth error: unusable credentials: invalid token.json: bad\n"},
		{"source", errors.New("connection refused"), exitcode.SourceError, "error: source error: connection refused\n"},
		{"mentions token", errors.New("dial tcp: lookup tokens.example: no such host"), exitcode.SourceError, "error: source error: dial tcp: lookup tokens.example: no such host\n"},
		{"missing file", fmt.Errorf("failed to read task file: %w", os.ErrNotExist), exitcode.UserError, "error: failed to read task file: file does not exist\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := func(ctx context.Context, cfg *config.Config) (source.Source, error) {
				return nil, tt.err
			}
			dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

			stdout, stderr, code := run(t, dispatcher, "list")

			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if stdout != "" {
				t.Errorf("expected no stdout, got %q", stdout)
			}
			if stderr != tt.stderr {
				t.Errorf("expected %q, got %q", tt.stderr, stderr)
			}
		})
	}
}

func TestDispatcher_DefaultFactoryStories(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	tests := []struct {
		story string
		want  string
	}{
		{"Empty", "no tasks found\n"},
		{"Loading", "loading...\n"},
		{"withpinnedtasks", "   6  [ ] Task 6 (pinned) *\n   1  [ ] Task 1\n   2  [ ] Task 2\n   3  [ ] Task 3\n   4  [ ] Task 4\n   5  [ ] Task 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.story, func(t *testing.T) {
			stdout, stderr, code := run(t, dispatcher, "list", "--source", "fixture", "--story", tt.story)

			if code != exitcode.Success {
				t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stdout)
			}
		})
	}
}

func TestDispatcher_DefaultFactoryUserErrors(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	tests := []struct {
		args   []string
		prefix string
	}{
		{[]string{"list", "--source", "carrier-pigeon"}, "error: unknown source: carrier-pigeon"},
		{[]string{"list", "--story", "Nope"}, "error: story not found: Nope"},
		{[]string{"list", "--source", "file"}, "error: task file path required"},
	}

	for _, tt := range tests {
		_, stderr, code := run(t, dispatcher, tt.args...)

		if code != exitcode.UserError {
			t.Errorf("%v: expected exit code %d, got %d", tt.args, exitcode.UserError, code)
		}
		if !strings.HasPrefix(stderr, tt.prefix) {
			t.Errorf("%v: expected stderr to start with %q, got %q", tt.args, tt.prefix, stderr)
		}
	}
}

func TestDispatcher_GoogleNotLoggedIn(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, dispatcher, "list", "--source", "google")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "taskbox login") {
		t.Errorf("expected login hint, got %q", stderr)
	}
}

func TestDispatcher_SettingsFile(t *testing.T) {
	for _, key := range []string{"SOURCE", "STORY", "FILE", "GOOGLE_LIST"} {
		t.Setenv(config.EnvPrefix+"_"+key, "")
	}
	dir := t.TempDir()
	settings := "source: fixture\nstory: Loading\n"
	if err := os.WriteFile(filepath.Join(dir, config.SettingsName+".yaml"), []byte(settings), 0600); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config", dir}, &stdout, &stderr)
	if code != exitcode.Success || stdout.String() != "loading...\n" {
		t.Errorf("settings file: code %d, stdout %q, stderr %q", code, stdout.String(), stderr.String())
	}

	stdout.Reset()
	code = dispatcher.Run(context.Background(), []string{"list", "--config", dir, "--story", "Empty"}, &stdout, &stderr)
	if code != exitcode.Success || stdout.String() != "no tasks found\n" {
		t.Errorf("flag override: code %d, stdout %q, stderr %q", code, stdout.String(), stderr.String())
	}
}

func TestDispatcher_InvalidSettingsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsName+".yaml"), []byte("source: [fixture\n"), 0600); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config", dir}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr.String(), "error: invalid settings") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(scenarioSource()))

	stdout, stderr, code := run(t, dispatcher, "list", "--debug")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "dispatch") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
	if strings.Contains(stdout, "dispatch") {
		t.Error("debug log leaked into stdout")
	}
}
