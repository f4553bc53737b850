// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, bad settings, malformed task data).
	UserError = 1

	// AuthError indicates missing or rejected credentials.
	AuthError = 2

	// SourceError indicates the data source failed to deliver tasks.
	SourceError = 3
)
