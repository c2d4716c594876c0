// Package exitcode defines exit codes for taskctl.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates bad arguments, or a request the server rejected
	// as invalid or not found.
	UserError = 1

	// BackendError indicates a server failure or no response at all.
	BackendError = 3
)
