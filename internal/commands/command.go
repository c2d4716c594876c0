// Package commands provides the taskctl command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"

	"taskboard/internal/exitcode"
	"taskboard/pkg/client"
)

// Env is what every command runs against.
type Env struct {
	API   client.API
	Quiet bool
}

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

	// RegisterFlags registers command-specific flags. It is called once
	// per run and must reset any flag state.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with positional args left after flag
	// parsing and returns the exit code. env.API may be nil for commands
	// that do not talk to the server.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// reportError prints err and maps it to an exit code. Requests the server
// rejected as bad input or unknown ids are user errors.
func reportError(errOut io.Writer, err error) int {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		switch apiErr.StatusCode {
		case http.StatusBadRequest, http.StatusNotFound:
			fmt.Fprintf(errOut, "error: %s\n", msg)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %s\n", msg)
		return exitcode.BackendError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// optString is a string flag that remembers whether it was given.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(v string) error {
	o.value = v
	o.set = true
	return nil
}

func (o *optString) ptr() *string {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}
