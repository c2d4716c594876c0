// Package cli parses taskctl arguments and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskboard/internal/commands"
	"taskboard/internal/exitcode"
	"taskboard/pkg/client"
)

// APIFactory builds the API for a base URL. Tests inject fakes here.
type APIFactory func(baseURL string) client.API

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  APIFactory
}

// NewDispatcher creates a new dispatcher with the given registry and API factory.
func NewDispatcher(registry *commands.Registry, factory APIFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// DefaultBaseURL is TASKS_API_BASE, or the local server.
func DefaultBaseURL() string {
	if v := strings.TrimSpace(os.Getenv("TASKS_API_BASE")); v != "" {
		return v
	}
	return client.DefaultBaseURL
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list the first page
	if len(args) == 0 {
		args = []string{"list"}
	}

	name := args[0]
	if strings.HasPrefix(name, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}
	cmd, ok := d.registry.Find(name)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		baseURL string
		quiet   bool
	)
	fs.StringVar(&baseURL, "api", DefaultBaseURL(), "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&quiet, "q", false, "")
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args[1:]); err != nil {
		errStr := err.Error()
		switch {
		case strings.HasPrefix(errStr, "flag needs an argument:"):
			fmt.Fprintf(errOut, "error: %s\n", errStr)
		case strings.HasPrefix(errStr, "flag provided but not defined:"):
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", strings.TrimPrefix(errStr, "flag provided but not defined: "))
		default:
			fmt.Fprintf(errOut, "error: %s\n", errStr)
		}
		return exitcode.UserError
	}

	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positional[0])
		return exitcode.UserError
	}

	env := &commands.Env{
		API:   d.factory(baseURL),
		Quiet: quiet,
	}
	return cmd.Run(ctx, env, positional, out, errOut)
}
