package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/exitcode"
	"taskboard/internal/output"
)

func init() {
	Register(&GetCmd{})
}

// GetCmd implements the get command.
type GetCmd struct{}

func (c *GetCmd) Name() string      { return "get" }
func (c *GetCmd) Aliases() []string { return []string{"show"} }
func (c *GetCmd) Synopsis() string  { return "Show one task" }
func (c *GetCmd) Usage() string     { return "taskctl get <id>" }

func (c *GetCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *GetCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, ok := singleID(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	t, err := env.API.GetTask(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}
	output.FormatDetail(out, *t)
	return exitcode.Success
}

// singleID extracts the one task id a command expects.
func singleID(args []string, errOut io.Writer) (string, bool) {
	switch {
	case len(args) == 0:
		fmt.Fprintln(errOut, "error: task id required")
		return "", false
	case len(args) > 1:
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return "", false
	}
	return args[0], true
}
