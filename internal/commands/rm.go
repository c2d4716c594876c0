package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskctl rm <id>" }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, ok := singleID(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if _, err := env.API.DeleteTask(ctx, id); err != nil {
		return reportError(errOut, err)
	}
	if !env.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
