package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/exitcode"
	"taskboard/pkg/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description optString
	status      string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskctl add [--desc <text>] [--status <status>] <title...>"
}

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	c.description = optString{}
	fs.Var(&c.description, "desc", "")
	fs.Var(&c.description, "d", "")
	fs.StringVar(&c.status, "status", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	status := task.Status(strings.ToUpper(c.status))
	if status != "" && !status.Valid() {
		fmt.Fprintf(errOut, "error: invalid status: %s\n", c.status)
		return exitcode.UserError
	}

	t, err := env.API.CreateTask(ctx, task.Fields{
		Title:       title,
		Description: c.description.ptr(),
		Status:      status,
	})
	if err != nil {
		return reportError(errOut, err)
	}
	if !env.Quiet {
		fmt.Fprintln(out, t.ID)
	}
	return exitcode.Success
}
