package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/pkg/task"
)

func init() {
	Register(&UpdateCmd{})
}

// UpdateCmd implements the update command. Only flags that are given
// are sent.
type UpdateCmd struct {
	title       optString
	description optString
	status      optString
}

func (c *UpdateCmd) Name() string      { return "update" }
func (c *UpdateCmd) Aliases() []string { return []string{"edit"} }
func (c *UpdateCmd) Synopsis() string  { return "Change a task" }
func (c *UpdateCmd) Usage() string {
	return "taskctl update [--title <text>] [--desc <text>] [--status <status>] <id>"
}

func (c *UpdateCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.description, c.status = optString{}, optString{}, optString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "desc", "")
	fs.Var(&c.description, "d", "")
	fs.Var(&c.status, "status", "")
}

func (c *UpdateCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, ok := singleID(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	patch := task.Patch{
		Title:       c.title.ptr(),
		Description: c.description.ptr(),
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		fmt.Fprintln(errOut, "error: title must not be empty")
		return exitcode.UserError
	}
	if c.status.set {
		status := task.Status(strings.ToUpper(c.status.value))
		if !status.Valid() {
			fmt.Fprintf(errOut, "error: invalid status: %s\n", c.status.value)
			return exitcode.UserError
		}
		patch.Status = &status
	}
	if patch.Empty() {
		fmt.Fprintln(errOut, "error: nothing to update (use --title, --desc or --status)")
		return exitcode.UserError
	}

	t, err := env.API.UpdateTask(ctx, id, patch)
	if err != nil {
		return reportError(errOut, err)
	}
	if !env.Quiet {
		output.FormatDetail(out, *t)
	}
	return exitcode.Success
}
