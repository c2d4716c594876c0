package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"taskboard/internal/cli"
	"taskboard/internal/commands"
	"taskboard/internal/exitcode"
	"taskboard/internal/testutil"
	"taskboard/pkg/client"
	"taskboard/pkg/task"
)

// testFactory returns api and records the base URL it was asked for.
func testFactory(api *testutil.FakeAPI, gotURL *string) cli.APIFactory {
	return func(baseURL string) client.API {
		*gotURL = baseURL
		return api
	}
}

func run(t *testing.T, api *testutil.FakeAPI, args ...string) (stdout, stderr string, code int, baseURL string) {
	t.Helper()
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(api, &baseURL))
	var out, errOut bytes.Buffer
	code = d.Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), code, baseURL
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code, _ := run(t, testutil.NewFakeAPI(), "unknowncmd")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown command: unknowncmd\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code, _ := run(t, testutil.NewFakeAPI(), "--quiet")
	if code != exitcode.UserError || stderr != "error: unknown command: --quiet\n" {
		t.Errorf("code %d stderr %q", code, stderr)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code, _ := run(t, testutil.NewFakeAPI(), "list", "--bogus")
	if code != exitcode.UserError || stderr != "error: unknown flag: -bogus\n" {
		t.Errorf("code %d stderr %q", code, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	api := testutil.NewFakeAPI()
	api.Add("Buy milk", task.StatusPending)

	stdout, _, code, _ := run(t, api)
	if code != exitcode.Success || !strings.Contains(stdout, "Buy milk") {
		t.Errorf("code %d stdout %q", code, stdout)
	}
}

func TestDispatcher_BaseURL(t *testing.T) {
	t.Setenv("TASKS_API_BASE", "http://tasks.internal:8000/tasks")

	_, _, _, got := run(t, testutil.NewFakeAPI(), "list")
	if got != "http://tasks.internal:8000/tasks" {
		t.Errorf("env base URL = %q", got)
	}

	_, _, _, got = run(t, testutil.NewFakeAPI(), "list", "--api", "http://other/tasks")
	if got != "http://other/tasks" {
		t.Errorf("flag base URL = %q", got)
	}
}

func TestDispatcher_DefaultBaseURL(t *testing.T) {
	t.Setenv("TASKS_API_BASE", "")
	if got := cli.DefaultBaseURL(); got != client.DefaultBaseURL {
		t.Errorf("DefaultBaseURL() = %q", got)
	}
}

func TestDispatcher_QuietAndAlias(t *testing.T) {
	api := testutil.NewFakeAPI()
	created := api.Add("Doomed", task.StatusPending)

	stdout, stderr, code, _ := run(t, api, "delete", "--quiet", created.ID)
	if code != exitcode.Success || stdout != "" || stderr != "" {
		t.Errorf("code %d stdout %q stderr %q", code, stdout, stderr)
	}
}
