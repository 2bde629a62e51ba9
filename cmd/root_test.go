package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/date"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
)

const absentID = "c2a01015-c3c2-4605-930b-cdcaf5ff16ca"

var idRe = regexp.MustCompile(`\(UUID: ([0-9a-f-]{36})\)`)

func init() {
	output.DisableColor()
}

// cli runs commands against one tasks directory with a fixed clock and an
// empty environment.
type cli struct {
	t      *testing.T
	dir    string
	clock  date.Clock
	stdin  string
	stderr bytes.Buffer
	env    map[string]string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	return &cli{
		t:     t,
		dir:   t.TempDir(),
		clock: date.Fixed(time.Date(2024, time.June, 15, 9, 30, 0, 0, time.Local)),
		env:   map[string]string{},
	}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	return c.runContext(context.Background(), args...)
}

func (c *cli) runContext(ctx context.Context, args ...string) (string, error) {
	c.t.Helper()
	full := append([]string{"--dir", c.dir}, args...)
	return Dispatch(ctx, full,
		WithClock(c.clock),
		WithStdin(strings.NewReader(c.stdin)),
		WithStderr(&c.stderr),
		WithEnv(func(k string) string { return c.env[k] }),
	)
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

func (c *cli) add(desc string) string {
	c.t.Helper()
	out := c.mustRun("add", desc)
	m := idRe.FindStringSubmatch(out)
	require.Len(c.t, m, 2, out)
	return m[1]
}

func (c *cli) todayFile() string {
	return filepath.Join(c.dir, "2024-06-15-tasks.json")
}

func TestHelp(t *testing.T) {
	c := newCLI(t)

	for _, args := range [][]string{nil, {"frobnicate"}, {"frobnicate", "--weird"}, {"--help"}} {
		out, err := c.run(args...)
		require.NoError(t, err)
		assert.Contains(t, out, "Task Tracker CLI - Usage", "args %v", args)
		assert.Contains(t, out, `set-file-date "YYYY-MM-DD"`)
	}
	_, err := os.Stat(c.todayFile())
	assert.True(t, os.IsNotExist(err), "help touches no storage")
}

func TestSubcommandUnknownFlag(t *testing.T) {
	out, err := newCLI(t).run("list", "--weird")
	require.Error(t, err)
	assert.Contains(t, out, "Error: unknown flag: --weird")
}

func TestSubcommandHelp(t *testing.T) {
	out := newCLI(t).mustRun("clear", "--help")
	assert.Contains(t, out, "--yes")
	assert.NotContains(t, out, "Task Tracker CLI - Usage")
}

func TestMissingArguments(t *testing.T) {
	c := newCLI(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add"}, "Error: Missing required argument: description"},
		{[]string{"update"}, "Error: Missing required arguments: id and description"},
		{[]string{"update", absentID}, "Error: Missing required argument: description"},
		{[]string{"delete"}, "Error: Missing required argument: id"},
		{[]string{"mark-done"}, "Error: Missing required argument: id"},
		{[]string{"set-file-date"}, "Error: Missing required argument: date (YYYY-MM-DD)"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := c.run(tt.args...)
			require.Error(t, err)
			assert.True(t, clierr.HasCode(err, clierr.MissingArgument))
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestIDErrors(t *testing.T) {
	c := newCLI(t)
	c.add("keep me")

	out, err := c.run("delete", "not-a-uuid")
	require.Error(t, err)
	assert.True(t, clierr.HasCode(err, clierr.InvalidTaskID))
	assert.Contains(t, out, "Error: Invalid task ID format")

	out, err = c.run("mark-in-progress", absentID)
	require.Error(t, err)
	assert.True(t, clierr.HasCode(err, clierr.TaskNotFound))
	assert.Equal(t, "Error: Task with ID "+absentID+" not found\n", out)

	assert.Contains(t, c.mustRun("list"), "keep me")
}

func TestCorruptedFileIsParseError(t *testing.T) {
	c := newCLI(t)
	require.NoError(t, os.WriteFile(c.todayFile(), []byte("{not json"), 0o600))

	for _, args := range [][]string{{"list"}, {"add", "x"}} {
		out, err := c.run(args...)
		require.Error(t, err)
		assert.True(t, clierr.HasCode(err, clierr.ParseError), "args %v", args)
		assert.Contains(t, out, "Error: Invalid JSON in tasks file")
	}

	require.NoError(t, os.WriteFile(c.todayFile(), []byte(`{"id":"x"}`), 0o600))
	out, err := c.run("list")
	require.Error(t, err)
	assert.Contains(t, out, "Error: Tasks file does not contain a valid array")

	data, err := os.ReadFile(c.todayFile())
	require.NoError(t, err)
	assert.Equal(t, `{"id":"x"}`, string(data), "file left untouched")
}

func TestJSONOutput(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("--json", "add", "Buy milk")
	var res struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "added", res.Status)
	assert.Equal(t, "Buy milk", res.Data["description"])
	assert.Equal(t, "todo", res.Data["status"])

	out = c.mustRun("--json", "list")
	var tasks []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, res.Data["id"], tasks[0]["id"])

	out, err := c.run("--json", "delete", "bad")
	require.Error(t, err)
	var errResp output.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(out), &errResp))
	assert.Equal(t, clierr.InvalidTaskID, errResp.Code)
}

func TestOutputFromEnv(t *testing.T) {
	c := newCLI(t)
	id := c.add("Buy milk")
	c.env[output.EnvOutput] = "compact"

	assert.Equal(t, id+" [todo] Buy milk\n", c.mustRun("list"))
	assert.Contains(t, c.mustRun("--table", "list"), "DESCRIPTION")
}

func TestJSONFromEnvAppliesToResultsAndErrors(t *testing.T) {
	c := newCLI(t)
	c.env[output.EnvOutput] = "json"

	out := c.mustRun("add", "x")
	var res output.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	assert.Equal(t, "added", res.Status)

	out, err := c.run("update", "bad", "x")
	require.Error(t, err)
	var errResp output.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(out), &errResp), out)
	assert.Equal(t, clierr.InvalidTaskID, errResp.Code)
}

func TestDirectoryAlias(t *testing.T) {
	c := newCLI(t)
	other := t.TempDir()

	_, err := Dispatch(context.Background(), []string{"--directory", other, "add", "elsewhere"},
		WithClock(c.clock), WithEnv(func(string) string { return "" }))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(other, "2024-06-15-tasks.json"))
	require.NoError(t, err)
	assert.Equal(t, "No tasks found.\n", c.mustRun("list"))
}

func TestDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	clock := WithClock(date.Fixed(time.Date(2024, time.June, 15, 9, 30, 0, 0, time.Local)))
	env := WithEnv(func(k string) string {
		if k == "TASK_DIR" {
			return dir
		}
		return ""
	})

	_, err := Dispatch(context.Background(), []string{"add", "from env"}, clock, env)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "2024-06-15-tasks.json"))
	assert.NoError(t, err)
}

func TestInMemoryFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	opts := []Option{
		WithFs(fs),
		WithClock(date.Fixed(time.Date(2024, time.June, 15, 9, 30, 0, 0, time.Local))),
		WithEnv(func(string) string { return "" }),
	}
	args := func(a ...string) []string { return append([]string{"--dir", "/mem/tasks"}, a...) }

	_, err := Dispatch(context.Background(), args("add", "in memory"), opts...)
	require.NoError(t, err)
	out, err := Dispatch(context.Background(), args("list"), opts...)
	require.NoError(t, err)
	assert.Contains(t, out, "in memory")

	ok, err := afero.Exists(fs, "/mem/tasks/2024-06-15-tasks.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWriteError_NonCLIError(t *testing.T) {
	var buf bytes.Buffer
	writeError(&buf, assert.AnError, false)
	assert.Equal(t, "Error: "+assert.AnError.Error()+"\n", buf.String())

	buf.Reset()
	writeError(&buf, assert.AnError, true)
	var resp output.ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, clierr.InternalError, resp.Code)
}
