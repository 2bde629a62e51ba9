package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/tasktrack/internal/app"
	"github.com/twiced-technology-gmbh/tasktrack/internal/date"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

func init() {
	Location = time.UTC
	DisableColor()
}

func sample() []task.Task {
	return []task.Task{
		{
			ID:          "c2a01015-c3c2-4605-930b-cdcaf5ff16ca",
			Description: "Buy milk",
			Status:      task.StatusTodo,
			CreatedAt:   "2024-06-15T09:30:00.000Z",
			UpdatedAt:   "2024-06-15T10:05:00.000Z",
		},
		{
			ID:          "5b1f6c8e-0d2a-4c47-9a3e-2f7d1b9e4a60",
			Description: "Write report",
			Status:      task.StatusInProgress,
			CreatedAt:   "2024-06-15T11:00:00.000Z",
			UpdatedAt:   "2024-06-15T11:00:00.000Z",
		},
	}
}

func TestTaskBlocks(t *testing.T) {
	var buf bytes.Buffer
	TaskBlocks(&buf, sample())

	want := `UUID: c2a01015-c3c2-4605-930b-cdcaf5ff16ca
Description: Buy milk
Status: TODO
Created: 2024-06-15 09:30
Updated: 2024-06-15 10:05
---

UUID: 5b1f6c8e-0d2a-4c47-9a3e-2f7d1b9e4a60
Description: Write report
Status: IN_PROGRESS
Created: 2024-06-15 11:00
Updated: 2024-06-15 11:00
---
`
	assert.Equal(t, want, buf.String())
}

func TestEmptyLists(t *testing.T) {
	for _, f := range []Format{FormatText, FormatTable, FormatCompact} {
		var buf bytes.Buffer
		require.NoError(t, Tasks(&buf, f, nil))
		assert.Equal(t, "No tasks found.\n", buf.String())
	}

	var buf bytes.Buffer
	require.NoError(t, Tasks(&buf, FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestTaskTable(t *testing.T) {
	var buf bytes.Buffer
	TaskTable(&buf, sample())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[0], "DESCRIPTION")
	assert.Contains(t, lines[1], "Buy milk")
	assert.Contains(t, lines[2], "in_progress")
	assert.Equal(t, strings.Index(lines[0], "STATUS"), strings.Index(lines[1], "todo"), "columns align")
}

func TestTaskCompact(t *testing.T) {
	var buf bytes.Buffer
	TaskCompact(&buf, sample()[:1])
	assert.Equal(t, "c2a01015-c3c2-4605-930b-cdcaf5ff16ca [todo] Buy milk\n", buf.String())
}

func TestTasksJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Tasks(&buf, FormatJSON, sample()))

	var got []task.Task
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample(), got)
}

func TestFiles(t *testing.T) {
	files := []app.FileEntry{
		{Date: date.New(2024, time.June, 1), Size: 120, Modified: time.Date(2024, time.June, 2, 8, 0, 0, 0, time.UTC)},
		{Date: date.New(2024, time.June, 15), Size: 3, Modified: time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	require.NoError(t, Files(&buf, FormatText, files))
	assert.Equal(t, "Available task files:\n"+
		"1. 2024-06-01 (120 bytes, modified: 2024-06-02)\n"+
		"2. 2024-06-15 (3 bytes, modified: 2024-06-15)\n", buf.String())

	buf.Reset()
	require.NoError(t, Files(&buf, FormatText, nil))
	assert.Equal(t, "No task files found.\n", buf.String())

	buf.Reset()
	require.NoError(t, Files(&buf, FormatJSON, files))
	assert.Contains(t, buf.String(), `"date": "2024-06-01"`)
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "N/A", FormatTimestamp(""))
	assert.Equal(t, "yesterday", FormatTimestamp("yesterday"))
	assert.Equal(t, "2024-06-15 09:30", FormatTimestamp("2024-06-15T11:30:00+02:00"))
}

func TestDetect(t *testing.T) {
	assert.Equal(t, FormatText, Detect(false, false, false, "", ""))
	assert.Equal(t, FormatTable, Detect(false, false, false, "", "table"))
	assert.Equal(t, FormatJSON, Detect(true, true, true, "", "table"))
	assert.Equal(t, FormatCompact, Detect(false, true, true, "", ""))

	assert.Equal(t, FormatCompact, Detect(false, false, false, "compact", "table"))
	assert.Equal(t, FormatJSON, Detect(false, false, false, "JSON", ""))
	assert.Equal(t, FormatTable, Detect(false, true, false, "compact", ""))

	assert.Equal(t, FormatTable, Detect(false, false, false, "bogus", "table"))
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "TASK_NOT_FOUND", "Task with ID x not found", map[string]any{"id": "x"})

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "TASK_NOT_FOUND", got.Code)
	assert.Equal(t, "x", got.Details["id"])
}
