package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/tasktrack/internal/app"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

const (
	displayLayout = "2006-01-02 15:04"
	fileDayLayout = "2006-01-02"
)

// Location is the zone timestamps are displayed in.
var Location = time.Local

// Tasks renders tasks in format f. An empty list prints "No tasks found."
// in the text formats.
func Tasks(w io.Writer, f Format, tasks []task.Task) error {
	switch f {
	case FormatJSON:
		if tasks == nil {
			tasks = []task.Task{}
		}
		return JSON(w, tasks)
	case FormatTable:
		TaskTable(w, tasks)
	case FormatCompact:
		TaskCompact(w, tasks)
	default:
		TaskBlocks(w, tasks)
	}
	return nil
}

// TaskBlocks renders each task as a labelled block terminated by "---",
// blocks separated by a blank line.
func TaskBlocks(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	blocks := make([]string, len(tasks))
	for i, t := range tasks {
		blocks[i] = taskBlock(t)
	}
	fmt.Fprintln(w, strings.Join(blocks, "\n\n"))
}

func taskBlock(t task.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("UUID:"), t.ID)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Description:"), t.Description)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Status:"), styledStatus(t.Status, statusLabel(t.Status)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Created:"), FormatTimestamp(t.CreatedAt))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Updated:"), FormatTimestamp(t.UpdatedAt))
	b.WriteString("---")
	return b.String()
}

// Files renders the date-stamped storage files.
func Files(w io.Writer, f Format, files []app.FileEntry) error {
	if f == FormatJSON {
		if files == nil {
			files = []app.FileEntry{}
		}
		return JSON(w, files)
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "No task files found.")
		return nil
	}
	fmt.Fprintln(w, "Available task files:")
	for i, file := range files {
		fmt.Fprintf(w, "%d. %s (%d bytes, modified: %s)\n",
			i+1, file.Date, file.Size, file.Modified.In(Location).Format(fileDayLayout))
	}
	return nil
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// FormatTimestamp renders a stored timestamp for display, or "N/A" when
// it is empty. Unparseable values are shown as stored.
func FormatTimestamp(ts string) string {
	if strings.TrimSpace(ts) == "" {
		return "N/A"
	}
	t, err := task.ParseTimestamp(ts)
	if err != nil {
		return ts
	}
	return t.In(Location).Format(displayLayout)
}

func statusLabel(s task.Status) string {
	if s == "" {
		return "N/A"
	}
	return strings.ToUpper(string(s))
}
