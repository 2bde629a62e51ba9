package output

import (
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// TaskCompact renders one line per task: id, status, description.
func TaskCompact(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

func formatTaskLine(t task.Task) string {
	return fmt.Sprintf("%s [%s] %s", t.ID, styledStatus(t.Status, string(t.Status)), t.Description)
}
