package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Status colors aligned with the TUI column headers.
	statusStyles = map[task.Status]lipgloss.Style{
		task.StatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		task.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}
)

// DisableColor strips all styling from text and table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	labelStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	statusStyles = map[task.Status]lipgloss.Style{}
}

// TaskTable renders tasks as an aligned table.
func TaskTable(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	const (
		pad      = 2
		maxDescW = 50
		idW      = 36 + pad
		timeW    = len(displayLayout) + pad
	)
	statusW, descW := len("STATUS")+pad, len("DESCRIPTION")+pad
	for _, t := range tasks {
		statusW = max(statusW, len(t.Status)+pad)
		descW = max(descW, min(lipgloss.Width(t.Description)+pad, maxDescW))
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
		idW, "ID", statusW, "STATUS", descW, "DESCRIPTION", timeW, "CREATED", "UPDATED")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range tasks {
		row := fmt.Sprintf("%s %s %s %s %s",
			padRight(t.ID, idW),
			padRight(styledStatus(t.Status, string(t.Status)), statusW),
			padRight(truncate(t.Description, descW-pad), descW),
			padRight(dimStyle.Render(FormatTimestamp(t.CreatedAt)), timeW),
			dimStyle.Render(FormatTimestamp(t.UpdatedAt)))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	const ellipsis = "..."
	if width <= len(ellipsis) {
		return string(r[:width])
	}
	return string(r[:width-len(ellipsis)]) + ellipsis
}

func styledStatus(s task.Status, text string) string {
	if st, ok := statusStyles[s]; ok {
		return st.Render(text)
	}
	return text
}
