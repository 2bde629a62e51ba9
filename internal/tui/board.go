// Package tui implements an interactive board over the current task file,
// one column per status.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/tasktrack/internal/app"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewBoard view = iota
	viewConfirmDelete
	viewInput
)

const (
	keyEsc = "esc"

	boardChrome = 2 // blank line + status bar below the columns
	maxColWidth = 60
	cardChrome  = 4 // border (2) + padding (2)
)

// Board is the top-level bubbletea model.
type Board struct {
	ops       *app.App
	tasks     []task.Task
	columns   []column
	activeCol int
	activeRow int
	view      view
	width     int
	height    int
	err       error
	file      string

	keys  keyMap
	help  help.Model
	input textinput.Model

	// editID is the task being edited, "" while adding.
	editID string

	// Delete confirmation.
	deleteID   string
	deleteDesc string
}

// column groups tasks belonging to a single status.
type column struct {
	status task.Status
	tasks  []task.Task
}

// NewBoard creates a Board over ops and loads the current file.
func NewBoard(ops *app.App) *Board {
	in := textinput.New()
	in.CharLimit = task.MaxDescriptionLength
	in.Placeholder = "Task description"

	b := &Board{ops: ops, keys: defaultKeys(), help: help.New(), input: in}
	b.loadTasks()
	return b
}

// ReloadMsg is sent by the file watcher to trigger a board refresh.
type ReloadMsg struct{}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.help.Width = msg.Width
		return b, nil
	case ReloadMsg:
		b.loadTasks()
		return b, nil
	}
	if b.view == viewInput {
		var cmd tea.Cmd
		b.input, cmd = b.input.Update(msg)
		return b, cmd
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}
	switch b.view {
	case viewConfirmDelete:
		return b.viewDeleteConfirm()
	case viewInput:
		return b.viewInput()
	default:
		return b.viewBoard()
	}
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return b, tea.Quit
	}
	switch b.view {
	case viewConfirmDelete:
		return b.handleDeleteKey(msg)
	case viewInput:
		return b.handleInputKey(msg)
	default:
		return b.handleBoardKey(msg)
	}
}

func (b *Board) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit
	case key.Matches(msg, b.keys.Left):
		if b.activeCol > 0 {
			b.activeCol--
			b.clampRow()
		}
	case key.Matches(msg, b.keys.Right):
		if b.activeCol < len(b.columns)-1 {
			b.activeCol++
			b.clampRow()
		}
	case key.Matches(msg, b.keys.Down):
		if col := b.currentColumn(); col != nil && b.activeRow < len(col.tasks)-1 {
			b.activeRow++
		}
	case key.Matches(msg, b.keys.Up):
		if b.activeRow > 0 {
			b.activeRow--
		}
	case key.Matches(msg, b.keys.Todo):
		b.moveSelected(task.StatusTodo)
	case key.Matches(msg, b.keys.InProgress):
		b.moveSelected(task.StatusInProgress)
	case key.Matches(msg, b.keys.Done):
		b.moveSelected(task.StatusDone)
	case key.Matches(msg, b.keys.Add):
		return b, b.startInput("", "")
	case key.Matches(msg, b.keys.Edit):
		if t, ok := b.selectedTask(); ok {
			return b, b.startInput(t.ID, t.Description)
		}
	case key.Matches(msg, b.keys.Delete):
		if t, ok := b.selectedTask(); ok {
			b.deleteID = t.ID
			b.deleteDesc = t.Description
			b.view = viewConfirmDelete
		}
	case key.Matches(msg, b.keys.Reload):
		b.loadTasks()
	case key.Matches(msg, b.keys.Help):
		b.help.ShowAll = !b.help.ShowAll
	}
	return b, nil
}

func (b *Board) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if _, err := b.ops.Delete(b.deleteID); err != nil {
			b.err = err
		}
		b.view = viewBoard
		b.loadTasks()
	case "n", "N", keyEsc, "q":
		b.view = viewBoard
	}
	return b, nil
}

func (b *Board) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		b.input.Blur()
		b.view = viewBoard
		return b, nil
	case tea.KeyEnter:
		b.submitInput()
		return b, nil
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b *Board) startInput(id, value string) tea.Cmd {
	b.editID = id
	b.input.SetValue(value)
	b.input.CursorEnd()
	b.view = viewInput
	return b.input.Focus()
}

// submitInput adds or updates a task from the input. A rejected description
// keeps the dialog open with the error shown.
func (b *Board) submitInput() {
	var err error
	if b.editID == "" {
		_, err = b.ops.Add(b.input.Value())
	} else {
		_, err = b.ops.Update(b.editID, b.input.Value())
	}
	if err != nil {
		b.err = err
		return
	}
	b.err = nil
	b.input.Blur()
	b.view = viewBoard
	b.loadTasks()
}

func (b *Board) moveSelected(status task.Status) {
	t, ok := b.selectedTask()
	if !ok || t.Status == status {
		return
	}
	if _, err := b.ops.SetStatus(t.ID, string(status)); err != nil {
		b.err = err
		return
	}
	b.loadTasks()
}

// loadTasks reads the current file and organizes its tasks into columns.
// Tasks with a status outside the known set are not shown.
func (b *Board) loadTasks() {
	b.file = b.ops.CurrentFilePath()
	tasks, err := b.ops.List("")
	if err != nil {
		b.err = err
		return
	}
	b.err = nil
	b.tasks = tasks

	statuses := task.Statuses()
	b.columns = make([]column, len(statuses))
	for i, s := range statuses {
		b.columns[i] = column{status: s, tasks: app.Filter(tasks, s)}
	}
	b.clampRow()
}

func (b *Board) currentColumn() *column {
	if b.activeCol >= 0 && b.activeCol < len(b.columns) {
		return &b.columns[b.activeCol]
	}
	return nil
}

func (b *Board) selectedTask() (task.Task, bool) {
	col := b.currentColumn()
	if col == nil || b.activeRow < 0 || b.activeRow >= len(col.tasks) {
		return task.Task{}, false
	}
	return col.tasks[b.activeRow], true
}

func (b *Board) clampRow() {
	col := b.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		b.activeRow = 0
		return
	}
	if b.activeRow >= len(col.tasks) {
		b.activeRow = len(col.tasks) - 1
	}
}

// --- Styles ---

var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	activeColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	columnTitles = map[task.Status]string{
		task.StatusTodo:       "TODO",
		task.StatusInProgress: "IN PROGRESS",
		task.StatusDone:       "DONE",
	}
)

// --- View rendering ---

func (b *Board) viewBoard() string {
	colWidth := b.columnWidth()
	rendered := make([]string, len(b.columns))
	for i, col := range b.columns {
		rendered[i] = b.renderColumn(i, col, colWidth)
	}
	boardView := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	// Clamp from the bottom so headers stay visible on short terminals.
	if target := b.height - b.chromeHeight(); target > 0 {
		lines := strings.Split(boardView, "\n")
		if len(lines) > target {
			boardView = strings.Join(lines[:target], "\n")
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, boardView, "", b.renderStatusBar())
}

func (b *Board) chromeHeight() int {
	h := boardChrome + lipgloss.Height(b.help.View(b.keys)) - 1
	if b.err != nil {
		h++
	}
	return h
}

func (b *Board) columnWidth() int {
	if len(b.columns) == 0 {
		return maxColWidth
	}
	return min(b.width/len(b.columns), maxColWidth)
}

func (b *Board) renderColumn(colIdx int, col column, width int) string {
	const headerPad = 2
	headerText := truncate(fmt.Sprintf("%s (%d)", columnTitles[col.status], len(col.tasks)), width-headerPad)
	header := columnHeaderStyle.Width(width).Render(headerText)
	if colIdx == b.activeCol {
		header = activeColumnHeaderStyle.Width(width).Render(headerText)
	}

	parts := []string{header}
	if len(col.tasks) == 0 {
		parts = append(parts, dimStyle.Width(width).Render("  (empty)"))
	}
	for rowIdx, t := range col.tasks {
		active := colIdx == b.activeCol && rowIdx == b.activeRow
		parts = append(parts, renderCard(t, active, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderCard(t task.Task, active bool, width int) string {
	inner := max(width-cardChrome, 1)
	content := truncate(t.Description, inner) + "\n" + dimStyle.Render(shortID(t.ID))

	style := cardStyle
	if active {
		style = activeCardStyle
	}
	const border = 2
	return style.Width(width - border).Render(content)
}

func (b *Board) renderStatusBar() string {
	status := truncate(fmt.Sprintf(" %s | %d tasks", labelOf(b.file), len(b.tasks)), b.width)
	bar := statusBarStyle.Render(status) + "\n" + b.help.View(b.keys)
	if b.err != nil {
		return errorStyle.Render(truncate("Error: "+b.err.Error(), b.width)) + "\n" + bar
	}
	return bar
}

func (b *Board) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		"  " + truncate(b.deleteDesc, maxColWidth) + "\n" +
		"  " + dimStyle.Render(b.deleteID) + "\n\n" +
		dimStyle.Render("y:yes  n:no")
	return dialogStyle.Render(content)
}

func (b *Board) viewInput() string {
	title := "New task"
	if b.editID != "" {
		title = "Edit task"
	}
	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n" + b.input.View() + "\n\n"
	if b.err != nil {
		content += errorStyle.Render(b.err.Error()) + "\n"
	}
	content += dimStyle.Render("enter:save  esc:cancel")
	return dialogStyle.Render(content)
}

func labelOf(path string) string {
	i := strings.LastIndexAny(path, `/\`)
	return strings.TrimSuffix(path[i+1:], "-tasks.json")
}

func shortID(id string) string {
	const n = 8
	if len(id) <= n {
		return id
	}
	return id[:n]
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
