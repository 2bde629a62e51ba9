// Package output renders tasks, task files, and messages as text, table,
// compact lines, or JSON.
package output

import "strings"

// EnvOutput selects the output format when no flag is given.
const EnvOutput = "TASK_OUTPUT"

// Format represents an output format.
type Format int

const (
	// FormatText is the block-per-task default.
	FormatText Format = iota
	// FormatJSON outputs JSON.
	FormatJSON
	// FormatTable outputs a human-readable table.
	FormatTable
	// FormatCompact outputs one line per record.
	FormatCompact
)

// ParseFormat maps a format name to a Format. ok is false for unknown names.
func ParseFormat(name string) (f Format, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "":
		return FormatText, true
	case "json":
		return FormatJSON, true
	case "table":
		return FormatTable, true
	case "compact", "oneline":
		return FormatCompact, true
	}
	return FormatText, false
}

// Detect returns the format chosen by flags, then env (the TASK_OUTPUT
// value), then the configured fallback name.
func Detect(jsonFlag, tableFlag, compactFlag bool, env, fallback string) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	if env != "" {
		if f, ok := ParseFormat(env); ok {
			return f
		}
	}
	f, _ := ParseFormat(fallback)
	return f
}
