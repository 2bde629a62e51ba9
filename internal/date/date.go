// Package date provides calendar dates, the date-stamped task file names
// built from them, and the clock that supplies "today".
package date

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
)

const format = "2006-01-02"

// FileSuffix is appended to a YYYY-MM-DD date to form a task file name.
const FileSuffix = "-tasks.json"

var (
	dateRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	fileNameRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-tasks\.json$`)
)

// Date represents a calendar date without time or timezone.
type Date struct {
	time.Time
}

// New creates a Date from year, month, day.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Of returns the calendar date of t in t's own location.
func Of(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Parse parses a YYYY-MM-DD string into a Date. Strings that match the
// layout but name an impossible day (2024-02-30) are rejected as well.
func Parse(s string) (Date, error) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return Date{}, clierr.Newf(clierr.InvalidDate,
			"Invalid date format: %s. Expected YYYY-MM-DD format (e.g., 2024-06-15)", s).
			WithDetails(map[string]any{"input": s, "format": "YYYY-MM-DD"})
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	d := New(year, time.Month(month), day)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return Date{}, clierr.Newf(clierr.InvalidDate,
			"Invalid date: %s. Please provide a valid date.", s).
			WithDetails(map[string]any{"input": s, "format": "YYYY-MM-DD"})
	}
	return d, nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(format)
}

// FileName returns the task file name for the date, YYYY-MM-DD-tasks.json.
func (d Date) FileName() string {
	return d.String() + FileSuffix
}

// FromFileName extracts the date from a task file name. ok is false when
// name does not follow the YYYY-MM-DD-tasks.json pattern.
func FromFileName(name string) (d Date, ok bool) {
	m := fileNameRe.FindStringSubmatch(name)
	if m == nil {
		return Date{}, false
	}
	d, err := Parse(m[1])
	if err != nil {
		return Date{}, false
	}
	return d, true
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return fmt.Errorf("decoding date: %w", err)
	}
	*d = parsed
	return nil
}
