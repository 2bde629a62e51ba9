// Package prompt asks the user yes/no questions on a line-oriented stream.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks a yes/no question and reports whether the answer was yes.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// LineConfirmer writes the question to Out and reads one line from In.
// It blocks until a line or EOF arrives; there is no timeout.
type LineConfirmer struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewLineConfirmer returns a Confirmer reading from in and prompting on out.
func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{In: in, Out: out}
}

// Confirm implements Confirmer. Only "y" or "yes" (any case, surrounding
// whitespace ignored) count as yes. EOF is a no.
func (c *LineConfirmer) Confirm(question string) (bool, error) {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}
	if _, err := fmt.Fprint(c.Out, question); err != nil {
		return false, fmt.Errorf("writing prompt: %w", err)
	}

	answer, err := c.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	return IsYes(answer), nil
}

// IsYes reports whether answer is an affirmative reply.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// Always is a Confirmer with a fixed answer, for --yes style bypasses.
type Always bool

// Confirm implements Confirmer.
func (a Always) Confirm(string) (bool, error) { return bool(a), nil }
