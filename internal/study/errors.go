package study

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumn marks a required header cell that is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformedCell marks a cell that cannot be parsed or violates its domain.
	ErrMalformedCell = errors.New("malformed cell")
	// ErrDuplicateMouse marks a mouse id listed twice in the metadata table.
	ErrDuplicateMouse = errors.New("duplicate mouse id")
)

// InputError reports a data problem found while loading a table.
type InputError struct {
	Table  string
	Row    int // 1-based data row, 0 for header problems
	Column string
	Value  string
	Err    error
}

func (e *InputError) Error() string {
	var b strings.Builder
	b.WriteString(e.Table)
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %q", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, ": value %q", e.Value)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *InputError) Unwrap() error { return e.Err }
