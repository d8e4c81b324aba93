package launch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRecords is returned when the source has a header but no data rows.
var ErrNoRecords = errors.New("no launch records")

// MissingColumnError is returned when a required column is absent from the header.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q (available: %s)", e.Column, strings.Join(e.Available, ", "))
}

// ParseError reports a malformed cell.
type ParseError struct {
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnknownLoaderError is returned when no loader is registered under the requested name.
type UnknownLoaderError struct {
	Name      string
	Available []string
}

func (e *UnknownLoaderError) Error() string {
	return fmt.Sprintf("unknown loader %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
