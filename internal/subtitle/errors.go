package subtitle

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMalformedTimecode = errors.New("malformed timecode")
	ErrMalformedColor    = errors.New("malformed color")
)

// ParseError is returned when a document cannot be built at all.
type ParseError struct {
	Format   string
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("failed to parse %s file: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("failed to parse %s file %q: %v", e.Format, e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExportError is returned when a document cannot be serialized.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export %s: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// TimecodeError reports a timestamp that does not match the format grammar.
type TimecodeError struct {
	Format Format
	Value  string
	Line   int
}

func (e *TimecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid %s timecode %q at line %d", e.Format, e.Value, e.Line)
	}
	return fmt.Sprintf("invalid %s timecode %q", e.Format, e.Value)
}

func (e *TimecodeError) Unwrap() error { return ErrMalformedTimecode }

// ColorError reports an ASS color that cannot be decoded.
type ColorError struct {
	Value string
}

func (e *ColorError) Error() string {
	return fmt.Sprintf("invalid color %q", e.Value)
}

func (e *ColorError) Unwrap() error { return ErrMalformedColor }

func unsupported(tag Format) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, string(tag))
}
