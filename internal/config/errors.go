package config

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by configuration loading.
var (
	// ErrNoLayout indicates the file defines no usable slots.
	ErrNoLayout = errors.New("layout defines no slots")

	// ErrUnknownFormat indicates the file extension is not a supported
	// layout format.
	ErrUnknownFormat = errors.New("unknown layout format")
)

// ParseError represents a syntax error in a layout file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SlotError describes one invalid slot definition.
type SlotError struct {
	// Index is the slot the definition binds, or -1 when the index itself
	// is the problem.
	Index int
	// Field is the offending field name.
	Field string
	// Message describes the violation.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *SlotError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("slot %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("slot %d %s: %s", e.Index, e.Field, e.Message)
}

// Unwrap returns the underlying error.
func (e *SlotError) Unwrap() error {
	return e.Err
}

// ConfigError aggregates every validation failure found in a layout.
// A layout with a ConfigError must not reach runtime.
type ConfigError struct {
	// Path is the layout file, when loaded from disk.
	Path string
	// Problems holds the individual violations, in slot order.
	Problems []*SlotError
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "invalid layout %s: ", e.Path)
	} else {
		b.WriteString("invalid layout: ")
	}
	fmt.Fprintf(&b, "%d problem(s)", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  ")
		b.WriteString(p.Error())
	}
	return b.String()
}

// add records a violation.
func (e *ConfigError) add(index int, field, format string, args ...any) {
	e.Problems = append(e.Problems, &SlotError{
		Index:   index,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// addErr records a violation with an underlying cause.
func (e *ConfigError) addErr(index int, field string, err error) {
	e.Problems = append(e.Problems, &SlotError{
		Index:   index,
		Field:   field,
		Message: err.Error(),
		Err:     err,
	})
}

// orNil returns the error, or nil when no problems were recorded.
func (e *ConfigError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}
