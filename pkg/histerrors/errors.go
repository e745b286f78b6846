// Package histerrors provides structured error handling for the history-log
// decoder, with typed categorization, chained causes, and stack capture.
//
// # Basic Usage
//
//	err := histerrors.New(histerrors.ErrorTypeParse, "malformed header")
//	err = err.WithDetail("line_number", n)
//
//	if err := codes.Load(path, tables.Command); err != nil {
//	    return histerrors.Wrap(err, histerrors.ErrorTypeConfig, "failed to load command code table").
//	        WithDetail("path", path)
//	}
package histerrors

import (
	"errors"
	"runtime"

	stringpool "github.com/sdsymphony/hist2json/pkg/strings"
)

// ErrorType categorizes an error for logging and exit-code mapping.
type ErrorType string

const (
	// ErrorTypeConfig represents configuration or code-table loading errors.
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeParse represents errors tokenising or decoding a history line.
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeTranslation represents errors translating a code value via
	// the command/data/client-type code tables.
	ErrorTypeTranslation ErrorType = "translation"
	// ErrorTypeStream represents errors in the streaming driver or emitter.
	ErrorTypeStream ErrorType = "stream"
	// ErrorTypeFile represents file I/O errors (open, read, decompress).
	ErrorTypeFile ErrorType = "file"
)

// Error is a structured error carrying a category, message, optional cause,
// key-value details, and a captured stack trace.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame is a single frame in a captured call stack.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return stringpool.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return stringpool.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause, for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a key-value detail to the error. Chainable.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error of the given type, capturing the call stack.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Wrap wraps err with additional context, preserving the stack of an
// existing *Error or capturing a fresh one. Returns nil if err is nil.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existing.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsRetryable always returns false. The decoder runs as a single batch pass
// over a file; there is no remote dependency to back off and retry against.
func IsRetryable(err error) bool {
	return false
}

// IsType reports whether err is a *Error of the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
