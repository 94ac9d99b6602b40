package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
)

// Kind classifies the failures a navigator command can report
type Kind int

const (
	KindIO Kind = iota
	KindInvalidInput
	KindUnrecognizedCommand
	KindAlreadyExists
	KindNotFound
	KindInvalidDirectory
	KindAtRoot
	KindUnsupported
	KindCanceled
)

// String returns a string representation of the error kind
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindInvalidInput:
		return "invalid input"
	case KindUnrecognizedCommand:
		return "unrecognized command"
	case KindAlreadyExists:
		return "already exists"
	case KindNotFound:
		return "not found"
	case KindInvalidDirectory:
		return "invalid directory"
	case KindAtRoot:
		return "at root"
	case KindUnsupported:
		return "unsupported"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// AppError represents a structured navigator error.
// Operation names the attempted action and Path the offending location, so
// Error() always fits on one line.
type AppError struct {
	Kind      Kind
	Operation string
	Path      string
	Message   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind carried by err. Errors that are not AppErrors are
// I/O failures as far as the navigator is concerned.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindIO
}

// Is reports whether err is an AppError of the given kind
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// As is a shorthand for extracting the AppError from a chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// NewInvalidInput creates an error for a command selector that is not a number
func NewInvalidInput(input string, err error) *AppError {
	return &AppError{
		Kind:      KindInvalidInput,
		Operation: "select command",
		Message:   fmt.Sprintf("%q is not a valid option number", input),
		Err:       err,
	}
}

// NewUnrecognizedCommand creates an error for a numeric but unmapped selector
func NewUnrecognizedCommand(id int) *AppError {
	return &AppError{
		Kind:      KindUnrecognizedCommand,
		Operation: "select command",
		Message:   "option " + strconv.Itoa(id) + " does not exist",
	}
}

// NewAlreadyExists creates an error for a path that must not exist yet
func NewAlreadyExists(operation, path string) *AppError {
	return &AppError{
		Kind:      KindAlreadyExists,
		Operation: operation,
		Path:      path,
		Message:   "already exists",
	}
}

// NewNotFound creates an error for a path that must exist
func NewNotFound(operation, path string, err error) *AppError {
	return &AppError{
		Kind:      KindNotFound,
		Operation: operation,
		Path:      path,
		Message:   "no such file or directory",
		Err:       err,
	}
}

// NewInvalidDirectory creates an error for a path that must be an existing directory
func NewInvalidDirectory(operation, path string, err error) *AppError {
	return &AppError{
		Kind:      KindInvalidDirectory,
		Operation: operation,
		Path:      path,
		Message:   "not an existing directory",
		Err:       err,
	}
}

// NewAtRoot creates the no-op signal for going up from a filesystem root
func NewAtRoot(path string) *AppError {
	return &AppError{
		Kind:      KindAtRoot,
		Operation: "go up",
		Path:      path,
		Message:   "already at the root directory",
	}
}

// NewUnsupported creates an error for a request the navigator refuses to guess at
func NewUnsupported(operation, path, message string) *AppError {
	return &AppError{
		Kind:      KindUnsupported,
		Operation: operation,
		Path:      path,
		Message:   message,
	}
}

// NewIOError wraps an underlying filesystem failure
func NewIOError(operation, path string, err error) *AppError {
	msg := "i/o failure"
	if err != nil {
		msg = causeText(err)
	}
	return &AppError{
		Kind:      KindIO,
		Operation: operation,
		Path:      path,
		Message:   msg,
		Err:       err,
	}
}

// causeText drops the operation and path that *fs.PathError and
// *os.LinkError repeat, since AppError already carries both.
func causeText(err error) string {
	var pe *fs.PathError
	if stderrors.As(err, &pe) {
		return pe.Err.Error()
	}
	var le *os.LinkError
	if stderrors.As(err, &le) {
		return le.Err.Error()
	}
	return err.Error()
}

// NewCanceled creates an error for a prompt the user abandoned mid-command
func NewCanceled(operation string, err error) *AppError {
	return &AppError{
		Kind:      KindCanceled,
		Operation: operation,
		Message:   "input aborted",
		Err:       err,
	}
}
