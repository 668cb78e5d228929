package errors

import (
	"errors"
	"fmt"
)

// Exit codes for forage-portfwd
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitInputNotFound = 2
	ExitDocumentError = 3
	ExitOutputError   = 4
	ExitSettingsError = 5
	ExitFindings      = 6
	ExitDrift         = 7
)

// PortfwdError is the base error type for forage-portfwd
type PortfwdError struct {
	Code    int
	Message string
	Cause   error
}

func (e *PortfwdError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PortfwdError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *PortfwdError) ExitCode() int {
	return e.Code
}

// New creates a new PortfwdError
func New(code int, message string) *PortfwdError {
	return &PortfwdError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PortfwdError
func Wrap(code int, message string, cause error) *PortfwdError {
	return &PortfwdError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// InputNotFound returns an error for a port document path that does not exist
func InputNotFound(path string) *PortfwdError {
	return New(ExitInputNotFound, fmt.Sprintf("input document not found: %s", path))
}

// DocumentError returns an error for an unreadable or unparseable port document
func DocumentError(path string, cause error) *PortfwdError {
	return Wrap(ExitDocumentError, fmt.Sprintf("invalid port document %s", path), cause)
}

// OutputError returns an error for failures writing generated output
func OutputError(op string, cause error) *PortfwdError {
	return Wrap(ExitOutputError, fmt.Sprintf("output %s failed", op), cause)
}

// SettingsError returns an error for tool settings issues
func SettingsError(message string, cause error) *PortfwdError {
	return Wrap(ExitSettingsError, message, cause)
}

// Findings returns an error reporting disabled rules or failed blocks in strict mode
func Findings(disabled, failed int) *PortfwdError {
	return New(ExitFindings, fmt.Sprintf("%d disabled rules, %d failed blocks", disabled, failed))
}

// Drift returns an error when generated output differs from the file on disk
func Drift(path string) *PortfwdError {
	return New(ExitDrift, fmt.Sprintf("generated rules differ from %s", path))
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *PortfwdError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var portfwdErr *PortfwdError
	if errors.As(err, &portfwdErr) {
		return portfwdErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
