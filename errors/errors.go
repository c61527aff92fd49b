// Package errors provides error types and handling for solc sync operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a sync operation error with context about the operation
// that failed. It wraps the underlying error with the version and object key
// involved for better debugging.
type Error struct {
	// Op is the operation that failed (e.g., "resolve", "acquire", "publish")
	Op string

	// Version is the normalized compiler version involved (if applicable)
	Version string

	// Key is the object store key involved (if applicable)
	Key string

	// Err is the underlying error from the AWS SDK or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Version != "" && e.Key != "" {
		return fmt.Sprintf("solcsync.%s %s (%s): %v", e.Op, e.Version, e.Key, e.Err)
	}
	if e.Version != "" {
		return fmt.Sprintf("solcsync.%s %s: %v", e.Op, e.Version, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("solcsync.%s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("solcsync.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithVersion adds version context to an existing error.
func (e *Error) WithVersion(version string) *Error {
	e.Version = version
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewVersionError creates a new Error with version context.
func NewVersionError(op, version string, err error) *Error {
	return &Error{
		Op:      op,
		Version: version,
		Err:     err,
	}
}

// Sentinel errors for sync operation failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrManifestUnavailable indicates the remote version manifest could not
	// be fetched or parsed. Fatal for a remote sync run.
	ErrManifestUnavailable = errors.New("solcsync: manifest unavailable")

	// ErrLocalDirMissing indicates the local compiler directory does not
	// exist. Fatal for a local sync run.
	ErrLocalDirMissing = errors.New("solcsync: local directory missing")

	// ErrUnreadableBinary indicates a local compiler candidate could not be
	// executed or did not report a parseable version. Per-candidate, non-fatal.
	ErrUnreadableBinary = errors.New("solcsync: unreadable compiler binary")

	// ErrDownloadFailed indicates a remote compiler download failed.
	ErrDownloadFailed = errors.New("solcsync: download failed")

	// ErrLocalFileMissing indicates a local compiler file disappeared between
	// resolution and acquisition.
	ErrLocalFileMissing = errors.New("solcsync: local file missing")

	// ErrPublishFailed indicates a write to the object store failed.
	ErrPublishFailed = errors.New("solcsync: publish failed")

	// ErrProbeFailed indicates the existence probe returned an error other
	// than "not found". Distinct from confirmed absence: the version may or
	// may not already be published.
	ErrProbeFailed = errors.New("solcsync: existence probe failed")

	// ErrObjectNotFound indicates the requested object does not exist
	ErrObjectNotFound = errors.New("solcsync: object not found")

	// ErrInvalidInput indicates the provided input is invalid
	ErrInvalidInput = errors.New("solcsync: invalid input")
)

// IsManifestUnavailable checks if an error indicates the manifest could not
// be fetched or parsed.
func IsManifestUnavailable(err error) bool {
	return errors.Is(err, ErrManifestUnavailable)
}

// IsUnreadableBinary checks if an error indicates a local candidate could not
// report its version.
func IsUnreadableBinary(err error) bool {
	return errors.Is(err, ErrUnreadableBinary)
}

// IsProbeFailed checks if an error came from the existence probe rather than
// from a confirmed-absent result.
func IsProbeFailed(err error) bool {
	return errors.Is(err, ErrProbeFailed)
}

// IsObjectNotFound checks if an error indicates that an object was not found.
func IsObjectNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsInvalidInput checks if an error indicates invalid input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
