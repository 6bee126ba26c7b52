package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransientFetch indicates a listing or content fetch failed.
	// Callers fall back to the last known cache state.
	ErrTransientFetch = errors.New("fetch failed")

	// ErrMalformedDocument indicates a document whose identifier could not
	// be determined. Only that document is skipped.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrCorruptCache indicates the persisted cache is unreadable.
	// It is treated as a first run.
	ErrCorruptCache = errors.New("corrupt cache")

	// ErrPersist indicates the cache could not be written.
	ErrPersist = errors.New("persist failed")
)

// ParseError reports a document that could not be parsed.
type ParseError struct {
	Filename string
	Reason   string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err != nil && e.Err != ErrMalformedDocument {
		return fmt.Sprintf("parse %s: %s: %v", e.Filename, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Filename, e.Reason)
}

// Unwrap allows errors.Is(err, ErrMalformedDocument).
func (e *ParseError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrMalformedDocument {
		return []error{ErrMalformedDocument}
	}
	return []error{ErrMalformedDocument, e.Err}
}

// FetchError reports a failed listing or content fetch.
type FetchError struct {
	Op     string
	Target string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

// Unwrap allows errors.Is(err, ErrTransientFetch).
func (e *FetchError) Unwrap() []error {
	return []error{ErrTransientFetch, e.Err}
}

// PersistError reports a failed cache write.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("save cache %s: %v", e.Path, e.Err)
}

// Unwrap allows errors.Is(err, ErrPersist).
func (e *PersistError) Unwrap() []error {
	return []error{ErrPersist, e.Err}
}
