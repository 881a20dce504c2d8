// Package errors provides custom error types for the morphmerge system.
// These errors enable programmatic error checking with errors.Is and carry
// enough context (stage, file, record) to report batch failures without
// aborting a run.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the morphmerge system.
var (
	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexMissing indicates that the lemma index file, a necessary
	// input for reconciliation, is entirely absent.
	ErrIndexMissing = errors.New("lemma index missing")

	// ErrReadOnly indicates an attempt to modify a read-only resource.
	ErrReadOnly = errors.New("read only")
)

// ParseError represents a failure to parse a source file or record.
type ParseError struct {
	Format  string // "tabular", "tagged", "lexicon", "index", "layout"
	File    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parsing %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("parsing %s: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// WrapParse wraps an error as a ParseError.
func WrapParse(format, file string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents a filesystem failure during batch processing.
type IOError struct {
	Operation string // "read", "write", "walk", "create"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Path, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps an error as an IOError.
func WrapIO(operation, path string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// ResourceError represents a failure operating on a pipeline resource.
type ResourceError struct {
	Operation string // "load", "build", "merge", "split", "concat"
	Resource  string // "index", "corpus", "entry", "config", "audit log"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// WrapResource wraps an error as a ResourceError.
func WrapResource(operation, resource, id string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: message, Err: err}
}

// Is re-exports errors.Is for callers that already import this package.
var Is = errors.Is

// As re-exports errors.As for callers that already import this package.
var As = errors.As
