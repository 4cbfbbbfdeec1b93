// Package errors defines the error taxonomy for veripack: configuration
// errors at setup time and not-found errors from citation resolution.
// Absence of evidence is never an error; it flows to INSUFFICIENT.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks
var (
	// ErrConfiguration is returned for an empty or invalid corpus/query at setup
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNotFound is returned when citation resolution references a document
	// or line range absent from the corpus. This is an internal-consistency
	// fault: the ranker must only return ranges it produced from the same
	// index. Always fatal, never swallowed.
	ErrNotFound = errors.New("document or range not found")
)

// ConfigurationError carries the reason setup failed
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s", e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(reason string) *ConfigurationError {
	return &ConfigurationError{Reason: reason}
}

// NotFoundError identifies the document and location that could not be resolved
type NotFoundError struct {
	DocID    string
	Location string
}

func (e *NotFoundError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("document '%s' has no range %s", e.DocID, e.Location)
	}
	return fmt.Sprintf("document '%s' not found", e.DocID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(docID, location string) *NotFoundError {
	return &NotFoundError{DocID: docID, Location: location}
}
