package service

import "fmt"

// ValidationError represents a request that failed validation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError represents a lookup that resolved to no row.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// UpstreamError represents a failure in a dependency (database or YouTube).
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type UpstreamError struct {
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}
