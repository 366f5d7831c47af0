// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the provider has no data for a lookup.
	ErrNotFound = errors.New("idv: not found")
)

// ValidationError is returned when the provider rejects a request with
// HTTP 422. Error() returns the provider's response body unmodified so callers
// can surface the structured error to their clients.
type ValidationError struct {
	Operation string
	Body      []byte
}

func (e *ValidationError) Error() string {
	return string(e.Body)
}

// ProviderError is any other unsuccessful HTTP response from the provider.
type ProviderError struct {
	Operation  string
	StatusCode int
	Body       []byte
}

func (e *ProviderError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("idv %s: unexpected HTTP status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("idv %s: unexpected HTTP status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// UnrecognizedError means the provider answered with a value outside of the
// documented enumerations. It is fatal: the provider's contract changed.
type UnrecognizedError struct {
	Flow  string
	Field string
	Value string
}

func (e *UnrecognizedError) Error() string {
	return fmt.Sprintf("idv %s: unrecognized %s %q", e.Flow, e.Field, e.Value)
}

func unrecognized(flow, field string, value interface{}) *UnrecognizedError {
	return &UnrecognizedError{
		Flow:  flow,
		Field: field,
		Value: fmt.Sprintf("%v", value),
	}
}

// IsFatal returns true when err carries an UnrecognizedError.
func IsFatal(err error) bool {
	var ue *UnrecognizedError
	return errors.As(err, &ue)
}
