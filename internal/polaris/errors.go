// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package polaris

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds callers need to tell apart. Match them
// with errors.Is.
var (
	ErrAuthentication   = errors.New("authentication failed")
	ErrInstanceNotFound = errors.New("instance not found")
	ErrRequest          = errors.New("request failed")
	ErrSnapshotRejected = errors.New("snapshot request reported errors")
)

// RequestError carries the operation that failed alongside the underlying
// transport, HTTP status or GraphQL error.
type RequestError struct {
	Operation string
	Err       error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s: %v", nonEmpty(e.Operation, "request"), ErrRequest, e.Err)
}

func (e *RequestError) Unwrap() []error {
	return []error{ErrRequest, e.Err}
}

// StatusError records a non-success HTTP status outside of GraphQL.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", nonEmpty(e.Status, fmt.Sprint(e.StatusCode)))
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
