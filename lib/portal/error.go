// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

package portal

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind classifies client errors so callers can make decisions
// without parsing message text. The kind is decided once, at the
// client boundary, rather than ad hoc per call site.
type ErrorKind string

const (
	// KindValidation indicates the caller provided invalid input
	// before any request was issued (empty required field, missing
	// session). Fix the input and retry.
	KindValidation ErrorKind = "validation"

	// KindTransport indicates the request never completed: connection
	// refused, DNS failure, context cancellation. The backend state is
	// unknown.
	KindTransport ErrorKind = "transport"

	// KindApplication indicates the backend rejected the request with
	// a non-success status and a structured error body.
	KindApplication ErrorKind = "application"
)

// Error is a categorized failure from a portal operation.
//
// For application errors the backend's body is parsed into Detail and
// Message. The backend is FastAPI-shaped: HTTPException produces
// {"detail": "..."} with a string detail, request validation produces
// {"detail": [...]} with a structured detail, and some handlers return
// {"message": "..."} instead. Non-string detail values are preserved
// as their compact JSON encoding.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// StatusCode is the HTTP status for application errors, zero
	// otherwise.
	StatusCode int

	// Detail is the backend's human-readable detail field, when present.
	Detail string

	// Message is the backend's generic message field, when present.
	Message string

	// Err is the underlying cause for transport errors, nil otherwise.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("portal: request failed: %v", e.Err)
	case KindApplication:
		if text := e.UserMessage(""); text != "" {
			return fmt.Sprintf("portal: %d: %s", e.StatusCode, text)
		}
		return fmt.Sprintf("portal: unexpected status %d", e.StatusCode)
	default:
		if text := e.UserMessage(""); text != "" {
			return fmt.Sprintf("portal: %s", text)
		}
		return "portal: invalid input"
	}
}

// Unwrap returns the underlying cause, allowing errors.Is and
// errors.As to walk the chain through transport errors.
func (e *Error) Unwrap() error { return e.Err }

// UserMessage resolves the text to show the user: the detail field if
// present, else the message field, else the given fallback. This is
// the single place the duck-typed error body shape is interpreted.
func (e *Error) UserMessage(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// UserMessage resolves user-facing text for any error returned by this
// package: a *Error resolves per its fields, anything else yields the
// fallback. Convenience for call sites that only want something
// printable.
func UserMessage(err error, fallback string) string {
	var portalErr *Error
	if errors.As(err, &portalErr) {
		return portalErr.UserMessage(fallback)
	}
	return fallback
}

// errorFromBody builds an application Error from a non-success
// response body. The body may be empty or non-JSON (a misbehaving
// proxy, an HTML error page); both degrade to an Error with no
// detail or message, so UserMessage falls through to the caller's
// fallback.
func errorFromBody(statusCode int, body []byte) *Error {
	parsed := struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}{}
	// Parse errors are deliberately ignored: the zero value carries
	// the status code and nothing else.
	_ = json.Unmarshal(body, &parsed)

	return &Error{
		Kind:       KindApplication,
		StatusCode: statusCode,
		Detail:     rawToText(parsed.Detail),
		Message:    parsed.Message,
	}
}

// rawToText renders a raw JSON value as display text: strings are
// unquoted, null and absent become empty, and anything structured
// (FastAPI validation error arrays) keeps its compact JSON form.
func rawToText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}
