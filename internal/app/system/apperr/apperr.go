// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy shared by the portal's
// callable endpoints: each error carries a machine-readable kind, a
// human-readable message, and an optional detail string for diagnostics.
//
// Precondition violations (unauthenticated, permission-denied,
// invalid-argument) are always detected before any write. Once writes
// begin, failures surface as kind "internal"; callers must treat those
// as possibly-partial.
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind is the machine-readable error classification sent over the wire.
type Kind string

const (
	Unauthenticated   Kind = "unauthenticated"
	PermissionDenied  Kind = "permission-denied"
	InvalidArgument   Kind = "invalid-argument"
	ResourceExhausted Kind = "resource-exhausted"
	Internal          Kind = "internal"
)

// Error is a classified portal error.
type Error struct {
	Kind    Kind
	Message string
	Detail  string // underlying cause, safe to show to admins
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return string(e.Kind) + ": " + e.Message + " (" + e.Detail + ")"
	}
	return string(e.Kind) + ": " + e.Message
}

// New creates an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Internal-style Error that preserves the underlying
// error's text in Detail.
func Wrap(kind Kind, message string, err error) *Error {
	e := &Error{Kind: kind, Message: message}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// KindOf extracts the Kind from err. Unclassified errors report
// Internal; a nil error reports the empty kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// HTTPStatus maps a kind to its HTTP response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case Unauthenticated:
		return http.StatusUnauthorized
	case PermissionDenied:
		return http.StatusForbidden
	case InvalidArgument:
		return http.StatusBadRequest
	case ResourceExhausted:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// wireError is the JSON shape of a structured error response.
type wireError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// WriteJSON renders err as a structured JSON error response with the
// status implied by its kind. Unclassified errors are reported as
// internal without leaking the raw message to the client.
func WriteJSON(w http.ResponseWriter, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Kind: Internal, Message: "internal error"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(e.Kind))
	_ = json.NewEncoder(w).Encode(map[string]wireError{
		"error": {Kind: e.Kind, Message: e.Message, Detail: e.Detail},
	})
}
