// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package apierr defines the single error taxonomy returned by the storefront client.
//
// Every failure the client can surface is an [*Error] carrying a [Kind], a message,
// a numeric code and arbitrary structured details. Callers are expected to branch on
// the kind (see [Is]) and/or the code.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the failure site of an [Error].
type Kind string

const (
	// KindUnauthenticated is returned when a signed call is attempted without credentials.
	KindUnauthenticated Kind = "unauthenticated"

	// KindUnsupportedGroup is returned when an unknown method group is requested.
	KindUnsupportedGroup Kind = "unsupported_group"

	// KindInvalidFile is returned when a file reference is built from a bad path.
	KindInvalidFile Kind = "invalid_file"

	// KindTransport is returned when the transport produced no response body.
	KindTransport Kind = "transport"

	// KindUnparsableResponse is returned when the response body is not well-formed JSON.
	KindUnparsableResponse Kind = "unparsable_response"

	// KindRemote is returned when the remote API reported a failure.
	KindRemote Kind = "remote"
)

// Error
type Error struct {
	Kind    Kind
	Message string
	Code    int
	Details any

	cause error
}

// Error implements the [error] interface.
func (e *Error) Error() string {
	return fmt.Sprintf("storefront: %s (%s, code %d)", e.Message, e.Kind, e.Code)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether err is, or wraps, an [*Error] of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// Unauthenticated
func Unauthenticated(method string, params any) *Error {
	return &Error{
		Kind:    KindUnauthenticated,
		Message: "credentials are required to sign " + method,
		Code:    http.StatusUnauthorized,
		Details: map[string]any{
			"method": method,
			"params": params,
		},
	}
}

// UnsupportedGroup
func UnsupportedGroup(name string) *Error {
	return &Error{
		Kind:    KindUnsupportedGroup,
		Message: fmt.Sprintf("unsupported method group: %q", name),
		Code:    http.StatusBadRequest,
		Details: map[string]any{
			"group": name,
		},
	}
}

// InvalidFile
func InvalidFile(path, reason string, cause error) *Error {
	return &Error{
		Kind:    KindInvalidFile,
		Message: fmt.Sprintf("invalid file %q: %s", path, reason),
		Code:    http.StatusBadRequest,
		Details: map[string]any{
			"path": path,
		},
		cause: cause,
	}
}

// Transport builds the error for a request which produced no response body.
// The code mirrors the HTTP status the transport observed, which is 0 when no
// response was received at all.
func Transport(url string, httpStatus int, cause error) *Error {
	msg := "request failed"
	if cause != nil {
		msg = "request failed: " + cause.Error()
	}
	return &Error{
		Kind:    KindTransport,
		Message: msg,
		Code:    httpStatus,
		Details: map[string]any{
			"url":         url,
			"http_status": httpStatus,
		},
		cause: cause,
	}
}

// UnparsableResponse builds the error for a body which is not a JSON object.
// A body reaching this point was delivered, so the remote supplied no usable
// code; the code is always 502 (bad gateway), chosen by the client, whatever
// HTTP status carried the body.
func UnparsableResponse(rawBody []byte, cause error) *Error {
	return &Error{
		Kind:    KindUnparsableResponse,
		Message: "unable to parse response body",
		Code:    http.StatusBadGateway,
		Details: map[string]any{
			"rawBody": string(rawBody),
		},
		cause: cause,
	}
}

// Remote wraps an error reported by the remote API. Its vocabulary is passed through unmodified.
func Remote(message string, code int, details any) *Error {
	return &Error{
		Kind:    KindRemote,
		Message: message,
		Code:    code,
		Details: details,
	}
}
