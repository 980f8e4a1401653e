// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package transport performs the HTTP exchange on behalf of the storefront client.
//
// A [Transport] either returns the raw response body or a [*Failure] describing
// why no body was received. Interpreting the body is left to the caller.
package transport

import (
	"context"
	"fmt"

	"github.com/z5labs/storefront/param"
)

// Request
type Request struct {
	// URL is the fully formed target, including the encoded query string.
	URL string

	// Files are uploaded as multipart fields keyed by field name. A request
	// with files is sent as a POST, otherwise it is a GET.
	Files map[string]param.File
}

// Transport
type Transport interface {
	Send(context.Context, Request) ([]byte, error)
}

// Func is an adapter to allow the use of ordinary functions as [Transport]s.
type Func func(context.Context, Request) ([]byte, error)

// Send implements the [Transport] interface.
func (f Func) Send(ctx context.Context, req Request) ([]byte, error) {
	return f(ctx, req)
}

// Failure is returned when no response body could be obtained.
type Failure struct {
	// URL is the effective URL of the exchange, after any redirects.
	URL string

	// HTTPStatus is 0 if no response was received.
	HTTPStatus int

	Cause error
}

// Error implements the [error] interface.
func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("request to %s failed with status %d: %s", f.URL, f.HTTPStatus, f.Cause)
	}
	return fmt.Sprintf("request to %s failed with status %d", f.URL, f.HTTPStatus)
}

// Unwrap
func (f *Failure) Unwrap() error {
	return f.Cause
}
