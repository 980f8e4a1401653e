// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package transport

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/z5labs/storefront/param"

	"github.com/google/uuid"
	"github.com/z5labs/sdk-go/try"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

// RequestIDHeader carries a unique id per outbound request.
const RequestIDHeader = "X-Request-Id"

// HTTPOptions are configurable parameters of an [HTTP] transport.
type HTTPOptions struct {
	client  *http.Client
	timeout time.Duration
}

// HTTPOption sets a value on [HTTPOptions].
type HTTPOption interface {
	ApplyHTTPOption(*HTTPOptions)
}

type httpOptionFunc func(*HTTPOptions)

func (f httpOptionFunc) ApplyHTTPOption(ho *HTTPOptions) {
	f(ho)
}

// Client overrides the [http.Client] used to send requests.
func Client(c *http.Client) HTTPOption {
	return httpOptionFunc(func(ho *HTTPOptions) {
		ho.client = c
	})
}

// Timeout bounds the whole exchange, including reading the body. It also
// applies to a client given with [Client], which is copied rather than modified.
// Zero keeps the client's own timeout.
func Timeout(d time.Duration) HTTPOption {
	return httpOptionFunc(func(ho *HTTPOptions) {
		ho.timeout = d
	})
}

// HTTP is a [Transport] backed by an [http.Client].
type HTTP struct {
	client *http.Client
}

// NewHTTP initializes a [HTTP] transport. By default the client is instrumented
// with OpenTelemetry.
func NewHTTP(opts ...HTTPOption) *HTTP {
	ho := &HTTPOptions{}
	for _, opt := range opts {
		opt.ApplyHTTPOption(ho)
	}

	client := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	if ho.client != nil {
		c := *ho.client
		client = &c
	}
	if ho.timeout > 0 {
		client.Timeout = ho.timeout
	}
	return &HTTP{
		client: client,
	}
}

// Send implements the [Transport] interface. Any response with a non-empty body
// is returned as is, whatever its status code, so the caller can interpret it.
func (h *HTTP) Send(ctx context.Context, req Request) ([]byte, error) {
	spanCtx, span := otel.Tracer("transport").Start(ctx, "HTTP.Send")
	defer span.End()

	httpReq, err := newHTTPRequest(spanCtx, req)
	if err != nil {
		span.RecordError(err)
		return nil, &Failure{URL: req.URL, Cause: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := h.client.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		return nil, &Failure{URL: req.URL, Cause: err}
	}
	// A close error after the body has been fully read does not invalidate it.
	defer resp.Body.Close()

	effectiveURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		effectiveURL = resp.Request.URL.String()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, &Failure{URL: effectiveURL, HTTPStatus: resp.StatusCode, Cause: err}
	}
	if len(body) == 0 {
		return nil, &Failure{URL: effectiveURL, HTTPStatus: resp.StatusCode}
	}
	return body, nil
}

func newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	if len(req.Files) == 0 {
		return http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := make([]string, 0, len(req.Files))
	for field := range req.Files {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		err := writeFile(mw, field, req.Files[field])
		if err != nil {
			return nil, err
		}
	}

	err := mw.Close()
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	return httpReq, nil
}

func writeFile(mw *multipart.Writer, field string, f param.File) (err error) {
	src, err := os.Open(f.Path())
	if err != nil {
		return err
	}
	defer try.Close(&err, src)

	w, err := mw.CreateFormFile(field, filepath.Base(f.Path()))
	if err != nil {
		return err
	}

	_, err = io.Copy(w, src)
	return err
}
