// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/z5labs/storefront/apierr"
	"github.com/z5labs/storefront/param"
	"github.com/z5labs/storefront/transport"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Response is the parsed JSON body of a successful call. Method specific
// fields are passed through verbatim.
type Response map[string]any

// Decode unmarshals the response into v.
func (r Response) Decode(v any) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Request sends method with params and interprets the result.
//
// File values in params are uploaded as multipart fields and are never signed
// or query encoded. If signed is true the remaining fields are signed first.
// Every failure is returned as an [*apierr.Error]; nothing is retried.
func (c *Client) Request(ctx context.Context, method string, params param.Params, signed bool) (Response, error) {
	spanCtx, span := otel.Tracer("storefront").Start(
		ctx,
		"Client.Request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("storefront.method", method),
			attribute.Bool("storefront.signed", signed),
		),
	)
	defer span.End()

	resp, err := c.request(spanCtx, method, params, signed)

	outcome := "success"
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		var aerr *apierr.Error
		if errors.As(err, &aerr) {
			outcome = string(aerr.Kind)
		}
	}
	c.requests.Add(spanCtx, 1, metric.WithAttributes(
		attribute.String("storefront.method", method),
		attribute.String("storefront.outcome", outcome),
	))

	return resp, err
}

func (c *Client) request(ctx context.Context, method string, params param.Params, signed bool) (Response, error) {
	regular, files := params.Partition()

	if signed {
		var err error
		regular, err = c.signer.Sign(method, regular)
		if err != nil {
			return nil, err
		}
	}

	u := c.baseURL + method + ".json?" + regular.Encode()

	c.log.DebugContext(
		ctx,
		"dispatching request",
		slog.String("method", method),
		slog.Bool("signed", signed),
		slog.Int("files", len(files)),
	)

	body, err := c.transport.Send(ctx, transport.Request{
		URL:   u,
		Files: files,
	})
	if err != nil {
		var f *transport.Failure
		if errors.As(err, &f) {
			return nil, apierr.Transport(f.URL, f.HTTPStatus, f.Cause)
		}
		return nil, apierr.Transport(u, 0, err)
	}

	return interpret(body)
}

func interpret(body []byte) (Response, error) {
	var resp Response
	err := json.Unmarshal(body, &resp)
	if err != nil {
		return nil, apierr.UnparsableResponse(body, err)
	}
	if resp == nil {
		return nil, apierr.UnparsableResponse(body, errors.New("response body is null"))
	}

	if truthy(resp["success"]) {
		return resp, nil
	}

	msg, _ := resp["error"].(string)
	return nil, apierr.Remote(msg, errorCode(resp["errorCode"]), resp["errorDetails"])
}

// truthy follows the remote's loose notion of a success flag: false, 0, "",
// "0", null and empty collections are all failures.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != "" && x != "0"
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

func errorCode(v any) int {
	switch x := v.(type) {
	case float64:
		return int(x)
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
