// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otel

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// slogExporter writes log records as JSON lines through a [slog.Handler].
// Level filtering is left to the processor chain, so the handler accepts everything.
type slogExporter struct {
	handler slog.Handler
}

func newSlogExporter(w io.Writer) *slogExporter {
	return &slogExporter{
		handler: slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}),
	}
}

// Export implements log.Exporter.
func (s *slogExporter) Export(ctx context.Context, records []sdklog.Record) error {
	for _, record := range records {
		err := s.handler.Handle(ctx, toSlogRecord(record))
		if err != nil {
			return err
		}
	}
	return nil
}

// ForceFlush implements log.Exporter.
func (s *slogExporter) ForceFlush(ctx context.Context) error {
	return nil
}

// Shutdown implements log.Exporter.
func (s *slogExporter) Shutdown(ctx context.Context) error {
	return nil
}

const severityOffset = log.SeverityDebug - log.Severity(slog.LevelDebug)

func toSlogRecord(record sdklog.Record) slog.Record {
	sr := slog.NewRecord(
		record.Timestamp(),
		slog.Level(record.Severity()-severityOffset),
		record.Body().AsString(),
		0,
	)

	record.WalkAttributes(func(kv log.KeyValue) bool {
		sr.AddAttrs(slog.Attr{
			Key:   kv.Key,
			Value: toSlogValue(kv.Value),
		})
		return true
	})

	sr.AddAttrs(
		slog.String("logger", record.InstrumentationScope().Name),
		slog.Group(
			"otel",
			slog.String("trace.id", record.TraceID().String()),
			slog.String("span.id", record.SpanID().String()),
		),
	)
	return sr
}

func toSlogValue(v log.Value) slog.Value {
	switch v.Kind() {
	case log.KindBool:
		return slog.BoolValue(v.AsBool())
	case log.KindBytes:
		return slog.AnyValue(v.AsBytes())
	case log.KindFloat64:
		return slog.Float64Value(v.AsFloat64())
	case log.KindInt64:
		return slog.Int64Value(v.AsInt64())
	case log.KindString:
		return slog.StringValue(v.AsString())
	case log.KindMap:
		kvs := v.AsMap()
		attrs := make([]slog.Attr, len(kvs))
		for i, kv := range kvs {
			attrs[i] = slog.Attr{Key: kv.Key, Value: toSlogValue(kv.Value)}
		}
		return slog.GroupValue(attrs...)
	case log.KindSlice:
		vs := v.AsSlice()
		vals := make([]any, len(vs))
		for i := range vs {
			vals[i] = toSlogValue(vs[i]).Any()
		}
		return slog.AnyValue(vals)
	default:
		return slog.StringValue(v.String())
	}
}
