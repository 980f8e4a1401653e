// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otel

import (
	"context"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// levelFilter drops records below a minimum severity configured per logger
// name. Names match by longest prefix; loggers without a match are unfiltered.
type levelFilter struct {
	inner    sdklog.Processor
	levels   map[string]log.Severity
	prefixes []string
}

func newLevelFilter(inner sdklog.Processor, levels map[string]string) *levelFilter {
	f := &levelFilter{
		inner:    inner,
		levels:   make(map[string]log.Severity, len(levels)),
		prefixes: make([]string, 0, len(levels)),
	}
	for name, level := range levels {
		f.levels[name] = parseLevel(level)
		f.prefixes = append(f.prefixes, name)
	}
	sort.Slice(f.prefixes, func(i, j int) bool {
		return len(f.prefixes[i]) > len(f.prefixes[j])
	})
	return f
}

// parseLevel maps "debug", "info", "warn"/"warning" and "error" to a severity.
// Anything else allows every record.
func parseLevel(level string) log.Severity {
	switch strings.ToLower(level) {
	case "info":
		return log.SeverityInfo
	case "warn", "warning":
		return log.SeverityWarn
	case "error":
		return log.SeverityError
	default:
		return log.SeverityDebug
	}
}

func (f *levelFilter) minimum(name string) (log.Severity, bool) {
	for _, prefix := range f.prefixes {
		if strings.HasPrefix(name, prefix) {
			return f.levels[prefix], true
		}
	}
	return 0, false
}

// OnEmit implements sdklog.Processor.
func (f *levelFilter) OnEmit(ctx context.Context, record *sdklog.Record) error {
	floor, ok := f.minimum(record.InstrumentationScope().Name)
	if ok && record.Severity() < floor {
		return nil
	}
	return f.inner.OnEmit(ctx, record)
}

// Shutdown implements sdklog.Processor.
func (f *levelFilter) Shutdown(ctx context.Context) error {
	return f.inner.Shutdown(ctx)
}

// ForceFlush implements sdklog.Processor.
func (f *levelFilter) ForceFlush(ctx context.Context) error {
	return f.inner.ForceFlush(ctx)
}
