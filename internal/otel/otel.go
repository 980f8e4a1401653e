// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otel bootstraps the OpenTelemetry SDK for storefront programs.
package otel

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/z5labs/storefront/concurrent"
	"github.com/z5labs/storefront/config"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Option
type Option func(*options)

type options struct {
	logOut io.Writer
}

// LogOutput sets where log records are written when no OTLP log target is
// configured. It defaults to stderr so stdout stays free for program output.
func LogOutput(w io.Writer) Option {
	return func(o *options) {
		o.logOut = w
	}
}

// Initialize registers global trace, meter and logger providers built from cfg.
func Initialize(ctx context.Context, cfg config.OTel, opts ...Option) error {
	o := &options{
		logOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}

	r, err := detectResource(ctx, cfg.Resource)
	if err != nil {
		return err
	}

	conns := concurrent.NewMemo(dial)

	tp, err := newTracerProvider(ctx, cfg.Trace, r, conns)
	if err != nil {
		return err
	}

	mp, err := newMeterProvider(ctx, cfg.Metric, r, conns)
	if err != nil {
		return err
	}

	lp, err := newLoggerProvider(ctx, cfg.Log, r, conns, o.logOut)
	if err != nil {
		return err
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	global.SetLoggerProvider(lp)

	return runtime.Start(
		runtime.WithMeterProvider(mp),
		runtime.WithMinimumReadMemStatsInterval(time.Second),
	)
}

func dial(target string) (*grpc.ClientConn, error) {
	return grpc.NewClient(
		target,
		// TODO: support secure transport credentials
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
}

// UnknownOTLPConnTypeError
type UnknownOTLPConnTypeError struct {
	Type config.OTLPConnType
}

// Error implements the [error] interface.
func (e UnknownOTLPConnTypeError) Error() string {
	return fmt.Sprintf("unknown otlp conn type: %q", e.Type)
}

// Without an OTLP target spans are still sampled so trace ids reach the
// logs, they are just never exported.
func newTracerProvider(ctx context.Context, cfg config.Trace, r *resource.Resource, conns *concurrent.Memo[string, *grpc.ClientConn]) (*trace.TracerProvider, error) {
	sampler := trace.ParentBased(trace.TraceIDRatioBased(cfg.Sampling))
	if !cfg.OTLP.Enabled() {
		return trace.NewTracerProvider(trace.WithSampler(sampler), trace.WithResource(r)), nil
	}

	exp, err := newSpanExporter(ctx, cfg.OTLP, conns)
	if err != nil {
		return nil, err
	}

	var bopts []trace.BatchSpanProcessorOption
	if cfg.Batch.ExportInterval > 0 {
		bopts = append(bopts, trace.WithBatchTimeout(cfg.Batch.ExportInterval))
	}
	if cfg.Batch.MaxSize > 0 {
		bopts = append(bopts, trace.WithMaxExportBatchSize(cfg.Batch.MaxSize))
	}

	bsp := trace.NewBatchSpanProcessor(exp, bopts...)
	tp := trace.NewTracerProvider(
		trace.WithSpanProcessor(bsp),
		trace.WithSampler(sampler),
		trace.WithResource(r),
	)
	return tp, nil
}

func newSpanExporter(ctx context.Context, cfg config.OTLP, conns *concurrent.Memo[string, *grpc.ClientConn]) (trace.SpanExporter, error) {
	switch cfg.Type {
	case config.OTLPGRPC:
		cc, err := conns.Get(cfg.Target)
		if err != nil {
			return nil, err
		}
		return otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(cc))
	case config.OTLPHTTP:
		return otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(cfg.Target))
	default:
		return nil, UnknownOTLPConnTypeError{Type: cfg.Type}
	}
}

func newMeterProvider(ctx context.Context, cfg config.Metric, r *resource.Resource, conns *concurrent.Memo[string, *grpc.ClientConn]) (*metric.MeterProvider, error) {
	if !cfg.OTLP.Enabled() {
		return metric.NewMeterProvider(metric.WithResource(r)), nil
	}

	exp, err := newMetricExporter(ctx, cfg.OTLP, conns)
	if err != nil {
		return nil, err
	}

	ropts := []metric.PeriodicReaderOption{
		metric.WithProducer(runtime.NewProducer()),
	}
	if cfg.ExportInterval > 0 {
		ropts = append(ropts, metric.WithInterval(cfg.ExportInterval))
	}

	reader := metric.NewPeriodicReader(exp, ropts...)
	mp := metric.NewMeterProvider(
		metric.WithReader(reader),
		metric.WithResource(r),
	)
	return mp, nil
}

func newMetricExporter(ctx context.Context, cfg config.OTLP, conns *concurrent.Memo[string, *grpc.ClientConn]) (metric.Exporter, error) {
	switch cfg.Type {
	case config.OTLPGRPC:
		cc, err := conns.Get(cfg.Target)
		if err != nil {
			return nil, err
		}
		return otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(cc))
	case config.OTLPHTTP:
		return otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(cfg.Target))
	default:
		return nil, UnknownOTLPConnTypeError{Type: cfg.Type}
	}
}

func newLoggerProvider(ctx context.Context, cfg config.Log, r *resource.Resource, conns *concurrent.Memo[string, *grpc.ClientConn], out io.Writer) (*log.LoggerProvider, error) {
	var p log.Processor
	if cfg.OTLP.Enabled() {
		exp, err := newLogExporter(ctx, cfg.OTLP, conns)
		if err != nil {
			return nil, err
		}
		var bopts []log.BatchProcessorOption
		if cfg.Batch.ExportInterval > 0 {
			bopts = append(bopts, log.WithExportInterval(cfg.Batch.ExportInterval))
		}
		if cfg.Batch.MaxSize > 0 {
			bopts = append(bopts, log.WithExportMaxBatchSize(cfg.Batch.MaxSize))
		}
		p = log.NewBatchProcessor(exp, bopts...)
	} else {
		p = log.NewSimpleProcessor(newSlogExporter(out))
	}

	if len(cfg.Levels) > 0 {
		levels := make(map[string]string, len(cfg.Levels))
		for _, l := range cfg.Levels {
			levels[l.Logger] = l.Level
		}
		p = newLevelFilter(p, levels)
	}

	lp := log.NewLoggerProvider(
		log.WithProcessor(p),
		log.WithResource(r),
	)
	return lp, nil
}

func newLogExporter(ctx context.Context, cfg config.OTLP, conns *concurrent.Memo[string, *grpc.ClientConn]) (log.Exporter, error) {
	switch cfg.Type {
	case config.OTLPGRPC:
		cc, err := conns.Get(cfg.Target)
		if err != nil {
			return nil, err
		}
		return otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(cc))
	case config.OTLPHTTP:
		return otlploghttp.New(ctx, otlploghttp.WithEndpoint(cfg.Target))
	default:
		return nil, UnknownOTLPConnTypeError{Type: cfg.Type}
	}
}
