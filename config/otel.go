// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import "time"

// Resource
type Resource struct {
	ServiceName    string `config:"service_name"`
	ServiceVersion string `config:"service_version"`
}

// Batch
type Batch struct {
	ExportInterval time.Duration `config:"export_interval"`
	MaxSize        int           `config:"max_size"`
}

// OTLPConnType
type OTLPConnType string

const (
	OTLPHTTP OTLPConnType = "http"
	OTLPGRPC OTLPConnType = "grpc"
)

// OTLP configures an exporter sending to an OpenTelemetry collector.
// An empty Target disables the exporter.
type OTLP struct {
	Type   OTLPConnType `config:"type"`
	Target string       `config:"target"`
}

// Enabled reports whether a collector target is configured.
func (o OTLP) Enabled() bool {
	return o.Target != ""
}

// Trace
type Trace struct {
	Sampling float64 `config:"sampling"`
	Batch    Batch   `config:"batch"`
	OTLP     OTLP    `config:"otlp"`
}

// Metric
type Metric struct {
	ExportInterval time.Duration `config:"export_interval"`
	OTLP           OTLP          `config:"otlp"`
}

// Log configures the log pipeline. Without an OTLP target records are
// written to stderr as JSON.
type Log struct {
	// Levels sets a minimum level per logger name. Names match by prefix.
	Levels []LoggerLevel `config:"levels"`
	Batch  Batch         `config:"batch"`
	OTLP   OTLP          `config:"otlp"`
}

// LoggerLevel
type LoggerLevel struct {
	Logger string `config:"logger"`
	Level  string `config:"level"`
}

// OTel
type OTel struct {
	Resource Resource `config:"resource"`
	Trace    Trace    `config:"trace"`
	Metric   Metric   `config:"metric"`
	Log      Log      `config:"log"`
}
