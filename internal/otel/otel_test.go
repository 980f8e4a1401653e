// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otel

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/z5labs/storefront/config"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

func TestInitialize(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		unknown := config.OTLP{
			Type:   "unknown",
			Target: "localhost:4317",
		}

		testCases := []struct {
			Name   string
			Config config.OTel
		}{
			{
				Name: "if a unknown otlp conn type is configured for span exporting",
				Config: config.OTel{
					Trace: config.Trace{OTLP: unknown},
				},
			},
			{
				Name: "if a unknown otlp conn type is configured for metric exporting",
				Config: config.OTel{
					Metric: config.Metric{OTLP: unknown},
				},
			},
			{
				Name: "if a unknown otlp conn type is configured for log exporting",
				Config: config.OTel{
					Log: config.Log{OTLP: unknown},
				},
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				err := Initialize(context.Background(), testCase.Config)

				var uerr UnknownOTLPConnTypeError
				require.ErrorAs(t, err, &uerr)
				require.Equal(t, config.OTLPConnType("unknown"), uerr.Type)
				require.NotEmpty(t, uerr.Error())
			})
		}
	})

	t.Run("will write logs to the configured output", func(t *testing.T) {
		t.Run("if no otlp log target is set", func(t *testing.T) {
			var buf bytes.Buffer
			cfg := config.OTel{
				Resource: config.Resource{ServiceName: "storefront"},
				Log: config.Log{
					Levels: []config.LoggerLevel{
						{Logger: "github.com/z5labs/storefront", Level: "info"},
					},
				},
			}

			err := Initialize(context.Background(), cfg, LogOutput(&buf))
			require.Nil(t, err)

			log := otelslog.NewLogger("github.com/z5labs/storefront/cmd")
			log.Debug("filtered out")
			log.Info("hello")

			require.Contains(t, buf.String(), `"msg":"hello"`)
			require.NotContains(t, buf.String(), "filtered out")
		})
	})
}

func TestDetectResource(t *testing.T) {
	t.Run("will use the configured service name", func(t *testing.T) {
		r, err := detectResource(context.Background(), config.Resource{
			ServiceName:    "storefront",
			ServiceVersion: "v1.2.3",
		})
		require.Nil(t, err)

		v, ok := r.Set().Value(semconv.ServiceNameKey)
		require.True(t, ok)
		require.Equal(t, "storefront", v.AsString())

		v, ok = r.Set().Value(semconv.ServiceVersionKey)
		require.True(t, ok)
		require.Equal(t, "v1.2.3", v.AsString())
	})

	t.Run("will fall back to the executable name", func(t *testing.T) {
		t.Run("if no service name is configured", func(t *testing.T) {
			r, err := detectResource(context.Background(), config.Resource{})
			require.Nil(t, err)

			v, ok := r.Set().Value(semconv.ServiceNameKey)
			require.True(t, ok)
			require.True(t, strings.HasPrefix(v.AsString(), "unknown_service:"))

			_, ok = r.Set().Value(semconv.ServiceVersionKey)
			require.False(t, ok)
		})
	})
}
