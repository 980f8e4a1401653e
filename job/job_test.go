// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureHandler struct {
	slog.Handler
	records []slog.Record
}

func (h *captureHandler) Handle(ctx context.Context, record slog.Record) error {
	h.records = append(h.records, record)
	return nil
}

func caughtError(record slog.Record) error {
	var caughtErr error
	record.Attrs(func(a slog.Attr) bool {
		if a.Key != "error" {
			return true
		}

		v := a.Value.Any()
		err, ok := v.(error)
		if !ok {
			caughtErr = fmt.Errorf("expected attr to be error: %v", a.Value)
			return false
		}
		caughtErr = err
		return false
	})
	return caughtErr
}

func TestRun(t *testing.T) {
	t.Run("will handle error", func(t *testing.T) {
		t.Run("if it fails to build the App", func(t *testing.T) {
			r := strings.NewReader(``)

			buildErr := errors.New("failed to build app")
			b := func(ctx context.Context, cfg Config) (*App, error) {
				return nil, buildErr
			}

			logHandler := &captureHandler{
				Handler: slog.Default().Handler(),
			}

			ok := Run(r, b, LogHandler(logHandler))
			require.False(t, ok)

			records := logHandler.records
			if !assert.Len(t, records, 1) {
				return
			}
			assert.ErrorIs(t, caughtError(records[0]), buildErr)
		})

		t.Run("if the job handler returns an error while running", func(t *testing.T) {
			r := strings.NewReader(``)

			handleErr := errors.New("failed to run job handler")
			h := HandlerFunc(func(ctx context.Context) error {
				return handleErr
			})

			b := func(ctx context.Context, cfg Config) (*App, error) {
				return NewApp(h), nil
			}

			logHandler := &captureHandler{
				Handler: slog.Default().Handler(),
			}

			ok := Run(r, b, LogHandler(logHandler))
			require.False(t, ok)

			records := logHandler.records
			if !assert.Len(t, records, 1) {
				return
			}
			assert.ErrorIs(t, caughtError(records[0]), handleErr)
		})

		t.Run("with a custom error handler", func(t *testing.T) {
			r := strings.NewReader(``)

			handleErr := errors.New("failed to run job handler")
			b := func(ctx context.Context, cfg Config) (*App, error) {
				return NewApp(HandlerFunc(func(ctx context.Context) error {
					return handleErr
				})), nil
			}

			var handled error
			ok := Run(r, b, HandleError(ErrorHandlerFunc(func(err error) {
				handled = err
			})))
			require.False(t, ok)
			require.ErrorIs(t, handled, handleErr)
		})
	})

	t.Run("will pass the storefront config to the builder", func(t *testing.T) {
		r := strings.NewReader(`
storefront:
  base_url: http://localhost:9000/v1/
  auth_id: id
`)

		var cfg Config
		b := func(ctx context.Context, c Config) (*App, error) {
			cfg = c
			return NewApp(HandlerFunc(func(ctx context.Context) error {
				return nil
			})), nil
		}

		ok := Run(r, b)
		require.True(t, ok)
		require.Equal(t, "http://localhost:9000/v1/", cfg.Storefront.BaseURL)
		require.Equal(t, "id", cfg.Storefront.AuthID)
		require.Equal(t, "storefront", cfg.OTel.Resource.ServiceName)
	})
}

func TestBuilder(t *testing.T) {
	t.Run("will run the handler", func(t *testing.T) {
		t.Run("if the app builds without error", func(t *testing.T) {
			called := false
			b := Builder(func(ctx context.Context, cfg Config) (*App, error) {
				return NewApp(HandlerFunc(func(ctx context.Context) error {
					called = true
					return nil
				})), nil
			})

			a, err := b.Build(context.Background(), Config{})
			require.Nil(t, err)

			err = a.Run(context.Background())
			require.Nil(t, err)
			require.True(t, called)
		})
	})
}
