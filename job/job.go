// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package job runs a one shot storefront program, such as a single API
// call, with config loading, OTel setup and signal handling applied.
package job

import (
	"context"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/z5labs/storefront"

	"github.com/z5labs/bedrock"
	"github.com/z5labs/bedrock/app"
	"github.com/z5labs/bedrock/appbuilder"
	bedrockcfg "github.com/z5labs/bedrock/config"
	"github.com/z5labs/bedrock/lifecycle"
)

// DefaultConfig returns the default config source which corresponds to the [Config] type.
func DefaultConfig() bedrockcfg.Source {
	return storefront.DefaultConfig()
}

// Config is the default config which can be easily embedded into a
// more custom app specific config.
type Config struct {
	storefront.Config `config:",squash"`
}

// Handler represents the core logic of your job.
type Handler interface {
	Handle(context.Context) error
}

// HandlerFunc is an adapter to allow the use of ordinary functions as [Handler]s.
type HandlerFunc func(context.Context) error

// Handle implements the [Handler] interface.
func (f HandlerFunc) Handle(ctx context.Context) error {
	return f(ctx)
}

// App is a [bedrock.App] which handles running your [Handler].
type App struct {
	h Handler
}

// NewApp initializes a new [App].
func NewApp(h Handler) *App {
	return &App{
		h: h,
	}
}

// Run implements the [bedrock.App] interface.
func (a *App) Run(ctx context.Context) error {
	return a.h.Handle(ctx)
}

// Configer is leveraged to constrain the custom config type into
// supporting specific initialization behaviour required by [Run].
type Configer interface {
	appbuilder.OTelInitializer
}

// Builder initializes a [bedrock.AppBuilder] for your [App].
func Builder[T Configer](f func(context.Context, T) (*App, error)) bedrock.AppBuilder[T] {
	return appbuilder.LifecycleContext(
		appbuilder.OTel(
			appbuilder.Recover(
				bedrock.AppBuilderFunc[T](func(ctx context.Context, cfg T) (bedrock.App, error) {
					a, err := f(ctx, cfg)
					if err != nil {
						return nil, err
					}

					bapp := app.InterruptOn(
						app.Recover(a),
						os.Kill,
						os.Interrupt,
						syscall.SIGTERM,
					)
					return bapp, nil
				}),
			),
		),
		&lifecycle.Context{},
	)
}

// ErrorHandler reacts to an error encountered while building or running an [App].
type ErrorHandler interface {
	HandleError(error)
}

// ErrorHandlerFunc is a func type of the [ErrorHandler] interface.
type ErrorHandlerFunc func(error)

// HandleError implements the [ErrorHandler] inteface.
func (f ErrorHandlerFunc) HandleError(err error) {
	f(err)
}

// RunOptions are used for configuring the running of an [App].
type RunOptions struct {
	errHandler ErrorHandler
}

// RunOption sets a value on [RunOptions].
type RunOption interface {
	ApplyRunOption(*RunOptions)
}

type runOptionFunc func(*RunOptions)

func (f runOptionFunc) ApplyRunOption(ro *RunOptions) {
	f(ro)
}

// LogHandler logs any error encountered while building or running
// the [App] through h instead of the default JSON handler on stderr.
func LogHandler(h slog.Handler) RunOption {
	return HandleError(logErrors(slog.New(h)))
}

// HandleError replaces logging as the reaction to an error
// encountered while building or running the [App].
func HandleError(eh ErrorHandler) RunOption {
	return runOptionFunc(func(ro *RunOptions) {
		ro.errHandler = eh
	})
}

func logErrors(log *slog.Logger) ErrorHandler {
	return ErrorHandlerFunc(func(err error) {
		log.Error("unexpected error while running job", slog.Any("error", err))
	})
}

// Run reads, renders and unmarshals the config from the defaults overlaid
// with r, builds the [App] with f and runs it once. The [App] runs with panic
// recovery, OTel SDK initialization and shutdown, and OS signal based shutdown.
//
// Run reports whether the [App] completed without error.
func Run[T Configer](r io.Reader, f func(context.Context, T) (*App, error), opts ...RunOption) bool {
	ro := &RunOptions{
		errHandler: logErrors(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{}))),
	}
	for _, opt := range opts {
		opt.ApplyRunOption(ro)
	}

	ctx := context.Background()
	src := bedrockcfg.MultiSource(
		DefaultConfig(),
		storefront.ConfigSource(r),
	)

	a, err := appbuilder.FromConfig(Builder(f)).Build(ctx, src)
	if err != nil {
		ro.errHandler.HandleError(err)
		return false
	}

	err = a.Run(ctx)
	if err != nil {
		ro.errHandler.HandleError(err)
		return false
	}
	return true
}
