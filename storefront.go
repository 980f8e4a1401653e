// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package storefront provides a typed client for the storefront e-commerce API.
//
// Calls are grouped by method group (see [Client.Catalogue], [Client.Order] and
// [Client.Manage]) and ultimately go through [Client.Request], which flattens the
// parameters, signs them when required, hands them to the transport and turns the
// result into either a [Response] or an [*apierr.Error].
package storefront

import (
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// Logger
func Logger(name string) *slog.Logger {
	return otelslog.NewLogger(name)
}
