// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package storefront

import (
	"context"

	"github.com/z5labs/storefront/param"

	"github.com/sourcegraph/conc/pool"
)

// Call describes a single [Client.Request].
type Call struct {
	Method string
	Params param.Params
	Signed bool
}

// Result holds the outcome of a [Call]. Exactly one of Response and Err is set.
type Result struct {
	Response Response
	Err      error
}

// BatchOptions are configurable parameters of [Client.Batch].
type BatchOptions struct {
	maxConcurrency int
}

// BatchOption sets a value on [BatchOptions].
type BatchOption interface {
	ApplyBatchOption(*BatchOptions)
}

type batchOptionFunc func(*BatchOptions)

func (f batchOptionFunc) ApplyBatchOption(bo *BatchOptions) {
	f(bo)
}

// MaxConcurrency bounds how many calls of a batch are in flight at once.
// Values below 1 are ignored.
func MaxConcurrency(n int) BatchOption {
	return batchOptionFunc(func(bo *BatchOptions) {
		if n > 0 {
			bo.maxConcurrency = n
		}
	})
}

// Batch performs every call and returns their results in the same order.
// A failed call does not stop the others.
func (c *Client) Batch(ctx context.Context, calls []Call, opts ...BatchOption) []Result {
	bo := &BatchOptions{
		maxConcurrency: 4,
	}
	for _, opt := range opts {
		opt.ApplyBatchOption(bo)
	}

	results := make([]Result, len(calls))
	p := pool.New().WithMaxGoroutines(bo.maxConcurrency)
	for i, call := range calls {
		p.Go(func() {
			resp, err := c.Request(ctx, call.Method, call.Params, call.Signed)
			results[i] = Result{
				Response: resp,
				Err:      err,
			}
		})
	}
	p.Wait()

	return results
}
