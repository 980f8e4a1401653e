// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package storefront

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/z5labs/storefront/param"
	"github.com/z5labs/storefront/transport"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1700000000, 0)

type recordingTransport struct {
	requests []transport.Request
	body     []byte
	err      error
}

func (t *recordingTransport) Send(ctx context.Context, req transport.Request) ([]byte, error) {
	t.requests = append(t.requests, req)
	return t.body, t.err
}

func (t *recordingTransport) last(tb testing.TB) transport.Request {
	tb.Helper()

	require.NotEmpty(tb, t.requests)
	return t.requests[len(t.requests)-1]
}

func newTestClient(body string, opts ...Option) (*Client, *recordingTransport) {
	rt := &recordingTransport{body: []byte(body)}
	base := []Option{
		BaseURL("https://api.test/v1"),
		WithTransport(rt),
		Clock(func() time.Time { return fixedNow }),
	}
	return New(append(base, opts...)...), rt
}

func splitURL(tb testing.TB, raw string) (string, url.Values) {
	tb.Helper()

	u, err := url.Parse(raw)
	require.Nil(tb, err)

	q := u.Query()
	u.RawQuery = ""
	return u.String(), q
}

func newFile(tb testing.TB, name, content string) param.File {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	require.Nil(tb, os.WriteFile(path, []byte(content), 0o600))

	f, err := param.NewFile(path)
	require.Nil(tb, err)
	return f
}
