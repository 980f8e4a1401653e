// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package storefront

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/z5labs/storefront/concurrent"
	"github.com/z5labs/storefront/config"
	"github.com/z5labs/storefront/sign"
	"github.com/z5labs/storefront/transport"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.storefront.io/v1/"

// Options are configurable parameters of a [Client].
type Options struct {
	baseURL    string
	creds      *sign.Credentials
	transport  transport.Transport
	httpClient *http.Client
	timeout    time.Duration
	clock      func() time.Time
	logHandler slog.Handler
}

// Option sets a value on [Options].
type Option interface {
	ApplyOption(*Options)
}

type optionFunc func(*Options)

func (f optionFunc) ApplyOption(o *Options) {
	f(o)
}

// BaseURL overrides [DefaultBaseURL]. A trailing slash is added if missing.
func BaseURL(u string) Option {
	return optionFunc(func(o *Options) {
		o.baseURL = u
	})
}

// Credentials configures the credential pair used for signed calls.
func Credentials(authID, apiKey string) Option {
	return optionFunc(func(o *Options) {
		o.creds = &sign.Credentials{
			AuthID: authID,
			APIKey: apiKey,
		}
	})
}

// WithTransport replaces the default HTTP transport entirely.
func WithTransport(t transport.Transport) Option {
	return optionFunc(func(o *Options) {
		o.transport = t
	})
}

// HTTPClient sets the [http.Client] used by the default transport.
func HTTPClient(c *http.Client) Option {
	return optionFunc(func(o *Options) {
		o.httpClient = c
	})
}

// Timeout bounds each exchange performed by the default transport. It also
// applies to a client given with [HTTPClient]. It has no effect with [WithTransport].
func Timeout(d time.Duration) Option {
	return optionFunc(func(o *Options) {
		o.timeout = d
	})
}

// Clock overrides the time source used for auth_ts.
func Clock(now func() time.Time) Option {
	return optionFunc(func(o *Options) {
		o.clock = now
	})
}

// LogHandler overrides the default [slog.Handler], which is bridged to OpenTelemetry.
func LogHandler(h slog.Handler) Option {
	return optionFunc(func(o *Options) {
		o.logHandler = h
	})
}

// Client is a typed interface to the storefront API.
//
// A Client issues one request at a time per call and holds no per-call state.
// Changing credentials with [Client.SetCredentials] while other goroutines are
// making calls requires external synchronization.
type Client struct {
	baseURL   string
	signer    *sign.Signer
	transport transport.Transport
	log       *slog.Logger
	requests  metric.Int64Counter
	groups    *concurrent.Memo[string, GroupHandler]
}

// New initializes a [Client].
func New(opts ...Option) *Client {
	o := &Options{
		baseURL: DefaultBaseURL,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt.ApplyOption(o)
	}

	t := o.transport
	if t == nil {
		var topts []transport.HTTPOption
		if o.httpClient != nil {
			topts = append(topts, transport.Client(o.httpClient))
		}
		if o.timeout > 0 {
			topts = append(topts, transport.Timeout(o.timeout))
		}
		t = transport.NewHTTP(topts...)
	}

	log := Logger("github.com/z5labs/storefront")
	if o.logHandler != nil {
		log = slog.New(o.logHandler)
	}

	requests, err := otel.Meter("storefront").Int64Counter(
		"storefront.client.requests",
		metric.WithDescription("Number of requests dispatched to the storefront API."),
	)
	if err != nil {
		requests = noop.Int64Counter{}
	}

	c := &Client{
		baseURL:   normalizeBaseURL(o.baseURL),
		signer:    sign.New(o.creds, sign.WithClock(o.clock)),
		transport: t,
		log:       log,
		requests:  requests,
	}
	c.groups = concurrent.NewMemo(c.newGroup)
	return c
}

// NewFromConfig initializes a [Client] from its config section. Credentials are
// only set if both the auth id and api key are present. opts are applied after
// the config values so they take precedence.
func NewFromConfig(cfg config.Storefront, opts ...Option) *Client {
	var base []Option
	if cfg.BaseURL != "" {
		base = append(base, BaseURL(cfg.BaseURL))
	}
	if cfg.AuthID != "" && cfg.APIKey != "" {
		base = append(base, Credentials(cfg.AuthID, cfg.APIKey))
	}
	if cfg.Timeout > 0 {
		base = append(base, Timeout(cfg.Timeout))
	}
	return New(append(base, opts...)...)
}

// SetCredentials replaces the credential pair used for signed calls.
func (c *Client) SetCredentials(authID, apiKey string) {
	c.signer.SetCredentials(&sign.Credentials{
		AuthID: authID,
		APIKey: apiKey,
	})
}

// BaseURL returns the normalized base URL, always ending in a slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func normalizeBaseURL(u string) string {
	return strings.TrimRight(u, "/") + "/"
}
