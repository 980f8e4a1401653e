// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package sign computes the HMAC-SHA256 request signature expected by the storefront API.
//
// The signed base string is built as follows:
//  1. any existing auth_sig parameter is dropped
//  2. auth_id and auth_ts (Unix seconds) are injected
//  3. the parameters are sorted by key and form encoded
//  4. the encoded string is percent decoded again
//  5. "v1/" + method + "?" is prepended
//
// The digest is the lowercase hex HMAC-SHA256 of the base string keyed with the API key.
// Any deviation from this sequence produces a signature the remote service rejects.
package sign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"github.com/z5labs/storefront/apierr"
	"github.com/z5labs/storefront/param"
)

// Parameter names injected by [Signer.Sign].
const (
	AuthID        = "auth_id"
	AuthTimestamp = "auth_ts"
	AuthSignature = "auth_sig"
)

// APIVersion is the path segment prepended to the method in the signed base string.
const APIVersion = "v1"

// Credentials
type Credentials struct {
	AuthID string
	APIKey string
}

func (c *Credentials) valid() bool {
	return c != nil && c.AuthID != "" && c.APIKey != ""
}

// Option
type Option func(*Signer)

// WithClock overrides the source of the auth_ts timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}

// Signer signs parameter mappings. A nil credential pair is the unauthenticated state.
type Signer struct {
	creds *Credentials
	now   func() time.Time
}

// New initializes a [Signer]. creds may be nil.
func New(creds *Credentials, opts ...Option) *Signer {
	s := &Signer{
		creds: creds,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCredentials replaces the credential pair. Passing nil returns the signer to
// the unauthenticated state. It is not safe to call concurrently with [Signer.Sign].
func (s *Signer) SetCredentials(creds *Credentials) {
	if creds == nil {
		s.creds = nil
		return
	}
	c := *creds
	s.creds = &c
}

// Authenticated reports whether both credential fields are set.
func (s *Signer) Authenticated() bool {
	return s.creds.valid()
}

// Sign returns a copy of params with auth_id, auth_ts and auth_sig set.
// params is never mutated. Omitted values are dropped before signing.
//
// If either credential field is missing it fails with an [apierr.KindUnauthenticated]
// error carrying the method and the original params.
func (s *Signer) Sign(method string, params param.Params) (param.Params, error) {
	if !s.creds.valid() {
		return nil, apierr.Unauthenticated(method, params)
	}

	signed := params.Compact()
	delete(signed, AuthSignature)
	signed[AuthID] = param.String(s.creds.AuthID)
	signed[AuthTimestamp] = param.Int64(s.now().Unix())

	base, err := BaseString(method, signed)
	if err != nil {
		return nil, err
	}

	signed[AuthSignature] = param.String(Digest(s.creds.APIKey, base))
	return signed, nil
}

// BaseString renders the canonical string which is fed to the HMAC. The params are
// expected to already contain auth_id and auth_ts.
func BaseString(method string, params param.Params) (string, error) {
	canonical, err := url.QueryUnescape(params.Encode())
	if err != nil {
		return "", fmt.Errorf("failed to decode canonical query: %w", err)
	}
	return APIVersion + "/" + method + "?" + canonical, nil
}

// Digest computes the lowercase hex HMAC-SHA256 of message keyed with apiKey.
func Digest(apiKey, message string) string {
	mac := hmac.New(sha256.New, []byte(apiKey))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
