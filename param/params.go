// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package param

import (
	"net/url"
	"sort"
)

// Encoder is implemented by any entity able to flatten itself into [Params].
type Encoder interface {
	Params() Params
}

// Params is a flat mapping from parameter names to values. Ordering is irrelevant;
// encoding always sorts by key.
type Params map[string]Value

// Clone returns a shallow copy of p. A nil p clones to an empty, non-nil mapping.
func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Merge returns a new mapping containing p overlaid with each of others in order.
func (p Params) Merge(others ...Params) Params {
	m := p.Clone()
	for _, o := range others {
		for k, v := range o {
			m[k] = v
		}
	}
	return m
}

// Compact returns a copy of p with all omitted values dropped.
func (p Params) Compact() Params {
	c := make(Params, len(p))
	for k, v := range p {
		if v.Kind() == KindOmitted {
			continue
		}
		c[k] = v
	}
	return c
}

// Partition splits p into its scalar fields and its file fields.
// Omitted values are dropped from both.
func (p Params) Partition() (Params, map[string]File) {
	regular := make(Params, len(p))
	var files map[string]File
	for k, v := range p {
		switch v.Kind() {
		case KindOmitted:
			continue
		case KindScalar:
			regular[k] = v
		case KindFile:
			if files == nil {
				files = make(map[string]File)
			}
			f, _ := v.File()
			files[k] = f
		}
	}
	return regular, files
}

// Values renders the scalar fields of p as [url.Values]. Omitted and file values are skipped.
func (p Params) Values() url.Values {
	vals := make(url.Values, len(p))
	for k, v := range p {
		if v.Kind() != KindScalar {
			continue
		}
		vals.Set(k, v.Text())
	}
	return vals
}

// Encode renders the scalar fields of p as a form-encoded query string, sorted by key.
func (p Params) Encode() string {
	return p.Values().Encode()
}

// Keys returns the keys of p sorted ascending.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
