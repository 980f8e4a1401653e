// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package param models the flat key/value parameter encoding used by the storefront API.
//
// A parameter value is one of three variants: a scalar which is query encoded (and signed),
// a [File] which is uploaded as a multipart field, or an omitted value which is dropped
// before signing or sending.
package param

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind
type Kind int

const (
	KindOmitted Kind = iota
	KindScalar
	KindFile
)

// String implements the [fmt.Stringer] interface.
func (k Kind) String() string {
	switch k {
	case KindOmitted:
		return "omitted"
	case KindScalar:
		return "scalar"
	case KindFile:
		return "file"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a single parameter value. The zero Value is omitted.
type Value struct {
	kind   Kind
	scalar any
	file   File
}

// String
func String(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// Int
func Int(i int) Value {
	return Value{kind: KindScalar, scalar: i}
}

// Int64
func Int64(i int64) Value {
	return Value{kind: KindScalar, scalar: i}
}

// Float
func Float(f float64) Value {
	return Value{kind: KindScalar, scalar: f}
}

// Bool
func Bool(b bool) Value {
	return Value{kind: KindScalar, scalar: b}
}

// Null returns an omitted value. The key holding it is never sent, which is
// distinct from sending an empty string.
func Null() Value {
	return Value{}
}

// FileValue wraps a [File] so it is uploaded as a multipart field.
func FileValue(f File) Value {
	return Value{kind: KindFile, file: f}
}

// OptionalString returns an omitted value for a nil pointer.
func OptionalString(s *string) Value {
	if s == nil {
		return Null()
	}
	return String(*s)
}

// Kind
func (v Value) Kind() Kind {
	return v.kind
}

// Scalar returns the raw scalar and true if v is a scalar.
func (v Value) Scalar() (any, bool) {
	if v.kind != KindScalar {
		return nil, false
	}
	return v.scalar, true
}

// File returns the wrapped file and true if v is a file.
func (v Value) File() (File, bool) {
	if v.kind != KindFile {
		return File{}, false
	}
	return v.file, true
}

// Text renders a scalar the way the remote API expects it in a query string.
// Booleans are rendered as "1" and "0". Non-scalars render as the empty string.
func (v Value) Text() string {
	if v.kind != KindScalar {
		return ""
	}

	switch s := v.scalar.(type) {
	case string:
		return s
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		if s {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(s)
	}
}

// IsEmptyString reports whether v is the scalar "".
func (v Value) IsEmptyString() bool {
	s, ok := v.scalar.(string)
	return v.kind == KindScalar && ok && s == ""
}

// MarshalJSON implements the [json.Marshaler] interface. Scalars encode as
// themselves, files as their path and omitted values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		return json.Marshal(v.scalar)
	case KindFile:
		return json.Marshal(v.file.path)
	default:
		return []byte("null"), nil
	}
}
