// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package param

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/z5labs/storefront/apierr"

	"github.com/stretchr/testify/require"
)

func TestNewFile(t *testing.T) {
	t.Run("will return an invalid file error", func(t *testing.T) {
		testCases := []struct {
			Name string
			Path func(*testing.T) string
		}{
			{
				Name: "if the path is empty",
				Path: func(t *testing.T) string {
					return ""
				},
			},
			{
				Name: "if the file does not exist",
				Path: func(t *testing.T) string {
					return filepath.Join(t.TempDir(), "missing.png")
				},
			},
			{
				Name: "if the path is a directory",
				Path: func(t *testing.T) string {
					return t.TempDir()
				},
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				_, err := NewFile(testCase.Path(t))

				var aerr *apierr.Error
				require.ErrorAs(t, err, &aerr)
				require.Equal(t, apierr.KindInvalidFile, aerr.Kind)
				require.Equal(t, 400, aerr.Code)
			})
		}
	})

	t.Run("will expose the original path", func(t *testing.T) {
		t.Run("if the path is a readable regular file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "logo.png")
			err := os.WriteFile(path, []byte("png"), 0o600)
			require.Nil(t, err)

			f, err := NewFile(path)
			require.Nil(t, err)
			require.Equal(t, path, f.Path())
		})
	})
}

func TestParams_Partition(t *testing.T) {
	t.Run("will split scalars from files and drop omitted values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "image.jpg")
		require.Nil(t, os.WriteFile(path, []byte("jpg"), 0o600))

		f, err := NewFile(path)
		require.Nil(t, err)

		p := Params{
			"name":    String("Shop"),
			"country": Null(),
			"image":   FileValue(f),
		}

		regular, files := p.Partition()
		require.Equal(t, Params{"name": String("Shop")}, regular)
		require.Equal(t, map[string]File{"image": f}, files)
	})

	t.Run("will return no files", func(t *testing.T) {
		t.Run("if there are no file values", func(t *testing.T) {
			_, files := Params{"a": Int(1)}.Partition()
			require.Empty(t, files)
		})
	})
}

func TestParams_Encode(t *testing.T) {
	t.Run("will never send a null valued key", func(t *testing.T) {
		p := Params{
			"store_id": String("abc"),
			"country":  Null(),
		}

		require.Equal(t, "store_id=abc", p.Encode())
	})

	t.Run("will send an empty string as an empty value", func(t *testing.T) {
		p := Params{"description": String("")}

		require.Equal(t, "description=", p.Encode())
	})

	t.Run("will sort keys and render scalars", func(t *testing.T) {
		p := Params{
			"z":     Int(42),
			"a":     Bool(true),
			"m":     Float(1.5),
			"b":     Bool(false),
			"space": String("a b&c"),
			"big":   Int64(9007199254740993),
		}

		require.Equal(t, "a=1&b=0&big=9007199254740993&m=1.5&space=a+b%26c&z=42", p.Encode())
	})
}

func TestParams_Merge(t *testing.T) {
	t.Run("will not mutate the receiver", func(t *testing.T) {
		p := Params{"a": Int(1)}
		m := p.Merge(Params{"b": Int(2)}, Params{"a": Int(3)})

		require.Equal(t, Params{"a": Int(1)}, p)
		require.Equal(t, Params{"a": Int(3), "b": Int(2)}, m)
	})
}

func TestValue(t *testing.T) {
	t.Run("will be omitted", func(t *testing.T) {
		t.Run("if it is the zero value", func(t *testing.T) {
			var v Value
			require.Equal(t, KindOmitted, v.Kind())
		})

		t.Run("if it is built from a nil string pointer", func(t *testing.T) {
			require.Equal(t, KindOmitted, OptionalString(nil).Kind())
		})
	})

	t.Run("will report an empty string", func(t *testing.T) {
		require.True(t, String("").IsEmptyString())
		require.False(t, String("x").IsEmptyString())
		require.False(t, Int(0).IsEmptyString())
		require.False(t, Null().IsEmptyString())
	})
}

func TestValue_MarshalJSON(t *testing.T) {
	t.Run("will encode each variant", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logo.png")
		require.Nil(t, os.WriteFile(path, []byte("png"), 0o600))

		f, err := NewFile(path)
		require.Nil(t, err)

		b, err := json.Marshal(Params{
			"page":   Int(2),
			"name":   String("Shop"),
			"active": Bool(true),
			"logo":   FileValue(f),
			"email":  Null(),
		})
		require.Nil(t, err)

		var got map[string]any
		require.Nil(t, json.Unmarshal(b, &got))
		require.Equal(t, map[string]any{
			"page":   float64(2),
			"name":   "Shop",
			"active": true,
			"logo":   path,
			"email":  nil,
		}, got)
	})

	t.Run("will keep parameters readable in error details", func(t *testing.T) {
		err := apierr.Unauthenticated("manage/orders", Params{"page": Int(2)})

		b, merr := json.Marshal(err.Details)
		require.Nil(t, merr)
		require.JSONEq(t, `{"method":"manage/orders","params":{"page":2}}`, string(b))
	})
}
