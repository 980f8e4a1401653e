// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIs(t *testing.T) {
	t.Run("will return true", func(t *testing.T) {
		t.Run("if the error is of the given kind", func(t *testing.T) {
			err := UnsupportedGroup("nope")

			require.True(t, Is(err, KindUnsupportedGroup))
		})

		t.Run("if a wrapped error is of the given kind", func(t *testing.T) {
			err := fmt.Errorf("calling api: %w", Unauthenticated("manage/store", nil))

			require.True(t, Is(err, KindUnauthenticated))
		})
	})

	t.Run("will return false", func(t *testing.T) {
		t.Run("if the error is of a different kind", func(t *testing.T) {
			err := Remote("Bad store", 404, nil)

			require.False(t, Is(err, KindTransport))
		})

		t.Run("if the error is not an *Error", func(t *testing.T) {
			require.False(t, Is(errors.New("boom"), KindRemote))
		})
	})
}

func TestTransport(t *testing.T) {
	t.Run("will carry exactly the url and http status as details", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Transport("https://api.storefront.io/v1/catalogue/store.json", http.StatusInternalServerError, cause)

		require.Equal(t, KindTransport, err.Kind)
		require.Equal(t, http.StatusInternalServerError, err.Code)
		require.Equal(t, map[string]any{
			"url":         "https://api.storefront.io/v1/catalogue/store.json",
			"http_status": http.StatusInternalServerError,
		}, err.Details)
		require.ErrorIs(t, err, cause)
	})
}

func TestRemote(t *testing.T) {
	t.Run("will pass the remote vocabulary through verbatim", func(t *testing.T) {
		details := map[string]any{"store_id": "xyz"}
		err := Remote("Bad store", 404, details)

		require.Equal(t, "Bad store", err.Message)
		require.Equal(t, 404, err.Code)
		require.Equal(t, details, err.Details)
		require.NotEmpty(t, err.Error())
	})
}

func TestUnauthenticated(t *testing.T) {
	t.Run("will carry the method and params as details", func(t *testing.T) {
		params := map[string]string{"store_id": "abc"}
		err := Unauthenticated("manage/store", params)

		require.Equal(t, http.StatusUnauthorized, err.Code)
		require.Equal(t, map[string]any{
			"method": "manage/store",
			"params": params,
		}, err.Details)
	})
}

func TestUnparsableResponse(t *testing.T) {
	t.Run("will use the bad gateway code", func(t *testing.T) {
		cause := errors.New("invalid character '<'")
		err := UnparsableResponse([]byte("<html>oops</html>"), cause)

		require.Equal(t, KindUnparsableResponse, err.Kind)
		require.Equal(t, http.StatusBadGateway, err.Code)
		require.Equal(t, map[string]any{"rawBody": "<html>oops</html>"}, err.Details)
		require.ErrorIs(t, err, cause)
	})
}
