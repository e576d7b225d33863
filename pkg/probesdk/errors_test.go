package probesdk

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorResponse(t *testing.T) {
	t.Run("service error body", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusBadRequest}
		err := parseErrorResponse(resp, []byte(`{"error":"invalid_request","error_description":"invalid profile name"}`))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, "invalid_request", apiErr.Code)
		require.Equal(t, "invalid profile name", apiErr.Description)
		require.Equal(t, "invalid_request: invalid profile name", err.Error())
	})

	t.Run("foreign body falls back to status", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusBadGateway}
		err := parseErrorResponse(resp, []byte("<html>bad gateway</html>"))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "server_error", apiErr.Code)
		require.Equal(t, "HTTP 502: Bad Gateway", apiErr.Description)
	})
}

func TestIsNotFound(t *testing.T) {
	notFound := &APIError{StatusCode: http.StatusNotFound, Code: "not_found"}

	require.True(t, IsNotFound(notFound))
	require.True(t, IsNotFound(fmt.Errorf("get item: %w", notFound)))
	require.False(t, IsNotFound(&APIError{StatusCode: http.StatusBadRequest}))
	require.False(t, IsNotFound(errors.New("connection refused")))
	require.False(t, IsNotFound(nil))
}
