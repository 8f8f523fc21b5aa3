package gettranslated

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	require.Equal(t, "boom", (&Error{Code: 0, Message: "boom"}).Error())
	require.Equal(t, "Unauthorized - invalid API key (code 401)", newHTTPError(http.StatusUnauthorized).Error())
}

func TestErrorCode(t *testing.T) {
	require.Equal(t, 0, ErrorCode(nil))
	require.Equal(t, 0, ErrorCode(errors.New("plain")))
	require.Equal(t, 0, ErrorCode(newValidationError("bad input")))
	require.Equal(t, 503, ErrorCode(newHTTPError(http.StatusServiceUnavailable)))
	require.Equal(t, 404, ErrorCode(fmt.Errorf("wrapped: %w", newHTTPError(http.StatusNotFound))))
}

func TestStatusMessage(t *testing.T) {
	testCases := []struct {
		status int
		want   string
	}{
		{status: 0, want: "Network error or connection failed"},
		{status: 400, want: "Bad request - invalid parameters"},
		{status: 401, want: "Unauthorized - invalid API key"},
		{status: 403, want: "Permission denied - API key lacks required permissions"},
		{status: 404, want: "Not found - endpoint or resource not found"},
		{status: 500, want: "Internal server error"},
		{status: 503, want: "Service unavailable"},
		{status: 418, want: "HTTP error 418"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			require.Equal(t, tc.want, statusMessage(tc.status))
		})
	}
}

func TestNewNetworkError(t *testing.T) {
	err := newNetworkError(errors.New("dial tcp: connection refused"))
	require.Equal(t, 0, err.Code)
	require.Equal(t, "dial tcp: connection refused", err.Message)
}
