// Package testutils holds helpers shared by HTTP-level tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoRequest sends a request through h and returns the recorded response.
// A string body is sent verbatim (even when empty); any other non-nil body
// is JSON encoded.
func DoRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err, "Failed to marshal request body")
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// DecodeJSON unmarshals the recorded body into a T.
func DecodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "Failed to unmarshal body: %s", w.Body.String())
	return out
}

// AssertErrorResponse checks that a response carries the expected status
// code and an error message containing expectedErrorMsgPart.
func AssertErrorResponse(
	t *testing.T,
	w *httptest.ResponseRecorder,
	expectedStatus int,
	expectedErrorMsgPart string,
) shared.ErrorResponse {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		"Expected status code %d but got %d: %s", expectedStatus, w.Code, w.Body.String())

	errResp := DecodeJSON[shared.ErrorResponse](t, w)
	assert.Contains(t, errResp.Error, expectedErrorMsgPart,
		"Error message should contain %q", expectedErrorMsgPart)
	return errResp
}
