package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/realtyadmin/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/require"
)

// Request describes a call made with Perform.
// Body may be a string sent verbatim or any value encoded as JSON.
type Request struct {
	Method string
	Target string
	Body   any
	Token  string
	Header map[string]string
}

// Perform runs req against h and returns the recorded response
func Perform(h http.Handler, req Request) *httptest.ResponseRecorder {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	switch b := req.Body.(type) {
	case nil:
	case string:
		if b != "" {
			body = strings.NewReader(b)
		}
	case []byte:
		body = bytes.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		body = bytes.NewReader(raw)
	}

	r := httptest.NewRequest(method, req.Target, body)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		r.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for k, v := range req.Header {
		r.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// DecodeResponse unmarshals the standard response envelope
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeData unmarshals the data field of the envelope into out
func DecodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.True(t, resp.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

// RequireErrorCode asserts the status and error code of a failed response
func RequireErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	resp := DecodeResponse(t, w)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	require.Equal(t, code, resp.Error.Code)
}
