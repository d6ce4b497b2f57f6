package sender

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/playground/internal/composer"
)

type captured struct {
	method      string
	uri         string
	contentType string
	body        string
	hasBody     bool
}

func newRecordingServer(t *testing.T, status int, payload string, seen *captured) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*seen = captured{
			method:      r.Method,
			uri:         r.URL.RequestURI(),
			contentType: r.Header.Get("Content-Type"),
			body:        string(body),
			hasBody:     r.ContentLength > 0,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSend_SuccessfulJSON(t *testing.T) {
	var seen captured
	server := newRecordingServer(t, http.StatusOK, `{"status":"ok","count":2,"items":[true,null]}`, &seen)

	result := New().Send(context.Background(), composer.Form{
		BaseURL: server.URL,
		Method:  "GET",
		Path:    "/search?q=python",
	})

	require.NoError(t, result.Err)
	assert.True(t, result.OK())
	assert.False(t, result.Failed())
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, server.URL+"/search?q=python", result.URL)
	assert.Equal(t, "/search?q=python", seen.uri)
	assert.Equal(t, "application/json", seen.contentType)
	assert.False(t, seen.hasBody)
	assert.GreaterOrEqual(t, result.Elapsed, time.Duration(0))
	assert.False(t, result.Timing.StartTime.IsZero())
	assert.LessOrEqual(t, result.Timing.TotalTime, result.Elapsed)

	expected := "{\n  \"status\": \"ok\",\n  \"count\": 2,\n  \"items\": [\n    true,\n    null\n  ]\n}"
	assert.Equal(t, expected, result.Pretty)

	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, json.Number("2"), data["count"])
}

func TestSend_ElapsedIncludesBodyRead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"part":`))
		w.(http.Flusher).Flush()
		time.Sleep(40 * time.Millisecond)
		w.Write([]byte(`1}`))
	}))
	defer server.Close()

	result := New().Send(context.Background(), composer.Form{BaseURL: server.URL, Method: "GET", Path: "/slow"})

	require.NoError(t, result.Err)
	assert.Equal(t, "{\n  \"part\": 1\n}", result.Pretty)
	assert.GreaterOrEqual(t, result.Elapsed, 40*time.Millisecond)
	assert.LessOrEqual(t, result.Timing.TotalTime, result.Elapsed)
}

func TestSend_BodyOnlyForPostAndPut(t *testing.T) {
	tests := []struct {
		method   string
		body     string
		wantBody string
	}{
		{"POST", `{"name":"My Project"}`, `{"name":"My Project"}`},
		{"PUT", `{"title":"x"`, `{"title":"x"`},
		{"POST", "   ", ""},
		{"GET", `{"ignored":true}`, ""},
		{"DELETE", `{"ignored":true}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			var seen captured
			server := newRecordingServer(t, http.StatusOK, `{}`, &seen)

			result := New().Send(context.Background(), composer.Form{
				BaseURL: server.URL,
				Method:  tt.method,
				Path:    "/projects",
				Body:    tt.body,
			})

			require.NoError(t, result.Err)
			assert.Equal(t, tt.method, seen.method)
			assert.Equal(t, tt.wantBody, seen.body)
		})
	}
}

func TestSend_NonSuccessStatusIsAResponse(t *testing.T) {
	var seen captured
	server := newRecordingServer(t, http.StatusNotFound, `{"detail":"Project not found"}`, &seen)

	result := New().Send(context.Background(), composer.Form{
		BaseURL: server.URL,
		Method:  "GET",
		Path:    "/projects/99",
	})

	require.NoError(t, result.Err)
	assert.False(t, result.OK())
	assert.False(t, result.Failed())
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Equal(t, "{\n  \"detail\": \"Project not found\"\n}", result.Pretty)
}

func TestSend_NonJSONBodyIsAFailure(t *testing.T) {
	var seen captured
	server := newRecordingServer(t, http.StatusInternalServerError, `<html>Internal Server Error</html>`, &seen)

	result := New().Send(context.Background(), composer.Form{
		BaseURL: server.URL,
		Method:  "GET",
		Path:    "/health",
	})

	require.Error(t, result.Err)
	assert.True(t, errors.Is(result.Err, ErrNotJSON))
	assert.True(t, result.Failed())
	assert.False(t, result.OK())
	assert.Empty(t, result.Pretty)
}

func TestSend_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	result := New(WithTimeout(time.Second)).Send(context.Background(), composer.Form{
		BaseURL: baseURL,
		Method:  "GET",
		Path:    "/health",
	})

	require.Error(t, result.Err)
	assert.True(t, result.Failed())
	assert.Zero(t, result.StatusCode)
	assert.False(t, errors.Is(result.Err, ErrNotJSON))
}

func TestSend_UsesProvidedHTTPClient(t *testing.T) {
	var seen captured
	server := newRecordingServer(t, http.StatusOK, `[]`, &seen)

	custom := &http.Client{Timeout: 2 * time.Second}
	result := New(WithHTTPClient(custom)).Send(context.Background(), composer.Form{
		BaseURL: server.URL,
		Method:  "GET",
		Path:    "/projects",
	})

	require.NoError(t, result.Err)
	assert.Equal(t, "[]", result.Pretty)
	assert.Equal(t, 2*time.Second, custom.Timeout)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		pretty  string
		wantErr bool
	}{
		{name: "object keeps key order", body: `{"b":1,"a":2}`, pretty: "{\n  \"b\": 1,\n  \"a\": 2\n}"},
		{name: "empty object", body: `{}`, pretty: "{}"},
		{name: "scalar", body: `42`, pretty: "42"},
		{name: "trailing newline", body: "[1]\n", pretty: "[\n  1\n]"},
		{name: "empty body", body: ``, wantErr: true},
		{name: "html", body: `<p>hi</p>`, wantErr: true},
		{name: "two values", body: `{} {}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, pretty, err := Decode([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrNotJSON))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pretty, pretty)
		})
	}
}
