package explorer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/errors"
)

func mustFind(t *testing.T, id string) catalog.Endpoint {
	t.Helper()
	e, err := catalog.Find(catalog.Default(), id)
	require.NoError(t, err)
	return e
}

func TestMockExecutor_MissingToken(t *testing.T) {
	m := NewMockExecutor(WithDelay(time.Hour))

	start := time.Now()
	resp, err := m.Execute(context.Background(), Request{Method: "GET", Path: "/api/auth/me", Token: "  "})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.IsAPIKeyRequired(err))
	assert.Less(t, elapsed, time.Second, "fails before any delay")
	assert.JSONEq(t, `{"error": "API key is required. Please enter your API key to test this endpoint."}`, string(ErrorBody(err)))
}

func TestMockExecutor_CannedResponse(t *testing.T) {
	delay := 30 * time.Millisecond
	m := NewMockExecutor(WithDelay(delay))

	start := time.Now()
	resp, err := m.Execute(context.Background(), NewRequest(mustFind(t, "auth-me"), "token"))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), delay)
	assert.Equal(t, 200, resp.Status)
	assert.True(t, resp.Mock)
	assert.JSONEq(t, CannedResponses()["/api/auth/me"], string(resp.Body))
}

func TestMockExecutor_FallbackEcho(t *testing.T) {
	fixed := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	m := NewMockExecutor(WithDelay(0), WithClock(func() time.Time { return fixed }))

	resp, err := m.Execute(context.Background(), NewRequest(mustFind(t, "music-history"), "token"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": true,
		"message": "Request executed successfully",
		"method": "GET",
		"endpoint": "/api/music/history",
		"timestamp": "2025-01-15T10:30:00Z",
		"query": {"page": "1", "limit": "20"}
	}`, string(resp.Body))

	resp, err = m.Execute(context.Background(), NewRequest(mustFind(t, "credits-calculate"), "token"))
	require.NoError(t, err)
	var echo map[string]any
	require.NoError(t, json.Unmarshal(resp.Body, &echo))
	assert.Equal(t, map[string]any{"type": "music", "duration": float64(60)}, echo["received"])
}

func TestMockExecutor_Canceled(t *testing.T) {
	m := NewMockExecutor(WithDelay(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Execute(ctx, Request{Path: "/api/auth/me", Token: "token"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMockExecutor_CustomTable(t *testing.T) {
	m := NewMockExecutor(WithDelay(0), WithResponses(map[string]string{"/api/ping": `{"pong":true}`}))
	resp, err := m.Execute(context.Background(), Request{Path: "/api/ping", Token: "t"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"pong":true}`, string(resp.Body))
}

func TestCannedResponses_ValidJSON(t *testing.T) {
	table := CannedResponses()
	require.Contains(t, table, "/api/auth/me")
	for path, body := range table {
		assert.True(t, json.Valid([]byte(body)), path)
	}

	table["/api/auth/me"] = "changed"
	assert.NotEqual(t, "changed", CannedResponses()["/api/auth/me"], "callers get a copy")
}

func TestNewRequest(t *testing.T) {
	req := NewRequest(mustFind(t, "music-generate"), "tok")
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/api/music/generate", req.Path)
	assert.Empty(t, req.Query)
	assert.JSONEq(t, `{"prompt": "Upbeat electronic track with a catchy melody", "duration": 30, "style": "electronic", "instrumental": false}`, string(req.Body))

	e := catalog.Endpoint{
		ID: "x", Method: "PUT", Path: "/api/x", Category: "misc",
		Parameters: []catalog.Parameter{
			{Name: "name", Type: "string", Example: "demo"},
			{Name: "count", Type: "integer", Example: "3"},
			{Name: "skip", Type: "string"},
		},
	}
	assert.JSONEq(t, `{"name": "demo", "count": 3}`, string(NewRequest(e, "tok").Body))
}

func TestHTTPExecutor(t *testing.T) {
	var got *http.Request
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"success": false, "error": "Insufficient credits"}`))
	}))
	defer srv.Close()

	h := NewHTTPExecutor(srv.URL+"/", nil)
	resp, err := h.Execute(context.Background(), NewRequest(mustFind(t, "music-generate"), "secret"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusPaymentRequired, resp.Status)
	assert.False(t, resp.Mock)
	assert.JSONEq(t, `{"success": false, "error": "Insufficient credits"}`, string(resp.Body))

	require.NotNil(t, got)
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "/api/music/generate", got.URL.Path)
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"prompt": "Upbeat electronic track with a catchy melody", "duration": 30, "style": "electronic", "instrumental": false}`, gotBody)
}

func TestHTTPExecutor_QueryAndPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("page=" + r.URL.Query().Get("page") + " limit=" + r.URL.Query().Get("limit")))
	}))
	defer srv.Close()

	resp, err := NewHTTPExecutor(srv.URL, srv.Client()).Execute(context.Background(), NewRequest(mustFind(t, "music-history"), "secret"))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
	assert.JSONEq(t, `"page=1 limit=20"`, string(resp.Body))

	_, err = NewHTTPExecutor(srv.URL, nil).Execute(context.Background(), Request{Path: "/api/credits"})
	assert.True(t, errors.IsAPIKeyRequired(err))
}
