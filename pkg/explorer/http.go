package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/veeq-ai/docs-gen/pkg/errors"
)

// maxBodyBytes caps how much of a live response is kept
const maxBodyBytes = 4 << 20

// HTTPExecutor sends explorer requests to a running backend
type HTTPExecutor struct {
	baseURL string
	client  *http.Client
}

// NewHTTPExecutor creates an executor for baseURL; a nil client uses a 30s timeout
func NewHTTPExecutor(baseURL string, client *http.Client) *HTTPExecutor {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPExecutor{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Execute performs req. Non-2xx statuses are returned as responses, not errors.
func (h *HTTPExecutor) Execute(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Token) == "" {
		return nil, errors.ErrAPIKeyRequired
	}

	u := h.baseURL + req.Path
	if len(req.Query) > 0 {
		keys := make([]string, 0, len(req.Query))
		for k := range req.Query {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		values := url.Values{}
		for _, k := range keys {
			values.Set(k, req.Query[k])
		}
		u += "?" + values.Encode()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// The panel always shows JSON; anything else is wrapped as a string
	raw := json.RawMessage(bytes.TrimSpace(data))
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	} else if !json.Valid(raw) {
		raw, _ = json.Marshal(string(data))
	}
	return &Response{Status: resp.StatusCode, Body: raw, Duration: time.Since(start)}, nil
}
