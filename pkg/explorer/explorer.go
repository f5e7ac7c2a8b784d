// Package explorer implements the "try it" panel of the documentation center:
// request snippets for an endpoint and an executor that answers them.
//
// MockExecutor never touches the network. It waits a fixed delay and answers
// from a table of canned responses keyed by exact path. HTTPExecutor sends the
// same request to a real backend.
package explorer

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/errors"
)

// DefaultDelay is the simulated round trip of MockExecutor
const DefaultDelay = 1500 * time.Millisecond

// Request is one explorer call
type Request struct {
	Method string            `json:"method"`
	Path   string            `json:"path"`
	Token  string            `json:"-"`
	Query  map[string]string `json:"query,omitempty"`
	Body   json.RawMessage   `json:"body,omitempty"`
}

// Response is what the panel shows after a call
type Response struct {
	Status   int             `json:"status"`
	Body     json.RawMessage `json:"body"`
	Duration time.Duration   `json:"duration"`
	Mock     bool            `json:"mock"`
}

// Executor runs explorer requests
type Executor interface {
	Execute(ctx context.Context, req Request) (*Response, error)
}

// NewRequest prefills a request for e from its catalog examples
func NewRequest(e catalog.Endpoint, token string) Request {
	req := Request{Method: strings.ToUpper(e.Method), Path: e.Path, Token: token}
	for _, p := range e.ParamsIn(catalog.LocationQuery) {
		v := p.Example
		if v == "" {
			v = p.Default
		}
		if v == "" {
			continue
		}
		if req.Query == nil {
			req.Query = map[string]string{}
		}
		req.Query[p.Name] = v
	}
	if body := bodyExample(e); body != "" {
		req.Body = json.RawMessage(body)
	}
	return req
}

// ErrorBody renders err as the panel's error object
func ErrorBody(err error) json.RawMessage {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return data
}

// MockExecutor answers requests from the canned response table
type MockExecutor struct {
	delay     time.Duration
	now       func() time.Time
	responses map[string]string
}

// MockOption customizes a MockExecutor
type MockOption func(*MockExecutor)

// WithDelay sets the simulated round trip; zero answers immediately
func WithDelay(d time.Duration) MockOption {
	return func(m *MockExecutor) { m.delay = d }
}

// WithClock sets the clock used for the fallback echo timestamp
func WithClock(now func() time.Time) MockOption {
	return func(m *MockExecutor) { m.now = now }
}

// WithResponses replaces the canned table; values are JSON text keyed by path
func WithResponses(responses map[string]string) MockOption {
	return func(m *MockExecutor) { m.responses = responses }
}

// NewMockExecutor creates a mock executor with the default delay and table
func NewMockExecutor(opts ...MockOption) *MockExecutor {
	m := &MockExecutor{
		delay:     DefaultDelay,
		now:       time.Now,
		responses: CannedResponses(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Execute fails at once without a token. Otherwise it waits the delay, or
// until ctx is done, and returns the canned response for req.Path or an echo
// of the request.
func (m *MockExecutor) Execute(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Token) == "" {
		return nil, errors.ErrAPIKeyRequired
	}

	start := time.Now()
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	body, ok := m.responses[req.Path]
	var data json.RawMessage
	if ok {
		data = json.RawMessage(body)
	} else {
		echo, err := m.echo(req)
		if err != nil {
			return nil, err
		}
		data = echo
	}
	return &Response{Status: 200, Body: data, Duration: time.Since(start), Mock: true}, nil
}

func (m *MockExecutor) echo(req Request) (json.RawMessage, error) {
	payload := map[string]any{
		"success":   true,
		"message":   "Request executed successfully",
		"method":    req.Method,
		"endpoint":  req.Path,
		"timestamp": m.now().UTC().Format(time.RFC3339),
	}
	if len(req.Query) > 0 {
		payload["query"] = req.Query
	}
	if len(req.Body) > 0 && json.Valid(req.Body) {
		payload["received"] = req.Body
	}
	return json.Marshal(payload)
}

// bodyExample is the request body example, or an object of the body
// parameters' examples when the catalog has none.
func bodyExample(e catalog.Endpoint) string {
	if e.RequestBody != nil && strings.TrimSpace(e.RequestBody.Example) != "" {
		return strings.TrimSpace(e.RequestBody.Example)
	}
	params := e.ParamsIn(catalog.LocationBody)
	if len(params) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("{")
	n := 0
	for _, p := range params {
		if p.Example == "" {
			continue
		}
		if n > 0 {
			b.WriteString(", ")
		}
		key, _ := json.Marshal(p.Name)
		b.Write(key)
		b.WriteString(": ")
		b.WriteString(jsonValue(p.ValueType(), p.Example))
		n++
	}
	b.WriteString("}")
	if n == 0 {
		return ""
	}
	return b.String()
}

// jsonValue spells a display example as JSON of its value type
func jsonValue(valueType, example string) string {
	switch valueType {
	case "integer", "number", "boolean", "object", "array":
		if json.Valid([]byte(example)) {
			return example
		}
	}
	s, _ := json.Marshal(example)
	return string(s)
}
