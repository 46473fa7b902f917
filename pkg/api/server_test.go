package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/robdd/pkg/errors"
	"github.com/matzehuels/robdd/pkg/pipeline"
)

type stubRenderer struct{}

func (stubRenderer) Name() string { return "stub" }

func (stubRenderer) Render(_ context.Context, _ []byte, format string) ([]byte, error) {
	return []byte("<" + format + ">"), nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := httptest.NewServer(NewServer(pipeline.NewRunner(nil, nil, stubRenderer{}, logger), logger))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("GET /healthz = %d %v", resp.StatusCode, body)
	}
}

func TestBuildDiagram(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/diagrams", `{"formula": "(a and not c) or (b ^ d)", "order": ["a", "c", "b", "d"], "verify": true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var got BuildResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.ID == "" {
		t.Error("missing id")
	}
	if got.NodeCount != 7 || got.InternalCount != 5 || got.EdgeCount != 10 {
		t.Errorf("counts = %d/%d/%d, want 7/5/10", got.NodeCount, got.InternalCount, got.EdgeCount)
	}
	if got.Evaluations != 16 {
		t.Errorf("oracle_calls = %d, want 16", got.Evaluations)
	}
	if len(got.Nodes) != got.InternalCount {
		t.Errorf("len(nodes) = %d, want %d", len(got.Nodes), got.InternalCount)
	}
	if len(got.Nodes) > 0 && int(got.Nodes[0].ID) != got.Root {
		t.Errorf("first node %d is not the root %d", got.Nodes[0].ID, got.Root)
	}
	if !strings.HasPrefix(got.DOT, "digraph") {
		t.Errorf("dot = %q", got.DOT)
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		body        string
		contentType string
		want        string
	}{
		{`{"formula": "a & b"}`, "image/svg+xml", "<svg>"},
		{`{"formula": "a & b", "format": "png"}`, "image/png", "<png>"},
		{`{"formula": "a & b", "format": "dot"}`, "text/vnd.graphviz", "digraph"},
	}

	for _, tt := range tests {
		resp := post(t, srv.URL+"/v1/render", tt.body)
		data, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status = %d (%s)", tt.body, resp.StatusCode, data)
			continue
		}
		if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
			t.Errorf("%s: Content-Type = %q, want %q", tt.body, ct, tt.contentType)
		}
		if !strings.HasPrefix(string(data), tt.want) {
			t.Errorf("%s: body = %q", tt.body, data)
		}
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"/v1/diagrams", `{"formula": "a &"}`, http.StatusBadRequest, errors.ErrCodeInvalidFormula},
		{"/v1/diagrams", `{"formula": "a & b", "order": ["a"]}`, http.StatusBadRequest, errors.ErrCodeInvalidVariableOrder},
		{"/v1/diagrams", `{"formula": "a", "colour": "red"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/diagrams", `not json`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/render", `{"formula": "a", "format": "gif"}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		resp := post(t, srv.URL+tt.path, tt.body)
		var body ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Errorf("%s: decode error body: %v", tt.body, err)
			continue
		}
		if resp.StatusCode != tt.status || body.Code != tt.code {
			t.Errorf("%s: got %d %s, want %d %s", tt.body, resp.StatusCode, body.Code, tt.status, tt.code)
		}
		if body.Message == "" {
			t.Errorf("%s: empty message", tt.body)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeOracleFailure, http.StatusUnprocessableEntity},
		{errors.ErrCodeRateLimited, http.StatusTooManyRequests},
		{errors.ErrCodeRenderFailed, http.StatusBadGateway},
		{errors.ErrCodeUnsupported, http.StatusNotImplemented},
		{errors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
