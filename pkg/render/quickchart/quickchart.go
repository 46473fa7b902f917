// Package quickchart renders DOT with the QuickChart Graphviz web service.
//
// The service takes the DOT document and the output format as query
// parameters of a GET request and answers with the image.
package quickchart

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/robdd/pkg/httputil"
	"github.com/matzehuels/robdd/pkg/render"
)

const (
	// Name is the backend name used in cache keys.
	Name = "quickchart"

	// DefaultEndpoint is the public QuickChart Graphviz endpoint.
	DefaultEndpoint = "https://quickchart.io/graphviz"

	defaultTimeout = 30 * time.Second
	maxResponse    = 16 << 20
)

// Renderer is the QuickChart backend.
type Renderer struct {
	endpoint string
	client   *http.Client
	backoff  httputil.Backoff
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithEndpoint overrides [DefaultEndpoint].
func WithEndpoint(endpoint string) Option {
	return func(r *Renderer) { r.endpoint = endpoint }
}

// WithHTTPClient replaces the default client, whose timeout is 30s.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Renderer) { r.client = c }
}

// WithRetry sets the number of attempts and the initial backoff for
// transient failures. Waits are capped at ten times the initial backoff.
// The default is [httputil.DefaultBackoff].
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(r *Renderer) {
		r.backoff = httputil.Backoff{Attempts: attempts, Initial: backoff, Max: 10 * backoff}
	}
}

// New returns a QuickChart renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: defaultTimeout},
		backoff:  httputil.DefaultBackoff,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (*Renderer) Name() string { return Name }

// Render fetches the rendered image. 5xx answers and transport errors are
// retried. A 429 is retried only when its Retry-After fits under the backoff
// cap; otherwise it surfaces as a rate-limit error.
func (r *Renderer) Render(ctx context.Context, dot []byte, format string) ([]byte, error) {
	if err := render.CheckFormat(format, render.FormatSVG, render.FormatPNG); err != nil {
		return nil, err
	}

	u, err := url.Parse(r.endpoint)
	if err != nil {
		return nil, fmt.Errorf("quickchart endpoint: %w", err)
	}
	q := u.Query()
	q.Set("graph", string(dot))
	q.Set("format", format)
	u.RawQuery = q.Encode()

	var out []byte
	err = httputil.Retry(ctx, r.backoff, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", "robdd")

		resp, err := httputil.Do(r.client, req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		if err := httputil.CheckStatus(resp, body); err != nil {
			return err
		}
		out = body
		return nil
	})
	return out, err
}

var _ render.Renderer = (*Renderer)(nil)
