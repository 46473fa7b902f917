package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	rerrors "github.com/matzehuels/robdd/pkg/errors"
	"github.com/matzehuels/robdd/pkg/observability"
)

// ErrNetwork marks transport failures and unexpected status codes.
var ErrNetwork = errors.New("network error")

// CheckStatus maps a response to an error. 2xx is success; 429 becomes a
// [rerrors.RateLimitedError]; 5xx is retryable; anything else is permanent.
// body is included in the error message, truncated.
func CheckStatus(resp *http.Response, body []byte) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusTooManyRequests:
		retry, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &rerrors.RateLimitedError{RetryAfter: retry, Message: snippet(body)}
	case code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d: %s", ErrNetwork, code, snippet(body))
	}
}

func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

// Do sends req with client and emits request, response and error events to
// the registered [observability.HTTPHooks]. Transport errors are returned as
// retryable.
func Do(client *http.Client, req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path

	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}
