// Package httputil provides the HTTP plumbing shared by remote renderers.
//
//   - [Retry] retries transient failures with capped exponential backoff.
//   - [CheckStatus] classifies response codes into retryable, rate-limited
//     and permanent failures.
//   - [Do] sends a request and reports it to the registered HTTP hooks.
//
// Errors wrapped in [RetryableError] are retried, and so are rate limits
// whose Retry-After fits under the backoff cap:
//
//	err := httputil.Retry(ctx, httputil.DefaultBackoff, func() error {
//	    resp, err := httputil.Do(client, req)
//	    ...
//	})
package httputil
