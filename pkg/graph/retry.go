package graph

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// postWithRetry resends a POST while the upstream throttles (429) or the
// transport fails, up to MaxSendAttempts. Delays follow exponential backoff
// with jitter, except when the upstream names its own delay via Retry-After.
// The loop is bound to ctx, so an inbound client disconnect stops it.
func (c *Client) postWithRetry(ctx context.Context, path string, body any) *Result {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.RetryInitialInterval
	bo.MaxInterval = c.cfg.RetryMaxInterval
	bo.MaxElapsedTime = 0
	bo.Reset()

	var res *Result
	for attempt := 1; attempt <= c.cfg.MaxSendAttempts; attempt++ {
		res = c.Post(ctx, path, body)
		if !retryable(res) || attempt == c.cfg.MaxSendAttempts {
			return res
		}

		delay := bo.NextBackOff()
		if res.RetryAfter > 0 {
			delay = res.RetryAfter
		}
		c.log.Info("resending throttled request", "path", path,
			"attempt", attempt, "delay", delay, "status", res.Status)

		select {
		case <-ctx.Done():
			return c.transportError(ctx.Err())
		case <-time.After(delay):
		}
	}
	return res
}

func retryable(res *Result) bool {
	return res.Outcome == OutcomeTransportError ||
		res.Status == http.StatusTooManyRequests
}
