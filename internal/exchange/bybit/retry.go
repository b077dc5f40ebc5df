package bybit

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
)

// Bybit v5 return codes that indicate a transient condition.
const (
	errCodeTimeout   = 10002 // request not processed in time
	errCodeRateLimit = 10006
	errCodeInternal  = 10016
)

type retryConfig struct {
	maxRetries    int
	initialDelay  time.Duration
	maxDelay      time.Duration
	backoffFactor float64
}

func defaultRetryConfig() retryConfig {
	return retryConfig{
		maxRetries:    3,
		initialDelay:  time.Second,
		maxDelay:      30 * time.Second,
		backoffFactor: 2.0,
	}
}

func (rc retryConfig) delay(attempt int) time.Duration {
	d := time.Duration(float64(rc.initialDelay) * math.Pow(rc.backoffFactor, float64(attempt-1)))
	if d > rc.maxDelay {
		d = rc.maxDelay
	}
	return d
}

// call executes an API request and unwraps the response envelope,
// retrying transient failures with exponential backoff. Permanent API
// errors (rejected params, insufficient balance) return immediately.
func (c *Client) call(ctx context.Context, fn func() (interface{}, error)) (json.RawMessage, error) {
	var lastErr error

	for attempt := 0; attempt <= c.retry.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retry.delay(attempt)):
			}
		}

		response, err := fn()
		if err == nil {
			result, unwrapErr := unwrap(response)
			if unwrapErr == nil {
				return result, nil
			}
			err = unwrapErr
		}

		lastErr = err
		if !isRetryable(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *exchange.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case errCodeTimeout, errCodeRateLimit, errCodeInternal:
			return true
		}
		return false
	}

	// Transport-level failures (resets, timeouts) are worth retrying.
	return true
}
