package reliability

import "time"

// IsRetryableHTTPStatus classifies retryable provider HTTP status codes.
// The orchestrator does not retry on its own (tool dispatch is side-effecting
// and the remaining stages are cheap to resubmit), but stage errors carry the
// classification so callers can decide.
func IsRetryableHTTPStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// ExponentialBackoff computes a deterministic capped backoff duration.
func ExponentialBackoff(attempt int, base, cap time.Duration) time.Duration {
	if attempt <= 0 {
		return base
	}
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= cap {
			return cap
		}
	}
	return d
}
