package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// TierError reports that a single model tier failed to produce a result.
// Exhausted distinguishes "retried until the retry limit ran out" from
// "aborted on a non-retryable error"; callers treat both the same way.
type TierError struct {
	Tier      ModelTier
	Attempts  int
	Exhausted bool
	Cause     error
}

func (e *TierError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("tier %s exhausted after %d attempts: %v", e.Tier, e.Attempts, e.Cause)
	}
	return fmt.Sprintf("tier %s failed: %v", e.Tier, e.Cause)
}

func (e *TierError) Unwrap() error {
	return e.Cause
}

// ErrAllTiersExhausted signals that every configured tier failed and the
// caller should fall back to local heuristics.
var ErrAllTiersExhausted = errors.New("all model tiers exhausted")

// IsRateLimited reports whether err is a rate-limit-class error that is
// worth retrying within the same tier. Gemini surfaces these both as HTTP
// 429 googleapi errors and as RESOURCE_EXHAUSTED status text.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit")
}

// IsDeadline reports whether err is a context deadline or cancellation.
// Deadline expiry on a tier attempt is treated as tier exhaustion.
func IsDeadline(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
