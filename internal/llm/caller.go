package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/fashion-assistant/internal/observability"
)

const (
	// maxRetries bounds rate-limit retries within a single tier.
	maxRetries = 3
	// retryBackoffUnit scales linearly with the attempt number.
	retryBackoffUnit = 30 * time.Second
	// defaultAttemptTimeout caps a single tier attempt so one slow call
	// cannot block a request indefinitely.
	defaultAttemptTimeout = 90 * time.Second
)

// Request is the payload for one model invocation.
type Request struct {
	Prompt string
	Images [][]byte // optional JPEG attachments
}

// Caller drives retried, paced calls against a single model tier and
// composes tiers into a first-successful fallback chain.
type Caller struct {
	client         Client
	pacer          *Pacer
	clock          Clock
	log            *observability.Logger
	attemptTimeout time.Duration
}

// NewCaller wires a Caller from its dependencies. A nil clock defaults to
// the wall clock; a nil logger discards events.
func NewCaller(client Client, pacer *Pacer, clock Clock, log *observability.Logger) *Caller {
	if clock == nil {
		clock = RealClock{}
	}
	return &Caller{
		client:         client,
		pacer:          pacer,
		clock:          clock,
		log:            log,
		attemptTimeout: defaultAttemptTimeout,
	}
}

// Call invokes one model tier with the retry policy: rate-limit-class
// errors back off 30s * attempt and retry up to maxRetries times; any
// other error aborts the tier immediately. Both outcomes surface as a
// *TierError meaning "this tier did not produce a result".
func (c *Caller) Call(ctx context.Context, tier ModelTier, req Request) (string, error) {
	stage := fmt.Sprintf("tier:%s", tier)

	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			return "", &TierError{Tier: tier, Exhausted: true, Cause: err}
		}
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		text, err := c.invoke(ctx, tier, req)
		if err == nil {
			c.log.Event(stage, attempt, "ok")
			return text, nil
		}
		lastErr = err

		if IsDeadline(err) {
			c.log.Event(stage, attempt, "deadline expired")
			return "", &TierError{Tier: tier, Attempts: attempt, Exhausted: true, Cause: err}
		}
		if !IsRateLimited(err) {
			c.log.Event(stage, attempt, fmt.Sprintf("aborted: %v", err))
			return "", &TierError{Tier: tier, Attempts: attempt, Cause: err}
		}

		c.log.Event(stage, attempt, "rate limited")
		if attempt < maxRetries {
			backoff := time.Duration(attempt) * retryBackoffUnit
			if err := c.clock.Sleep(ctx, backoff); err != nil {
				return "", &TierError{Tier: tier, Attempts: attempt, Exhausted: true, Cause: err}
			}
		}
	}

	c.log.Eventf(stage, "exhausted after %d attempts", maxRetries)
	return "", &TierError{Tier: tier, Attempts: maxRetries, Exhausted: true, Cause: lastErr}
}

// CallFirst tries each tier in order and returns the first successful
// response. When every tier fails it returns ErrAllTiersExhausted.
func (c *Caller) CallFirst(ctx context.Context, tiers []ModelTier, req Request) (string, error) {
	for _, tier := range tiers {
		text, err := c.Call(ctx, tier, req)
		if err == nil {
			return text, nil
		}
	}
	return "", ErrAllTiersExhausted
}

func (c *Caller) invoke(ctx context.Context, tier ModelTier, req Request) (string, error) {
	attemptCtx := ctx
	if c.attemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.attemptTimeout)
		defer cancel()
	}

	if len(req.Images) > 0 {
		return c.client.GenerateVision(attemptCtx, req.Prompt, req.Images, tier)
	}
	return c.client.GenerateContent(attemptCtx, req.Prompt, tier)
}
