package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock records sleeps instead of blocking.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

// reply is one scripted model response.
type reply struct {
	text string
	err  error
}

// scriptedClient plays back replies in order, one per call.
type scriptedClient struct {
	replies []reply
	calls   int
}

func (c *scriptedClient) next() (string, error) {
	if c.calls >= len(c.replies) {
		return "", errors.New("unexpected extra call")
	}
	r := c.replies[c.calls]
	c.calls++
	return r.text, r.err
}

func (c *scriptedClient) GenerateContent(_ context.Context, _ string, _ ModelTier) (string, error) {
	return c.next()
}

func (c *scriptedClient) GenerateVision(_ context.Context, _ string, _ [][]byte, _ ModelTier) (string, error) {
	return c.next()
}

func (c *scriptedClient) GetModel(_ ModelTier) string { return "fake-model" }

func (c *scriptedClient) Close() error { return nil }

func newTestCaller(client Client, clock Clock) *Caller {
	return NewCaller(client, nil, clock, nil)
}

func TestCallSucceedsFirstAttempt(t *testing.T) {
	client := &scriptedClient{replies: []reply{{text: "hello"}}}
	clock := &fakeClock{}
	caller := newTestCaller(client, clock)

	text, err := caller.Call(context.Background(), TierPrimary, Request{Prompt: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, 1, client.calls)
	assert.Empty(t, clock.sleeps)
}

func TestCallRetriesRateLimitWithLinearBackoff(t *testing.T) {
	rateLimited := errors.New("googleapi: Error 429: rate limit exceeded")
	client := &scriptedClient{replies: []reply{
		{err: rateLimited},
		{err: rateLimited},
		{text: "eventually"},
	}}
	clock := &fakeClock{}
	caller := newTestCaller(client, clock)

	text, err := caller.Call(context.Background(), TierPrimary, Request{Prompt: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "eventually", text)
	assert.Equal(t, 3, client.calls)
	assert.Equal(t, []time.Duration{30 * time.Second, 60 * time.Second}, clock.sleeps)
}

func TestCallExhaustsRetryLimit(t *testing.T) {
	rateLimited := errors.New("RESOURCE_EXHAUSTED: quota exceeded")
	client := &scriptedClient{replies: []reply{
		{err: rateLimited},
		{err: rateLimited},
		{err: rateLimited},
	}}
	clock := &fakeClock{}
	caller := newTestCaller(client, clock)

	_, err := caller.Call(context.Background(), TierPrimary, Request{Prompt: "hi"})

	var tierErr *TierError
	require.ErrorAs(t, err, &tierErr)
	assert.True(t, tierErr.Exhausted)
	assert.Equal(t, 3, tierErr.Attempts)
	assert.Equal(t, 3, client.calls)
	// No sleep after the final attempt
	assert.Equal(t, []time.Duration{30 * time.Second, 60 * time.Second}, clock.sleeps)
}

func TestCallAbortsOnNonRetryableError(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{err: errors.New("invalid argument: bad image payload")},
	}}
	clock := &fakeClock{}
	caller := newTestCaller(client, clock)

	_, err := caller.Call(context.Background(), TierPrimary, Request{Prompt: "hi"})

	var tierErr *TierError
	require.ErrorAs(t, err, &tierErr)
	assert.False(t, tierErr.Exhausted)
	assert.Equal(t, 1, client.calls, "non-retryable errors must not be retried")
	assert.Empty(t, clock.sleeps)
}

func TestCallTreatsDeadlineAsExhaustion(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{err: context.DeadlineExceeded},
	}}
	caller := newTestCaller(client, &fakeClock{})

	_, err := caller.Call(context.Background(), TierPrimary, Request{Prompt: "hi"})

	var tierErr *TierError
	require.ErrorAs(t, err, &tierErr)
	assert.True(t, tierErr.Exhausted)
	assert.Equal(t, 1, client.calls)
}

func TestCallFirstFallsBackAcrossTiers(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{err: errors.New("model blew up")}, // primary aborts
		{text: "from secondary"},
	}}
	caller := newTestCaller(client, &fakeClock{})

	text, err := caller.CallFirst(context.Background(),
		[]ModelTier{TierPrimary, TierSecondary}, Request{Prompt: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "from secondary", text)
	assert.Equal(t, 2, client.calls)
}

func TestCallFirstAllTiersExhausted(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{err: errors.New("primary failed")},
		{err: errors.New("secondary failed")},
	}}
	caller := newTestCaller(client, &fakeClock{})

	_, err := caller.CallFirst(context.Background(),
		[]ModelTier{TierPrimary, TierSecondary}, Request{Prompt: "hi"})

	assert.ErrorIs(t, err, ErrAllTiersExhausted)
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"429 in message", errors.New("googleapi: Error 429"), true},
		{"resource exhausted", errors.New("rpc error: RESOURCE_EXHAUSTED"), true},
		{"quota", errors.New("quota exceeded for model"), true},
		{"rate limit text", errors.New("rate limit reached"), true},
		{"unrelated error", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRateLimited(tt.err))
		})
	}
}
