package tagging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fashion-assistant/internal/llm"
	"github.com/jonathan/fashion-assistant/internal/types"
)

// scriptedClient plays back one reply per model call, in order.
type scriptedClient struct {
	replies []scriptedReply
	calls   int
}

type scriptedReply struct {
	text string
	err  error
}

func (c *scriptedClient) next() (string, error) {
	if c.calls >= len(c.replies) {
		return "", errors.New("unexpected extra call")
	}
	r := c.replies[c.calls]
	c.calls++
	return r.text, r.err
}

func (c *scriptedClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return c.next()
}

func (c *scriptedClient) GenerateVision(_ context.Context, _ string, _ [][]byte, _ llm.ModelTier) (string, error) {
	return c.next()
}

func (c *scriptedClient) GetModel(_ llm.ModelTier) string { return "fake-model" }

func (c *scriptedClient) Close() error { return nil }

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

// stubClassifier returns a fixed analysis, or an error.
type stubClassifier struct {
	analysis *LocalAnalysis
	err      error
}

func (s *stubClassifier) Analyze(_ context.Context, _ []byte) (*LocalAnalysis, error) {
	return s.analysis, s.err
}

func newTestService(client llm.Client, classifier LocalClassifier) *Service {
	caller := llm.NewCaller(client, nil, nil, nil)
	return NewService(caller, []llm.ModelTier{llm.TierPrimary, llm.TierSecondary},
		NewFallbackAdapter(classifier), nil)
}

const validBatch = `[
  {"name": "white tee", "category": "top", "color": "white", "style": "casual"},
  {"name": "blue jeans", "category": "bottom", "color": "blue", "style": "street"}
]`

func TestBatchAutoTagPrimaryTierSucceeds(t *testing.T) {
	client := &scriptedClient{replies: []scriptedReply{{text: validBatch}}}
	service := newTestService(client, &stubClassifier{err: errors.New("unused")})

	records := service.BatchAutoTag(context.Background(), [][]byte{{1}, {2}})

	require.Len(t, records, 2)
	assert.Equal(t, "white tee", records[0].Name)
	assert.Equal(t, "blue jeans", records[1].Name)
	assert.Equal(t, 1, client.calls)
}

func TestBatchAutoTagFallsToSecondTier(t *testing.T) {
	client := &scriptedClient{replies: []scriptedReply{
		{text: "sorry, I cannot help with that"}, // primary: not JSON
		{text: "```json\n" + validBatch + "\n```"},
	}}
	service := newTestService(client, &stubClassifier{err: errors.New("unused")})

	records := service.BatchAutoTag(context.Background(), [][]byte{{1}, {2}})

	require.Len(t, records, 2)
	assert.Equal(t, types.CategoryTop, records[0].Category)
	assert.Equal(t, 2, client.calls)
}

func TestBatchAutoTagWrongCountTriggersNextStage(t *testing.T) {
	oneRecord := `[{"name": "tee", "category": "top", "color": "white", "style": "casual"}]`
	client := &scriptedClient{replies: []scriptedReply{
		{text: oneRecord}, // primary: batch size 1, expected 2
		{text: validBatch},
	}}
	service := newTestService(client, &stubClassifier{err: errors.New("unused")})

	records := service.BatchAutoTag(context.Background(), [][]byte{{1}, {2}})

	require.Len(t, records, 2)
	assert.Equal(t, 2, client.calls)
}

func TestBatchAutoTagRateLimitedPrimaryStillReachesSecondTier(t *testing.T) {
	rateLimited := errors.New("googleapi: Error 429: rate limit exceeded")
	client := &scriptedClient{replies: []scriptedReply{
		{err: rateLimited}, // primary attempt 1
		{err: rateLimited}, // primary attempt 2
		{err: rateLimited}, // primary attempt 3
		{text: validBatch}, // secondary
	}}
	clock := &fakeClock{}
	caller := llm.NewCaller(client, nil, clock, nil)
	service := NewService(caller, []llm.ModelTier{llm.TierPrimary, llm.TierSecondary},
		NewFallbackAdapter(&stubClassifier{err: errors.New("unused")}), nil)

	records := service.BatchAutoTag(context.Background(), [][]byte{{1}, {2}})

	require.Len(t, records, 2)
	assert.Equal(t, 4, client.calls, "the second tier runs only after the first exhausts its retries")
	assert.Equal(t, []time.Duration{30 * time.Second, 60 * time.Second}, clock.sleeps)
}

func TestBatchAutoTagLocalFallbackWhenAllTiersFail(t *testing.T) {
	client := &scriptedClient{replies: []scriptedReply{
		{err: errors.New("primary down")},
		{err: errors.New("secondary down")},
	}}
	classifier := &stubClassifier{analysis: &LocalAnalysis{
		Colors:   []string{"blue"},
		Category: "jeans",
	}}
	service := newTestService(client, classifier)

	records := service.BatchAutoTag(context.Background(), [][]byte{{1}, {2}})

	require.Len(t, records, 2, "fallback output stays positionally aligned with input")
	for _, record := range records {
		assert.Equal(t, types.CategoryBottom, record.Category)
		assert.Equal(t, "blue", record.Color)
		assert.NotEmpty(t, record.Name)
	}
}

func TestBatchAutoTagNeverReturnsErrorEvenWhenEverythingFails(t *testing.T) {
	client := &scriptedClient{replies: []scriptedReply{
		{err: errors.New("primary down")},
		{err: errors.New("secondary down")},
	}}
	service := newTestService(client, &stubClassifier{err: errors.New("cannot decode")})

	records := service.BatchAutoTag(context.Background(), [][]byte{{1}, {2}})

	require.Len(t, records, 2)
	assert.Equal(t, "untagged item 1", records[0].Name)
	assert.Equal(t, "untagged item 2", records[1].Name)
	assert.Equal(t, types.CategoryAccessory, records[0].Category)
}

func TestBatchAutoTagEmptyInput(t *testing.T) {
	client := &scriptedClient{}
	service := newTestService(client, &stubClassifier{})

	assert.Nil(t, service.BatchAutoTag(context.Background(), nil))
	assert.Equal(t, 0, client.calls, "empty input must not trigger model calls")
}
