// Package weather fetches current conditions from OpenWeatherMap with a
// short-lived in-memory cache per city.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/jonathan/fashion-assistant/internal/types"
)

const (
	defaultBaseURL  = "https://api.openweathermap.org/data/2.5/weather"
	defaultCacheTTL = time.Hour
	requestTimeout  = 5 * time.Second
)

// Provider fetches weather snapshots for cities, serving cached readings
// for up to the cache TTL.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]cachedSnapshot
}

type cachedSnapshot struct {
	snapshot types.WeatherSnapshot
	fetched  time.Time
}

// Option customizes a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API endpoint (tests).
func WithBaseURL(u string) Option {
	return func(p *Provider) { p.baseURL = u }
}

// WithNow overrides the clock (tests).
func WithNow(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// WithTTL overrides the cache TTL.
func WithTTL(ttl time.Duration) Option {
	return func(p *Provider) { p.ttl = ttl }
}

// NewProvider creates a weather provider.
func NewProvider(apiKey string, opts ...Option) *Provider {
	p := &Provider{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
		ttl:     defaultCacheTTL,
		now:     time.Now,
		cache:   make(map[string]cachedSnapshot),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// owmResponse is the subset of the OpenWeatherMap reply we consume.
type owmResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Get returns the weather for a city, from cache when fresh.
func (p *Provider) Get(ctx context.Context, city string) (types.WeatherSnapshot, error) {
	p.mu.Lock()
	if cached, ok := p.cache[city]; ok && p.now().Sub(cached.fetched) < p.ttl {
		p.mu.Unlock()
		return cached.snapshot, nil
	}
	p.mu.Unlock()

	snapshot, err := p.fetch(ctx, city)
	if err != nil {
		return types.WeatherSnapshot{}, err
	}

	p.mu.Lock()
	p.cache[city] = cachedSnapshot{snapshot: snapshot, fetched: p.now()}
	p.mu.Unlock()
	return snapshot, nil
}

func (p *Provider) fetch(ctx context.Context, city string) (types.WeatherSnapshot, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", p.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return types.WeatherSnapshot{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return types.WeatherSnapshot{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return types.WeatherSnapshot{}, fmt.Errorf("weather API returned status %d for %q", resp.StatusCode, city)
	}

	var body owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return types.WeatherSnapshot{}, fmt.Errorf("failed to decode weather response: %w", err)
	}

	description := ""
	if len(body.Weather) > 0 {
		description = body.Weather[0].Description
	}

	return types.WeatherSnapshot{
		Temperature: body.Main.Temp,
		FeelsLike:   body.Main.FeelsLike,
		Description: description,
		City:        city,
	}, nil
}

// ClearCache drops all cached readings.
func (p *Provider) ClearCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string]cachedSnapshot)
}
