package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/industries/parse", "GET")
		require.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 10-(i+1), info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/industries/parse", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.True(t, info.ResetTime.After(time.Now()))

	// Other clients have their own bucket
	allowed, _ = limiter.Allow("10.0.0.1", "/industries/parse", "GET")
	assert.True(t, allowed)
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/match", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("192.168.1.1", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/match", "POST")
		assert.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/candidates/", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
		},
	})
	defer limiter.Stop()

	path := "/candidates/550e8400-e29b-41d4-a716-446655440000/industry-profile/refresh"
	for i := 0; i < 2; i++ {
		allowed, info := limiter.Allow("127.0.0.1", path, "POST")
		assert.True(t, allowed)
		assert.Equal(t, 2, info.Limit)
	}
	allowed, _ := limiter.Allow("127.0.0.1", path, "POST")
	assert.False(t, allowed)

	// GET on the same prefix falls back to the default limit
	allowed, info := limiter.Allow("127.0.0.1", "/candidates/x/industry-profile", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_PrefixSharesOneBucket(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/candidates/", Method: "PUT", Limit: 2, Window: time.Hour, Burst: 2},
		},
	})
	defer limiter.Stop()

	// A fresh candidate ID per request must not yield a fresh budget.
	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", fmt.Sprintf("/candidates/id-%d/work-experience", i), "PUT")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("127.0.0.1", "/candidates/id-99/work-experience", "PUT")
	assert.False(t, allowed)
	assert.Len(t, limiter.buckets, 1)
}

func TestLimiter_UnconfiguredPathsShareDefaultBucket(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 3, DefaultWindow: time.Hour})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", fmt.Sprintf("/no-such-route/%d", i), "GET")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("127.0.0.1", "/industries/parse", "GET")
	assert.False(t, allowed)
	assert.Len(t, limiter.buckets, 1)
}

func TestLimiter_HealthAndMetricsUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET")
		assert.True(t, allowed)
		allowed, _ = limiter.Allow("127.0.0.1", "/metrics", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("127.0.0.1", "/match", "GET"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		limiter.Allow(fmt.Sprintf("10.0.0.%d", i), "/match", "GET")
	}
	require.Len(t, limiter.buckets, 3)

	limiter.cleanupBuckets(time.Now())
	assert.Len(t, limiter.buckets, 3, "recently used buckets are kept")

	limiter.cleanupBuckets(time.Now().Add(2 * time.Hour))
	assert.Empty(t, limiter.buckets)
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(nil)
	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	assert.Equal(t, 0, MatchEndpoint("/health", "GET", configs).Limit)
	assert.Equal(t, 0, MatchEndpoint("/metrics", "GET", configs).Limit)
	assert.Equal(t, 600, MatchEndpoint("/match", "POST", configs).Limit)
	assert.Equal(t, 60, MatchEndpoint("/candidates/abc/work-experience", "PUT", configs).Limit)
	assert.Nil(t, MatchEndpoint("/industries/parse", "GET", configs))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")
	t.Setenv("RATE_LIMIT_WHITELIST", "127.0.0.1, 10.0.0.1")

	cfg := LoadConfig(42)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.True(t, cfg.Whitelist["10.0.0.1"])

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig(42).Enabled)
}
