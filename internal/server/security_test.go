package server

import (
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestRateLimiter(t *testing.T, perSecond, perMinute int, ban time.Duration) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(perSecond, perMinute, ban)
	t.Cleanup(rl.Stop)
	return rl
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Parallel()

	rl := newTestRateLimiter(t, 5, 10, time.Second)
	ip := "127.0.0.1"

	for i := range 5 {
		assert.True(t, rl.Allow(ip), "request %d should be allowed", i)
	}

	assert.False(t, rl.Allow(ip), "6th request should be blocked")
	assert.True(t, rl.IsBanned(ip))
	assert.False(t, rl.IsBanned("10.9.9.9"))
}

func TestRateLimiter_BanExpires(t *testing.T) {
	t.Parallel()

	rl := newTestRateLimiter(t, 2, 50, 100*time.Millisecond)
	ip := "192.168.1.1"

	assert.True(t, rl.Allow(ip))
	assert.True(t, rl.Allow(ip))
	assert.False(t, rl.Allow(ip))
	assert.True(t, rl.IsBanned(ip))

	assert.Eventually(t, func() bool { return !rl.IsBanned(ip) }, time.Second, 20*time.Millisecond)
}

func TestRateLimiter_MinuteLimit(t *testing.T) {
	t.Parallel()

	rl := newTestRateLimiter(t, 100, 5, time.Second)
	ip := "10.0.0.1"

	for range 5 {
		assert.True(t, rl.Allow(ip))
	}
	assert.False(t, rl.Allow(ip))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	t.Parallel()

	rl := newTestRateLimiter(t, 5, 10, time.Second)
	rl.Allow("10.0.0.1")

	rl.cleanup(time.Now())
	assert.Len(t, rl.requests, 1)

	rl.cleanup(time.Now().Add(11 * time.Minute))
	assert.Empty(t, rl.requests)
}

func TestRateLimiter_Concurrency(t *testing.T) {
	t.Parallel()

	rl := newTestRateLimiter(t, 100, 200, time.Second)
	var wg sync.WaitGroup
	var allowed atomic.Int32

	for range 50 {
		wg.Go(func() {
			if rl.Allow("concurrent-test") {
				allowed.Add(1)
			}
		})
	}

	wg.Wait()
	assert.Equal(t, int32(50), allowed.Load())
}

func TestIPFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ip      string
		setup   func(*IPFilter)
		allowed bool
	}{
		{
			name:    "default allow",
			ip:      "192.168.1.1",
			setup:   func(f *IPFilter) {},
			allowed: true,
		},
		{
			name: "blacklisted",
			ip:   "192.168.1.2",
			setup: func(f *IPFilter) {
				f.AddToBlacklist("192.168.1.2")
			},
			allowed: false,
		},
		{
			name: "removed from blacklist",
			ip:   "192.168.1.3",
			setup: func(f *IPFilter) {
				f.AddToBlacklist("192.168.1.3")
				f.RemoveFromBlacklist("192.168.1.3")
			},
			allowed: true,
		},
		{
			name: "not in whitelist",
			ip:   "192.168.1.4",
			setup: func(f *IPFilter) {
				f.AddToWhitelist("10.0.0.1")
			},
			allowed: false,
		},
		{
			name: "in whitelist",
			ip:   "10.0.0.1",
			setup: func(f *IPFilter) {
				f.AddToWhitelist("10.0.0.1")
			},
			allowed: true,
		},
		{
			name: "blacklist overrides whitelist",
			ip:   "10.0.0.2",
			setup: func(f *IPFilter) {
				f.AddToWhitelist("10.0.0.2")
				f.AddToBlacklist("10.0.0.2")
			},
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := NewIPFilter()
			tt.setup(f)
			assert.Equal(t, tt.allowed, f.IsAllowed(tt.ip))
		})
	}
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expectedIP string
	}{
		{
			name:       "direct connection",
			remoteAddr: "192.168.1.1:12345",
			expectedIP: "192.168.1.1",
		},
		{
			name:       "remote address without port",
			remoteAddr: "192.168.1.1",
			expectedIP: "192.168.1.1",
		},
		{
			name:       "forwarded single ip",
			remoteAddr: "10.0.0.1:12345",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1"},
			expectedIP: "203.0.113.1",
		},
		{
			name:       "forwarded chain keeps the first ip",
			remoteAddr: "10.0.0.1:12345",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.2, 10.0.0.3"},
			expectedIP: "203.0.113.1",
		},
		{
			name:       "real ip",
			remoteAddr: "10.0.0.1:12345",
			headers:    map[string]string{"X-Real-IP": "203.0.113.2"},
			expectedIP: "203.0.113.2",
		},
		{
			name:       "forwarded wins over real ip",
			remoteAddr: "10.0.0.1:12345",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.3",
				"X-Real-IP":       "203.0.113.4",
			},
			expectedIP: "203.0.113.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, _ := http.NewRequest(http.MethodGet, "/", http.NoBody)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tt.expectedIP, GetClientIP(req))
		})
	}
}

func TestMessageRateLimiter(t *testing.T) {
	t.Parallel()

	// warning threshold is 5/2 = 2
	ml := NewMessageRateLimiter(5)
	clientID := "client1"

	for i := range 5 {
		allowed, warning := ml.AllowMessage(clientID)
		assert.True(t, allowed)
		assert.Equal(t, i >= 2, warning, "message %d", i)
	}

	allowed, warning := ml.AllowMessage(clientID)
	assert.False(t, allowed)
	assert.True(t, warning)
	assert.Equal(t, 1, ml.GetWarningCount(clientID))
}

func TestMessageRateLimiter_RemoveClient(t *testing.T) {
	t.Parallel()

	ml := NewMessageRateLimiter(1)
	clientID := "temp-client"

	ml.AllowMessage(clientID)
	allowed, _ := ml.AllowMessage(clientID)
	assert.False(t, allowed)

	ml.RemoveClient(clientID)
	assert.Zero(t, ml.GetWarningCount(clientID))

	allowed, warning := ml.AllowMessage(clientID)
	assert.True(t, allowed)
	assert.False(t, warning)
}

func TestOriginChecker(t *testing.T) {
	t.Parallel()

	all := NewOriginChecker([]string{"*"})
	specific := NewOriginChecker([]string{"https://example.com", "https://App.Example.com"})

	tests := []struct {
		origin     string
		allowedAll bool
		allowed    bool
	}{
		{"https://example.com", true, true},
		{"https://app.example.com", true, true},
		{"https://evil.com", true, false},
		{"http://example.com", true, false},
		{"", true, true},
	}

	for _, tt := range tests {
		req, _ := http.NewRequest(http.MethodGet, "/", http.NoBody)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		assert.Equal(t, tt.allowedAll, all.Check(req), "origin %q", tt.origin)
		assert.Equal(t, tt.allowed, specific.Check(req), "origin %q", tt.origin)
	}
}
