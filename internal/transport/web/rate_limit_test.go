package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkhoa1412/code-challenge-sub003/internal/config"
)

func TestGetIP(t *testing.T) {
	tests := []struct {
		name          string
		remoteAddr    string
		xForwardedFor string
		expectedIP    string
	}{
		{
			name:       "Direct connection",
			remoteAddr: "192.168.1.100:12345",
			expectedIP: "192.168.1.100",
		},
		{
			name:       "Bare IP without port",
			remoteAddr: "192.168.1.100",
			expectedIP: "192.168.1.100",
		},
		{
			name:       "IPv6 with port",
			remoteAddr: "[2001:db8::1]:8080",
			expectedIP: "2001:db8::1",
		},
		{
			name:          "X-Forwarded-For is not trusted",
			remoteAddr:    "10.0.0.1:8080",
			xForwardedFor: "203.0.113.45",
			expectedIP:    "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xForwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.xForwardedFor)
			}

			if got := getIP(req); got != tt.expectedIP {
				t.Errorf("Expected IP %q, got %q", tt.expectedIP, got)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	h1 := hashIP("192.168.1.100")
	h2 := hashIP("192.168.1.100")
	h3 := hashIP("192.168.1.101")

	if h1 != h2 {
		t.Error("Expected identical hashes for the same IP")
	}
	if h1 == h3 {
		t.Error("Expected different hashes for different IPs")
	}
	if h1 == "192.168.1.100" {
		t.Error("Expected the raw IP to not appear in the hash")
	}
	if len(h1) != 64 {
		t.Errorf("Expected a 64-char hex digest, got %d chars", len(h1))
	}
}

func TestRateLimiter_Burst(t *testing.T) {
	rl := NewRateLimiter(t.Context(), 1, 3)
	defer rl.Stop()

	limiter := rl.getVisitor("visitor-a")

	// The burst is consumable immediately, then requests are denied
	// Le burst est consommable immédiatement, puis les requêtes sont refusées
	for i := 0; i < 3; i++ {
		if !limiter.Allow() {
			t.Fatalf("Expected request %d within burst to be allowed", i+1)
		}
	}
	if limiter.Allow() {
		t.Error("Expected request beyond burst to be denied")
	}

	// A different visitor has an independent budget
	if !rl.getVisitor("visitor-b").Allow() {
		t.Error("Expected a fresh visitor to be allowed")
	}
}

func TestRateLimiter_ReusesVisitor(t *testing.T) {
	rl := NewRateLimiter(t.Context(), 1, 1)
	defer rl.Stop()

	first := rl.getVisitor("visitor-a")
	second := rl.getVisitor("visitor-a")
	if first != second {
		t.Error("Expected the same limiter instance for a returning visitor")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := &config.Config{
		RateLimiter: config.RateLimiterConfig{
			Enabled: true,
			RPS:     1,
			Burst:   2,
		},
	}
	mux, db := setupTestServer(t, cfg)
	defer db.Close()

	var lastCode int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "192.0.2.10:1234"
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		lastCode = rec.Code
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("Expected status 429 after exhausting the burst, got %d", lastCode)
	}

	// Another client is unaffected / Un autre client n'est pas affecté
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "192.0.2.11:1234"
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200 for a different client, got %d", rec.Code)
	}
}
