package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/punchdeck/punchdeck/internal/cache"
)

// ScanRateLimiter checks whether a scan from the given terminal IP is allowed.
type ScanRateLimiter interface {
	CheckScanRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	Logger  *slog.Logger
	Limiter ScanRateLimiter

	Enabled bool
	RPS     int
	Burst   int
}

// RateLimitScan returns a middleware that rate limits scan submissions per
// terminal IP. Misconfigured readers can flood the endpoint with repeated
// submissions; the limiter fails open when Redis is unavailable.
func RateLimitScan(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled || cfg.Limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := cfg.Limiter.CheckScanRateLimit(r.Context(), r.RemoteAddr, cfg.RPS, cfg.Burst)
			if err != nil {
				// Fail open
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

			if !result.Allowed {
				cfg.Logger.Warn("scan rate limited",
					"request_id", GetRequestID(r.Context()),
					"remote_addr", r.RemoteAddr,
				)

				w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "too many scans",
					"code":  "RATE_LIMITED",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
