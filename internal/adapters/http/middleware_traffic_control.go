package httpadapter

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// rateLimitMiddleware applies a process-wide token bucket. Uploads are
// short-lived and CPU-bound, so a single bucket is enough; per-client
// fairness is left to the fronting proxy.
func rateLimitMiddleware(next http.Handler, rps, burst int) http.Handler {
	if rps <= 0 {
		return next
	}
	if burst <= 0 {
		burst = rps
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// backpressureMiddleware caps concurrent requests. A request that cannot
// acquire a slot within waitTimeout is shed with 503 instead of queueing
// behind slow classifications.
func backpressureMiddleware(next http.Handler, maxInFlight int, waitTimeout time.Duration) http.Handler {
	if maxInFlight <= 0 {
		return next
	}
	slots := make(chan struct{}, maxInFlight)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := time.NewTimer(waitTimeout)
		defer timer.Stop()

		select {
		case slots <- struct{}{}:
			defer func() { <-slots }()
			next.ServeHTTP(w, r)
		case <-timer.C:
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "server is overloaded, try again later"})
		case <-r.Context().Done():
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "request canceled while waiting for capacity"})
		}
	})
}
