package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	"golang.org/x/time/rate"

	"notes-api/internal/api/rest"
)

// RateLimit ограничивает количество запросов (rate limiting)
// rps - запросов в секунду, burst - разрешает кратковременные всплески
func RateLimit(next http.Handler, rps int, burst int) http.Handler {
	// Значения по умолчанию если не указаны
	if rps <= 0 {
		rps = 100
	}
	if burst <= 0 {
		burst = 10
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			log.Printf("[HTTP] Rate limit exceeded for %s from %s", r.URL.Path, r.RemoteAddr)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			// Тот же конверт ошибки, что и у остальных ответов
			payload, _ := json.Marshal(rest.ErrorResponse{
				Detail: "too many requests",
				Code:   rest.CodeRateLimited,
			})
			_, _ = w.Write(payload)
			return
		}
		next.ServeHTTP(w, r)
	})
}
