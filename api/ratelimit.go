package api

import (
	"encoding/json"
	"net/http"

	"golang.org/x/time/rate"
)

// rateLimit rejects requests once l is exhausted.
func rateLimit(l *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msgTooManyRequests})
			return
		}
		next.ServeHTTP(w, r)
	})
}
