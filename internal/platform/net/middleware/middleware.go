// Package middleware builds the request pipeline every api route runs through
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options tunes Common
type Options struct {
	// Origins allowed by CORS, empty allows any
	Origins []string
	// Slow requests log at warn, zero never does
	Slow time.Duration
	// Timeout cancels the request context, zero leaves it alone
	Timeout time.Duration
}

// Common is the ordered chain mounted in front of the versioned api
func Common(o Options) []func(http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		chimw.RequestID,
		chimw.RealIP,
		AccessLog(o.Slow),
		Recover,
		chimw.NoCache,
		cors.Handler(cors.Options{
			AllowedOrigins: o.Origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", chimw.RequestIDHeader},
			ExposedHeaders: []string{chimw.RequestIDHeader},
		}),
		chimw.NewCompressor(flate.BestSpeed).Handler,
		chimw.StripSlashes,
	}
	if o.Timeout > 0 {
		chain = append(chain, chimw.Timeout(o.Timeout))
	}
	return chain
}

// JSONOnly answers 415 to requests whose body is not application/json
func JSONOnly() func(http.Handler) http.Handler {
	return chimw.AllowContentType("application/json")
}
