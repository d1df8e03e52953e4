// internal/server/timeouts.go
//
// HTTP server helper with robust timeouts.
//
//   • ReadTimeout   – abort slow-loris headers
//   • WriteTimeout  – cap total response time
//   • IdleTimeout   – close keep-alives on idle clients
//
// Values come from config.HTTP; zero values fall back to 10 s, 15 s, and
// 60 s so cmd/web never starts an unbounded server.

package server

import (
	"net/http"
	"time"

	"github.com/yanizio/contactform/internal/config"
)

// New constructs an *http.Server for cfg.
func New(cfg config.HTTP, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadTimeout:       orDefault(cfg.ReadTimeout, 10*time.Second),
		ReadHeaderTimeout: orDefault(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout:      orDefault(cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       orDefault(cfg.IdleTimeout, 60*time.Second),
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
