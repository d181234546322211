package httpserver

import (
	"net/http"
	"time"

	"ayala/internal/platform/config"
)

// New builds the API server. The write timeout must cover a model call plus a
// registry query, so it is configured rather than fixed.
func New(cfg config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       2 * time.Minute,
	}
}
