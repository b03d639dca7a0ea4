package httpserver

import (
	"net/http"
	"time"

	"budgetbuddy-go/internal/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
	// writeGrace lets the timeout middleware write its 503 before the
	// connection deadline hits.
	writeGrace = 5 * time.Second
)

// New builds the API server. Read and write deadlines follow the configured
// per-request timeout so a stuck handler cannot hold a connection forever.
func New(cfg config.Config, handler http.Handler) *http.Server {
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
	if cfg.RequestTimeout > 0 {
		srv.ReadTimeout = cfg.RequestTimeout
		srv.WriteTimeout = cfg.RequestTimeout + writeGrace
	}
	return srv
}
