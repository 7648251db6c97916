// Package http holds the HTTP server plumbing shared by the binaries.
package http

import (
	"net/http"
	"time"
)

// NewServer returns an http.Server for handler on addr with explicit
// timeouts; the zero-value server has none.
//
//   - ReadHeaderTimeout bounds slow clients sending headers
//   - ReadTimeout and WriteTimeout bound a whole request and response
//   - IdleTimeout bounds kept-alive connections between requests
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
}
