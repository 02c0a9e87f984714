package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// TLSConfig carries optional TLS file paths for the server.
type TLSConfig struct {
	Enabled      bool
	CertFileName string
	KeyFileName  string
}

// HTTPServer wraps an http.Server with address and lifecycle methods.
type HTTPServer struct {
	server *http.Server
	tls    TLSConfig
}

// NewHTTPServer creates an HTTPServer with the given handler and address.
func NewHTTPServer(handler http.Handler, addr string, tls TLSConfig) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
		tls: tls,
	}
}

// Start starts serving on the configured address. It blocks until the
// server stops and never returns http.ErrServerClosed.
func (s *HTTPServer) Start() error {
	var err error
	if s.tls.Enabled {
		err = s.server.ListenAndServeTLS(s.tls.CertFileName, s.tls.KeyFileName)
	} else {
		err = s.server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Stop gracefully stops the server.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.server.Addr
}
