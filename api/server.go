// Package api exposes the codec engine and the capture history over a
// local HTTP surface.
package api

import (
	"context"
	"log"
	"net/http"

	"github.com/jmakk0301/aws-console-time-keeper/storage"
)

// Server wraps the http.Server to provide graceful shutdown.
type Server struct {
	httpServer *http.Server
}

// NewServer creates and configures a new API server.
func NewServer(port string, store storage.Storer) *Server {
	h := NewHandlers(store)
	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: h.Router(),
		},
	}
}

// Start runs the HTTP server in a new goroutine.
func (s *Server) Start() {
	log.Printf("starting HTTP server on %s", s.httpServer.Addr)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("could not start HTTP server: %v", err)
		}
	}()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
