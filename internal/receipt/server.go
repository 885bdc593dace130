package receipt

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// maxBodySize bounds the size of a submitted receipt document
const maxBodySize = 1 << 20

// Server handles HTTP requests for receipts
type Server struct {
	service *Service
	logger  Logger
	mux     *http.ServeMux
	handler http.Handler
	srv     *http.Server
}

// NewServer creates a new Server with default mux
func NewServer(service *Service, logger Logger) *Server {
	return NewServerWithMux(service, logger, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(service *Service, logger Logger, mux *http.ServeMux) *Server {
	s := &Server{
		service: service,
		logger:  logger,
		mux:     mux,
	}
	s.registerRoutes()
	s.handler = middleware.RequestID(s.recoverer(s.corsMiddleware(s.mux)))
	s.srv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// corsMiddleware adds CORS headers to responses
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// recoverer turns a panicking handler into a generic 500 response.
// If the handler already started its response, the panic is only logged.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error("Panic serving request",
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", middleware.GetReqID(r.Context()),
					"panic", rec,
				)
				if ww.Status() == 0 {
					s.writeError(ww, http.StatusInternalServerError, msgInternal)
				}
			}
		}()
		next.ServeHTTP(ww, r)
	})
}

// registerRoutes registers all API routes on the server's mux
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /receipts/process", s.handleProcessReceipt)
	s.mux.HandleFunc("GET /receipts/{id}/points", s.handleGetPoints)
	s.mux.HandleFunc("GET /receipts/{id}", s.handleGetReceipt)
	s.mux.HandleFunc("DELETE /receipts/{id}", s.handleDeleteReceipt)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// Start listens on addr and serves until Shutdown is called.
// A clean Shutdown is not reported as an error.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	s.logger.Info("Starting server", "address", ln.Addr().String())
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server. Safe to call before or during Start.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
