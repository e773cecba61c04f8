package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"simple-ledger/internal/config"
	"simple-ledger/internal/domain"
	"simple-ledger/internal/handler"
	"simple-ledger/internal/repository"
	"simple-ledger/internal/service"

	"github.com/gorilla/mux"
)

// accountStore is the repository plus the lifecycle hooks the server needs.
type accountStore interface {
	domain.AccountRepository
	Ping() error
}

// Server represents the HTTP server
type Server struct {
	router *mux.Router
	server *http.Server
	store  accountStore
	logger *slog.Logger
	port   string
}

// NewServer wires the store, service, validators, and handlers behind a
// mux router.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	var store accountStore
	if cfg.DatabaseURL != "" {
		pg, err := repository.OpenPostgres(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		store = pg
		logger.Info("Using postgres account store")
	} else {
		store = repository.NewMemory(logger)
		logger.Info("Using in-memory account store")
	}

	accountService := service.NewAccountService(store, service.DefaultValidators(), logger)
	accountHandler := handler.NewAccountHandler(accountService)

	router := mux.NewRouter()
	router.Use(loggingMiddleware(logger))

	router.HandleFunc("/account/deposit", accountHandler.PostDeposit).Methods("POST")
	router.HandleFunc("/account/withdrawal", accountHandler.PostWithdrawal).Methods("POST")
	router.HandleFunc("/account/{account_id}/balance", accountHandler.GetCurrentBalance).Methods("GET")
	router.HandleFunc("/account/{account_id}/transactions", accountHandler.GetTransactionHistory).Methods("GET")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "error": "store unavailable"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	return &Server{
		router: router,
		store:  store,
		logger: logger,
	}, nil
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration", time.Since(start),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start starts the HTTP server on the specified port. Port "0" binds an
// ephemeral port; GetPort reports the one actually used.
func (s *Server) Start(port string) (string, error) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server", "port", s.port)

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed", "error", err)
		}
	}()

	return s.port, nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	if closer, ok := s.store.(io.Closer); ok {
		closer.Close()
	}

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetBaseURL returns the base URL for the server
func (s *Server) GetBaseURL() string {
	return "http://localhost:" + s.port
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// StartServer starts the server with the given configuration
func StartServer(cfg *config.Config) (*Server, string, error) {
	var logger *slog.Logger
	switch {
	case cfg.ServerPort == "0":
		// Test environment - keep logs out of test output
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	case cfg.LogFormat == "text":
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	default:
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	server, err := NewServer(cfg, logger)
	if err != nil {
		return nil, "", err
	}

	port, err := server.Start(cfg.ServerPort)
	if err != nil {
		return nil, "", err
	}

	return server, port, nil
}
