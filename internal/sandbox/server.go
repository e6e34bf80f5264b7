// Package sandbox is a self-contained trading backend serving the dashboard's JSON API
// from memory. It fills market orders instantly at a settable quote.
package sandbox

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	// SessionCookie carries the session token issued by /login.
	SessionCookie = "tradeboard_session"

	sessionLifetime = 8 * time.Hour
)

// Config holds sandbox configuration.
type Config struct {
	Log    zerolog.Logger
	Port   int
	Symbol string
	// Quote is the initial market price; zero means no market data yet.
	Quote decimal.Decimal
}

// Server is the sandbox HTTP server.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	port   int
	symbol string

	mu       sync.Mutex
	accounts map[string]*account
	sessions map[string]string
	quote    decimal.Decimal
}

// New creates a sandbox server with no users.
func New(cfg Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "sandbox").Logger(),
		port:     cfg.Port,
		symbol:   cfg.Symbol,
		accounts: make(map[string]*account),
		sessions: make(map[string]string),
		quote:    cfg.Quote,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Post("/login", s.handleLogin)
	s.router.Get("/logout", s.handleLogout)
	s.router.Post("/logout", s.handleLogout)
	s.router.Post("/register", s.handleRegister)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/balance", s.handleBalance)
		r.Get("/account_summary", s.handleAccountSummary)
		r.Get("/positions", s.handlePositions)
		r.Get("/market_data", s.handleMarketData)
		r.Post("/trade", s.handleTrade)
		r.Get("/reset/{username}", s.handleReset)
		r.Post("/reset/{username}", s.handleReset)
	})
}

// Handler exposes the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port until Shutdown.
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Str("symbol", s.symbol).Msg("Starting sandbox server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down sandbox server")
	return s.server.Shutdown(ctx)
}

// AddUser registers an account with the starting balance.
func (s *Server) AddUser(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[username]; ok {
		return ErrUserExists
	}
	s.accounts[username] = &account{password: password, balance: StartingBalance}
	return nil
}

// SetQuote sets the price orders fill at and market data reports.
func (s *Server) SetQuote(price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quote = price
}

// Quote returns the current market price.
func (s *Server) Quote() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quote
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
