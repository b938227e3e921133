// ABOUTME: HTTP server wiring services, guard, and routes behind a chi router
// ABOUTME: Owns the http.Server lifecycle including graceful shutdown

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/2389/workbench/internal/account"
	"github.com/2389/workbench/internal/auth"
	"github.com/2389/workbench/internal/config"
	"github.com/2389/workbench/internal/product"
	"github.com/2389/workbench/internal/store"
	"github.com/2389/workbench/internal/workspace"
)

// Server is the workbench HTTP API server.
type Server struct {
	guard      *auth.Guard
	accounts   *account.Service
	workspaces *workspace.Service
	products   *product.Service
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a server over the given store with the configured token
// parameters.
func New(cfg *config.Config, st store.Store) (*Server, error) {
	tokens, err := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	guard := auth.NewGuard(tokens, st)
	creds := auth.NewBcryptVerifier()

	s := &Server{
		guard:      guard,
		accounts:   account.NewService(st, tokens, creds),
		workspaces: workspace.NewService(st, guard),
		products:   product.NewService(st, guard),
		logger:     slog.Default().With("component", "server"),
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Routes builds the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Everything below requires a bearer credential.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(s.guard))

			r.Get("/me", s.handleMe)
			r.Get("/me/workspace", s.handleHomeWorkspace)
			r.Post("/profile/update", s.handleUpdateProfile)

			r.Route("/workspace/{workspaceID}", func(r chi.Router) {
				r.Get("/", s.handleGetWorkspace)
				r.Patch("/", s.handleUpdateWorkspace)
				r.Get("/check-permission", s.handleCheckPermission)

				r.Get("/users", s.handleListMembers)
				r.Post("/users", s.handleAddMember)
				r.Delete("/users/{membershipID}", s.handleRemoveMember)

				r.Route("/products", func(r chi.Router) {
					r.Get("/", s.handleListProducts)
					r.Post("/", s.handleCreateProduct)
					r.Get("/{productID}", s.handleGetProduct)
					r.Patch("/{productID}", s.handleUpdateProduct)
					r.Delete("/{productID}", s.handleDeleteProduct)
				})
			})
		})
	})

	return r
}

// Start begins serving HTTP and blocks until the listener fails or is
// shut down.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}
