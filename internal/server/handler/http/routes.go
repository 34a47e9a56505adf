// Package http provides HTTP routing and middleware configuration
// for the user-secrets service.
package http

import (
	"net/http"

	"github.com/akazakov/keepsafe/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// user-secrets API. It applies JSON content-type enforcement, request
// logging, and certificate-based authentication, and mounts the
// registration, login, and user-secret CRUD endpoints under /api/v1.
//
// Routes:
//
//	POST   /api/v1/register                     → authHandler.Register
//	POST   /api/v1/login                        → authHandler.Login
//	POST   /api/v1/user-secrets                 → secretsHandler.Create
//	GET    /api/v1/user-secrets                 → secretsHandler.List
//	PUT    /api/v1/user-secrets                 → secretsHandler.Update
//	GET    /api/v1/user-secrets/{userSecretId}  → secretsHandler.View
//	DELETE /api/v1/user-secrets/{userSecretId}  → secretsHandler.Delete
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)           — logs incoming requests
//  3. CertAuth                             — enforces TLS client certificate auth
func NewRouter(
	authHandler *AuthHandler,
	secretsHandler *UserSecretsHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Enforce certificate-based authentication
	r.Use(middleware.CertAuth)

	// Mount API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Protected group: requires valid client certificate
		r.Route("/user-secrets", func(r chi.Router) {
			r.Post("/", secretsHandler.Create)
			r.Get("/", secretsHandler.List)
			r.Put("/", secretsHandler.Update)
			r.Get("/{userSecretId}", secretsHandler.View)
			r.Delete("/{userSecretId}", secretsHandler.Delete)
		})
	})

	return r
}
