// Package http provides HTTP handlers for user authentication,
// including registration and certificate-based login.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/akazakov/keepsafe/internal/certgen"
	"github.com/akazakov/keepsafe/internal/models"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// UserExists checks whether a user with the given login exists.
	UserExists(ctx context.Context, login string) (bool, error)
	// RegisterUser registers a new user with the given login and
	// returns it together with its personal organization id.
	RegisterUser(ctx context.Context, login string) (*models.User, error)
	// UserByID fetches a user by its identifier.
	UserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// CACertPath and CAKeyPath locate the CA credentials used to sign
	// issued client certificates.
	CACertPath string
	CAKeyPath  string
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	// Login is the username to register.
	Login string `json:"login"`
}

// Register handles user registration requests.
// It expects a JSON body with a non-empty "login" field. If the user does
// not already exist, it creates the user with its personal organization,
// generates a client certificate signed by the CA whose subject carries
// the user and organization ids, and returns the PEM-encoded certificate
// and private key.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	// Check if user already exists
	exists, err := h.AuthService.UserExists(r.Context(), req.Login)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if exists {
		http.Error(w, "user already exists", http.StatusConflict)
		return
	}

	// Load CA credentials for signing
	caCert, caKey, err := certgen.LoadCACredentials(h.CACertPath, h.CAKeyPath)
	if err != nil {
		http.Error(w, "failed to load CA", http.StatusInternalServerError)
		return
	}

	// Save the new user in the database
	user, err := h.AuthService.RegisterUser(r.Context(), req.Login)
	if err != nil {
		http.Error(w, "failed to save user", http.StatusInternalServerError)
		return
	}

	// Generate a client certificate carrying the actor identity
	certPEM, keyPEM, err := certgen.GenerateUserCertificate(user.ID, user.OrgID, caCert, caKey)
	if err != nil {
		http.Error(w, "failed to generate certificate", http.StatusInternalServerError)
		return
	}

	// Respond with the generated certificate and key
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"cert":   string(certPEM),
		"key":    string(keyPEM),
		"userId": user.ID,
		"orgId":  user.OrgID,
	})
}

// Login handles certificate-based login requests.
// It expects the client to present a valid TLS certificate. The
// CommonName from the client certificate is the user id. If the user
// exists, it returns a JSON status "ok" with the login and org id.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.TLS == nil || len(r.TLS.PeerCertificates) == 0 {
		http.Error(w, "client certificate required", http.StatusUnauthorized)
		return
	}

	cert := r.TLS.PeerCertificates[0]
	userID := cert.Subject.CommonName

	user, err := h.AuthService.UserByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "user not found", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"user":   user.Login,
		"orgId":  user.OrgID,
	})
}
