// Package http provides HTTP handlers for the user-secrets API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/akazakov/keepsafe/internal/middleware"
	"github.com/akazakov/keepsafe/internal/models"
	"github.com/akazakov/keepsafe/internal/repository"
	"github.com/akazakov/keepsafe/internal/service"
)

// List pagination bounds enforced at the transport boundary. The store
// applies whatever it is given.
const (
	defaultLimit = 25
	maxLimit     = 100
	maxOffset    = 100
)

// UserSecretsService defines the operations required by the
// UserSecretsHandler.
type UserSecretsService interface {
	Create(ctx context.Context, actor models.Actor, req service.CreateSecretRequest) (service.CreateSecretResult, error)
	List(ctx context.Context, actor models.Actor, offset, limit int) (service.ListSecretsResult, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.UserSecret, error)
	Update(ctx context.Context, actor models.Actor, req service.UpdateSecretRequest) (service.UpdateSecretResult, error)
	Delete(ctx context.Context, actor models.Actor, id string) (service.DeleteSecretResult, error)
}

// UserSecretsHandler handles HTTP requests for user-secret CRUD.
type UserSecretsHandler struct {
	Service UserSecretsService
}

// createRequest is the JSON body of POST /api/v1/user-secrets.
type createRequest struct {
	SecretType         string  `json:"secretType"`
	SecretName         string  `json:"secretName"`
	Username           *string `json:"username,omitempty"`
	Password           *string `json:"password,omitempty"`
	CardholderName     *string `json:"cardholderName,omitempty"`
	CardNumber         *string `json:"cardNumber,omitempty"`
	CardExpirationDate *string `json:"cardExpirationDate,omitempty"`
	CardSecurityCode   *string `json:"cardSecurityCode,omitempty"`
	Title              *string `json:"title,omitempty"`
	Content            *string `json:"content,omitempty"`
	AdditionalNotes    *string `json:"additionalNotes,omitempty"`
}

// updateRequest is the JSON body of PUT /api/v1/user-secrets. Absent
// fields stay untouched.
type updateRequest struct {
	ID         string `json:"id"`
	SecretType string `json:"secretType"`
	models.UserSecretUpdate
}

// Create handles POST /api/v1/user-secrets.
// Responds 201 with {id, status}.
func (h *UserSecretsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())
	if actor.UserID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SecretType == "" || req.SecretName == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	result, err := h.Service.Create(r.Context(), actor, service.CreateSecretRequest{
		SecretType:         req.SecretType,
		SecretName:         req.SecretName,
		Username:           req.Username,
		Password:           req.Password,
		CardholderName:     req.CardholderName,
		CardNumber:         req.CardNumber,
		CardExpirationDate: req.CardExpirationDate,
		CardSecurityCode:   req.CardSecurityCode,
		Title:              req.Title,
		Content:            req.Content,
		AdditionalNotes:    req.AdditionalNotes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"id":     result.ID,
		"status": result.Status,
	})
}

// List handles GET /api/v1/user-secrets?offset&limit.
// Responds 200 with {status, totalCount, userSecrets}.
func (h *UserSecretsHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())
	if actor.UserID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	offset, ok := queryInt(r, "offset", 0)
	if !ok || offset < 0 || offset > maxOffset {
		http.Error(w, "invalid offset", http.StatusBadRequest)
		return
	}
	limit, ok := queryInt(r, "limit", defaultLimit)
	if !ok || limit < 1 || limit > maxLimit {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}

	result, err := h.Service.List(r.Context(), actor, offset, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":      result.Status,
		"totalCount":  result.TotalCount,
		"userSecrets": result.UserSecrets,
	})
}

// View handles GET /api/v1/user-secrets/{userSecretId}.
// Responds 200 with the record.
func (h *UserSecretsHandler) View(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())
	if actor.UserID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	sec, err := h.Service.Get(r.Context(), actor, chi.URLParam(r, "userSecretId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sec)
}

// Update handles PUT /api/v1/user-secrets.
// Responds 200 with {status, updatedAt}.
func (h *UserSecretsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())
	if actor.UserID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	result, err := h.Service.Update(r.Context(), actor, service.UpdateSecretRequest{
		ID:         req.ID,
		SecretType: req.SecretType,
		Fields:     req.UserSecretUpdate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    result.Status,
		"updatedAt": result.UpdatedAt,
	})
}

// Delete handles DELETE /api/v1/user-secrets/{userSecretId}.
// Responds 200 with {status}; deleting an id that no longer exists still
// succeeds.
func (h *UserSecretsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())
	if actor.UserID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.Service.Delete(r.Context(), actor, chi.URLParam(r, "userSecretId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": result.Status,
	})
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// writeServiceError maps repository error taxonomy onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrConstraint):
		http.Error(w, "constraint violation", http.StatusConflict)
	case errors.Is(err, repository.ErrUnavailable):
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
