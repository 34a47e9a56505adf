// Package service provides business logic for user secrets and
// authentication, delegating persistence to repository interfaces.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/akazakov/keepsafe/internal/models"
	"github.com/akazakov/keepsafe/internal/normalize"
)

// SecretsRepository defines the persistence operations needed by the
// UserSecretsService. Every operation is scoped by the owning user and
// organization.
type SecretsRepository interface {
	// Create inserts a new secret, assigning id and timestamps.
	Create(ctx context.Context, sec *models.UserSecret) error
	// Find returns one page of secrets ordered by creation time descending.
	Find(ctx context.Context, userID, orgID string, offset, limit int) ([]models.UserSecret, error)
	// Count returns the total number of secrets in the scope.
	Count(ctx context.Context, userID, orgID string) (int, error)
	// GetByID fetches a single secret within the scope.
	GetByID(ctx context.Context, id, userID, orgID string) (*models.UserSecret, error)
	// UpdateByID applies the non-nil fields and returns the new updated_at.
	UpdateByID(ctx context.Context, id, userID, orgID string, upd models.UserSecretUpdate) (time.Time, error)
	// DeleteByID physically removes a secret; a missing id is a no-op.
	DeleteByID(ctx context.Context, id, userID, orgID string) error
}

// CreateSecretRequest carries the fields of a create call. SecretType and
// SecretName are required; everything else is optional.
type CreateSecretRequest struct {
	SecretType         string
	SecretName         string
	Username           *string
	Password           *string
	CardholderName     *string
	CardNumber         *string
	CardExpirationDate *string
	CardSecurityCode   *string
	Title              *string
	Content            *string
	AdditionalNotes    *string
}

// CreateSecretResult is the outcome of a successful create.
type CreateSecretResult struct {
	ID     string
	Status string
}

// ListSecretsResult is the outcome of a list call. TotalCount and
// UserSecrets come from two independent reads and may disagree under
// concurrent writes.
type ListSecretsResult struct {
	Status      string
	TotalCount  int
	UserSecrets []models.UserSecret
}

// UpdateSecretRequest carries a partial update. SecretType names the
// record's category so name/title normalization can be applied; it does
// not change the stored category.
type UpdateSecretRequest struct {
	ID         string
	SecretType string
	Fields     models.UserSecretUpdate
}

// UpdateSecretResult is the outcome of a successful update.
type UpdateSecretResult struct {
	Status    string
	UpdatedAt time.Time
}

// DeleteSecretResult is the outcome of a delete call.
type DeleteSecretResult struct {
	Status string
}

// UserSecretsService implements the user-secret lifecycle: it applies the
// normalization policy before every write and scopes every repository
// call by the acting user and organization.
type UserSecretsService struct {
	// repo is the underlying persistence repository.
	repo SecretsRepository
}

// NewUserSecretsService constructs a UserSecretsService with the provided
// repository.
func NewUserSecretsService(repo SecretsRepository) *UserSecretsService {
	return &UserSecretsService{repo: repo}
}

// Create stores a new secret for the actor. The secret name is
// word-capitalized and, for secure notes, the title is derived from it,
// ignoring any supplied title. The raw secret type string is stored
// unchanged so unknown categories round-trip.
func (s *UserSecretsService) Create(ctx context.Context, actor models.Actor, req CreateSecretRequest) (CreateSecretResult, error) {
	secretType := models.ParseSecretType(req.SecretType)
	name := normalize.CapitalizeWords(req.SecretName)

	sec := &models.UserSecret{
		UserID:             actor.UserID,
		OrgID:              actor.OrgID,
		SecretType:         req.SecretType,
		SecretName:         name,
		Username:           req.Username,
		Password:           req.Password,
		CardholderName:     req.CardholderName,
		CardNumber:         req.CardNumber,
		CardExpirationDate: req.CardExpirationDate,
		CardSecurityCode:   req.CardSecurityCode,
		Title:              normalize.DeriveTitle(secretType, name, req.Title),
		Content:            req.Content,
		AdditionalNotes:    req.AdditionalNotes,
	}

	if err := s.repo.Create(ctx, sec); err != nil {
		return CreateSecretResult{}, fmt.Errorf("createSecret: %w", err)
	}
	return CreateSecretResult{ID: sec.ID, Status: models.StatusSuccess}, nil
}

// List returns one page of the actor's secrets, newest first, together
// with the total count. The page and the count are separate reads; they
// are not guaranteed to reflect the same snapshot.
func (s *UserSecretsService) List(ctx context.Context, actor models.Actor, offset, limit int) (ListSecretsResult, error) {
	secrets, err := s.repo.Find(ctx, actor.UserID, actor.OrgID, offset, limit)
	if err != nil {
		return ListSecretsResult{}, fmt.Errorf("listSecrets: %w", err)
	}
	count, err := s.repo.Count(ctx, actor.UserID, actor.OrgID)
	if err != nil {
		return ListSecretsResult{}, fmt.Errorf("listSecrets: %w", err)
	}
	if secrets == nil {
		secrets = []models.UserSecret{}
	}
	return ListSecretsResult{
		Status:      models.StatusSuccess,
		TotalCount:  count,
		UserSecrets: secrets,
	}, nil
}

// Get fetches a single secret within the actor's scope.
func (s *UserSecretsService) Get(ctx context.Context, actor models.Actor, id string) (*models.UserSecret, error) {
	sec, err := s.repo.GetByID(ctx, id, actor.UserID, actor.OrgID)
	if err != nil {
		return nil, fmt.Errorf("getSecret: %w", err)
	}
	return sec, nil
}

// Update applies a partial update to one of the actor's secrets. Fields
// not supplied stay untouched. A supplied secret name is word-capitalized;
// for secure notes the title always tracks the secret name and can never
// be set independently.
func (s *UserSecretsService) Update(ctx context.Context, actor models.Actor, req UpdateSecretRequest) (UpdateSecretResult, error) {
	secretType := models.ParseSecretType(req.SecretType)
	upd := req.Fields

	if upd.SecretName != nil {
		name := normalize.CapitalizeWords(*upd.SecretName)
		upd.SecretName = &name
		if secretType == models.TypeSecureNote {
			upd.Title = &name
		}
	} else if secretType == models.TypeSecureNote {
		// Title is derived state for notes, never written on its own.
		upd.Title = nil
	}

	updatedAt, err := s.repo.UpdateByID(ctx, req.ID, actor.UserID, actor.OrgID, upd)
	if err != nil {
		return UpdateSecretResult{}, fmt.Errorf("updateSecret: %w", err)
	}
	return UpdateSecretResult{Status: models.StatusSuccess, UpdatedAt: updatedAt}, nil
}

// Delete removes one of the actor's secrets by id. Deleting an id that no
// longer exists still succeeds.
func (s *UserSecretsService) Delete(ctx context.Context, actor models.Actor, id string) (DeleteSecretResult, error) {
	if err := s.repo.DeleteByID(ctx, id, actor.UserID, actor.OrgID); err != nil {
		return DeleteSecretResult{}, fmt.Errorf("deleteSecret: %w", err)
	}
	return DeleteSecretResult{Status: models.StatusSuccess}, nil
}
