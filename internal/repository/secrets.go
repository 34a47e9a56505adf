// Package repository provides persistence implementations for the user
// secrets and authentication services using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akazakov/keepsafe/internal/models"
)

// secretColumns is the column list every read of user_secrets scans,
// in models.UserSecret field order.
const secretColumns = `id, user_id, org_id, secret_type, secret_name,
		username, password, cardholder_name, card_number, card_expiration_date,
		card_security_code, title, content, additional_notes, created_at, updated_at`

// PostgresSecretsRepository implements user-secret CRUD against a
// PostgreSQL database. Every query is scoped by owning user and
// organization; a record is never visible outside its owner's scope.
type PostgresSecretsRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSecretsRepository creates a new PostgresSecretsRepository
// using the provided *sql.DB. db must be a valid connection to a
// PostgreSQL instance.
func NewPostgresSecretsRepository(db *sql.DB) *PostgresSecretsRepository {
	return &PostgresSecretsRepository{DB: db}
}

// Create inserts a new secret record. The repository assigns the id and
// both timestamps, writing them back into sec. A missing user or
// organization surfaces as ErrConstraint.
func (r *PostgresSecretsRepository) Create(ctx context.Context, sec *models.UserSecret) error {
	sec.ID = uuid.NewString()
	now := time.Now().UTC()
	sec.CreatedAt = now
	sec.UpdatedAt = now

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO user_secrets (`+secretColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		sec.ID, sec.UserID, sec.OrgID, sec.SecretType, sec.SecretName,
		sec.Username, sec.Password, sec.CardholderName, sec.CardNumber,
		sec.CardExpirationDate, sec.CardSecurityCode, sec.Title, sec.Content,
		sec.AdditionalNotes, sec.CreatedAt, sec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create secret: %w", classify(err))
	}
	return nil
}

// Find returns one page of the user's secrets ordered by creation time,
// newest first. Bounds on offset and limit are the transport layer's
// responsibility; the store applies them as given.
func (r *PostgresSecretsRepository) Find(ctx context.Context, userID, orgID string, offset, limit int) ([]models.UserSecret, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+secretColumns+` FROM user_secrets
		WHERE user_id = $1 AND org_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, userID, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("find secrets: %w", classify(err))
	}
	defer rows.Close()

	var secrets []models.UserSecret
	for rows.Next() {
		var sec models.UserSecret
		if err := scanSecret(rows, &sec); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		secrets = append(secrets, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find secrets: %w", classify(err))
	}
	return secrets, nil
}

// Count returns the total number of secrets within the user's scope.
func (r *PostgresSecretsRepository) Count(ctx context.Context, userID, orgID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM user_secrets WHERE user_id = $1 AND org_id = $2
	`, userID, orgID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count secrets: %w", classify(err))
	}
	return count, nil
}

// GetByID fetches a single secret by id within the user's scope.
// Returns ErrNotFound when no such record is visible to the caller.
func (r *PostgresSecretsRepository) GetByID(ctx context.Context, id, userID, orgID string) (*models.UserSecret, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+secretColumns+` FROM user_secrets
		WHERE id = $1 AND user_id = $2 AND org_id = $3
	`, id, userID, orgID)

	var sec models.UserSecret
	if err := scanSecret(row, &sec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get secret: %w", classify(err))
	}
	return &sec, nil
}

// UpdateByID applies the non-nil fields of upd to the record with the
// given id, refreshes updated_at and returns its new value. The statement
// carries the ownership predicate, so updating a record outside the
// caller's scope returns ErrNotFound.
func (r *PostgresSecretsRepository) UpdateByID(ctx context.Context, id, userID, orgID string, upd models.UserSecretUpdate) (time.Time, error) {
	set := make([]string, 0, 11)
	args := make([]any, 0, 14)
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("secret_name", upd.SecretName)
	add("username", upd.Username)
	add("password", upd.Password)
	add("cardholder_name", upd.CardholderName)
	add("card_number", upd.CardNumber)
	add("card_expiration_date", upd.CardExpirationDate)
	add("card_security_code", upd.CardSecurityCode)
	add("title", upd.Title)
	add("content", upd.Content)
	add("additional_notes", upd.AdditionalNotes)

	args = append(args, time.Now().UTC())
	set = append(set, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id, userID, orgID)
	query := fmt.Sprintf(`
		UPDATE user_secrets SET %s
		WHERE id = $%d AND user_id = $%d AND org_id = $%d
		RETURNING updated_at
	`, strings.Join(set, ", "), len(args)-2, len(args)-1, len(args))

	var updatedAt time.Time
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, fmt.Errorf("update secret: %w", classify(err))
	}
	return updatedAt, nil
}

// DeleteByID physically removes the record with the given id within the
// user's scope. Deleting an id that does not exist is a no-op success:
// the caller cannot distinguish "already gone" from "deleted now".
func (r *PostgresSecretsRepository) DeleteByID(ctx context.Context, id, userID, orgID string) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM user_secrets WHERE id = $1 AND user_id = $2 AND org_id = $3
	`, id, userID, orgID)
	if err != nil {
		return fmt.Errorf("delete secret: %w", classify(err))
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSecret(s scanner, sec *models.UserSecret) error {
	return s.Scan(
		&sec.ID, &sec.UserID, &sec.OrgID, &sec.SecretType, &sec.SecretName,
		&sec.Username, &sec.Password, &sec.CardholderName, &sec.CardNumber,
		&sec.CardExpirationDate, &sec.CardSecurityCode, &sec.Title, &sec.Content,
		&sec.AdditionalNotes, &sec.CreatedAt, &sec.UpdatedAt,
	)
}
