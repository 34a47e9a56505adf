// Package repository provides persistence implementations for authentication services.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/akazakov/keepsafe/internal/models"
)

// PostgresAuthRepository implements user and organization persistence
// using a PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the
// given database connection. db must be a valid *sql.DB connected to a
// PostgreSQL instance.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// UserExists checks whether a user with the specified login exists.
// It returns true if the user exists, false otherwise.
func (r *PostgresAuthRepository) UserExists(ctx context.Context, login string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE login = $1)`,
		login,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user exists: %w", classify(err))
	}
	return exists, nil
}

// RegisterUser creates a new user together with its personal organization
// inside one transaction and returns the created user. A duplicate login
// surfaces as ErrConstraint.
func (r *PostgresAuthRepository) RegisterUser(ctx context.Context, login string) (*models.User, error) {
	user := &models.User{
		ID:    uuid.NewString(),
		Login: login,
		OrgID: uuid.NewString(),
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", classify(err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO organizations (id, name) VALUES ($1, $2)
	`, user.OrgID, login); err != nil {
		return nil, fmt.Errorf("insert organization: %w", classify(err))
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO users (id, login, org_id) VALUES ($1, $2, $3)
	`, user.ID, user.Login, user.OrgID); err != nil {
		return nil, fmt.Errorf("insert user: %w", classify(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", classify(err))
	}
	return user, nil
}

// UserByID fetches a user by its identifier. Returns ErrNotFound when the
// user does not exist.
func (r *PostgresAuthRepository) UserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, login, org_id FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Login, &user.OrgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user by id: %w", classify(err))
	}
	return &user, nil
}
