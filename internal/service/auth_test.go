package service

import (
	"context"
	"errors"
	"testing"

	"github.com/akazakov/keepsafe/internal/models"
)

type mockAuthRepo struct {
	UserExistsFunc   func(ctx context.Context, login string) (bool, error)
	RegisterUserFunc func(ctx context.Context, login string) (*models.User, error)
	UserByIDFunc     func(ctx context.Context, id string) (*models.User, error)
}

func (m *mockAuthRepo) UserExists(ctx context.Context, login string) (bool, error) {
	return m.UserExistsFunc(ctx, login)
}
func (m *mockAuthRepo) RegisterUser(ctx context.Context, login string) (*models.User, error) {
	return m.RegisterUserFunc(ctx, login)
}
func (m *mockAuthRepo) UserByID(ctx context.Context, id string) (*models.User, error) {
	return m.UserByIDFunc(ctx, id)
}

func TestUserExists_Success(t *testing.T) {
	want := true
	repo := &mockAuthRepo{
		UserExistsFunc: func(ctx context.Context, login string) (bool, error) {
			if login != "bob" {
				t.Errorf("UserExists received login = %q; want %q", login, "bob")
			}
			return want, nil
		},
	}
	svc := NewAuthService(repo)

	got, err := svc.UserExists(context.Background(), "bob")
	if err != nil {
		t.Fatalf("UserExists returned error: %v", err)
	}
	if got != want {
		t.Errorf("UserExists = %v; want %v", got, want)
	}
}

func TestUserExists_Error(t *testing.T) {
	wantErr := errors.New("db error")
	repo := &mockAuthRepo{
		UserExistsFunc: func(ctx context.Context, login string) (bool, error) {
			return false, wantErr
		},
	}
	svc := NewAuthService(repo)

	got, err := svc.UserExists(context.Background(), "alice")
	if err != wantErr {
		t.Fatalf("UserExists error = %v; want %v", err, wantErr)
	}
	if got {
		t.Errorf("UserExists = %v; want false on error", got)
	}
}

func TestRegisterUser_Success(t *testing.T) {
	want := &models.User{ID: "u1", Login: "carol", OrgID: "o1"}
	repo := &mockAuthRepo{
		RegisterUserFunc: func(ctx context.Context, login string) (*models.User, error) {
			if login != "carol" {
				t.Errorf("RegisterUser received login = %q; want %q", login, "carol")
			}
			return want, nil
		},
	}
	svc := NewAuthService(repo)

	got, err := svc.RegisterUser(context.Background(), "carol")
	if err != nil {
		t.Fatalf("RegisterUser returned error: %v", err)
	}
	if got != want {
		t.Errorf("RegisterUser = %+v; want %+v", got, want)
	}
}

func TestUserByID_Error(t *testing.T) {
	wantErr := errors.New("not found")
	repo := &mockAuthRepo{
		UserByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return nil, wantErr
		},
	}
	svc := NewAuthService(repo)

	if _, err := svc.UserByID(context.Background(), "missing"); err != wantErr {
		t.Fatalf("UserByID error = %v; want %v", err, wantErr)
	}
}
