package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/automani/automani/internal/domain/model"
	"github.com/automani/automani/internal/domain/port/driven"
)

// ErrInvalidCredentials is returned by Login for an unknown username or a
// wrong password. Callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService implements the admin session gate: login establishes a
// server-side session, logout destroys it, and Check resolves a token back
// to the admin identity.
type AuthService struct {
	admins   driven.AdminStore
	sessions driven.SessionStore
}

// NewAuthService creates an AuthService with the required stores.
func NewAuthService(admins driven.AdminStore, sessions driven.SessionStore) *AuthService {
	return &AuthService{admins: admins, sessions: sessions}
}

// Login verifies the credentials and establishes a new session bound to the
// admin's identity.
func (s *AuthService) Login(ctx context.Context, username, password string) (model.Session, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return model.Session{}, err
	}
	if admin == nil {
		return model.Session{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return model.Session{}, ErrInvalidCredentials
	}

	session := model.Session{
		Token:    uuid.NewString(),
		Username: admin.Username,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return model.Session{}, err
	}
	return session, nil
}

// Logout destroys the session server-side. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Check resolves a session token to the bound username. The second return
// is false for an empty or unknown token.
func (s *AuthService) Check(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return "", false, err
	}
	if session == nil {
		return "", false, nil
	}
	return session.Username, true, nil
}

// EnsureAdmin seeds the admin account on first startup. When at least one
// account already exists this is a no-op; rotation is out of scope.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.admins.Create(ctx, username, hash); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

// HashPassword hashes a password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
