package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/automani/automani/internal/domain/model"
	"github.com/automani/automani/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AdminStore = (*AdminRepo)(nil)

// AdminRepo is the SQLite implementation of the AdminStore port interface.
type AdminRepo struct {
	db *DB
}

// NewAdminRepo creates a new AdminRepo backed by the given DB.
func NewAdminRepo(db *DB) *AdminRepo {
	return &AdminRepo{db: db}
}

// GetByUsername returns the admin account or nil, nil when it does not exist.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	const query = `SELECT id, username, password_hash FROM admin_users WHERE username = ?`

	var admin model.AdminUser
	err := r.db.Reader.QueryRowContext(ctx, query, username).
		Scan(&admin.ID, &admin.Username, &admin.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get admin %q: %w", username, err)
	}
	return &admin, nil
}

// Count returns the number of admin accounts.
func (r *AdminRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return count, nil
}

// Create inserts a new admin account with an already-hashed password.
func (r *AdminRepo) Create(ctx context.Context, username, passwordHash string) error {
	const query = `INSERT INTO admin_users (username, password_hash) VALUES (?, ?)`
	_, err := r.db.Writer.ExecContext(ctx, query, username, passwordHash)
	if err != nil {
		return fmt.Errorf("create admin %q: %w", username, err)
	}
	return nil
}
