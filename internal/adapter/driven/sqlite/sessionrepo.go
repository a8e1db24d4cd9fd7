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
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo is the SQLite implementation of the SessionStore port
// interface. Sessions carry no expiry of their own; a row exists until
// logout deletes it.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new SessionRepo backed by the given DB.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create inserts a new session row.
func (r *SessionRepo) Create(ctx context.Context, session model.Session) error {
	const query = `INSERT INTO sessions (token, username) VALUES (?, ?)`
	_, err := r.db.Writer.ExecContext(ctx, query, session.Token, session.Username)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Get returns the session or nil, nil when the token is unknown.
func (r *SessionRepo) Get(ctx context.Context, token string) (*model.Session, error) {
	const query = `SELECT token, username, created_at FROM sessions WHERE token = ?`

	var session model.Session
	var createdAt string
	err := r.db.Reader.QueryRowContext(ctx, query, token).
		Scan(&session.Token, &session.Username, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	session.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &session, nil
}

// Delete destroys the session. Unknown tokens are a no-op.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.Writer.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
