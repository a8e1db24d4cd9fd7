package driven

import (
	"context"

	"github.com/automani/automani/internal/domain/model"
)

// SessionStore defines the driven port for server-side admin sessions.
type SessionStore interface {
	Create(ctx context.Context, session model.Session) error
	// Get returns the session or nil, nil when the token is unknown.
	Get(ctx context.Context, token string) (*model.Session, error)
	// Delete destroys the session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
