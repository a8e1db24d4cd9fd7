package driven

import (
	"context"

	"github.com/automani/automani/internal/domain/model"
)

// AdminStore defines the driven port for admin credential persistence.
// Credential rotation is out of scope; the only write is the startup seed.
type AdminStore interface {
	// GetByUsername returns the admin account or nil, nil when it does not exist.
	GetByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	// Count returns the number of admin accounts.
	Count(ctx context.Context) (int, error)
	// Create inserts a new admin account with an already-hashed password.
	Create(ctx context.Context, username, passwordHash string) error
}
