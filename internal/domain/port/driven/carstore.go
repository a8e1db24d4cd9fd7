package driven

import (
	"context"

	"github.com/automani/automani/internal/domain/model"
)

// CarStore defines the driven port for car listing persistence.
type CarStore interface {
	// Create inserts a new car and returns it with its assigned id and
	// creation timestamp.
	Create(ctx context.Context, car model.Car) (model.Car, error)
	// Update replaces all mutable fields of the car identified by car.ID.
	// Returns ErrNotFound when no such row exists.
	Update(ctx context.Context, car model.Car) error
	// Delete removes the car row. Returns ErrNotFound when no such row exists.
	Delete(ctx context.Context, id int64) error
	// GetByID returns the car or nil, nil when it does not exist.
	GetByID(ctx context.Context, id int64) (*model.Car, error)
	// List returns the page of cars matching the normalized filter plus the
	// total match count.
	List(ctx context.Context, filter model.CarFilter) ([]model.Car, int, error)
	// Featured returns the newest available cars, at most limit of them.
	Featured(ctx context.Context, limit int) ([]model.Car, error)
	// Makes returns the distinct make values in alphabetical order.
	Makes(ctx context.Context) ([]string, error)
}
