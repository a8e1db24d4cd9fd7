package driven

import (
	"context"

	"github.com/automani/automani/internal/domain/model"
)

// LeadStore defines the driven port for customer enquiry persistence.
// Leads are insert-only; no update or delete operation exists.
type LeadStore interface {
	// Create inserts a new lead and returns it with its assigned id and
	// creation timestamp.
	Create(ctx context.Context, lead model.Lead) (model.Lead, error)
	// ListWithCars returns all leads newest first, each joined with its
	// referenced car's make/model/year when the car still exists.
	ListWithCars(ctx context.Context) ([]model.LeadWithCar, error)
}
