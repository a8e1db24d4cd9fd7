package sqlite

import (
	"context"
	"fmt"

	"github.com/automani/automani/internal/domain/model"
	"github.com/automani/automani/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.LeadStore = (*LeadRepo)(nil)

// LeadRepo is the SQLite implementation of the LeadStore port interface.
type LeadRepo struct {
	db *DB
}

// NewLeadRepo creates a new LeadRepo backed by the given DB.
func NewLeadRepo(db *DB) *LeadRepo {
	return &LeadRepo{db: db}
}

// Create inserts a new lead and returns the stored row. CarID may be nil;
// the column stays NULL and the lead is not tied to any listing.
func (r *LeadRepo) Create(ctx context.Context, lead model.Lead) (model.Lead, error) {
	const query = `INSERT INTO leads (car_id, name, phone, message) VALUES (?, ?, ?, ?)`

	res, err := r.db.Writer.ExecContext(ctx, query,
		lead.CarID, lead.Name, lead.Phone, lead.Message)
	if err != nil {
		return model.Lead{}, fmt.Errorf("insert lead: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Lead{}, fmt.Errorf("insert lead id: %w", err)
	}

	var stored model.Lead
	var createdAt string
	err = r.db.Writer.QueryRowContext(ctx,
		`SELECT id, car_id, name, phone, message, created_at FROM leads WHERE id = ?`, id,
	).Scan(&stored.ID, &stored.CarID, &stored.Name, &stored.Phone, &stored.Message, &createdAt)
	if err != nil {
		return model.Lead{}, fmt.Errorf("read back lead %d: %w", id, err)
	}

	stored.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Lead{}, fmt.Errorf("parse created_at: %w", err)
	}
	return stored, nil
}

// ListWithCars returns all leads newest first, joined with the referenced
// car's display fields. A lead whose car was deleted keeps its car_id and
// comes back with nil car fields.
func (r *LeadRepo) ListWithCars(ctx context.Context) ([]model.LeadWithCar, error) {
	const query = `
		SELECT leads.id, leads.car_id, leads.name, leads.phone, leads.message,
		       leads.created_at, cars.make, cars.model, cars.year
		FROM leads
		LEFT JOIN cars ON leads.car_id = cars.id
		ORDER BY leads.created_at DESC, leads.id DESC
	`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := []model.LeadWithCar{}
	for rows.Next() {
		var lead model.LeadWithCar
		var createdAt string
		err := rows.Scan(
			&lead.ID, &lead.CarID, &lead.Name, &lead.Phone, &lead.Message,
			&createdAt, &lead.CarMake, &lead.CarModel, &lead.CarYear,
		)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}

		lead.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for lead %d: %w", lead.ID, err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}
