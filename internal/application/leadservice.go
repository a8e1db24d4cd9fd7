package application

import (
	"context"

	"github.com/microcosm-cc/bluemonday"

	"github.com/automani/automani/internal/domain/model"
	"github.com/automani/automani/internal/domain/port/driven"
)

// LeadForm is a public enquiry submission prior to validation.
type LeadForm struct {
	CarID   *int64
	Name    string
	Phone   string
	Message string
}

// LeadService records customer enquiries and serves the admin lead inbox.
type LeadService struct {
	leads    driven.LeadStore
	sanitize *bluemonday.Policy
}

// NewLeadService creates a LeadService backed by the given store.
func NewLeadService(leads driven.LeadStore) *LeadService {
	return &LeadService{
		leads:    leads,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Submit validates and records a lead. Name and phone are required; the car
// reference is optional and never checked against the inventory, so it may
// dangle later without consequence.
func (s *LeadService) Submit(ctx context.Context, form LeadForm) (model.Lead, error) {
	if form.Name == "" {
		return model.Lead{}, &ValidationError{Field: "name", Reason: "required"}
	}
	if form.Phone == "" {
		return model.Lead{}, &ValidationError{Field: "phone", Reason: "required"}
	}

	return s.leads.Create(ctx, model.Lead{
		CarID:   form.CarID,
		Name:    s.sanitize.Sanitize(form.Name),
		Phone:   s.sanitize.Sanitize(form.Phone),
		Message: s.sanitize.Sanitize(form.Message),
	})
}

// List returns all leads newest first, joined with their referenced car.
func (s *LeadService) List(ctx context.Context) ([]model.LeadWithCar, error) {
	return s.leads.ListWithCars(ctx)
}
