package application

import (
	"context"

	"github.com/automani/automani/internal/domain/model"
	"github.com/automani/automani/internal/domain/port/driven"
)

// featuredCount is the fixed size of the home-page featured strip.
const featuredCount = 6

// CatalogService serves the public, read-only side of the inventory. It
// never caches: every call reads the store.
type CatalogService struct {
	cars driven.CarStore
}

// NewCatalogService creates a CatalogService backed by the given store.
func NewCatalogService(cars driven.CarStore) *CatalogService {
	return &CatalogService{cars: cars}
}

// List returns the page of cars matching the filter plus page metadata.
// The filter is normalized first, so out-of-range page requests clamp
// instead of failing.
func (s *CatalogService) List(ctx context.Context, filter model.CarFilter) ([]model.Car, model.Pagination, error) {
	filter.Normalize()

	cars, total, err := s.cars.List(ctx, filter)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return cars, model.NewPagination(filter.Page, filter.Limit, total), nil
}

// Featured returns the newest available cars for the home page.
func (s *CatalogService) Featured(ctx context.Context) ([]model.Car, error) {
	return s.cars.Featured(ctx, featuredCount)
}

// Makes returns the distinct make values for the filter dropdown.
func (s *CatalogService) Makes(ctx context.Context) ([]string, error) {
	return s.cars.Makes(ctx)
}

// Get returns the car or nil, nil when it does not exist.
func (s *CatalogService) Get(ctx context.Context, id int64) (*model.Car, error) {
	return s.cars.GetByID(ctx, id)
}
