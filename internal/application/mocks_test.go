package application

import (
	"context"
	"fmt"
	"io"

	"github.com/automani/automani/internal/domain/model"
	"github.com/automani/automani/internal/domain/port/driven"
)

// --- Shared mock implementations for service tests ---

type mockCarStore struct {
	cars       map[int64]model.Car
	nextID     int64
	lastFilter model.CarFilter
	listCars   []model.Car
	listTotal  int
	err        error
}

var _ driven.CarStore = (*mockCarStore)(nil)

func newMockCarStore() *mockCarStore {
	return &mockCarStore{cars: map[int64]model.Car{}, nextID: 1}
}

func (m *mockCarStore) Create(_ context.Context, car model.Car) (model.Car, error) {
	if m.err != nil {
		return model.Car{}, m.err
	}
	car.ID = m.nextID
	m.nextID++
	if car.Photos == nil {
		car.Photos = []string{}
	}
	m.cars[car.ID] = car
	return car, nil
}

func (m *mockCarStore) Update(_ context.Context, car model.Car) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.cars[car.ID]; !ok {
		return driven.ErrNotFound
	}
	m.cars[car.ID] = car
	return nil
}

func (m *mockCarStore) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.cars[id]; !ok {
		return driven.ErrNotFound
	}
	delete(m.cars, id)
	return nil
}

func (m *mockCarStore) GetByID(_ context.Context, id int64) (*model.Car, error) {
	if m.err != nil {
		return nil, m.err
	}
	car, ok := m.cars[id]
	if !ok {
		return nil, nil
	}
	return &car, nil
}

func (m *mockCarStore) List(_ context.Context, filter model.CarFilter) ([]model.Car, int, error) {
	m.lastFilter = filter
	return m.listCars, m.listTotal, m.err
}

func (m *mockCarStore) Featured(_ context.Context, _ int) ([]model.Car, error) {
	return m.listCars, m.err
}

func (m *mockCarStore) Makes(_ context.Context) ([]string, error) {
	return []string{"Honda", "Hyundai"}, m.err
}

type mockPhotoStore struct {
	saved   []string
	removed []string
	nextID  int
	saveErr error
}

var _ driven.PhotoStore = (*mockPhotoStore)(nil)

func (m *mockPhotoStore) Save(_ context.Context, ext string, data io.Reader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.nextID++
	ref := fmt.Sprintf("/uploads/photo-%d%s", m.nextID, ext)
	m.saved = append(m.saved, ref)
	return ref, nil
}

func (m *mockPhotoStore) Remove(_ context.Context, ref string) error {
	m.removed = append(m.removed, ref)
	return nil
}

type mockLeadStore struct {
	created []model.Lead
	leads   []model.LeadWithCar
	err     error
}

var _ driven.LeadStore = (*mockLeadStore)(nil)

func (m *mockLeadStore) Create(_ context.Context, lead model.Lead) (model.Lead, error) {
	if m.err != nil {
		return model.Lead{}, m.err
	}
	lead.ID = int64(len(m.created) + 1)
	m.created = append(m.created, lead)
	return lead, nil
}

func (m *mockLeadStore) ListWithCars(_ context.Context) ([]model.LeadWithCar, error) {
	return m.leads, m.err
}

type mockAdminStore struct {
	admins map[string]model.AdminUser
	err    error
}

var _ driven.AdminStore = (*mockAdminStore)(nil)

func newMockAdminStore() *mockAdminStore {
	return &mockAdminStore{admins: map[string]model.AdminUser{}}
}

func (m *mockAdminStore) GetByUsername(_ context.Context, username string) (*model.AdminUser, error) {
	if m.err != nil {
		return nil, m.err
	}
	admin, ok := m.admins[username]
	if !ok {
		return nil, nil
	}
	return &admin, nil
}

func (m *mockAdminStore) Count(_ context.Context) (int, error) {
	return len(m.admins), m.err
}

func (m *mockAdminStore) Create(_ context.Context, username, passwordHash string) error {
	if m.err != nil {
		return m.err
	}
	m.admins[username] = model.AdminUser{ID: int64(len(m.admins) + 1), Username: username, PasswordHash: passwordHash}
	return nil
}

type mockSessionStore struct {
	sessions map[string]model.Session
	err      error
}

var _ driven.SessionStore = (*mockSessionStore)(nil)

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: map[string]model.Session{}}
}

func (m *mockSessionStore) Create(_ context.Context, session model.Session) error {
	if m.err != nil {
		return m.err
	}
	m.sessions[session.Token] = session
	return nil
}

func (m *mockSessionStore) Get(_ context.Context, token string) (*model.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	session, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (m *mockSessionStore) Delete(_ context.Context, token string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.sessions, token)
	return nil
}
