package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/automani/automani/internal/domain/model"
	"github.com/automani/automani/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CarStore = (*CarRepo)(nil)

// CarRepo is the SQLite implementation of the CarStore port interface.
// Photo references are serialized as a JSON array in the photos TEXT column.
type CarRepo struct {
	db *DB
}

// NewCarRepo creates a new CarRepo backed by the given DB.
func NewCarRepo(db *DB) *CarRepo {
	return &CarRepo{db: db}
}

const carColumns = `id, make, model, year, price, fuel, transmission, kms, owners,
	reg_city, insurance_validity, description, status, badge, photos, created_at`

// carSortClauses whitelists the ORDER BY clause per sort key. Anything not in
// this map falls back to newest-first.
var carSortClauses = map[string]string{
	model.SortPriceAsc:  "price ASC",
	model.SortPriceDesc: "price DESC",
	model.SortYearDesc:  "year DESC",
	model.SortYearAsc:   "year ASC",
	model.SortNewest:    "created_at DESC, id DESC",
	model.SortKmsAsc:    "kms ASC",
}

// Create inserts a new car and returns the stored row, including the
// database-assigned id and creation timestamp.
func (r *CarRepo) Create(ctx context.Context, car model.Car) (model.Car, error) {
	const query = `
		INSERT INTO cars (
			make, model, year, price, fuel, transmission, kms, owners,
			reg_city, insurance_validity, description, status, badge, photos
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	photosJSON, err := marshalPhotos(car.Photos)
	if err != nil {
		return model.Car{}, err
	}

	res, err := r.db.Writer.ExecContext(ctx, query,
		car.Make, car.Model, car.Year, car.Price, car.Fuel, car.Transmission,
		car.Kms, car.Owners, car.RegCity, car.InsuranceValidity,
		car.Description, string(car.Status), car.Badge, photosJSON,
	)
	if err != nil {
		return model.Car{}, fmt.Errorf("insert car: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Car{}, fmt.Errorf("insert car id: %w", err)
	}

	// Read back through the writer so the row is visible regardless of
	// reader pool state.
	created, err := scanCar(r.db.Writer.QueryRowContext(ctx,
		`SELECT `+carColumns+` FROM cars WHERE id = ?`, id))
	if err != nil {
		return model.Car{}, fmt.Errorf("read back car %d: %w", id, err)
	}
	return created, nil
}

// Update replaces all mutable fields of the car identified by car.ID.
func (r *CarRepo) Update(ctx context.Context, car model.Car) error {
	const query = `
		UPDATE cars SET
			make = ?, model = ?, year = ?, price = ?, fuel = ?, transmission = ?,
			kms = ?, owners = ?, reg_city = ?, insurance_validity = ?,
			description = ?, status = ?, badge = ?, photos = ?
		WHERE id = ?
	`

	photosJSON, err := marshalPhotos(car.Photos)
	if err != nil {
		return err
	}

	res, err := r.db.Writer.ExecContext(ctx, query,
		car.Make, car.Model, car.Year, car.Price, car.Fuel, car.Transmission,
		car.Kms, car.Owners, car.RegCity, car.InsuranceValidity,
		car.Description, string(car.Status), car.Badge, photosJSON,
		car.ID,
	)
	if err != nil {
		return fmt.Errorf("update car %d: %w", car.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update car %d: %w", car.ID, err)
	}
	if affected == 0 {
		return driven.ErrNotFound
	}
	return nil
}

// Delete removes the car row.
func (r *CarRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Writer.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete car %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete car %d: %w", id, err)
	}
	if affected == 0 {
		return driven.ErrNotFound
	}
	return nil
}

// GetByID returns the car or nil, nil when it does not exist.
func (r *CarRepo) GetByID(ctx context.Context, id int64) (*model.Car, error) {
	car, err := scanCar(r.db.Reader.QueryRowContext(ctx,
		`SELECT `+carColumns+` FROM cars WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get car %d: %w", id, err)
	}
	return &car, nil
}

// List returns the page of cars matching the filter plus the total match
// count. The filter is expected to be normalized by the caller.
func (r *CarRepo) List(ctx context.Context, filter model.CarFilter) ([]model.Car, int, error) {
	where, args := buildCarWhere(filter)

	var total int
	err := r.db.Reader.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cars`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count cars: %w", err)
	}

	order, ok := carSortClauses[filter.Sort]
	if !ok {
		order = carSortClauses[model.SortNewest]
	}

	query := `SELECT ` + carColumns + ` FROM cars` + where +
		` ORDER BY ` + order + ` LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset())

	cars, err := r.queryCars(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return cars, total, nil
}

// Featured returns the newest available cars, at most limit of them.
func (r *CarRepo) Featured(ctx context.Context, limit int) ([]model.Car, error) {
	const query = `
		SELECT ` + carColumns + `
		FROM cars
		WHERE status = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	return r.queryCars(ctx, query, string(model.CarStatusAvailable), limit)
}

// Makes returns the distinct make values in alphabetical order.
func (r *CarRepo) Makes(ctx context.Context) ([]string, error) {
	rows, err := r.db.Reader.QueryContext(ctx,
		`SELECT DISTINCT make FROM cars ORDER BY make`)
	if err != nil {
		return nil, fmt.Errorf("list makes: %w", err)
	}
	defer rows.Close()

	makes := []string{}
	for rows.Next() {
		var make string
		if err := rows.Scan(&make); err != nil {
			return nil, fmt.Errorf("scan make: %w", err)
		}
		makes = append(makes, make)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate makes: %w", err)
	}
	return makes, nil
}

// buildCarWhere translates the filter into a WHERE clause with positional
// args. Absent predicates are simply omitted; all present ones AND together.
// LIKE is case-insensitive for ASCII in SQLite, which covers the
// case-insensitive substring semantics for model and search.
func buildCarWhere(f model.CarFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Make != "" {
		conds = append(conds, "make = ?")
		args = append(args, f.Make)
	}
	if f.Model != "" {
		conds = append(conds, "model LIKE ?")
		args = append(args, "%"+f.Model+"%")
	}
	if f.Year != nil {
		conds = append(conds, "year = ?")
		args = append(args, *f.Year)
	}
	if f.Fuel != "" {
		conds = append(conds, "fuel = ?")
		args = append(args, f.Fuel)
	}
	if f.Transmission != "" {
		conds = append(conds, "transmission = ?")
		args = append(args, f.Transmission)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.MinKms != nil {
		conds = append(conds, "kms >= ?")
		args = append(args, *f.MinKms)
	}
	if f.MaxKms != nil {
		conds = append(conds, "kms <= ?")
		args = append(args, *f.MaxKms)
	}
	if f.Search != "" {
		conds = append(conds, "(make LIKE ? OR model LIKE ? OR description LIKE ?)")
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// queryCars executes a multi-row car query and scans the results.
func (r *CarRepo) queryCars(ctx context.Context, query string, args ...any) ([]model.Car, error) {
	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cars: %w", err)
	}
	defer rows.Close()

	cars := []model.Car{}
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan car: %w", err)
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cars: %w", err)
	}
	return cars, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCar scans a single car row in carColumns order.
func scanCar(row rowScanner) (model.Car, error) {
	var car model.Car
	var status, photosJSON, createdAt string

	err := row.Scan(
		&car.ID, &car.Make, &car.Model, &car.Year, &car.Price, &car.Fuel,
		&car.Transmission, &car.Kms, &car.Owners, &car.RegCity,
		&car.InsuranceValidity, &car.Description, &status, &car.Badge,
		&photosJSON, &createdAt,
	)
	if err != nil {
		return model.Car{}, err
	}

	car.Status = model.CarStatus(status)

	if err := json.Unmarshal([]byte(photosJSON), &car.Photos); err != nil {
		return model.Car{}, fmt.Errorf("unmarshal photos: %w", err)
	}
	if car.Photos == nil {
		car.Photos = []string{}
	}

	car.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Car{}, fmt.Errorf("parse created_at: %w", err)
	}

	return car, nil
}

// marshalPhotos serializes the photo reference list, treating nil as empty.
func marshalPhotos(photos []string) (string, error) {
	if photos == nil {
		photos = []string{}
	}
	data, err := json.Marshal(photos)
	if err != nil {
		return "", fmt.Errorf("marshal photos: %w", err)
	}
	return string(data), nil
}
