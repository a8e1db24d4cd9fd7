package model

import "time"

// CarStatus represents the sale state of a listed car.
type CarStatus string

const (
	CarStatusAvailable CarStatus = "available"
	CarStatusSold      CarStatus = "sold"
)

// Valid reports whether the status is one of the known sale states.
func (s CarStatus) Valid() bool {
	return s == CarStatusAvailable || s == CarStatusSold
}

// Car represents a single dealership listing. Photos holds public references
// to uploaded image files; insertion order is display order.
type Car struct {
	ID                int64
	Make              string
	Model             string
	Year              int
	Price             int // smallest currency unit
	Fuel              string
	Transmission      string
	Kms               int
	Owners            int
	RegCity           string
	InsuranceValidity string
	Description       string
	Status            CarStatus
	Badge             string
	Photos            []string
	CreatedAt         time.Time
}
