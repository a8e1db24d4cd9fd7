package application

import (
	"fmt"
	"strconv"

	"github.com/automani/automani/internal/domain/model"
)

// ValidationError reports a rejected input field. Handlers map it to a 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CarForm carries the raw form-encoded listing fields as submitted, prior to
// validation. Every field is a string; the conversion to a typed record
// happens in one place so coercion rules are not scattered across handlers.
type CarForm struct {
	Make              string
	Model             string
	Year              string
	Price             string
	Fuel              string
	Transmission      string
	Kms               string
	Owners            string
	RegCity           string
	InsuranceValidity string
	Description       string
	Status            string
	Badge             string
}

// parseCarForm converts the raw form into a typed car, applying defaults for
// optional fields and rejecting missing or unparseable required ones.
// Required: make, model, year, price. Optional numerics (kms, owners) are
// parse-or-default rather than rejected.
func parseCarForm(form CarForm) (model.Car, error) {
	if form.Make == "" {
		return model.Car{}, &ValidationError{Field: "make", Reason: "required"}
	}
	if form.Model == "" {
		return model.Car{}, &ValidationError{Field: "model", Reason: "required"}
	}

	year, err := strconv.Atoi(form.Year)
	if err != nil {
		return model.Car{}, &ValidationError{Field: "year", Reason: "must be a number"}
	}
	price, err := strconv.Atoi(form.Price)
	if err != nil {
		return model.Car{}, &ValidationError{Field: "price", Reason: "must be a number"}
	}

	kms, err := strconv.Atoi(form.Kms)
	if err != nil || kms < 0 {
		kms = 0
	}
	owners, err := strconv.Atoi(form.Owners)
	if err != nil || owners < 1 {
		owners = 1
	}

	fuel := form.Fuel
	if fuel == "" {
		fuel = "Petrol"
	}
	transmission := form.Transmission
	if transmission == "" {
		transmission = "Manual"
	}

	status := model.CarStatus(form.Status)
	if form.Status == "" {
		status = model.CarStatusAvailable
	} else if !status.Valid() {
		return model.Car{}, &ValidationError{Field: "status", Reason: "must be available or sold"}
	}

	return model.Car{
		Make:              form.Make,
		Model:             form.Model,
		Year:              year,
		Price:             price,
		Fuel:              fuel,
		Transmission:      transmission,
		Kms:               kms,
		Owners:            owners,
		RegCity:           form.RegCity,
		InsuranceValidity: form.InsuranceValidity,
		Description:       form.Description,
		Status:            status,
		Badge:             form.Badge,
	}, nil
}
