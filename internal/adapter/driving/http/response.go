package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/automani/automani/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// successResponse is the body of mutations that return no record.
type successResponse struct {
	Success bool `json:"success"`
}

// CarResponse is the JSON representation of a car listing.
type CarResponse struct {
	ID                int64    `json:"id"`
	Make              string   `json:"make"`
	Model             string   `json:"model"`
	Year              int      `json:"year"`
	Price             int      `json:"price"`
	Fuel              string   `json:"fuel"`
	Transmission      string   `json:"transmission"`
	Kms               int      `json:"kms"`
	Owners            int      `json:"owners"`
	RegCity           string   `json:"reg_city"`
	InsuranceValidity string   `json:"insurance_validity"`
	Description       string   `json:"description"`
	Status            string   `json:"status"`
	Badge             string   `json:"badge"`
	Photos            []string `json:"photos"`
	CreatedAt         string   `json:"created_at"`
}

// PaginationResponse is the page metadata attached to the car list endpoint.
type PaginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// CarListResponse is the JSON body of the filtered car list endpoint.
type CarListResponse struct {
	Cars       []CarResponse      `json:"cars"`
	Pagination PaginationResponse `json:"pagination"`
}

// LeadResponse is a buyer enquiry joined with the referenced car's display
// fields. The car fields are null when the referenced car no longer exists.
type LeadResponse struct {
	ID        int64   `json:"id"`
	CarID     *int64  `json:"car_id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"created_at"`
	CarMake   *string `json:"make"`
	CarModel  *string `json:"model"`
	CarYear   *int    `json:"year"`
}

// SubmitLeadRequest is the JSON body of the public enquiry endpoint.
type SubmitLeadRequest struct {
	CarID   *int64 `json:"car_id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// LoginRequest is the JSON body of the admin login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the JSON body returned on successful login.
type LoginResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
}

// CheckResponse is the JSON body of the session check endpoint.
type CheckResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toCarResponse converts a domain Car to its JSON response representation.
func toCarResponse(car model.Car) CarResponse {
	photos := car.Photos
	if photos == nil {
		photos = []string{}
	}

	return CarResponse{
		ID:                car.ID,
		Make:              car.Make,
		Model:             car.Model,
		Year:              car.Year,
		Price:             car.Price,
		Fuel:              car.Fuel,
		Transmission:      car.Transmission,
		Kms:               car.Kms,
		Owners:            car.Owners,
		RegCity:           car.RegCity,
		InsuranceValidity: car.InsuranceValidity,
		Description:       car.Description,
		Status:            string(car.Status),
		Badge:             car.Badge,
		Photos:            photos,
		CreatedAt:         car.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// toCarResponses converts a slice of cars, always returning a non-nil slice.
func toCarResponses(cars []model.Car) []CarResponse {
	resp := make([]CarResponse, 0, len(cars))
	for _, car := range cars {
		resp = append(resp, toCarResponse(car))
	}
	return resp
}

// toLeadResponse converts a joined lead to its JSON response representation.
func toLeadResponse(lead model.LeadWithCar) LeadResponse {
	return LeadResponse{
		ID:        lead.ID,
		CarID:     lead.CarID,
		Name:      lead.Name,
		Phone:     lead.Phone,
		Message:   lead.Message,
		CreatedAt: lead.CreatedAt.UTC().Format(time.RFC3339),
		CarMake:   lead.CarMake,
		CarModel:  lead.CarModel,
		CarYear:   lead.CarYear,
	}
}
