package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/automani/automani/internal/application"
	"github.com/automani/automani/internal/domain/port/driven"
)

// maxUploadMemory bounds how much of a multipart body is held in memory
// before spilling to temp files.
const maxUploadMemory = 32 << 20

// maxPhotoBytes is the per-file size cap. Oversized files are skipped like
// any other rejected upload.
const maxPhotoBytes = 10 << 20

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	catalog   *application.CatalogService
	inventory *application.InventoryService
	leads     *application.LeadService
	auth      *application.AuthService
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	catalog *application.CatalogService,
	inventory *application.InventoryService,
	leads *application.LeadService,
	auth *application.AuthService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:   catalog,
		inventory: inventory,
		leads:     leads,
		auth:      auth,
		logger:    logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware. uploadsDir is served verbatim under
// /uploads/ for photo delivery.
func NewServeMux(h *Handler, uploadsDir string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/cars", h.ListCars)
	mux.HandleFunc("GET /api/cars/featured", h.FeaturedCars)
	mux.HandleFunc("GET /api/cars/makes", h.ListMakes)
	mux.HandleFunc("GET /api/cars/{id}", h.GetCar)
	mux.HandleFunc("POST /api/cars", h.requireAdmin(h.CreateCar))
	mux.HandleFunc("PUT /api/cars/{id}", h.requireAdmin(h.UpdateCar))
	mux.HandleFunc("DELETE /api/cars/{id}", h.requireAdmin(h.DeleteCar))
	mux.HandleFunc("POST /api/leads", h.SubmitLead)
	mux.HandleFunc("GET /api/leads", h.requireAdmin(h.ListLeads))
	mux.HandleFunc("POST /api/admin/login", h.Login)
	mux.HandleFunc("POST /api/admin/logout", h.Logout)
	mux.HandleFunc("GET /api/admin/check", h.Check)
	mux.HandleFunc("GET /api/health", h.Health)

	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// ListCars returns a filtered, paginated page of the catalog.
func (h *Handler) ListCars(w http.ResponseWriter, r *http.Request) {
	filter := parseCarFilter(r.URL.Query())

	cars, page, err := h.catalog.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list cars", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, CarListResponse{
		Cars: toCarResponses(cars),
		Pagination: PaginationResponse{
			Page:  page.Page,
			Limit: page.Limit,
			Total: page.Total,
			Pages: page.Pages,
		},
	})
}

// FeaturedCars returns the newest available cars for the landing page.
func (h *Handler) FeaturedCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.catalog.Featured(r.Context())
	if err != nil {
		h.logger.Error("failed to list featured cars", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toCarResponses(cars))
}

// ListMakes returns the distinct makes present in the catalog.
func (h *Handler) ListMakes(w http.ResponseWriter, r *http.Request) {
	makes, err := h.catalog.Makes(r.Context())
	if err != nil {
		h.logger.Error("failed to list makes", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if makes == nil {
		makes = []string{}
	}
	writeJSON(w, http.StatusOK, makes)
}

// GetCar returns a single car by id.
func (h *Handler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid car id")
		return
	}

	car, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get car", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if car == nil {
		writeError(w, http.StatusNotFound, "car not found")
		return
	}

	writeJSON(w, http.StatusOK, toCarResponse(*car))
}

// CreateCar adds a listing from a multipart form with up to ten photos.
func (h *Handler) CreateCar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	uploads, closeUploads := photoUploadsFromRequest(r)
	defer closeUploads()

	car, err := h.inventory.Create(r.Context(), carFormFromRequest(r), uploads)
	if err != nil {
		var verr *application.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.logger.Error("failed to create car", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("car created", "id", car.ID, "admin", adminFromContext(r.Context()))
	writeJSON(w, http.StatusCreated, toCarResponse(car))
}

// UpdateCar replaces a listing's fields and reconciles its photo set.
func (h *Handler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid car id")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	uploads, closeUploads := photoUploadsFromRequest(r)
	defer closeUploads()

	car, err := h.inventory.Update(r.Context(), id, carFormFromRequest(r), existingPhotosFromRequest(r), uploads)
	if err != nil {
		var verr *application.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Error())
		case errors.Is(err, driven.ErrNotFound):
			writeError(w, http.StatusNotFound, "car not found")
		default:
			h.logger.Error("failed to update car", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toCarResponse(car))
}

// DeleteCar removes a listing and its stored photos.
func (h *Handler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid car id")
		return
	}

	if err := h.inventory.Delete(r.Context(), id); err != nil {
		if errors.Is(err, driven.ErrNotFound) {
			writeError(w, http.StatusNotFound, "car not found")
			return
		}
		h.logger.Error("failed to delete car", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("car deleted", "id", id, "admin", adminFromContext(r.Context()))
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// SubmitLead records a buyer enquiry.
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	var req SubmitLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.leads.Submit(r.Context(), application.LeadForm{
		CarID:   req.CarID,
		Name:    req.Name,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		var verr *application.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.logger.Error("failed to submit lead", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, successResponse{Success: true})
}

// ListLeads returns all enquiries, newest first, with car display fields.
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leads.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		resp = append(resp, toLeadResponse(lead))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Login verifies credentials and issues a session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	setSessionCookie(w, session.Token)
	writeJSON(w, http.StatusOK, LoginResponse{Success: true, Username: session.Username})
}

// Logout destroys the server-side session and expires the cookie. Always
// succeeds, even without a valid session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			h.logger.Error("logout failed", "error", err)
		}
	}

	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// Check reports whether the request carries a valid admin session.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	username, ok, err := h.auth.Check(r.Context(), sessionToken(r))
	if err != nil {
		h.logger.Error("session lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, CheckResponse{Authenticated: ok, Username: username})
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// carFormFromRequest collects listing fields from a parsed multipart form.
func carFormFromRequest(r *http.Request) application.CarForm {
	return application.CarForm{
		Make:              r.FormValue("make"),
		Model:             r.FormValue("model"),
		Year:              r.FormValue("year"),
		Price:             r.FormValue("price"),
		Fuel:              r.FormValue("fuel"),
		Transmission:      r.FormValue("transmission"),
		Kms:               r.FormValue("kms"),
		Owners:            r.FormValue("owners"),
		RegCity:           r.FormValue("reg_city"),
		InsuranceValidity: r.FormValue("insurance_validity"),
		Description:       r.FormValue("description"),
		Status:            r.FormValue("status"),
		Badge:             r.FormValue("badge"),
	}
}

// photoUploadsFromRequest opens the uploaded photo parts. The returned
// cleanup func closes every opened file and must be called after the
// uploads have been consumed.
func photoUploadsFromRequest(r *http.Request) ([]application.PhotoUpload, func()) {
	if r.MultipartForm == nil {
		return nil, func() {}
	}

	var uploads []application.PhotoUpload
	var opened []multipart.File
	for _, header := range r.MultipartForm.File["photos"] {
		if header.Size > maxPhotoBytes {
			continue
		}
		file, err := header.Open()
		if err != nil {
			continue
		}
		opened = append(opened, file)
		uploads = append(uploads, application.PhotoUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        file,
		})
	}

	return uploads, func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
}

// existingPhotosFromRequest decodes the JSON array of photo refs the client
// wants to keep on an update. Absent or malformed values mean keep nothing.
func existingPhotosFromRequest(r *http.Request) []string {
	raw := r.FormValue("existingPhotos")
	if raw == "" {
		return nil
	}

	var refs []string
	if err := json.Unmarshal([]byte(raw), &refs); err != nil {
		return nil
	}
	return refs
}
