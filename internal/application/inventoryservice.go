package application

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/automani/automani/internal/domain/model"
	"github.com/automani/automani/internal/domain/port/driven"
)

// MaxPhotoUploads caps how many photo files a single create or update
// request may attach.
const MaxPhotoUploads = 10

// allowedPhotoExts and allowedPhotoMimes form the upload allow-list. A file
// must pass both its extension and its declared content type to be stored.
var allowedPhotoExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

var allowedPhotoMimes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// PhotoUpload is a single photo file attached to a create or update request.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// InventoryService owns all mutations of the car inventory: create, update
// with photo-set reconciliation, and delete with file cleanup.
type InventoryService struct {
	cars     driven.CarStore
	photos   driven.PhotoStore
	sanitize *bluemonday.Policy
	logger   *slog.Logger
}

// NewInventoryService creates an InventoryService with the required dependencies.
func NewInventoryService(cars driven.CarStore, photos driven.PhotoStore, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		cars:     cars,
		photos:   photos,
		sanitize: bluemonday.StrictPolicy(),
		logger:   logger,
	}
}

// Create validates the form, stores the acceptable photo uploads, and
// inserts the listing. Returns the created record with id and timestamp.
func (s *InventoryService) Create(ctx context.Context, form CarForm, uploads []PhotoUpload) (model.Car, error) {
	car, err := parseCarForm(form)
	if err != nil {
		return model.Car{}, err
	}
	s.sanitizeCar(&car)

	car.Photos = s.storePhotos(ctx, uploads)

	return s.cars.Create(ctx, car)
}

// Update replaces all mutable fields of the car. The resulting photo set is
// the car's existing references filtered down to keepPhotos (in their
// original display order) plus the acceptable new uploads appended at the
// end. Files behind dropped references are deleted eagerly, best effort.
// Returns driven.ErrNotFound when the car does not exist.
func (s *InventoryService) Update(ctx context.Context, id int64, form CarForm, keepPhotos []string, uploads []PhotoUpload) (model.Car, error) {
	existing, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return model.Car{}, err
	}
	if existing == nil {
		return model.Car{}, driven.ErrNotFound
	}

	car, err := parseCarForm(form)
	if err != nil {
		return model.Car{}, err
	}
	s.sanitizeCar(&car)
	car.ID = existing.ID
	car.CreatedAt = existing.CreatedAt

	keep := make(map[string]bool, len(keepPhotos))
	for _, ref := range keepPhotos {
		keep[ref] = true
	}

	// Only references the car actually owns survive; anything else in
	// keepPhotos is ignored rather than adopted.
	retained := []string{}
	for _, ref := range existing.Photos {
		if keep[ref] {
			retained = append(retained, ref)
		} else {
			s.removePhoto(ctx, ref)
		}
	}

	car.Photos = append(retained, s.storePhotos(ctx, uploads)...)

	if err := s.cars.Update(ctx, car); err != nil {
		return model.Car{}, err
	}
	return car, nil
}

// Delete removes the backing photo files (best effort) and then the record.
// Returns driven.ErrNotFound when the car does not exist.
func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	existing, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return driven.ErrNotFound
	}

	for _, ref := range existing.Photos {
		s.removePhoto(ctx, ref)
	}

	return s.cars.Delete(ctx, id)
}

// storePhotos saves every acceptable upload and returns the stored
// references in upload order. Files failing the allow-list, and files whose
// write fails, are skipped without failing the request. At most
// MaxPhotoUploads files are considered.
func (s *InventoryService) storePhotos(ctx context.Context, uploads []PhotoUpload) []string {
	if len(uploads) > MaxPhotoUploads {
		uploads = uploads[:MaxPhotoUploads]
	}

	refs := []string{}
	for _, upload := range uploads {
		ext := strings.ToLower(path.Ext(upload.Filename))
		if !allowedPhotoExts[ext] || !allowedPhotoMimes[strings.ToLower(upload.ContentType)] {
			s.logger.Warn("photo upload rejected",
				"filename", upload.Filename,
				"content_type", upload.ContentType,
			)
			continue
		}

		ref, err := s.photos.Save(ctx, ext, upload.Data)
		if err != nil {
			s.logger.Error("photo upload failed", "filename", upload.Filename, "error", err)
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

// removePhoto deletes a photo file, logging failures instead of surfacing
// them. Cleanup never fails a mutation.
func (s *InventoryService) removePhoto(ctx context.Context, ref string) {
	if err := s.photos.Remove(ctx, ref); err != nil {
		s.logger.Warn("photo cleanup failed", "ref", ref, "error", err)
	}
}

// sanitizeCar strips markup from the free-text fields that end up rendered
// on the public site.
func (s *InventoryService) sanitizeCar(car *model.Car) {
	car.Make = s.sanitize.Sanitize(car.Make)
	car.Model = s.sanitize.Sanitize(car.Model)
	car.RegCity = s.sanitize.Sanitize(car.RegCity)
	car.InsuranceValidity = s.sanitize.Sanitize(car.InsuranceValidity)
	car.Description = s.sanitize.Sanitize(car.Description)
	car.Badge = s.sanitize.Sanitize(car.Badge)
}
