package usecase

import (
	"context"
	"errors"
	"strings"

	"wastemap_backend/internal/feature/locations/domain/entity"
	"wastemap_backend/internal/platform/apperr"
)

// LocationRepository abstracts the persistence layer for disposal locations.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type LocationRepository interface {
	// ListActive returns active locations. An empty typ returns every type.
	ListActive(ctx context.Context, typ entity.LocationType) ([]entity.DisposalLocation, error)
	Create(ctx context.Context, l *entity.DisposalLocation) error
	// Update applies the non-nil fields of patch. Returns ErrLocationNotFound if id does not exist.
	Update(ctx context.Context, id int64, patch LocationPatch) (*entity.DisposalLocation, error)
	// SoftDelete marks the location inactive. Returns ErrLocationNotFound if id does not exist.
	SoftDelete(ctx context.Context, id int64) error
}

// CreateLocationInput holds the fields of a new location.
type CreateLocationInput struct {
	Name           string
	Description    *string
	Latitude       float64
	Longitude      float64
	Type           entity.LocationType
	Capacity       entity.Capacity
	OperatingHours string
}

// LocationPatch is a partial update. Nil fields are left untouched.
type LocationPatch struct {
	Name           *string
	Description    *string
	Latitude       *float64
	Longitude      *float64
	Type           *entity.LocationType
	Capacity       *entity.Capacity
	OperatingHours *string
	IsActive       *bool
}

// Empty reports whether the patch changes nothing.
func (p LocationPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Latitude == nil && p.Longitude == nil &&
		p.Type == nil && p.Capacity == nil && p.OperatingHours == nil && p.IsActive == nil
}

// LocationUsecase provides business logic for disposal locations.
type LocationUsecase struct {
	repo LocationRepository
}

// NewLocationUsecase creates a new LocationUsecase with the given repository.
func NewLocationUsecase(r LocationRepository) *LocationUsecase {
	return &LocationUsecase{repo: r}
}

// List returns active locations, optionally restricted to one type.
func (u *LocationUsecase) List(ctx context.Context, typ string) ([]entity.DisposalLocation, error) {
	const op = "locations.List"

	t := entity.LocationType(strings.TrimSpace(typ))
	if t != "" && !t.Valid() {
		return nil, apperr.E(apperr.Validation, op, errors.New("unknown location type"))
	}
	out, err := u.repo.ListActive(ctx, t)
	if err != nil {
		return nil, apperr.E(apperr.Storage, op, err)
	}
	return out, nil
}

// Create stores a new active location.
func (u *LocationUsecase) Create(ctx context.Context, in CreateLocationInput) (*entity.DisposalLocation, error) {
	const op = "locations.Create"

	in.Name = strings.TrimSpace(in.Name)
	in.OperatingHours = strings.TrimSpace(in.OperatingHours)
	switch {
	case in.Name == "":
		return nil, apperr.E(apperr.Validation, op, errors.New("name is required"))
	case in.OperatingHours == "":
		return nil, apperr.E(apperr.Validation, op, errors.New("operatingHours is required"))
	case !in.Type.Valid():
		return nil, apperr.E(apperr.Validation, op, errors.New("unknown location type"))
	case !in.Capacity.Valid():
		return nil, apperr.E(apperr.Validation, op, errors.New("capacity must be low, medium or high"))
	}
	if err := validateCoordinates(&in.Latitude, &in.Longitude); err != nil {
		return nil, apperr.E(apperr.Validation, op, err)
	}

	l := &entity.DisposalLocation{
		Name:           in.Name,
		Description:    in.Description,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Type:           in.Type,
		Capacity:       in.Capacity,
		OperatingHours: in.OperatingHours,
		IsActive:       true,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, apperr.E(apperr.Storage, op, err)
	}
	return l, nil
}

// Update applies a partial update.
func (u *LocationUsecase) Update(ctx context.Context, id int64, patch LocationPatch) (*entity.DisposalLocation, error) {
	const op = "locations.Update"

	switch {
	case patch.Empty():
		return nil, apperr.E(apperr.Validation, op, errors.New("no fields to update"))
	case patch.Name != nil && strings.TrimSpace(*patch.Name) == "":
		return nil, apperr.E(apperr.Validation, op, errors.New("name must not be empty"))
	case patch.Type != nil && !patch.Type.Valid():
		return nil, apperr.E(apperr.Validation, op, errors.New("unknown location type"))
	case patch.Capacity != nil && !patch.Capacity.Valid():
		return nil, apperr.E(apperr.Validation, op, errors.New("capacity must be low, medium or high"))
	}
	if err := validateCoordinates(patch.Latitude, patch.Longitude); err != nil {
		return nil, apperr.E(apperr.Validation, op, err)
	}

	l, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, classify(op, err)
	}
	return l, nil
}

// Delete soft-deletes a location.
func (u *LocationUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.repo.SoftDelete(ctx, id); err != nil {
		return classify("locations.Delete", err)
	}
	return nil
}

func validateCoordinates(lat, lng *float64) error {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return errors.New("latitude must be between -90 and 90")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

func classify(op string, err error) error {
	if errors.Is(err, ErrLocationNotFound) {
		return apperr.E(apperr.NotFound, op, err)
	}
	return apperr.E(apperr.Storage, op, err)
}
