package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"wastemap_backend/internal/feature/events/domain/entity"
	"wastemap_backend/internal/platform/apperr"
)

// EventRepository abstracts event persistence.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type EventRepository interface {
	// ListActive returns active events ordered by event date, earliest first.
	ListActive(ctx context.Context) ([]entity.Event, error)
	Create(ctx context.Context, e *entity.Event) error
	// Update applies the non-nil fields of patch. Returns ErrEventNotFound if id does not exist.
	Update(ctx context.Context, id int64, patch EventPatch) (*entity.Event, error)
	// SoftDelete marks the event inactive. Returns ErrEventNotFound if id does not exist.
	SoftDelete(ctx context.Context, id int64) error
	// IncrementParticipants adds one participant in a single conditional update.
	// It returns ErrEventNotFound for a missing or inactive event and ErrEventFull when no slot is left.
	IncrementParticipants(ctx context.Context, id int64) (*entity.Event, error)
}

// CreateEventInput holds the fields of a new event.
type CreateEventInput struct {
	Title           string
	Description     *string
	EventDate       time.Time
	Location        *string
	EventType       entity.EventType
	MaxParticipants *int
	ImageURL        *string
}

// EventPatch is a partial update. Nil fields are left untouched.
type EventPatch struct {
	Title           *string
	Description     *string
	EventDate       *time.Time
	Location        *string
	EventType       *entity.EventType
	MaxParticipants *int
	ImageURL        *string
	IsActive        *bool
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.EventDate == nil && p.Location == nil &&
		p.EventType == nil && p.MaxParticipants == nil && p.ImageURL == nil && p.IsActive == nil
}

// EventUsecase provides business logic for events.
type EventUsecase struct {
	repo EventRepository
}

// NewEventUsecase creates a new EventUsecase with the given repository.
func NewEventUsecase(r EventRepository) *EventUsecase {
	return &EventUsecase{repo: r}
}

// List returns active events, earliest first.
func (u *EventUsecase) List(ctx context.Context) ([]entity.Event, error) {
	events, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, apperr.E(apperr.Storage, "events.List", err)
	}
	return events, nil
}

// Create stores a new active event. A missing capacity defaults to entity.DefaultMaxParticipants.
func (u *EventUsecase) Create(ctx context.Context, in CreateEventInput) (*entity.Event, error) {
	const op = "events.Create"

	in.Title = strings.TrimSpace(in.Title)
	switch {
	case in.Title == "":
		return nil, apperr.E(apperr.Validation, op, errors.New("title is required"))
	case in.EventDate.IsZero():
		return nil, apperr.E(apperr.Validation, op, errors.New("eventDate is required"))
	case !in.EventType.Valid():
		return nil, apperr.E(apperr.Validation, op, errors.New("eventType must be cleanup, workshop or competition"))
	case in.MaxParticipants != nil && *in.MaxParticipants < 0:
		return nil, apperr.E(apperr.Validation, op, errors.New("maxParticipants must not be negative"))
	}

	max := entity.DefaultMaxParticipants
	if in.MaxParticipants != nil {
		max = *in.MaxParticipants
	}

	e := &entity.Event{
		Title:           in.Title,
		Description:     in.Description,
		EventDate:       in.EventDate,
		Location:        in.Location,
		EventType:       in.EventType,
		MaxParticipants: &max,
		ImageURL:        in.ImageURL,
		IsActive:        true,
	}
	if err := u.repo.Create(ctx, e); err != nil {
		return nil, apperr.E(apperr.Storage, op, err)
	}
	return e, nil
}

// Update applies a partial update.
func (u *EventUsecase) Update(ctx context.Context, id int64, patch EventPatch) (*entity.Event, error) {
	const op = "events.Update"

	switch {
	case patch.Empty():
		return nil, apperr.E(apperr.Validation, op, errors.New("no fields to update"))
	case patch.Title != nil && strings.TrimSpace(*patch.Title) == "":
		return nil, apperr.E(apperr.Validation, op, errors.New("title must not be empty"))
	case patch.EventType != nil && !patch.EventType.Valid():
		return nil, apperr.E(apperr.Validation, op, errors.New("eventType must be cleanup, workshop or competition"))
	case patch.MaxParticipants != nil && *patch.MaxParticipants < 0:
		return nil, apperr.E(apperr.Validation, op, errors.New("maxParticipants must not be negative"))
	case patch.EventDate != nil && patch.EventDate.IsZero():
		return nil, apperr.E(apperr.Validation, op, errors.New("eventDate must not be empty"))
	}

	e, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, classify(op, err)
	}
	return e, nil
}

// Delete soft-deletes an event.
func (u *EventUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.repo.SoftDelete(ctx, id); err != nil {
		return classify("events.Delete", err)
	}
	return nil
}

// Join adds the caller to an event if a slot is left.
// The check and the increment happen in one storage statement, so concurrent joins cannot overshoot.
func (u *EventUsecase) Join(ctx context.Context, id int64) (*entity.Event, error) {
	e, err := u.repo.IncrementParticipants(ctx, id)
	if err != nil {
		return nil, classify("events.Join", err)
	}
	return e, nil
}

func classify(op string, err error) error {
	switch {
	case errors.Is(err, ErrEventNotFound):
		return apperr.E(apperr.NotFound, op, err)
	case errors.Is(err, ErrEventFull):
		return apperr.E(apperr.CapacityExceeded, op, err)
	default:
		return apperr.E(apperr.Storage, op, err)
	}
}
