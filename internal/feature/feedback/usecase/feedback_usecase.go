package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"wastemap_backend/internal/feature/feedback/domain/entity"
	"wastemap_backend/internal/platform/apperr"
)

// FeedbackRepository abstracts feedback persistence.
type FeedbackRepository interface {
	Create(ctx context.Context, f *entity.Feedback) error
	// List returns every submission, newest first.
	List(ctx context.Context) ([]entity.Feedback, error)
	// UpdateStatus sets status and, when response is non-nil, the admin response.
	// Returns ErrFeedbackNotFound if id does not exist.
	UpdateStatus(ctx context.Context, id int64, status entity.Status, response *string) (*entity.Feedback, error)
}

// CreateFeedbackInput holds a visitor submission.
type CreateFeedbackInput struct {
	Name         *string
	Email        *string
	FeedbackType entity.Type
	Location     *string
	Message      string
	IsAnonymous  bool
}

// FeedbackUsecase provides business logic for feedback.
type FeedbackUsecase struct {
	repo     FeedbackRepository
	validate *validator.Validate
}

// NewFeedbackUsecase creates a new FeedbackUsecase with the given repository.
func NewFeedbackUsecase(r FeedbackRepository) *FeedbackUsecase {
	return &FeedbackUsecase{repo: r, validate: validator.New()}
}

// Create stores a submission with status pending. Anonymous submissions drop name and email.
func (u *FeedbackUsecase) Create(ctx context.Context, in CreateFeedbackInput) (*entity.Feedback, error) {
	const op = "feedback.Create"

	in.Message = strings.TrimSpace(in.Message)
	switch {
	case !in.FeedbackType.Valid():
		return nil, apperr.E(apperr.Validation, op, errors.New("feedbackType must be complaint, suggestion, compliment or question"))
	case in.Message == "":
		return nil, apperr.E(apperr.Validation, op, errors.New("message is required"))
	}

	if in.IsAnonymous {
		in.Name, in.Email = nil, nil
	}
	in.Name = nonEmpty(in.Name)
	in.Email = nonEmpty(in.Email)
	if in.Email != nil {
		if err := u.validate.Var(*in.Email, "email"); err != nil {
			return nil, apperr.E(apperr.Validation, op, errors.New("invalid email address"))
		}
	}

	f := &entity.Feedback{
		Name:         in.Name,
		Email:        in.Email,
		FeedbackType: in.FeedbackType,
		Location:     nonEmpty(in.Location),
		Message:      in.Message,
		IsAnonymous:  in.IsAnonymous,
		Status:       entity.StatusPending,
	}
	if err := u.repo.Create(ctx, f); err != nil {
		return nil, apperr.E(apperr.Storage, op, err)
	}
	return f, nil
}

// List returns every submission, newest first.
func (u *FeedbackUsecase) List(ctx context.Context) ([]entity.Feedback, error) {
	out, err := u.repo.List(ctx)
	if err != nil {
		return nil, apperr.E(apperr.Storage, "feedback.List", err)
	}
	return out, nil
}

// UpdateStatus moves a submission to status. A blank response leaves the stored one untouched.
func (u *FeedbackUsecase) UpdateStatus(ctx context.Context, id int64, status entity.Status, response string) (*entity.Feedback, error) {
	const op = "feedback.UpdateStatus"

	if !status.Valid() {
		return nil, apperr.E(apperr.Validation, op, errors.New("invalid status"))
	}

	var resp *string
	if r := strings.TrimSpace(response); r != "" {
		resp = &r
	}

	f, err := u.repo.UpdateStatus(ctx, id, status, resp)
	if err != nil {
		if errors.Is(err, ErrFeedbackNotFound) {
			return nil, apperr.E(apperr.NotFound, op, err)
		}
		return nil, apperr.E(apperr.Storage, op, err)
	}
	return f, nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
