package usecase

import (
	"context"
	"errors"
	"strings"

	"wastemap_backend/internal/feature/stats/domain/entity"
	"wastemap_backend/internal/platform/apperr"
)

// StatsRepository abstracts persistence of the single stats row.
type StatsRepository interface {
	// Get returns the stored row or ErrStatsNotFound.
	Get(ctx context.Context) (*entity.Stats, error)
	// Upsert applies patch to the stored row, creating it from defaults when absent.
	Upsert(ctx context.Context, patch StatsPatch) (*entity.Stats, error)
}

// StatsPatch is a partial update. Nil fields are left untouched.
type StatsPatch struct {
	DisposalPoints *int
	MonthlyWaste   *string
	RecyclableRate *string
	ActiveUsers    *string
}

// Empty reports whether the patch changes nothing.
func (p StatsPatch) Empty() bool {
	return p.DisposalPoints == nil && p.MonthlyWaste == nil && p.RecyclableRate == nil && p.ActiveUsers == nil
}

// Apply writes the non-nil fields of p into s.
func (p StatsPatch) Apply(s *entity.Stats) {
	if p.DisposalPoints != nil {
		s.DisposalPoints = *p.DisposalPoints
	}
	if p.MonthlyWaste != nil {
		s.MonthlyWaste = *p.MonthlyWaste
	}
	if p.RecyclableRate != nil {
		s.RecyclableRate = *p.RecyclableRate
	}
	if p.ActiveUsers != nil {
		s.ActiveUsers = *p.ActiveUsers
	}
}

// StatsUsecase provides the landing-page stats.
type StatsUsecase struct {
	repo StatsRepository
}

// NewStatsUsecase creates a new StatsUsecase with the given repository.
func NewStatsUsecase(r StatsRepository) *StatsUsecase {
	return &StatsUsecase{repo: r}
}

// Get returns the stored stats, or the defaults when nothing was saved yet.
func (u *StatsUsecase) Get(ctx context.Context) (*entity.Stats, error) {
	s, err := u.repo.Get(ctx)
	if errors.Is(err, ErrStatsNotFound) {
		d := entity.Defaults()
		return &d, nil
	}
	if err != nil {
		return nil, apperr.E(apperr.Storage, "stats.Get", err)
	}
	return s, nil
}

// Update upserts the single stats row.
func (u *StatsUsecase) Update(ctx context.Context, patch StatsPatch) (*entity.Stats, error) {
	const op = "stats.Update"

	switch {
	case patch.Empty():
		return nil, apperr.E(apperr.Validation, op, errors.New("no fields to update"))
	case patch.DisposalPoints != nil && *patch.DisposalPoints < 0:
		return nil, apperr.E(apperr.Validation, op, errors.New("disposalPoints must not be negative"))
	case blank(patch.MonthlyWaste), blank(patch.RecyclableRate), blank(patch.ActiveUsers):
		return nil, apperr.E(apperr.Validation, op, errors.New("stat values must not be empty"))
	}

	s, err := u.repo.Upsert(ctx, patch)
	if err != nil {
		return nil, apperr.E(apperr.Storage, op, err)
	}
	return s, nil
}

func blank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) == ""
}
