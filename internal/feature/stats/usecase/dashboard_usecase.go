package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	eventsentity "wastemap_backend/internal/feature/events/domain/entity"
	feedbackentity "wastemap_backend/internal/feature/feedback/domain/entity"
	"wastemap_backend/internal/platform/apperr"
)

// DashboardListSize is how many recent feedback items and upcoming events the dashboard shows.
const DashboardListSize = 5

// LocationCounter counts active disposal locations.
type LocationCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

// EventReader reads active events for the dashboard.
type EventReader interface {
	CountActive(ctx context.Context) (int64, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]eventsentity.Event, error)
}

// FeedbackReader reads feedback for the dashboard.
type FeedbackReader interface {
	Count(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]feedbackentity.Feedback, error)
}

// UserCounter counts registered accounts.
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Dashboard is the admin overview.
type Dashboard struct {
	TotalLocations int64                     `json:"totalLocations"`
	TotalEvents    int64                     `json:"totalEvents"`
	TotalFeedback  int64                     `json:"totalFeedback"`
	TotalUsers     int64                     `json:"totalUsers"`
	RecentFeedback []feedbackentity.Feedback `json:"recentFeedback"`
	UpcomingEvents []eventsentity.Event      `json:"upcomingEvents"`
}

// DashboardUsecase aggregates counts across features.
type DashboardUsecase struct {
	locations LocationCounter
	events    EventReader
	feedback  FeedbackReader
	users     UserCounter
	now       func() time.Time
}

// NewDashboardUsecase creates a new DashboardUsecase.
func NewDashboardUsecase(l LocationCounter, e EventReader, f FeedbackReader, u UserCounter) *DashboardUsecase {
	return &DashboardUsecase{locations: l, events: e, feedback: f, users: u, now: time.Now}
}

// Get runs every query concurrently and fails on the first error.
func (u *DashboardUsecase) Get(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.TotalLocations, err = u.locations.CountActive(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalEvents, err = u.events.CountActive(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalFeedback, err = u.feedback.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalUsers, err = u.users.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.RecentFeedback, err = u.feedback.ListRecent(ctx, DashboardListSize)
		return err
	})
	g.Go(func() (err error) {
		d.UpcomingEvents, err = u.events.ListUpcoming(ctx, u.now(), DashboardListSize)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, apperr.E(apperr.Storage, "dashboard.Get", err)
	}
	if d.RecentFeedback == nil {
		d.RecentFeedback = []feedbackentity.Feedback{}
	}
	if d.UpcomingEvents == nil {
		d.UpcomingEvents = []eventsentity.Event{}
	}
	return &d, nil
}
