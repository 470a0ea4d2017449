package service

import (
	"context"
	"fmt"
	"time"

	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// FeedService implements the user-facing RSS feed surface.
type FeedService struct {
	feeds    ports.FeedRepository
	activity ports.ActivityRecorder
}

func NewFeedService(feeds ports.FeedRepository, activity ports.ActivityRecorder) *FeedService {
	return &FeedService{feeds: feeds, activity: activity}
}

func (s *FeedService) List(ctx context.Context, userID int64) ([]domain.Feed, error) {
	return s.feeds.ListByUser(ctx, userID)
}

func (s *FeedService) Create(ctx context.Context, userID int64, in ports.CreateFeedInput) (*domain.Feed, error) {
	feed, err := s.feeds.Create(ctx, &domain.Feed{
		UserID:    userID,
		FeedURL:   in.FeedURL,
		FeedName:  in.FeedName,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.ActivityLog{
		UserID:      &userID,
		Action:      domain.ActionFeedCreated,
		Description: fmt.Sprintf("User added feed: %s", in.FeedName),
	})
	return feed, nil
}

func (s *FeedService) Update(ctx context.Context, userID, id int64, in ports.UpdateFeedInput) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.feeds.Update(ctx, id, in)
}

func (s *FeedService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.feeds.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(domain.ActivityLog{
		UserID:      &userID,
		Action:      domain.ActionFeedDeleted,
		Description: fmt.Sprintf("User deleted feed %d", id),
	})
	return nil
}

func (s *FeedService) owned(ctx context.Context, id, userID int64) (*domain.Feed, error) {
	return requireOwned(ctx, s.feeds.FindByID,
		func(f *domain.Feed) int64 { return f.UserID },
		id, userID, domain.ErrFeedNotFound)
}
