package ports

import (
	"context"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

// CreateFeedInput registers an RSS source for content automation.
type CreateFeedInput struct {
	FeedURL  string
	FeedName string
}

// UpdateFeedInput is a partial feed update; nil leaves fields unchanged.
type UpdateFeedInput struct {
	FeedURL  *string
	FeedName *string
	IsActive *bool
}

// FeedRepository persists RSS feed registrations.
type FeedRepository interface {
	Create(ctx context.Context, feed *domain.Feed) (*domain.Feed, error)
	FindByID(ctx context.Context, id int64) (*domain.Feed, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Feed, error)
	Update(ctx context.Context, id int64, upd UpdateFeedInput) error
	Delete(ctx context.Context, id int64) error
}

// FeedService is the user-facing feed surface with ownership enforcement on
// Update and Delete.
type FeedService interface {
	List(ctx context.Context, userID int64) ([]domain.Feed, error)
	Create(ctx context.Context, userID int64, in CreateFeedInput) (*domain.Feed, error)
	Update(ctx context.Context, userID, id int64, in UpdateFeedInput) error
	Delete(ctx context.Context, userID, id int64) error
}
