package ports

import (
	"context"
	"time"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

// CreatePostInput carries a new post. Status is derived, not supplied:
// scheduled when ScheduledAt is set, draft otherwise.
type CreatePostInput struct {
	Content           string
	SpintaxContent    string
	MediaURLs         string
	ScheduledAt       *time.Time
	GroupsToPost      string
	DelayBetweenPosts int
	ScheduleType      string
	ScheduleConfig    string
}

// UpdatePostInput is a partial post update; nil leaves fields unchanged.
type UpdatePostInput struct {
	Content           *string
	SpintaxContent    *string
	MediaURLs         *string
	ScheduledAt       *time.Time
	Status            *string
	GroupsToPost      *string
	DelayBetweenPosts *int
	ScheduleType      *string
	ScheduleConfig    *string
}

// PostRepository persists posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Post, error)
	Update(ctx context.Context, id int64, upd UpdatePostInput) error
	Delete(ctx context.Context, id int64) error
	CountByUser(ctx context.Context, userID int64) (int64, error)
	CountByUserAndStatus(ctx context.Context, userID int64, status string) (int64, error)
}

// PostService is the user-facing post surface. Get, Update and Delete
// enforce record ownership (domain.ErrForbidden on mismatch or missing
// record).
type PostService interface {
	List(ctx context.Context, userID int64) ([]domain.Post, error)
	Get(ctx context.Context, userID, id int64) (*domain.Post, error)
	Create(ctx context.Context, userID int64, in CreatePostInput) (*domain.Post, error)
	Update(ctx context.Context, userID, id int64, in UpdatePostInput) error
	Delete(ctx context.Context, userID, id int64) error
}
