package service

import (
	"context"
	"fmt"
	"time"

	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// PostService implements the user-facing post surface. Reads and mutations
// on a single post both enforce ownership; listing is scoped by owner at
// the repository.
type PostService struct {
	posts    ports.PostRepository
	activity ports.ActivityRecorder
}

func NewPostService(posts ports.PostRepository, activity ports.ActivityRecorder) *PostService {
	return &PostService{posts: posts, activity: activity}
}

func (s *PostService) List(ctx context.Context, userID int64) ([]domain.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}

func (s *PostService) Get(ctx context.Context, userID, id int64) (*domain.Post, error) {
	return s.owned(ctx, id, userID)
}

func (s *PostService) Create(ctx context.Context, userID int64, in ports.CreatePostInput) (*domain.Post, error) {
	status := domain.PostDraft
	if in.ScheduledAt != nil {
		status = domain.PostScheduled
	}
	scheduleType := in.ScheduleType
	if scheduleType == "" {
		scheduleType = domain.ScheduleOnce
	}
	delay := in.DelayBetweenPosts
	if delay <= 0 {
		delay = 60
	}

	now := time.Now().UTC()
	post, err := s.posts.Create(ctx, &domain.Post{
		UserID:            userID,
		Content:           in.Content,
		SpintaxContent:    in.SpintaxContent,
		MediaURLs:         in.MediaURLs,
		ScheduledAt:       in.ScheduledAt,
		Status:            status,
		GroupsToPost:      in.GroupsToPost,
		DelayBetweenPosts: delay,
		ScheduleType:      scheduleType,
		ScheduleConfig:    in.ScheduleConfig,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.ActivityLog{
		UserID:      &userID,
		Action:      domain.ActionPostCreated,
		Description: "User created a new post",
	})
	return post, nil
}

func (s *PostService) Update(ctx context.Context, userID, id int64, in ports.UpdatePostInput) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.posts.Update(ctx, id, in)
}

func (s *PostService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(domain.ActivityLog{
		UserID:      &userID,
		Action:      domain.ActionPostDeleted,
		Description: fmt.Sprintf("User deleted post %d", id),
	})
	return nil
}

func (s *PostService) owned(ctx context.Context, id, userID int64) (*domain.Post, error) {
	return requireOwned(ctx, s.posts.FindByID,
		func(p *domain.Post) int64 { return p.UserID },
		id, userID, domain.ErrPostNotFound)
}
