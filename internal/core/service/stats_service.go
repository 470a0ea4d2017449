package service

import (
	"context"

	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// StatsService aggregates the end-user dashboard numbers.
type StatsService struct {
	groups ports.GroupRepository
	posts  ports.PostRepository
}

func NewStatsService(groups ports.GroupRepository, posts ports.PostRepository) *StatsService {
	return &StatsService{groups: groups, posts: posts}
}

func (s *StatsService) UserDashboard(ctx context.Context, userID int64) (*ports.UserStats, error) {
	totalGroups, err := s.groups.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalPosts, err := s.posts.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.posts.CountByUserAndStatus(ctx, userID, domain.PostCompleted)
	if err != nil {
		return nil, err
	}

	return &ports.UserStats{
		TotalGroups:    totalGroups,
		TotalPosts:     totalPosts,
		CompletedPosts: completed,
	}, nil
}
