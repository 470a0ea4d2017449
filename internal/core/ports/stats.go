package ports

import "context"

// UserStats is the end-user dashboard summary.
type UserStats struct {
	TotalGroups    int64 `json:"total_groups"`
	TotalPosts     int64 `json:"total_posts"`
	CompletedPosts int64 `json:"completed_posts"`
}

// StatsService aggregates per-user dashboard numbers.
type StatsService interface {
	UserDashboard(ctx context.Context, userID int64) (*UserStats, error)
}
