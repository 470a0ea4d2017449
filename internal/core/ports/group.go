package ports

import (
	"context"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

// CreateGroupInput registers a Facebook group as a posting target.
type CreateGroupInput struct {
	GroupID   string
	GroupName string
	GroupURL  string
}

// UpdateGroupInput is a partial group update; nil leaves fields unchanged.
type UpdateGroupInput struct {
	GroupName *string
	GroupURL  *string
	IsActive  *bool
}

// GroupRepository persists posting-target groups.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) (*domain.Group, error)
	FindByID(ctx context.Context, id int64) (*domain.Group, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Group, error)
	Update(ctx context.Context, id int64, upd UpdateGroupInput) error
	Delete(ctx context.Context, id int64) error
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// GroupService is the user-facing group surface. Update and Delete enforce
// record ownership: acting on a group the user does not own (or one that
// does not exist) fails with domain.ErrForbidden.
type GroupService interface {
	List(ctx context.Context, userID int64) ([]domain.Group, error)
	Create(ctx context.Context, userID int64, in CreateGroupInput) (*domain.Group, error)
	Update(ctx context.Context, userID, id int64, in UpdateGroupInput) error
	Delete(ctx context.Context, userID, id int64) error
}
