package service

import (
	"context"
	"fmt"
	"time"

	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// GroupService implements the user-facing group surface with centralized
// ownership enforcement.
type GroupService struct {
	groups   ports.GroupRepository
	activity ports.ActivityRecorder
}

func NewGroupService(groups ports.GroupRepository, activity ports.ActivityRecorder) *GroupService {
	return &GroupService{groups: groups, activity: activity}
}

func (s *GroupService) List(ctx context.Context, userID int64) ([]domain.Group, error) {
	return s.groups.ListByUser(ctx, userID)
}

func (s *GroupService) Create(ctx context.Context, userID int64, in ports.CreateGroupInput) (*domain.Group, error) {
	group, err := s.groups.Create(ctx, &domain.Group{
		UserID:    userID,
		GroupID:   in.GroupID,
		GroupName: in.GroupName,
		GroupURL:  in.GroupURL,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.ActivityLog{
		UserID:      &userID,
		Action:      domain.ActionGroupCreated,
		Description: fmt.Sprintf("User added group: %s", in.GroupName),
	})
	return group, nil
}

func (s *GroupService) Update(ctx context.Context, userID, id int64, in ports.UpdateGroupInput) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.groups.Update(ctx, id, in)
}

func (s *GroupService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(domain.ActivityLog{
		UserID:      &userID,
		Action:      domain.ActionGroupDeleted,
		Description: fmt.Sprintf("User deleted group %d", id),
	})
	return nil
}

func (s *GroupService) owned(ctx context.Context, id, userID int64) (*domain.Group, error) {
	return requireOwned(ctx, s.groups.FindByID,
		func(g *domain.Group) int64 { return g.UserID },
		id, userID, domain.ErrGroupNotFound)
}
