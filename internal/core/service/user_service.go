package service

import (
	"context"
	"errors"
	"time"

	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// UserService completes OAuth logins: upsert-by-openID plus owner role
// elevation.
type UserService struct {
	users       ports.UserRepository
	ownerOpenID string
}

// NewUserService creates a UserService. ownerOpenID, when non-empty, names
// the provider identity that is always elevated to the admin role on login.
func NewUserService(users ports.UserRepository, ownerOpenID string) *UserService {
	return &UserService{users: users, ownerOpenID: ownerOpenID}
}

func (s *UserService) CompleteOAuthLogin(ctx context.Context, profile ports.OAuthProfile) (*domain.User, error) {
	if profile.OpenID == "" {
		return nil, errors.New("oauth profile missing open id")
	}

	now := time.Now().UTC()
	user := &domain.User{
		OpenID:       profile.OpenID,
		Name:         profile.Name,
		Email:        profile.Email,
		LoginMethod:  profile.LoginMethod,
		LastSignedIn: now,
	}
	if profile.OpenID == s.ownerOpenID {
		user.Role = domain.RoleAdmin
	}

	return s.users.Upsert(ctx, user)
}
