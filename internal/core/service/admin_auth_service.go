package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/groupcast/groupcast-api/internal/auth"
	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// AdminAuthService implements operator login: throttled password check,
// bearer-token issuance, audit entry.
type AdminAuthService struct {
	admins   ports.AdminRepository
	throttle ports.LoginThrottle
	activity ports.ActivityRecorder
	verifier *auth.Verifier
	tokenTTL time.Duration
}

func NewAdminAuthService(
	admins ports.AdminRepository,
	throttle ports.LoginThrottle,
	activity ports.ActivityRecorder,
	verifier *auth.Verifier,
	tokenTTL time.Duration,
) *AdminAuthService {
	if tokenTTL <= 0 {
		tokenTTL = auth.DefaultTokenTTL
	}
	return &AdminAuthService{
		admins:   admins,
		throttle: throttle,
		activity: activity,
		verifier: verifier,
		tokenTTL: tokenTTL,
	}
}

func (s *AdminAuthService) Login(ctx context.Context, email, password, ip string) (string, *domain.Admin, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	ok, err := s.throttle.Allow(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("login throttle: %w", err)
	}
	if !ok {
		return "", nil, domain.ErrTooManyAttempts
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			// Unknown email and wrong password are the same outcome.
			_ = s.throttle.RecordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.VerifyPassword(password, admin.PasswordHash) {
		_ = s.throttle.RecordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.verifier.IssueAdminToken(admin.ID, admin.Email, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue admin token: %w", err)
	}

	_ = s.throttle.Reset(ctx, email)

	s.activity.Record(domain.ActivityLog{
		AdminID:     &admin.ID,
		Action:      domain.ActionAdminLogin,
		Description: fmt.Sprintf("Admin %s logged in", admin.Email),
		IPAddress:   ip,
	})

	return token, admin, nil
}
