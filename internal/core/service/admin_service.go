package service

import (
	"context"
	"fmt"
	"time"

	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// AdminService implements the operator surface. Every mutation records an
// activity entry attributed to the acting admin.
type AdminService struct {
	users    ports.UserRepository
	packages ports.PackageRepository
	payments ports.PaymentRepository
	settings ports.SettingRepository
	logs     ports.ActivityRepository
	activity ports.ActivityRecorder
}

func NewAdminService(
	users ports.UserRepository,
	packages ports.PackageRepository,
	payments ports.PaymentRepository,
	settings ports.SettingRepository,
	logs ports.ActivityRepository,
	activity ports.ActivityRecorder,
) *AdminService {
	return &AdminService{
		users:    users,
		packages: packages,
		payments: payments,
		settings: settings,
		logs:     logs,
		activity: activity,
	}
}

// --- Dashboard ---

func (s *AdminService) Dashboard(ctx context.Context) (*ports.AdminDashboard, error) {
	stats, err := s.stats(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.logs.List(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &ports.AdminDashboard{Stats: *stats, RecentActivity: recent}, nil
}

func (s *AdminService) stats(ctx context.Context) (*ports.DashboardStats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeSubs, err := s.users.CountBySubscriptionStatus(ctx, domain.SubscriptionActive)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.payments.SumCompleted(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthlyRevenue, err := s.payments.SumCompletedSince(ctx, monthStart.Unix())
	if err != nil {
		return nil, err
	}

	return &ports.DashboardStats{
		TotalUsers:          totalUsers,
		ActiveSubscriptions: activeSubs,
		TotalRevenue:        totalRevenue,
		MonthlyRevenue:      monthlyRevenue,
	}, nil
}

// --- Users ---

func (s *AdminService) ListUsers(ctx context.Context, search string) ([]domain.User, error) {
	return s.users.List(ctx, search)
}

func (s *AdminService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *AdminService) UpdateUser(ctx context.Context, adminID, id int64, upd ports.UserUpdate) (*domain.User, error) {
	user, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.ActivityLog{
		AdminID:     &adminID,
		UserID:      &id,
		Action:      domain.ActionUserUpdated,
		Description: fmt.Sprintf("Admin updated user %d", id),
	})
	return user, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, adminID, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(domain.ActivityLog{
		AdminID:     &adminID,
		Action:      domain.ActionUserDeleted,
		Description: fmt.Sprintf("Admin deleted user %d", id),
	})
	return nil
}

func (s *AdminService) GrantAccess(ctx context.Context, adminID int64, in ports.GrantAccessInput) error {
	// Fetch first so a grant against an unknown user is a 404, not a silent
	// no-op update.
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		return err
	}

	var upd ports.UserUpdate
	switch in.AccessType {
	case ports.AccessLifetime:
		status := domain.SubscriptionLifetime
		upd.SubscriptionStatus = &status
		upd.ClearSubscriptionExpiresAt = true
	case ports.AccessTrial:
		if in.Days <= 0 {
			return fmt.Errorf("trial grant requires days > 0")
		}
		status := domain.SubscriptionTrial
		endsAt := time.Now().UTC().AddDate(0, 0, in.Days)
		upd.SubscriptionStatus = &status
		upd.TrialEndsAt = &endsAt
	case ports.AccessCustom:
		if in.Days <= 0 {
			return fmt.Errorf("custom grant requires days > 0")
		}
		status := domain.SubscriptionActive
		expiresAt := time.Now().UTC().AddDate(0, 0, in.Days)
		upd.SubscriptionStatus = &status
		upd.SubscriptionExpiresAt = &expiresAt
	default:
		return fmt.Errorf("unknown access type %q", in.AccessType)
	}

	if _, err := s.users.Update(ctx, in.UserID, upd); err != nil {
		return err
	}

	s.activity.Record(domain.ActivityLog{
		AdminID:     &adminID,
		UserID:      &in.UserID,
		Action:      domain.ActionAccessGranted,
		Description: fmt.Sprintf("Admin granted %s access to user %d", in.AccessType, in.UserID),
	})
	return nil
}

// --- Packages ---

func (s *AdminService) ListPackages(ctx context.Context) ([]domain.Package, error) {
	return s.packages.List(ctx, false)
}

func (s *AdminService) CreatePackage(ctx context.Context, adminID int64, in ports.CreatePackageInput) (*domain.Package, error) {
	pkg, err := s.packages.Create(ctx, &domain.Package{
		Name:           in.Name,
		Price:          in.Price,
		DurationDays:   in.DurationDays,
		MaxGroups:      in.MaxGroups,
		MaxPostsPerDay: in.MaxPostsPerDay,
		Features:       in.Features,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.ActivityLog{
		AdminID:     &adminID,
		Action:      domain.ActionPackageCreated,
		Description: fmt.Sprintf("Admin created package: %s", in.Name),
	})
	return pkg, nil
}

func (s *AdminService) UpdatePackage(ctx context.Context, adminID, id int64, in ports.UpdatePackageInput) error {
	if err := s.packages.Update(ctx, id, in); err != nil {
		return err
	}

	s.activity.Record(domain.ActivityLog{
		AdminID:     &adminID,
		Action:      domain.ActionPackageUpdated,
		Description: fmt.Sprintf("Admin updated package %d", id),
	})
	return nil
}

func (s *AdminService) DeletePackage(ctx context.Context, adminID, id int64) error {
	if err := s.packages.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(domain.ActivityLog{
		AdminID:     &adminID,
		Action:      domain.ActionPackageDeleted,
		Description: fmt.Sprintf("Admin deleted package %d", id),
	})
	return nil
}

// --- Payments ---

func (s *AdminService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.payments.List(ctx)
}

func (s *AdminService) RecordPayment(ctx context.Context, adminID int64, in ports.RecordPaymentInput) (*domain.Payment, error) {
	if !domain.ValidPaymentStatus(in.Status) {
		return nil, fmt.Errorf("invalid payment status %q", in.Status)
	}

	payment, err := s.payments.Create(ctx, &domain.Payment{
		UserID:        in.UserID,
		PackageID:     in.PackageID,
		Amount:        in.Amount,
		Currency:      "USD",
		TransactionID: in.TransactionID,
		PaymentMethod: domain.PaymentMethodPayPal,
		Status:        in.Status,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.ActivityLog{
		AdminID:     &adminID,
		UserID:      &in.UserID,
		Action:      domain.ActionPaymentRecorded,
		Description: fmt.Sprintf("Admin recorded payment for user %d", in.UserID),
	})
	return payment, nil
}

// --- Settings ---

func (s *AdminService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	return s.settings.List(ctx)
}

func (s *AdminService) UpdateSettings(ctx context.Context, adminID int64, settings []ports.SettingInput) error {
	for _, setting := range settings {
		if err := s.settings.Upsert(ctx, setting.Key, setting.Value); err != nil {
			return err
		}
	}

	s.activity.Record(domain.ActivityLog{
		AdminID:     &adminID,
		Action:      domain.ActionSettingsUpdated,
		Description: "Admin updated system settings",
	})
	return nil
}

// --- Logs ---

func (s *AdminService) ListLogs(ctx context.Context, limit int64) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.logs.List(ctx, limit)
}
