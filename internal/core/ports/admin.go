package ports

import (
	"context"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

// AdminRepository persists operator accounts. FindByID is the identity
// resolver for the bearer-token trust domain.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByID(ctx context.Context, id int64) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

// Access grant kinds for AdminService.GrantAccess.
const (
	AccessTrial    = "trial"
	AccessLifetime = "lifetime"
	AccessCustom   = "custom"
)

// GrantAccessInput grants a user trial, lifetime or custom-duration access.
// Days is required for trial and custom grants.
type GrantAccessInput struct {
	UserID     int64
	AccessType string
	Days       int
}

// CreatePackageInput carries the fields for a new subscription package.
type CreatePackageInput struct {
	Name           string
	Price          string
	DurationDays   int
	MaxGroups      int
	MaxPostsPerDay int
	Features       string
}

// UpdatePackageInput is a partial package update; nil leaves fields as-is.
type UpdatePackageInput struct {
	Name           *string
	Price          *string
	DurationDays   *int
	MaxGroups      *int
	MaxPostsPerDay *int
	Features       *string
	IsActive       *bool
}

// RecordPaymentInput is a manual payment entry made by an operator.
type RecordPaymentInput struct {
	UserID        int64
	PackageID     *int64
	Amount        string
	TransactionID string
	Status        string
}

// SettingInput is one key/value pair in a batch settings update.
type SettingInput struct {
	Key   string
	Value string
}

// DashboardStats is the operator dashboard summary.
type DashboardStats struct {
	TotalUsers          int64   `json:"total_users"`
	ActiveSubscriptions int64   `json:"active_subscriptions"`
	TotalRevenue        float64 `json:"total_revenue"`
	MonthlyRevenue      float64 `json:"monthly_revenue"`
}

// AdminDashboard bundles stats with the most recent activity entries.
type AdminDashboard struct {
	Stats          DashboardStats       `json:"stats"`
	RecentActivity []domain.ActivityLog `json:"recent_activity"`
}

// AdminService is the operator surface behind the admin-token guard. Every
// mutation writes an activity log entry attributed to adminID.
type AdminService interface {
	Dashboard(ctx context.Context) (*AdminDashboard, error)

	ListUsers(ctx context.Context, search string) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, adminID, id int64, upd UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, adminID, id int64) error
	GrantAccess(ctx context.Context, adminID int64, in GrantAccessInput) error

	ListPackages(ctx context.Context) ([]domain.Package, error)
	CreatePackage(ctx context.Context, adminID int64, in CreatePackageInput) (*domain.Package, error)
	UpdatePackage(ctx context.Context, adminID, id int64, in UpdatePackageInput) error
	DeletePackage(ctx context.Context, adminID, id int64) error

	ListPayments(ctx context.Context) ([]domain.Payment, error)
	RecordPayment(ctx context.Context, adminID int64, in RecordPaymentInput) (*domain.Payment, error)

	ListSettings(ctx context.Context) ([]domain.Setting, error)
	UpdateSettings(ctx context.Context, adminID int64, settings []SettingInput) error

	ListLogs(ctx context.Context, limit int64) ([]domain.ActivityLog, error)
}
