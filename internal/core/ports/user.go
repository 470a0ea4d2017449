package ports

import (
	"context"
	"time"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

// UserUpdate is a partial update of the mutable user fields. Nil pointers
// leave the field unchanged; the Clear flags null out the nullable columns.
type UserUpdate struct {
	Name        *string
	Email       *string
	LoginMethod *string
	Role        *string

	SubscriptionStatus         *string
	SubscriptionPackageID      *int64
	ClearSubscriptionPackageID bool
	SubscriptionExpiresAt      *time.Time
	ClearSubscriptionExpiresAt bool
	TrialEndsAt                *time.Time
	ClearTrialEndsAt           bool

	LastSignedIn *time.Time
}

// UserRepository persists end users. FindByID is the identity resolver for
// the user trust domains; absence is domain.ErrUserNotFound without
// distinguishing never-existed from deleted.
type UserRepository interface {
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByOpenID(ctx context.Context, openID string) (*domain.User, error)
	List(ctx context.Context, search string) ([]domain.User, error)
	Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountBySubscriptionStatus(ctx context.Context, status string) (int64, error)
}
