package ports

import (
	"context"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

// PaymentUpdate is a partial payment update applied at capture time.
type PaymentUpdate struct {
	TransactionID *string
	Status        *string
}

// PaymentRepository persists payment records. SumCompleted aggregates the
// decimal amount strings of completed payments; SumCompletedSince restricts
// the aggregation to payments created at or after the given instant.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error)
	Update(ctx context.Context, id int64, upd PaymentUpdate) error
	SumCompleted(ctx context.Context) (float64, error)
	SumCompletedSince(ctx context.Context, since int64) (float64, error)
}

// CaptureGuard makes payment capture idempotent per provider transaction.
// Claim returns true exactly once per transaction id. Release frees a claim
// so the provider's retry can run the capture again after a step following
// the claim failed.
type CaptureGuard interface {
	Claim(ctx context.Context, transactionID string) (bool, error)
	Release(ctx context.Context, transactionID string) error
}

// SubscribeResult is returned when a pending payment has been opened for a
// package purchase.
type SubscribeResult struct {
	PaymentID   int64  `json:"payment_id"`
	Amount      string `json:"amount"`
	PackageName string `json:"package_name"`
}

// CaptureInput is the provider-side outcome of a payment.
type CaptureInput struct {
	PaymentID     int64
	TransactionID string
	Status        string // completed | failed
	Amount        string
}

// PaymentService drives the subscription purchase flow.
type PaymentService interface {
	// Subscribe opens a pending payment for the given package.
	Subscribe(ctx context.Context, userID, packageID int64) (*SubscribeResult, error)
	// Capture applies the provider outcome: marks the payment, and on
	// completion activates the user's subscription. Re-delivered outcomes
	// for an already-claimed transaction id are acknowledged without
	// side effects.
	Capture(ctx context.Context, in CaptureInput) error
	// History lists the user's payments, newest first.
	History(ctx context.Context, userID int64) ([]domain.Payment, error)
}
