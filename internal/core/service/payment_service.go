package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// PaymentService drives the PayPal subscription purchase flow: open a
// pending payment, apply the provider outcome idempotently, activate the
// subscription on completion.
type PaymentService struct {
	payments ports.PaymentRepository
	packages ports.PackageRepository
	users    ports.UserRepository
	guard    ports.CaptureGuard
	activity ports.ActivityRecorder
}

func NewPaymentService(
	payments ports.PaymentRepository,
	packages ports.PackageRepository,
	users ports.UserRepository,
	guard ports.CaptureGuard,
	activity ports.ActivityRecorder,
) *PaymentService {
	return &PaymentService{
		payments: payments,
		packages: packages,
		users:    users,
		guard:    guard,
		activity: activity,
	}
}

func (s *PaymentService) Subscribe(ctx context.Context, userID, packageID int64) (*ports.SubscribeResult, error) {
	pkg, err := s.packages.FindByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	payment, err := s.payments.Create(ctx, &domain.Payment{
		UserID:        userID,
		PackageID:     &pkg.ID,
		Amount:        pkg.Price,
		Currency:      "USD",
		PaymentMethod: domain.PaymentMethodPayPal,
		Status:        domain.PaymentPending,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.ActivityLog{
		UserID:      &userID,
		Action:      domain.ActionPaymentInitiated,
		Description: fmt.Sprintf("User initiated payment for %s", pkg.Name),
	})

	return &ports.SubscribeResult{
		PaymentID:   payment.ID,
		Amount:      pkg.Price,
		PackageName: pkg.Name,
	}, nil
}

func (s *PaymentService) Capture(ctx context.Context, in ports.CaptureInput) error {
	if in.Status != domain.PaymentCompleted && in.Status != domain.PaymentFailed {
		return errors.New("capture status must be completed or failed")
	}

	// Provider callbacks may be re-delivered. First delivery wins; later
	// ones are acknowledged without touching the payment again.
	fresh, err := s.guard.Claim(ctx, in.TransactionID)
	if err != nil {
		return fmt.Errorf("capture guard: %w", err)
	}
	if !fresh {
		return nil
	}

	if err := s.payments.Update(ctx, in.PaymentID, ports.PaymentUpdate{
		TransactionID: &in.TransactionID,
		Status:        &in.Status,
	}); err != nil {
		return s.releaseClaim(ctx, in.TransactionID, err)
	}

	if in.Status != domain.PaymentCompleted {
		return nil
	}

	payment, err := s.payments.FindByID(ctx, in.PaymentID)
	if err != nil {
		return s.releaseClaim(ctx, in.TransactionID, err)
	}

	durationDays := 30
	if payment.PackageID != nil {
		if pkg, err := s.packages.FindByID(ctx, *payment.PackageID); err == nil {
			durationDays = pkg.DurationDays
		}
	}

	expiresAt := time.Now().UTC().AddDate(0, 0, durationDays)
	status := domain.SubscriptionActive
	upd := ports.UserUpdate{
		SubscriptionStatus:    &status,
		SubscriptionExpiresAt: &expiresAt,
	}
	if payment.PackageID != nil {
		upd.SubscriptionPackageID = payment.PackageID
	}
	if _, err := s.users.Update(ctx, payment.UserID, upd); err != nil {
		return s.releaseClaim(ctx, in.TransactionID, err)
	}

	s.activity.Record(domain.ActivityLog{
		UserID:      &payment.UserID,
		Action:      domain.ActionSubscriptionActivated,
		Description: fmt.Sprintf("Subscription activated via PayPal payment %s", in.TransactionID),
	})
	return nil
}

// releaseClaim gives the transaction id back to the guard when a capture
// step failed after the claim was taken, so the provider's retry is not
// swallowed as a duplicate. The original error is returned either way.
func (s *PaymentService) releaseClaim(ctx context.Context, transactionID string, cause error) error {
	if err := s.guard.Release(ctx, transactionID); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (s *PaymentService) History(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}
