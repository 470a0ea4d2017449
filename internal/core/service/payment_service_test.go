package service

import (
	"context"
	"errors"
	"testing"

	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

func TestPaymentService_Subscribe(t *testing.T) {
	packages := &stubPackageRepo{
		findByIDFn: func(ctx context.Context, id int64) (*domain.Package, error) {
			return &domain.Package{ID: id, Name: "Pro Monthly", Price: "29.99", DurationDays: 30}, nil
		},
	}
	var created *domain.Payment
	payments := &stubPaymentRepo{
		createFn: func(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
			p.ID = 11
			created = p
			return p, nil
		},
	}
	recorder := &recorderSpy{}
	svc := NewPaymentService(payments, packages, &stubUserRepo{}, &stubCaptureGuard{}, recorder)

	res, err := svc.Subscribe(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if res.PaymentID != 11 || res.Amount != "29.99" || res.PackageName != "Pro Monthly" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if created.Status != domain.PaymentPending {
		t.Fatalf("status = %q, want pending", created.Status)
	}
	if created.PaymentMethod != domain.PaymentMethodPayPal {
		t.Fatalf("method = %q", created.PaymentMethod)
	}
	entries := recorder.all()
	if len(entries) != 1 || entries[0].Action != domain.ActionPaymentInitiated {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestPaymentService_Capture_Completed(t *testing.T) {
	pkgID := int64(2)
	packages := &stubPackageRepo{
		findByIDFn: func(ctx context.Context, id int64) (*domain.Package, error) {
			return &domain.Package{ID: id, Name: "Pro Monthly", Price: "29.99", DurationDays: 30}, nil
		},
	}
	var paymentUpd *ports.PaymentUpdate
	payments := &stubPaymentRepo{
		updateFn: func(ctx context.Context, id int64, upd ports.PaymentUpdate) error {
			paymentUpd = &upd
			return nil
		},
		findByIDFn: func(ctx context.Context, id int64) (*domain.Payment, error) {
			return &domain.Payment{ID: id, UserID: 1, PackageID: &pkgID, Status: domain.PaymentCompleted}, nil
		},
	}
	var userUpd *ports.UserUpdate
	users := &stubUserRepo{
		updateFn: func(ctx context.Context, id int64, upd ports.UserUpdate) (*domain.User, error) {
			userUpd = &upd
			return &domain.User{ID: id}, nil
		},
	}
	guard := &stubCaptureGuard{
		claimFn: func(ctx context.Context, txn string) (bool, error) { return true, nil },
	}
	recorder := &recorderSpy{}
	svc := NewPaymentService(payments, packages, users, guard, recorder)

	err := svc.Capture(context.Background(), ports.CaptureInput{
		PaymentID:     11,
		TransactionID: "TXN-001",
		Status:        domain.PaymentCompleted,
	})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if paymentUpd == nil || *paymentUpd.Status != domain.PaymentCompleted || *paymentUpd.TransactionID != "TXN-001" {
		t.Fatalf("payment update = %+v", paymentUpd)
	}
	if userUpd == nil || *userUpd.SubscriptionStatus != domain.SubscriptionActive {
		t.Fatalf("user update = %+v", userUpd)
	}
	if userUpd.SubscriptionExpiresAt == nil {
		t.Fatal("expiry not set")
	}
	if userUpd.SubscriptionPackageID == nil || *userUpd.SubscriptionPackageID != pkgID {
		t.Fatalf("packageID = %v", userUpd.SubscriptionPackageID)
	}
	entries := recorder.all()
	if len(entries) != 1 || entries[0].Action != domain.ActionSubscriptionActivated {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestPaymentService_Capture_DuplicateDeliveryIgnored(t *testing.T) {
	payments := &stubPaymentRepo{
		updateFn: func(ctx context.Context, id int64, upd ports.PaymentUpdate) error {
			t.Fatal("duplicate delivery reached the repository")
			return nil
		},
	}
	guard := &stubCaptureGuard{
		claimFn: func(ctx context.Context, txn string) (bool, error) { return false, nil },
	}
	svc := NewPaymentService(payments, &stubPackageRepo{}, &stubUserRepo{}, guard, &recorderSpy{})

	err := svc.Capture(context.Background(), ports.CaptureInput{
		PaymentID:     11,
		TransactionID: "TXN-001",
		Status:        domain.PaymentCompleted,
	})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
}

func TestPaymentService_Capture_RetryAfterTransientFailure(t *testing.T) {
	pkgID := int64(2)
	packages := &stubPackageRepo{
		findByIDFn: func(ctx context.Context, id int64) (*domain.Package, error) {
			return &domain.Package{ID: id, DurationDays: 30}, nil
		},
	}
	updateCalls := 0
	var paymentUpd *ports.PaymentUpdate
	payments := &stubPaymentRepo{
		updateFn: func(ctx context.Context, id int64, upd ports.PaymentUpdate) error {
			updateCalls++
			if updateCalls == 1 {
				return errors.New("connection reset")
			}
			paymentUpd = &upd
			return nil
		},
		findByIDFn: func(ctx context.Context, id int64) (*domain.Payment, error) {
			return &domain.Payment{ID: id, UserID: 1, PackageID: &pkgID, Status: domain.PaymentCompleted}, nil
		},
	}
	var userUpd *ports.UserUpdate
	users := &stubUserRepo{
		updateFn: func(ctx context.Context, id int64, upd ports.UserUpdate) (*domain.User, error) {
			userUpd = &upd
			return &domain.User{ID: id}, nil
		},
	}
	svc := NewPaymentService(payments, packages, users, &memoryCaptureGuard{}, &recorderSpy{})

	in := ports.CaptureInput{
		PaymentID:     11,
		TransactionID: "TXN-RETRY",
		Status:        domain.PaymentCompleted,
	}
	if err := svc.Capture(context.Background(), in); err == nil {
		t.Fatal("expected the transient store error to surface to the provider")
	}

	// The failed attempt must not keep the transaction id claimed, so the
	// provider's redelivery applies the outcome in full.
	if err := svc.Capture(context.Background(), in); err != nil {
		t.Fatalf("retry after transient failure: %v", err)
	}
	if paymentUpd == nil || *paymentUpd.Status != domain.PaymentCompleted {
		t.Fatalf("payment never applied on retry: %+v", paymentUpd)
	}
	if userUpd == nil || *userUpd.SubscriptionStatus != domain.SubscriptionActive {
		t.Fatalf("subscription never activated on retry: %+v", userUpd)
	}
}

func TestPaymentService_Capture_ReleasesClaimWhenActivationFails(t *testing.T) {
	pkgID := int64(2)
	packages := &stubPackageRepo{
		findByIDFn: func(ctx context.Context, id int64) (*domain.Package, error) {
			return &domain.Package{ID: id, DurationDays: 30}, nil
		},
	}
	payments := &stubPaymentRepo{
		updateFn: func(ctx context.Context, id int64, upd ports.PaymentUpdate) error { return nil },
		findByIDFn: func(ctx context.Context, id int64) (*domain.Payment, error) {
			return &domain.Payment{ID: id, UserID: 1, PackageID: &pkgID, Status: domain.PaymentCompleted}, nil
		},
	}
	users := &stubUserRepo{
		updateFn: func(ctx context.Context, id int64, upd ports.UserUpdate) (*domain.User, error) {
			return nil, errors.New("write timeout")
		},
	}
	guard := &stubCaptureGuard{
		claimFn: func(ctx context.Context, txn string) (bool, error) { return true, nil },
	}
	svc := NewPaymentService(payments, packages, users, guard, &recorderSpy{})

	err := svc.Capture(context.Background(), ports.CaptureInput{
		PaymentID:     11,
		TransactionID: "TXN-004",
		Status:        domain.PaymentCompleted,
	})
	if err == nil {
		t.Fatal("expected the activation error to surface")
	}
	if len(guard.released) != 1 || guard.released[0] != "TXN-004" {
		t.Fatalf("claim not released: %v", guard.released)
	}
}

func TestPaymentService_Capture_FailedDoesNotActivate(t *testing.T) {
	payments := &stubPaymentRepo{
		updateFn: func(ctx context.Context, id int64, upd ports.PaymentUpdate) error { return nil },
	}
	users := &stubUserRepo{
		updateFn: func(ctx context.Context, id int64, upd ports.UserUpdate) (*domain.User, error) {
			t.Fatal("failed payment activated a subscription")
			return nil, nil
		},
	}
	guard := &stubCaptureGuard{
		claimFn: func(ctx context.Context, txn string) (bool, error) { return true, nil },
	}
	svc := NewPaymentService(payments, &stubPackageRepo{}, users, guard, &recorderSpy{})

	err := svc.Capture(context.Background(), ports.CaptureInput{
		PaymentID:     11,
		TransactionID: "TXN-002",
		Status:        domain.PaymentFailed,
	})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
}

func TestPaymentService_Capture_RejectsUnknownStatus(t *testing.T) {
	svc := NewPaymentService(&stubPaymentRepo{}, &stubPackageRepo{}, &stubUserRepo{}, &stubCaptureGuard{}, &recorderSpy{})

	err := svc.Capture(context.Background(), ports.CaptureInput{
		PaymentID:     11,
		TransactionID: "TXN-003",
		Status:        "refunded",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("unexpected sentinel: %v", err)
	}
}
