package service

import (
	"context"
	"sync"

	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// Function-field stubs for the repository ports. Unset fields fail loudly
// if a test exercises a path it did not declare.

type stubUserRepo struct {
	upsertFn      func(ctx context.Context, user *domain.User) (*domain.User, error)
	findByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	updateFn      func(ctx context.Context, id int64, upd ports.UserUpdate) (*domain.User, error)
	deleteFn      func(ctx context.Context, id int64) error
	listFn        func(ctx context.Context, search string) ([]domain.User, error)
	countFn       func(ctx context.Context) (int64, error)
	countByStatFn func(ctx context.Context, status string) (int64, error)
}

func (s *stubUserRepo) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	return s.upsertFn(ctx, user)
}
func (s *stubUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.findByIDFn(ctx, id)
}
func (s *stubUserRepo) FindByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	panic("FindByOpenID not stubbed")
}
func (s *stubUserRepo) List(ctx context.Context, search string) ([]domain.User, error) {
	return s.listFn(ctx, search)
}
func (s *stubUserRepo) Update(ctx context.Context, id int64, upd ports.UserUpdate) (*domain.User, error) {
	return s.updateFn(ctx, id, upd)
}
func (s *stubUserRepo) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}
func (s *stubUserRepo) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *stubUserRepo) CountBySubscriptionStatus(ctx context.Context, status string) (int64, error) {
	return s.countByStatFn(ctx, status)
}

type stubAdminRepo struct {
	findByEmailFn func(ctx context.Context, email string) (*domain.Admin, error)
	findByIDFn    func(ctx context.Context, id int64) (*domain.Admin, error)
}

func (s *stubAdminRepo) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	panic("Create not stubbed")
}
func (s *stubAdminRepo) FindByID(ctx context.Context, id int64) (*domain.Admin, error) {
	return s.findByIDFn(ctx, id)
}
func (s *stubAdminRepo) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return s.findByEmailFn(ctx, email)
}

type stubGroupRepo struct {
	createFn   func(ctx context.Context, group *domain.Group) (*domain.Group, error)
	findByIDFn func(ctx context.Context, id int64) (*domain.Group, error)
	updateFn   func(ctx context.Context, id int64, upd ports.UpdateGroupInput) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (s *stubGroupRepo) Create(ctx context.Context, group *domain.Group) (*domain.Group, error) {
	return s.createFn(ctx, group)
}
func (s *stubGroupRepo) FindByID(ctx context.Context, id int64) (*domain.Group, error) {
	return s.findByIDFn(ctx, id)
}
func (s *stubGroupRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Group, error) {
	panic("ListByUser not stubbed")
}
func (s *stubGroupRepo) Update(ctx context.Context, id int64, upd ports.UpdateGroupInput) error {
	return s.updateFn(ctx, id, upd)
}
func (s *stubGroupRepo) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}
func (s *stubGroupRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	panic("CountByUser not stubbed")
}

type stubPostRepo struct {
	createFn   func(ctx context.Context, post *domain.Post) (*domain.Post, error)
	findByIDFn func(ctx context.Context, id int64) (*domain.Post, error)
	updateFn   func(ctx context.Context, id int64, upd ports.UpdatePostInput) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (s *stubPostRepo) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	return s.createFn(ctx, post)
}
func (s *stubPostRepo) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	return s.findByIDFn(ctx, id)
}
func (s *stubPostRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	panic("ListByUser not stubbed")
}
func (s *stubPostRepo) Update(ctx context.Context, id int64, upd ports.UpdatePostInput) error {
	return s.updateFn(ctx, id, upd)
}
func (s *stubPostRepo) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}
func (s *stubPostRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	panic("CountByUser not stubbed")
}
func (s *stubPostRepo) CountByUserAndStatus(ctx context.Context, userID int64, status string) (int64, error) {
	panic("CountByUserAndStatus not stubbed")
}

type stubPackageRepo struct {
	createFn   func(ctx context.Context, pkg *domain.Package) (*domain.Package, error)
	findByIDFn func(ctx context.Context, id int64) (*domain.Package, error)
	listFn     func(ctx context.Context, activeOnly bool) ([]domain.Package, error)
}

func (s *stubPackageRepo) Create(ctx context.Context, pkg *domain.Package) (*domain.Package, error) {
	return s.createFn(ctx, pkg)
}
func (s *stubPackageRepo) FindByID(ctx context.Context, id int64) (*domain.Package, error) {
	return s.findByIDFn(ctx, id)
}
func (s *stubPackageRepo) List(ctx context.Context, activeOnly bool) ([]domain.Package, error) {
	return s.listFn(ctx, activeOnly)
}
func (s *stubPackageRepo) Update(ctx context.Context, id int64, upd ports.UpdatePackageInput) error {
	panic("Update not stubbed")
}
func (s *stubPackageRepo) Delete(ctx context.Context, id int64) error {
	panic("Delete not stubbed")
}

type stubPaymentRepo struct {
	createFn   func(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	findByIDFn func(ctx context.Context, id int64) (*domain.Payment, error)
	updateFn   func(ctx context.Context, id int64, upd ports.PaymentUpdate) error
	sumFn      func(ctx context.Context) (float64, error)
	sumSinceFn func(ctx context.Context, since int64) (float64, error)
}

func (s *stubPaymentRepo) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	return s.createFn(ctx, payment)
}
func (s *stubPaymentRepo) FindByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.findByIDFn(ctx, id)
}
func (s *stubPaymentRepo) List(ctx context.Context) ([]domain.Payment, error) {
	panic("List not stubbed")
}
func (s *stubPaymentRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	panic("ListByUser not stubbed")
}
func (s *stubPaymentRepo) Update(ctx context.Context, id int64, upd ports.PaymentUpdate) error {
	return s.updateFn(ctx, id, upd)
}
func (s *stubPaymentRepo) SumCompleted(ctx context.Context) (float64, error) {
	return s.sumFn(ctx)
}
func (s *stubPaymentRepo) SumCompletedSince(ctx context.Context, since int64) (float64, error) {
	return s.sumSinceFn(ctx, since)
}

type stubCaptureGuard struct {
	claimFn  func(ctx context.Context, transactionID string) (bool, error)
	released []string
}

func (s *stubCaptureGuard) Claim(ctx context.Context, transactionID string) (bool, error) {
	return s.claimFn(ctx, transactionID)
}

func (s *stubCaptureGuard) Release(ctx context.Context, transactionID string) error {
	s.released = append(s.released, transactionID)
	return nil
}

// memoryCaptureGuard behaves like the real guard: first Claim per id wins,
// Release makes the id claimable again.
type memoryCaptureGuard struct {
	claimed map[string]bool
}

func (g *memoryCaptureGuard) Claim(ctx context.Context, transactionID string) (bool, error) {
	if g.claimed == nil {
		g.claimed = map[string]bool{}
	}
	if g.claimed[transactionID] {
		return false, nil
	}
	g.claimed[transactionID] = true
	return true, nil
}

func (g *memoryCaptureGuard) Release(ctx context.Context, transactionID string) error {
	delete(g.claimed, transactionID)
	return nil
}

type stubThrottle struct {
	allowFn  func(ctx context.Context, key string) (bool, error)
	failures []string
	resets   []string
}

func (s *stubThrottle) Allow(ctx context.Context, key string) (bool, error) {
	if s.allowFn != nil {
		return s.allowFn(ctx, key)
	}
	return true, nil
}
func (s *stubThrottle) RecordFailure(ctx context.Context, key string) error {
	s.failures = append(s.failures, key)
	return nil
}
func (s *stubThrottle) Reset(ctx context.Context, key string) error {
	s.resets = append(s.resets, key)
	return nil
}

type stubSettingRepo struct {
	upserts map[string]string
	listFn  func(ctx context.Context) ([]domain.Setting, error)
}

func (s *stubSettingRepo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	panic("Get not stubbed")
}
func (s *stubSettingRepo) List(ctx context.Context) ([]domain.Setting, error) {
	return s.listFn(ctx)
}
func (s *stubSettingRepo) Upsert(ctx context.Context, key, value string) error {
	if s.upserts == nil {
		s.upserts = map[string]string{}
	}
	s.upserts[key] = value
	return nil
}

type stubActivityRepo struct {
	listFn func(ctx context.Context, limit int64) ([]domain.ActivityLog, error)
}

func (s *stubActivityRepo) Insert(ctx context.Context, entry *domain.ActivityLog) error {
	panic("Insert not stubbed")
}
func (s *stubActivityRepo) List(ctx context.Context, limit int64) ([]domain.ActivityLog, error) {
	return s.listFn(ctx, limit)
}
func (s *stubActivityRepo) ListByUser(ctx context.Context, userID, limit int64) ([]domain.ActivityLog, error) {
	panic("ListByUser not stubbed")
}

// recorderSpy collects activity entries synchronously.
type recorderSpy struct {
	mu      sync.Mutex
	entries []domain.ActivityLog
}

func (r *recorderSpy) Record(entry domain.ActivityLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recorderSpy) all() []domain.ActivityLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ActivityLog(nil), r.entries...)
}
