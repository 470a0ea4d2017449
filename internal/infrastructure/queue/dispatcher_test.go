package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

type recordingRepo struct {
	mu         sync.Mutex
	entries    []domain.ActivityLog
	failAction string
}

func (r *recordingRepo) Insert(_ context.Context, entry *domain.ActivityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAction != "" && entry.Action == r.failAction {
		return errors.New("write failed")
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *recordingRepo) List(context.Context, int64) ([]domain.ActivityLog, error) {
	panic("unexpected List")
}

func (r *recordingRepo) ListByUser(context.Context, int64, int64) ([]domain.ActivityLog, error) {
	panic("unexpected ListByUser")
}

func (r *recordingRepo) all() []domain.ActivityLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityLog, len(r.entries))
	copy(out, r.entries)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func int64Ptr(v int64) *int64 { return &v }

func TestDispatcherPersistsEntries(t *testing.T) {
	repo := &recordingRepo{}
	d := NewActivityDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.ActivityLog{UserID: int64Ptr(1), Action: domain.ActionGroupCreated})
	d.Record(domain.ActivityLog{AdminID: int64Ptr(7), Action: domain.ActionAdminLogin})

	waitFor(t, func() bool { return len(repo.all()) == 2 })

	actions := map[string]bool{}
	for _, e := range repo.all() {
		actions[e.Action] = true
	}
	if !actions[domain.ActionGroupCreated] || !actions[domain.ActionAdminLogin] {
		t.Errorf("persisted actions = %v", actions)
	}
}

func TestDispatcherOrdersEntriesPerActor(t *testing.T) {
	repo := &recordingRepo{}
	d := NewActivityDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 20; i++ {
		d.Record(domain.ActivityLog{
			UserID:      int64Ptr(3),
			Action:      domain.ActionPostCreated,
			Description: string(rune('a' + i)),
		})
	}

	waitFor(t, func() bool { return len(repo.all()) == 20 })

	entries := repo.all()
	for i, e := range entries {
		if want := string(rune('a' + i)); e.Description != want {
			t.Fatalf("entry %d description = %q, want %q", i, e.Description, want)
		}
	}
}

func TestDispatcherDrainsOnShutdown(t *testing.T) {
	repo := &recordingRepo{}
	d := NewActivityDispatcher(1, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Record(domain.ActivityLog{UserID: int64Ptr(1), Action: domain.ActionFeedCreated})
	}
	cancel()
	d.Wait()

	if got := len(repo.all()); got != 10 {
		t.Errorf("persisted %d entries after shutdown, want 10", got)
	}
}

func TestDispatcherSurvivesWriteErrors(t *testing.T) {
	repo := &recordingRepo{failAction: domain.ActionGroupDeleted}
	d := NewActivityDispatcher(1, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// The failed write must not take the worker down.
	d.Record(domain.ActivityLog{UserID: int64Ptr(1), Action: domain.ActionGroupDeleted})
	d.Record(domain.ActivityLog{UserID: int64Ptr(1), Action: domain.ActionGroupCreated})

	waitFor(t, func() bool { return len(repo.all()) == 1 })
	if got := repo.all()[0].Action; got != domain.ActionGroupCreated {
		t.Errorf("persisted action = %q, want %q", got, domain.ActionGroupCreated)
	}
}
