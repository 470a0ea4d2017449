package ports

import (
	"context"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

// ActivityRepository persists audit-trail entries.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) error
	List(ctx context.Context, limit int64) ([]domain.ActivityLog, error)
	ListByUser(ctx context.Context, userID, limit int64) ([]domain.ActivityLog, error)
}

// ActivityRecorder accepts audit entries for asynchronous persistence.
// Record never blocks request handling and never fails the caller; a lost
// audit entry is logged, not surfaced.
type ActivityRecorder interface {
	Record(entry domain.ActivityLog)
}

// ActivityRecorderFunc adapts a function to ActivityRecorder.
type ActivityRecorderFunc func(entry domain.ActivityLog)

// Record implements ActivityRecorder.
func (f ActivityRecorderFunc) Record(entry domain.ActivityLog) {
	if f != nil {
		f(entry)
	}
}
