package ports

import (
	"context"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

// SettingRepository persists key/value system settings.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	List(ctx context.Context) ([]domain.Setting, error)
	Upsert(ctx context.Context, key, value string) error
}
