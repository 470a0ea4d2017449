package ports

import (
	"context"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

// PackageRepository persists subscription packages.
type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.Package) (*domain.Package, error)
	FindByID(ctx context.Context, id int64) (*domain.Package, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Package, error)
	Update(ctx context.Context, id int64, upd UpdatePackageInput) error
	Delete(ctx context.Context, id int64) error
}

// CatalogService is the public (unauthenticated) package listing used by
// the landing page.
type CatalogService interface {
	ListActivePackages(ctx context.Context) ([]domain.Package, error)
}
