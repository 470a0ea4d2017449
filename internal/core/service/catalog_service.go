package service

import (
	"context"

	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// CatalogService serves the public package listing.
type CatalogService struct {
	packages ports.PackageRepository
}

func NewCatalogService(packages ports.PackageRepository) *CatalogService {
	return &CatalogService{packages: packages}
}

func (s *CatalogService) ListActivePackages(ctx context.Context) ([]domain.Package, error) {
	return s.packages.List(ctx, true)
}
