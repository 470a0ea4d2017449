package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// CatalogHandler serves the public package catalog.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Packages lists purchasable subscription tiers. Public: the pricing page
// renders before login.
//
// @Summary      List active packages
// @Tags         packages
// @Produce      json
// @Success      200  {array}  domain.Package
// @Router       /v1/packages [get]
func (h *CatalogHandler) Packages(c echo.Context) error {
	packages, err := h.catalog.ListActivePackages(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, packages)
}
