package webapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/creatorstack/storefront/internal/catalog"
	"github.com/creatorstack/storefront/internal/domain"
)

// listProducts answers the storefront query: search and category filters over
// the merged catalog, partitioned into the two display tiers.
func (h *Handler) listProducts(c echo.Context) error {
	search := strings.TrimSpace(c.QueryParam("search"))
	category := strings.TrimSpace(c.QueryParam("category"))
	if category == "" {
		category = domain.CategoryAll
	}

	result := h.catalog.Query(search, category)
	featured, regular := catalog.Partition(result)

	return ok(c, echo.Map{
		"featured": emptyIfNil(featured),
		"regular":  emptyIfNil(regular),
		"total":    len(result),
	})
}

func (h *Handler) listCategories(c echo.Context) error {
	return ok(c, domain.Categories())
}

func emptyIfNil(ps []domain.Product) []domain.Product {
	if ps == nil {
		return []domain.Product{}
	}
	return ps
}
