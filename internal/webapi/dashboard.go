package webapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// listOwnProducts returns only the signed-in creator's stored records. Seed
// records are never attributable to an identity, so they are never listed.
func (h *Handler) listOwnProducts(c echo.Context) error {
	who, authed := currentIdentity(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to view your products", nil)
	}

	own := h.dash.ListOwn(who.ID)
	page, pageSize := parsePagination(c)
	start := (page - 1) * pageSize
	if start > len(own) {
		start = len(own)
	}
	end := start + pageSize
	if end > len(own) {
		end = len(own)
	}
	return paged(c, emptyIfNil(own[start:end]), int64(len(own)), page, pageSize)
}

func (h *Handler) dashboardSummary(c echo.Context) error {
	who, authed := currentIdentity(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to view your dashboard", nil)
	}
	return ok(c, h.dash.Summarize(who.ID))
}

// deleteProduct removes one of the creator's own records. Ownership is
// checked against the record's creatorId only; deleting an id that is absent
// (or not owned) is a no-op, not an error.
func (h *Handler) deleteProduct(c echo.Context) error {
	who, authed := currentIdentity(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to manage your products", nil)
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	owned := false
	for _, p := range h.dash.ListOwn(who.ID) {
		if p.ID == id {
			owned = true
			break
		}
	}
	if owned {
		if err := h.dash.Delete(id); err != nil {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to delete the product. Please try again.", err.Error())
		}
	}
	return ok(c, echo.Map{"deleted": id})
}
