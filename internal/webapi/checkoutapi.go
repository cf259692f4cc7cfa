package webapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/creatorstack/storefront/internal/domain"
)

// startCheckout creates a hosted-checkout session for one product and hands
// browser control to the provider with a redirect. No pending state is kept;
// the return trip lands on the success view.
func (h *Handler) startCheckout(c echo.Context) error {
	who, authed := currentIdentity(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to purchase products", nil)
	}

	id := strings.TrimSpace(c.Param("id"))
	var product *domain.Product
	for _, p := range h.catalog.All() {
		if p.ID == id {
			p := p
			product = &p
			break
		}
	}
	if product == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	sess, err := h.checkout.CreateSession(c.Request().Context(), *product, who)
	if err != nil {
		return fail(c, http.StatusBadGateway, "CHECKOUT_FAILED", "Failed to start checkout process. Please try again.", err.Error())
	}
	return c.Redirect(http.StatusSeeOther, sess.URL)
}
