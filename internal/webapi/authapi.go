package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/creatorstack/storefront/internal/auth"
)

type loginPayload struct {
	Token string `json:"token"`
}

// login exchanges a provider-issued bearer token for the identity it carries
// and notifies auth-state listeners.
func (h *Handler) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login request", err.Error())
	}
	identity, err := h.auth.Login(payload.Token)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_TOKEN", "Sign-in failed", nil)
	}
	return ok(c, identity)
}

func (h *Handler) logout(c echo.Context) error {
	h.auth.Logout()
	return ok(c, echo.Map{"loggedIn": false})
}

func (h *Handler) me(c echo.Context) error {
	who, authed := currentIdentity(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", auth.ErrNotAuthenticated.Error(), nil)
	}
	return ok(c, who)
}
