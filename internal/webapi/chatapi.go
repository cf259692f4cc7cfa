package webapi

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The gate already authenticated the request; cross-origin pages may host
	// the storefront client.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h *Handler) chatHistory(c echo.Context) error {
	msgs, err := h.chatSvc.History()
	if err != nil {
		return fail(c, http.StatusBadGateway, "CHAT_UNAVAILABLE", "Failed to load chat history", err.Error())
	}
	return ok(c, msgs)
}

// chatSocket upgrades the connection and hands it to the hub, which relays
// channel traffic both ways until the client disconnects.
func (h *Handler) chatSocket(c echo.Context) error {
	who, authed := currentIdentity(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to join the community chat", nil)
	}

	conn, err := chatUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "WebSocket upgrade failed", err.Error())
	}
	h.hub.Serve(conn, who)
	return nil
}
