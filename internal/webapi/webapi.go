// Package webapi holds the HTTP handlers for every storefront view.
package webapi

import (
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/creatorstack/storefront/internal/auth"
	"github.com/creatorstack/storefront/internal/catalog"
	"github.com/creatorstack/storefront/internal/chat"
	"github.com/creatorstack/storefront/internal/checkout"
	"github.com/creatorstack/storefront/internal/dashboard"
	"github.com/creatorstack/storefront/internal/domain"
	"github.com/creatorstack/storefront/internal/upload"
	"github.com/creatorstack/storefront/internal/webserver"
)

// Handler bundles the services the HTTP surface fronts.
type Handler struct {
	catalog  *catalog.Service
	flow     *upload.Flow
	dash     *dashboard.Service
	checkout *checkout.Client
	chatSvc  *chat.Service
	hub      *chat.Hub
	auth     *auth.Service
}

func NewHandler(
	cat *catalog.Service,
	flow *upload.Flow,
	dash *dashboard.Service,
	co *checkout.Client,
	chatSvc *chat.Service,
	hub *chat.Hub,
	authSvc *auth.Service,
) *Handler {
	return &Handler{
		catalog:  cat,
		flow:     flow,
		dash:     dash,
		checkout: co,
		chatSvc:  chatSvc,
		hub:      hub,
		auth:     authSvc,
	}
}

// Register mounts all routes. Identity-scoped routes sit behind the JWT gate.
func (h *Handler) Register(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/products", h.listProducts)
	api.GET("/categories", h.listCategories)
	api.GET("/success", h.successView)
	api.GET("/health", h.health)
	api.POST("/auth/login", h.login)
	api.POST("/auth/logout", h.logout)

	gated := api.Group("", webserver.JwtGate(h.auth.Secret()))
	gated.GET("/auth/me", h.me)
	gated.POST("/products", h.createProduct)
	gated.GET("/dashboard/products", h.listOwnProducts)
	gated.GET("/dashboard/summary", h.dashboardSummary)
	gated.DELETE("/dashboard/products/:id", h.deleteProduct)
	gated.POST("/checkout/:id", h.startCheckout)
	gated.GET("/chat/history", h.chatHistory)
	gated.GET("/chat/ws", h.chatSocket)
}

// currentIdentity maps the JWT gate's parsed token to an Identity.
func currentIdentity(c echo.Context) (domain.Identity, bool) {
	token, ok := c.Get("user").(*jwtv5.Token)
	if !ok {
		return domain.Identity{}, false
	}
	claims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return domain.Identity{}, false
	}
	id := auth.IdentityFromClaims(claims)
	return id, id.ID != ""
}
