package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"hotel-management/internal/chat"
	"hotel-management/internal/handler"
	"hotel-management/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication:
// the health check and the guest-facing menu browse endpoints. The cache
// middleware is optional; pass nil to serve uncached.
func RegisterRoutes(e *echo.Echo, food *handler.FoodHandler, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	menu := e.Group("/v1/menu")
	if cache != nil {
		menu.Use(cache)
	}
	menu.GET("", food.ListMenu)
	menu.GET("/categories", food.ListCategories)
}

// RegisterAuth registers authentication endpoints. Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterChat mounts the websocket endpoint. No HTTP middleware runs
// here; the gateway authenticates in-band via the handshake frame.
func RegisterChat(e *echo.Echo, gw *chat.Gateway) {
	e.GET("/ws/chat", gw.Handle)
}
