package router

import (
	"github.com/labstack/echo/v4"

	"hotel-management/internal/handler"
	"hotel-management/internal/middleware"
	"hotel-management/internal/model"
)

// RegisterGuestFacing registers endpoints any authenticated user may
// call: browsing rooms and the service catalogue, and booking catalogue
// services against a stay.
func RegisterGuestFacing(e *echo.Echo, rooms *handler.RoomHandler, services *handler.ServiceHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.GET("/rooms", rooms.List)
	g.GET("/rooms/:id", rooms.Get)
	g.GET("/services", services.List)
	g.POST("/service-requests", services.CreateRequest)
}

// StaffHandlers bundles the handlers behind the staff-scoped routes.
type StaffHandlers struct {
	Rooms        *handler.RoomHandler
	Guests       *handler.GuestHandler
	Bookings     *handler.BookingHandler
	Payments     *handler.PaymentHandler
	Services     *handler.ServiceHandler
	Food         *handler.FoodHandler
	ChatRequests *handler.ChatRequestHandler
}

// RegisterStaff registers management endpoints under /v1. All routes
// require a valid JWT with the staff or admin role.
func RegisterStaff(e *echo.Echo, h StaffHandlers, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStaff, model.RoleAdmin),
	)

	// ---- Rooms ----
	g.POST("/rooms", h.Rooms.Create)
	g.PATCH("/rooms/:id", h.Rooms.Update)

	// ---- Guests ----
	g.POST("/guests", h.Guests.Create)
	g.GET("/guests", h.Guests.List)
	g.GET("/guests/:id", h.Guests.Get)
	g.PATCH("/guests/:id", h.Guests.Update)

	// ---- Bookings ----
	g.POST("/bookings", h.Bookings.Create)
	g.GET("/bookings", h.Bookings.List)
	g.GET("/bookings/:id", h.Bookings.Get)
	g.POST("/bookings/:id/check-in", h.Bookings.CheckIn)
	g.POST("/bookings/:id/check-out", h.Bookings.CheckOut)
	g.POST("/bookings/:id/cancel", h.Bookings.Cancel)

	// ---- Payments ----
	g.POST("/bookings/:id/payments", h.Payments.Create)
	g.GET("/bookings/:id/payments", h.Payments.ListByBooking)
	g.GET("/payments", h.Payments.List)

	// ---- Service catalogue and requests ----
	g.POST("/services", h.Services.Create)
	g.GET("/service-requests", h.Services.ListRequests)
	g.PATCH("/service-requests/:id", h.Services.UpdateRequest)

	// ---- Food menu and orders ----
	g.POST("/menu", h.Food.CreateMenuItem)
	g.PATCH("/menu/:id", h.Food.UpdateMenuItem)
	g.GET("/food-orders", h.Food.ListOrders)
	g.GET("/food-orders/:id", h.Food.GetOrder)
	g.PATCH("/food-orders/:id", h.Food.UpdateOrderStatus)

	// ---- Chat-raised service requests ----
	g.GET("/chat-requests", h.ChatRequests.List)
	g.PATCH("/chat-requests/:id", h.ChatRequests.UpdateStatus)
}
