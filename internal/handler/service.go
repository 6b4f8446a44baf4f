package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"hotel-management/internal/model"
	"hotel-management/internal/repository"
)

// ServiceHandler serves the service catalogue and booking-linked service
// requests (spa, laundry and similar chargeable extras).
type ServiceHandler struct {
	Services *repository.ServiceRepo
	Bookings *repository.BookingRepo
}

func NewServiceHandler(s *repository.ServiceRepo, b *repository.BookingRepo) *ServiceHandler {
	return &ServiceHandler{Services: s, Bookings: b}
}

type createServiceReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	RateCents   uint32  `json:"rate_cents"`
}

// Create handles POST /v1/services.
func (h *ServiceHandler) Create(c echo.Context) error {
	var req createServiceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	s := &model.Service{
		Name:        req.Name,
		Description: req.Description,
		RateCents:   req.RateCents,
		Status:      "active",
	}
	if err := h.Services.Create(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create service failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// List handles GET /v1/services.
func (h *ServiceHandler) List(c echo.Context) error {
	items, err := h.Services.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list services failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type createServiceBookingReq struct {
	BookingID uint64  `json:"booking_id"`
	ServiceID uint64  `json:"service_id"`
	Notes     *string `json:"notes"`
}

// CreateRequest handles POST /v1/service-requests, booking a catalogue
// service against an existing stay.
func (h *ServiceHandler) CreateRequest(c echo.Context) error {
	var req createServiceBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.BookingID == 0 || req.ServiceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id and service_id are required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Bookings.GetByID(ctx, req.BookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.Services.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	sb := &model.ServiceBooking{
		BookingID: req.BookingID,
		ServiceID: req.ServiceID,
		Status:    model.RequestPending,
		Notes:     req.Notes,
	}
	if err := h.Services.CreateBooking(ctx, sb); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create service request failed"})
	}
	return c.JSON(http.StatusCreated, sb)
}

// ListRequests handles GET /v1/service-requests with an optional
// ?status= filter.
func (h *ServiceHandler) ListRequests(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !validRequestStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	items, err := h.Services.ListBookings(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list service requests failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateRequest handles PATCH /v1/service-requests/:id.
func (h *ServiceHandler) UpdateRequest(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil || !validRequestStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if err := h.Services.UpdateBookingStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update service request failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}

func validRequestStatus(s string) bool {
	switch s {
	case model.RequestPending, model.RequestAccepted, model.RequestCompleted, model.RequestCancelled:
		return true
	}
	return false
}
