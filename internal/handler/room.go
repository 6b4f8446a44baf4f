package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"hotel-management/internal/model"
	"hotel-management/internal/repository"
)

// RoomHandler serves room inventory endpoints.  Mutations are restricted
// to staff and admin roles by the router.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	return &RoomHandler{Rooms: rooms}
}

type createRoomReq struct {
	RoomNumber        string  `json:"room_number"`
	RoomType          string  `json:"room_type"`
	RatePerNightCents uint32  `json:"rate_per_night_cents"`
	Status            string  `json:"status"`
	Amenities         *string `json:"amenities"`
}

// Create handles POST /v1/rooms.
func (h *RoomHandler) Create(c echo.Context) error {
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoomNumber == "" || req.RoomType == "" || req.RatePerNightCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number, room_type and rate_per_night_cents are required"})
	}
	status := req.Status
	if status == "" {
		status = model.RoomAvailable
	}
	if !validRoomStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	room := &model.Room{
		Number:            req.RoomNumber,
		Type:              req.RoomType,
		RatePerNightCents: req.RatePerNightCents,
		Status:            status,
		Amenities:         req.Amenities,
	}
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, room)
}

// List handles GET /v1/rooms with an optional ?status= filter.
func (h *RoomHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !validRoomStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	rooms, err := h.Rooms.List(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch room failed"})
	}
	return c.JSON(http.StatusOK, room)
}

type updateRoomReq struct {
	RoomNumber        *string `json:"room_number"`
	RoomType          *string `json:"room_type"`
	RatePerNightCents *uint32 `json:"rate_per_night_cents"`
	Status            *string `json:"status"`
	Amenities         *string `json:"amenities"`
}

// Update handles PATCH /v1/rooms/:id with partial fields.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req updateRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Status != nil && !validRoomStatus(*req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	err = h.Rooms.Update(c.Request().Context(), id, req.RoomNumber, req.RoomType, req.Status, req.RatePerNightCents, req.Amenities)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch room failed"})
	}
	return c.JSON(http.StatusOK, room)
}

func validRoomStatus(s string) bool {
	switch s {
	case model.RoomAvailable, model.RoomOccupied, model.RoomMaintenance:
		return true
	}
	return false
}
