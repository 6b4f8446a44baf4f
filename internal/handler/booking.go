package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"hotel-management/internal/model"
	"hotel-management/internal/repository"
)

// BookingHandler serves the booking lifecycle: create, list, check-in,
// check-out and cancel. Creation and every status transition that also
// touches the room row run inside a transaction.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo
	Guests   *repository.GuestRepo
}

func NewBookingHandler(b *repository.BookingRepo, r *repository.RoomRepo, g *repository.GuestRepo) *BookingHandler {
	return &BookingHandler{Bookings: b, Rooms: r, Guests: g}
}

type createBookingReq struct {
	GuestID      uint64 `json:"guest_id"`
	RoomID       uint64 `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`  // YYYY-MM-DD
	CheckOutDate string `json:"check_out_date"` // YYYY-MM-DD
}

// Create handles POST /v1/bookings. The total is the room's nightly rate
// times the number of nights. Overlapping non-cancelled bookings for the
// same room are rejected with 409.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.GuestID == 0 || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest_id and room_id are required"})
	}
	in, err := time.Parse("2006-01-02", req.CheckInDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in_date"})
	}
	out, err := time.Parse("2006-01-02", req.CheckOutDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out_date"})
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out_date must be after check_in_date"})
	}

	ctx := c.Request().Context()
	if _, err := h.Guests.GetByID(ctx, req.GuestID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	room, err := h.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if room.Status == model.RoomMaintenance {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room under maintenance"})
	}

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	overlap, err := h.Bookings.HasOverlapTx(ctx, tx, req.RoomID, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	if overlap {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room already booked for these dates"})
	}

	booking := &model.Booking{
		GuestID:          req.GuestID,
		RoomID:           req.RoomID,
		CheckInDate:      req.CheckInDate,
		CheckOutDate:     req.CheckOutDate,
		Status:           model.BookingConfirmed,
		TotalAmountCents: uint32(nights) * room.RatePerNightCents,
		PaymentStatus:    model.PaymentPending,
	}
	if err := h.Bookings.CreateTx(ctx, tx, booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	if err := h.Rooms.UpdateStatusTx(ctx, tx, req.RoomID, model.RoomOccupied); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room status"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusCreated, booking)
}

// List handles GET /v1/bookings.
func (h *BookingHandler) List(c echo.Context) error {
	items, err := h.Bookings.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/bookings/:id and includes the payment history.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	detail, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch booking failed"})
	}
	return c.JSON(http.StatusOK, detail)
}

// CheckIn handles POST /v1/bookings/:id/check-in.
func (h *BookingHandler) CheckIn(c echo.Context) error {
	return h.transition(c, model.BookingConfirmed, model.BookingCheckedIn, "")
}

// CheckOut handles POST /v1/bookings/:id/check-out. The room is returned
// to the available pool.
func (h *BookingHandler) CheckOut(c echo.Context) error {
	return h.transition(c, model.BookingCheckedIn, model.BookingCheckedOut, model.RoomAvailable)
}

// Cancel handles POST /v1/bookings/:id/cancel. Cancelling twice is a 409.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	roomID, status, _, err := h.Bookings.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	if status == model.BookingCheckedOut {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already checked out"})
	}
	if err := h.Bookings.CancelTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}
	if err := h.Rooms.UpdateStatusTx(ctx, tx, roomID, model.RoomAvailable); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room status"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}

// transition moves a booking from one status to another and optionally
// flips the room status in the same transaction.
func (h *BookingHandler) transition(c echo.Context, from, to, roomStatus string) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	roomID, status, _, err := h.Bookings.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	if status != from {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is " + status})
	}
	if err := h.Bookings.SetStatusTx(ctx, tx, id, to); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update booking"})
	}
	if roomStatus != "" {
		if err := h.Rooms.UpdateStatusTx(ctx, tx, roomID, roomStatus); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room status"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": to})
}
