package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"hotel-management/internal/model"
	"hotel-management/internal/repository"
)

// PaymentHandler records payments against bookings. Recording locks the
// booking row so the paid total and the aggregate payment status cannot
// drift under concurrent requests.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
	Bookings *repository.BookingRepo
}

func NewPaymentHandler(p *repository.PaymentRepo, b *repository.BookingRepo) *PaymentHandler {
	return &PaymentHandler{Payments: p, Bookings: b}
}

var validPaymentMethods = map[string]bool{
	"cash": true, "card": true, "upi": true, "bank_transfer": true,
}

type createPaymentReq struct {
	AmountCents uint32 `json:"amount_cents"`
	Method      string `json:"method"`
}

// Create handles POST /v1/bookings/:id/payments. A payment that would
// push the paid total past the booking total is rejected.
func (h *PaymentHandler) Create(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req createPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.AmountCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents must be positive"})
	}
	if !validPaymentMethods[req.Method] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment method"})
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

	_, status, totalCents, err := h.Bookings.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	if status == model.BookingCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is cancelled"})
	}

	paid, err := h.Payments.PaidTotalTx(ctx, tx, bookingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute paid total"})
	}
	if paid+req.AmountCents > totalCents {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":         "payment exceeds balance due",
			"balance_cents": totalCents - paid,
		})
	}

	ref := uuid.NewString()
	payment := &model.Payment{
		BookingID:      bookingID,
		AmountCents:    req.AmountCents,
		Method:         req.Method,
		Status:         "completed",
		TransactionRef: &ref,
	}
	if err := h.Payments.CreateTx(ctx, tx, payment); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record payment"})
	}

	paymentStatus := model.PaymentPartial
	if paid+req.AmountCents == totalCents {
		paymentStatus = model.PaymentCompleted
	}
	if err := h.Bookings.SetPaymentStatusTx(ctx, tx, bookingID, paymentStatus); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update payment status"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{
		"payment":        payment,
		"payment_status": paymentStatus,
		"balance_cents":  totalCents - paid - req.AmountCents,
	})
}

// ListByBooking handles GET /v1/bookings/:id/payments. The response
// carries a paid/balance summary alongside the individual payments.
func (h *PaymentHandler) ListByBooking(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	booking, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	items, err := h.Payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list payments failed"})
	}
	var paid uint32
	for _, p := range items {
		if p.Status == "completed" {
			paid += p.AmountCents
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":         items,
		"total_cents":   booking.TotalAmountCents,
		"paid_cents":    paid,
		"balance_cents": booking.TotalAmountCents - paid,
	})
}

// List handles GET /v1/payments.
func (h *PaymentHandler) List(c echo.Context) error {
	items, err := h.Payments.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list payments failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
