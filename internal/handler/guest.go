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

// GuestHandler serves guest profile endpoints.
type GuestHandler struct {
	Guests *repository.GuestRepo
}

func NewGuestHandler(guests *repository.GuestRepo) *GuestHandler {
	return &GuestHandler{Guests: guests}
}

type createGuestReq struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	IDProofType   *string `json:"id_proof_type"`
	IDProofNumber *string `json:"id_proof_number"`
}

// Create handles POST /v1/guests.
func (h *GuestHandler) Create(c echo.Context) error {
	var req createGuestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name are required"})
	}
	g := &model.Guest{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		IDProofType:   req.IDProofType,
		IDProofNumber: req.IDProofNumber,
	}
	if err := h.Guests.Create(c.Request().Context(), g); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create guest failed"})
	}
	return c.JSON(http.StatusCreated, g)
}

// List handles GET /v1/guests with an optional ?search= name filter.
func (h *GuestHandler) List(c echo.Context) error {
	guests, err := h.Guests.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list guests failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": guests})
}

// Get handles GET /v1/guests/:id.
func (h *GuestHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	g, err := h.Guests.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch guest failed"})
	}
	return c.JSON(http.StatusOK, g)
}

type updateGuestReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

// Update handles PATCH /v1/guests/:id with partial fields.
func (h *GuestHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req updateGuestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	err = h.Guests.Update(c.Request().Context(), id, req.FirstName, req.LastName, req.Email, req.Phone, req.Address)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update guest failed"})
	}
	g, err := h.Guests.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch guest failed"})
	}
	return c.JSON(http.StatusOK, g)
}
