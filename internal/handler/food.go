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

// FoodHandler serves the menu catalogue and the staff view of food
// orders. Orders themselves are placed over the chat connection; this
// handler only lists them and moves them through the kitchen workflow.
type FoodHandler struct {
	Menu   *repository.MenuRepo
	Orders *repository.OrderRepo
}

func NewFoodHandler(m *repository.MenuRepo, o *repository.OrderRepo) *FoodHandler {
	return &FoodHandler{Menu: m, Orders: o}
}

type createMenuItemReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	PriceCents  uint32  `json:"price_cents"`
	Category    string  `json:"category"`
	Available   *bool   `json:"available"`
}

// CreateMenuItem handles POST /v1/menu.
func (h *FoodHandler) CreateMenuItem(c echo.Context) error {
	var req createMenuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Category == "" || req.PriceCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, category and price_cents are required"})
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	item := &model.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Category:    req.Category,
		Available:   available,
	}
	if err := h.Menu.Create(c.Request().Context(), item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create menu item failed"})
	}
	return c.JSON(http.StatusCreated, item)
}

// ListMenu handles GET /v1/menu and returns in-stock items only.
func (h *FoodHandler) ListMenu(c echo.Context) error {
	items, err := h.Menu.ListAvailable(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list menu failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListCategories handles GET /v1/menu/categories.
func (h *FoodHandler) ListCategories(c echo.Context) error {
	cats, err := h.Menu.Categories(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list categories failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": cats})
}

type updateMenuItemReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *uint32 `json:"price_cents"`
	Category    *string `json:"category"`
	Available   *bool   `json:"available"`
}

// UpdateMenuItem handles PATCH /v1/menu/:id with partial fields.
func (h *FoodHandler) UpdateMenuItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}
	var req updateMenuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	err = h.Menu.Update(c.Request().Context(), id, req.Name, req.Description, req.Category, req.PriceCents, req.Available)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update menu item failed"})
	}
	item, err := h.Menu.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch menu item failed"})
	}
	return c.JSON(http.StatusOK, item)
}

// ListOrders handles GET /v1/food-orders for staff.
func (h *FoodHandler) ListOrders(c echo.Context) error {
	items, err := h.Orders.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list orders failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetOrder handles GET /v1/food-orders/:id.
func (h *FoodHandler) GetOrder(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	detail, err := h.Orders.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch order failed"})
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdateOrderStatus handles PATCH /v1/food-orders/:id.
func (h *FoodHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil || !validOrderStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if err := h.Orders.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update order failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}

func validOrderStatus(s string) bool {
	switch s {
	case model.OrderPending, model.OrderConfirmed, model.OrderPreparing, model.OrderDelivered, model.OrderCancelled:
		return true
	}
	return false
}
