package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"hotel-management/internal/repository"
)

// ChatRequestHandler is the staff view of service requests raised over
// chat. Creation happens on the websocket path; staff work the queue
// through these endpoints.
type ChatRequestHandler struct {
	Chat *repository.ChatRepo
}

func NewChatRequestHandler(chat *repository.ChatRepo) *ChatRequestHandler {
	return &ChatRequestHandler{Chat: chat}
}

// List handles GET /v1/chat-requests with an optional ?status= filter.
func (h *ChatRequestHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !validRequestStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	items, err := h.Chat.ListRequests(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list chat requests failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateStatus handles PATCH /v1/chat-requests/:id.
func (h *ChatRequestHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil || !validRequestStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if err := h.Chat.UpdateRequestStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "chat request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update chat request failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}
