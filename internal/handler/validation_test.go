package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// These tests cover the request validation paths that reject input
// before any repository call is made, so handlers run with nil repos.

func post(t *testing.T, h echo.HandlerFunc, path, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	assert.NoError(t, h(c))
	return rec
}

func TestRegisterRequiresCredentials(t *testing.T) {
	h := &AuthHandler{}
	rec := post(t, h.Register, "/v1/auth/register", `{"username":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingCreateRejectsBadDates(t *testing.T) {
	h := &BookingHandler{}

	rec := post(t, h.Create, "/v1/bookings", `{"guest_id":1,"room_id":1,"check_in_date":"not-a-date","check_out_date":"2026-01-02"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h.Create, "/v1/bookings", `{"guest_id":1,"room_id":1,"check_in_date":"2026-01-05","check_out_date":"2026-01-05"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "check_out_date must be after")
}

func TestBookingCreateRequiresIDs(t *testing.T) {
	h := &BookingHandler{}
	rec := post(t, h.Create, "/v1/bookings", `{"check_in_date":"2026-01-01","check_out_date":"2026-01-02"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentCreateValidation(t *testing.T) {
	h := &PaymentHandler{}

	rec := post(t, h.Create, "/v1/bookings/1/payments", `{"amount_cents":0,"method":"cash"}`, "id", "1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h.Create, "/v1/bookings/1/payments", `{"amount_cents":100,"method":"barter"}`, "id", "1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h.Create, "/v1/bookings/abc/payments", `{"amount_cents":100,"method":"cash"}`, "id", "abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoomCreateValidation(t *testing.T) {
	h := &RoomHandler{}

	rec := post(t, h.Create, "/v1/rooms", `{"room_number":"","room_type":"deluxe","rate_per_night_cents":5000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h.Create, "/v1/rooms", `{"room_number":"204","room_type":"deluxe","rate_per_night_cents":5000,"status":"haunted"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid status")
}
