package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-management/internal/utils"
)

const testSecret = "middleware-test-secret"

func newEcho(secret string, roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", JWTAuth(secret))
	if len(roles) > 0 {
		g.Use(RequireRole(roles...))
	}
	g.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	})
	return e
}

func doGet(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec := doGet(newEcho(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	rec := doGet(newEcho(testSecret), "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 1, "guest", 5)
	require.NoError(t, err)
	rec := doGet(newEcho(testSecret), "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 42, "staff", 5)
	require.NoError(t, err)
	rec := doGet(newEcho(testSecret), "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"staff"`)
}

func TestRequireRoleForbidden(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "guest", 5)
	require.NoError(t, err)
	rec := doGet(newEcho(testSecret, "staff", "admin"), "Bearer "+at.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAllowed(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "admin", 5)
	require.NoError(t, err)
	rec := doGet(newEcho(testSecret, "staff", "admin"), "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
