package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avialine/airport-api/internal/utils"
)

const testSecret = "test-secret"

func protectedApp(roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", JWTAuth(testSecret))
	if len(roles) > 0 {
		g.Use(RequireRole(roles...))
	}
	g.GET("/ping", func(c echo.Context) error {
		id, _ := CurrentUserID(c)
		return c.JSON(http.StatusOK, echo.Map{"user_id": id, "role": CurrentRole(c)})
	})
	return e
}

func doGet(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := protectedApp()

	t.Run("missing header", func(t *testing.T) {
		rec := doGet(e, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doGet(e, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := utils.NewAccessToken("other-secret", 7, "CUSTOMER", 5)
		require.NoError(t, err)
		rec := doGet(e, tok.Token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token populates identity", func(t *testing.T) {
		tok, err := utils.NewAccessToken(testSecret, 7, "CUSTOMER", 5)
		require.NoError(t, err)
		rec := doGet(e, tok.Token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user_id":7,"role":"CUSTOMER"}`, rec.Body.String())
	})
}

func TestRequireRole(t *testing.T) {
	e := protectedApp("ADMIN")

	customer, err := utils.NewAccessToken(testSecret, 7, "CUSTOMER", 5)
	require.NoError(t, err)
	admin, err := utils.NewAccessToken(testSecret, 8, "ADMIN", 5)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(e, customer.Token).Code)
	assert.Equal(t, http.StatusOK, doGet(e, admin.Token).Code)
}
