package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, tokenType string, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		UserID:    "user_1",
		Email:     "alice@x.com",
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(testSecret, enabled).RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("auth_user_id"))
	})
	return router
}

func call(router http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	valid := signToken(t, testSecret, TokenTypeAccess, time.Now().Add(time.Hour))

	t.Run("disabled passes everything through", func(t *testing.T) {
		w := call(newAuthRouter(false), "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := call(newAuthRouter(true), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := call(newAuthRouter(true), "Token "+valid)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid access token", func(t *testing.T) {
		w := call(newAuthRouter(true), "Bearer "+valid)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user_1", w.Body.String())
	})

	t.Run("expired token", func(t *testing.T) {
		expired := signToken(t, testSecret, TokenTypeAccess, time.Now().Add(-time.Hour))
		w := call(newAuthRouter(true), "Bearer "+expired)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token is rejected", func(t *testing.T) {
		refresh := signToken(t, testSecret, "refresh", time.Now().Add(time.Hour))
		w := call(newAuthRouter(true), "Bearer "+refresh)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		forged := signToken(t, "other-secret", TokenTypeAccess, time.Now().Add(time.Hour))
		w := call(newAuthRouter(true), "Bearer "+forged)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
