package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bitwise74/auth-api/middleware"
	"bitwise74/auth-api/model"
	"bitwise74/auth-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	viper.Set("jwt.secret", "test-secret")

	r := gin.New()
	r.Use(middleware.NewRequestIDMiddleware(), middleware.NewJWTMiddleware())

	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})
	r.GET("/admin", middleware.RequireRoles(model.RoleAdmin, model.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r
}

func signFor(t *testing.T, roles []string) string {
	t.Helper()

	signed, _, err := security.SignAccessToken("u1", "a@b.com", roles, true, []byte("test-secret"), time.Minute)
	require.NoError(t, err)

	return signed
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	r := newProtectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewareRejectsGarbageToken(t *testing.T) {
	r := newProtectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewareRejectsExpiredToken(t *testing.T) {
	r := newProtectedRouter(t)

	signed, _, err := security.SignAccessToken("u1", "a@b.com", []string{model.RoleUser}, true, []byte("test-secret"), -time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewarePassesValidToken(t *testing.T) {
	r := newProtectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signFor(t, []string{model.RoleUser}))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestRequireRolesGates(t *testing.T) {
	r := newProtectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signFor(t, []string{model.RoleUser}))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signFor(t, []string{model.RoleUser, model.RoleAdmin}))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
