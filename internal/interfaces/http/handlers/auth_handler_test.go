package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"auto-diag.backend/internal/usecases"
	"auto-diag.backend/pkg/crypto"
	"auto-diag.backend/pkg/jwt"
)

func newAuthRouter(t *testing.T, password string) *gin.Engine {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)

	svc := jwt.NewJWTService("test-secret", 15*time.Minute, time.Hour)
	handler := NewAuthHandler(usecases.NewAuthUsecase("admin@autodiag.local", hash, svc))

	router := gin.New()
	router.POST("/api/v1/admin/login", handler.Login)
	return router
}

func TestLogin_Success(t *testing.T) {
	router := newAuthRouter(t, "correct horse")

	w := jsonRequest(t, router, http.MethodPost, "/api/v1/admin/login", gin.H{
		"email":    "admin@autodiag.local",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.NotEmpty(t, body["accessToken"])
	require.NotEmpty(t, body["refreshToken"])
}

func TestLogin_WrongPassword(t *testing.T) {
	router := newAuthRouter(t, "correct horse")

	w := jsonRequest(t, router, http.MethodPost, "/api/v1/admin/login", gin.H{
		"email":    "admin@autodiag.local",
		"password": "battery staple",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestLogin_MalformedPayload(t *testing.T) {
	router := newAuthRouter(t, "correct horse")

	w := jsonRequest(t, router, http.MethodPost, "/api/v1/admin/login", gin.H{
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
