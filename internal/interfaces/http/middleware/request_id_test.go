package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newRequestIDRouter() *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString("request_id")})
	})
	return router
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	router := newRequestIDRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
}

func TestRequestID_ReusesClientProvided(t *testing.T) {
	router := newRequestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "client-supplied-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, "client-supplied-id", w.Header().Get(RequestIDHeader))
	require.Contains(t, w.Body.String(), "client-supplied-id")
}
