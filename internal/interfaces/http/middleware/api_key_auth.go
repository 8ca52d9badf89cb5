package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"auto-diag.backend/internal/domain/entities"
	domainerrors "auto-diag.backend/internal/domain/errors"
	"auto-diag.backend/internal/usecases"
	"auto-diag.backend/pkg/logger"
)

// APIKeyHeader is the header clients present their secret in
const APIKeyHeader = "x-api-key"

// ContextKeyAPIKey is the gin context key holding the authenticated
// *entities.ApiKey
const ContextKeyAPIKey = "apiKey"

// APIKeyAuth authenticates the x-api-key header. Requests without the header
// never reach the key store; store failures reject the request rather than
// admit it.
func APIKeyAuth(apiKeys *usecases.ApiKeyUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawKey := c.GetHeader(APIKeyHeader)
		if rawKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing API key. Include x-api-key header.",
			})
			return
		}

		key, err := apiKeys.Authenticate(c, rawKey)
		if err != nil {
			switch {
			case errors.Is(err, domainerrors.ErrInvalidAPIKey):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "Invalid API key.",
				})
			case errors.Is(err, domainerrors.ErrAPIKeyDeactivated):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "API key is deactivated.",
				})
			default:
				logger.Error(c, "api key authentication failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error.",
				})
			}
			return
		}

		c.Set(ContextKeyAPIKey, key)
		c.Next()
	}
}

// APIKeyFromContext returns the key stored by APIKeyAuth
func APIKeyFromContext(c *gin.Context) (*entities.ApiKey, bool) {
	value, exists := c.Get(ContextKeyAPIKey)
	if !exists {
		return nil, false
	}
	key, ok := value.(*entities.ApiKey)
	return key, ok
}
