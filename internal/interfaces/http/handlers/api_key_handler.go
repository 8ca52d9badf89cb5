package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"auto-diag.backend/internal/domain/entities"
	domainerrors "auto-diag.backend/internal/domain/errors"
	"auto-diag.backend/internal/usecases"
	"auto-diag.backend/pkg/logger"
)

// ApiKeyHandler serves the admin key-management endpoints
type ApiKeyHandler struct {
	apiKeys *usecases.ApiKeyUsecase
	usage   *usecases.UsageRecorderUsecase
}

// NewApiKeyHandler creates an API key handler
func NewApiKeyHandler(apiKeys *usecases.ApiKeyUsecase, usage *usecases.UsageRecorderUsecase) *ApiKeyHandler {
	return &ApiKeyHandler{apiKeys: apiKeys, usage: usage}
}

// Create handles POST /api/v1/admin/keys. The raw secret appears in this
// response and nowhere else.
func (h *ApiKeyHandler) Create(c *gin.Context) {
	var input entities.CreateApiKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.apiKeys.Create(c, &input)
	if err != nil {
		logger.Error(c, "failed to create api key", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// List handles GET /api/v1/admin/keys
func (h *ApiKeyHandler) List(c *gin.Context) {
	keys, err := h.apiKeys.List(c)
	if err != nil {
		logger.Error(c, "failed to list api keys", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// SetActiveInput is the activation toggle payload
type SetActiveInput struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// SetActive handles PATCH /api/v1/admin/keys/:id
func (h *ApiKeyHandler) SetActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key id"})
		return
	}

	var input SetActiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.apiKeys.SetActive(c, id, *input.IsActive)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
			return
		}
		logger.Error(c, "failed to toggle api key", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, key)
}

// UsageStats handles GET /api/v1/admin/usage. The window defaults to the
// last 24 hours.
func (h *ApiKeyHandler) UsageStats(c *gin.Context) {
	hours := 24
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be a positive integer"})
			return
		}
		hours = parsed
	}

	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	stats, err := h.usage.StatsByKey(c, since)
	if err != nil {
		logger.Error(c, "failed to load usage stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"since": since,
		"stats": stats,
	})
}
