package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "auto-diag.backend/internal/domain/errors"
	"auto-diag.backend/internal/usecases"
)

// AuthHandler serves the admin login endpoint
type AuthHandler struct {
	auth *usecases.AuthUsecase
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(auth *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// LoginInput is the admin login payload
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.auth.Login(c, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, pair)
}
