package handlers

import (
	"errors"
	"net/http"

	"harborview/services/staff"
	"harborview/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles staff login.
type AuthHandler struct {
	Auth staff.AuthService
}

func NewAuthHandler(auth staff.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// LoginHandler authenticates a staff member and returns a signed token.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	token, rec, err := h.Auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, staff.ErrInvalidCredentials) {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Login failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"staff": gin.H{"id": rec.ID, "name": rec.Name, "email": rec.Email, "role": rec.Role},
	})
}
