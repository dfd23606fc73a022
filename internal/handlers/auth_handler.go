package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fluxo/internal/middleware"
	"fluxo/internal/services"
)

// AuthHandler handles session-related requests
type AuthHandler struct {
	userService services.UserServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// CreateAnonymousSession creates a fresh anonymous user and returns a
// session token for it.
func (h *AuthHandler) CreateAnonymousSession(c *gin.Context) {
	user, err := h.userService.CreateAnonymous(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateSessionToken(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":         user,
		"access_token": token,
	})
}
