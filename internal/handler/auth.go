package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coachtrack/internal/logger"
	"coachtrack/internal/middleware"
	"coachtrack/internal/model"
	"coachtrack/internal/service"
)

type AuthHandler struct {
	auth   *service.AuthService
	tokens *middleware.Auth
}

func NewAuthHandler(auth *service.AuthService, tokens *middleware.Auth) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("login.failed", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	role := h.auth.Role(p)
	logger.Info("login.ok", "uid", p.ID, "role", role)

	token, err := h.tokens.Issue(p.ID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{Token: token, User: *p, Role: role})
}

// Me handles GET /api/me — the role lookup the client routes on.
func (h *AuthHandler) Me(c *gin.Context) {
	p, err := h.auth.Profile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": p, "role": h.auth.Role(p)})
}
