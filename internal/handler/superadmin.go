package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coachtrack/internal/logger"
	"coachtrack/internal/model"
	"coachtrack/internal/service"
)

type SuperadminHandler struct {
	svc *service.MembershipService
}

func NewSuperadminHandler(svc *service.MembershipService) *SuperadminHandler {
	return &SuperadminHandler{svc: svc}
}

// Profiles handles GET /api/superadmin/profiles.
func (h *SuperadminHandler) Profiles(c *gin.Context) {
	profiles, err := h.svc.Profiles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}
	c.JSON(http.StatusOK, profiles)
}

// Rename handles PUT /api/superadmin/profiles/:id.
func (h *SuperadminHandler) Rename(c *gin.Context) {
	var req model.RenameProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	id := c.Param("id")
	if err := h.svc.Rename(c.Request.Context(), id, req.FirstName, req.LastName); err != nil {
		logger.Error("superadmin.rename failed", "uid", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CreateUser handles POST /api/superadmin/users.
func (h *SuperadminHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	resp, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		logger.Error("superadmin.create_user failed", "email", req.Email, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Info("superadmin.user_created", "uid", resp.User.ID, "email", resp.User.Email)
	c.JSON(http.StatusOK, resp)
}

// Members handles GET /api/superadmin/courses/:id/members.
func (h *SuperadminHandler) Members(c *gin.Context) {
	members, err := h.svc.CourseMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, members)
}

// AddMember handles POST /api/superadmin/courses/:id/members.
func (h *SuperadminHandler) AddMember(c *gin.Context) {
	var req model.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	courseID := c.Param("id")
	if err := h.svc.AddToCourse(c.Request.Context(), courseID, req.UserID, req.SetActive); err != nil {
		logger.Error("superadmin.add_member failed", "course", courseID, "uid", req.UserID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Info("superadmin.member_added", "course", courseID, "uid", req.UserID, "active", req.SetActive)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SetMemberActive handles PUT /api/superadmin/courses/:id/members/:userID.
func (h *SuperadminHandler) SetMemberActive(c *gin.Context) {
	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	courseID, userID := c.Param("id"), c.Param("userID")
	if err := h.svc.SetActive(c.Request.Context(), courseID, userID, req.IsActive); err != nil {
		logger.Error("superadmin.toggle_member failed", "course", courseID, "uid", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
