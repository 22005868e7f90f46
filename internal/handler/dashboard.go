package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coachtrack/internal/logger"
	"coachtrack/internal/model"
	"coachtrack/internal/service"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Courses handles GET /api/courses.
func (h *DashboardHandler) Courses(c *gin.Context) {
	courses, err := h.svc.Courses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if courses == nil {
		courses = []model.Course{}
	}
	c.JSON(http.StatusOK, courses)
}

// Overview handles GET /api/dashboard/overview?course_id=
func (h *DashboardHandler) Overview(c *gin.Context) {
	uid := c.GetString("user_id")
	ov, err := h.svc.Overview(c.Request.Context(), c.Query("course_id"), uid)
	if errors.Is(err, service.ErrNoActiveCourse) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active course"})
		return
	}
	if err != nil {
		logger.Error("dashboard.overview failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ov)
}

// Trend handles GET /api/dashboard/trend?course_id=
func (h *DashboardHandler) Trend(c *gin.Context) {
	uid := c.GetString("user_id")
	points, err := h.svc.Trend(c.Request.Context(), c.Query("course_id"), uid)
	if errors.Is(err, service.ErrNoActiveCourse) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active course"})
		return
	}
	if err != nil {
		logger.Error("dashboard.trend failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if points == nil {
		points = []model.DailyTrendPoint{}
	}
	c.JSON(http.StatusOK, points)
}

// UpdateWeek handles PUT /api/dashboard/week — the caller edits one of
// their own weekly totals.
func (h *DashboardHandler) UpdateWeek(c *gin.Context) {
	var req model.UpdateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := c.GetString("user_id")
	err := h.svc.UpdateWeek(c.Request.Context(), c.Query("course_id"), uid, req)
	if errors.Is(err, service.ErrNoActiveCourse) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active course"})
		return
	}
	if err != nil {
		logger.Error("dashboard.update_week failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Info("dashboard.week_updated", "uid", uid, "task_type", req.TaskTypeID, "week", req.Week)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
