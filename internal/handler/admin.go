package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"coachtrack/internal/logger"
	"coachtrack/internal/model"
	"coachtrack/internal/service"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) grid(c *gin.Context) (*model.GridResponse, error) {
	taskTypeID := 1
	if v := c.Query("task_type_id"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid task_type_id")
		}
		taskTypeID = n
	}
	return h.svc.Grid(c.Request.Context(), c.Query("course_id"), taskTypeID)
}

// Grid handles GET /api/admin/grid?course_id=&task_type_id=
func (h *AdminHandler) Grid(c *gin.Context) {
	resp, err := h.grid(c)
	if errors.Is(err, service.ErrNoActiveCourse) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active course"})
		return
	}
	if err != nil {
		logger.Error("admin.grid failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateCell handles PUT /api/admin/grid/cell.
func (h *AdminHandler) UpdateCell(c *gin.Context) {
	var req model.UpdateCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.UserID == model.TotalsRowID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "totals row is not editable"})
		return
	}
	err := h.svc.UpdateCell(c.Request.Context(), req)
	if errors.Is(err, service.ErrNoActiveCourse) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active course"})
		return
	}
	if err != nil {
		logger.Error("admin.update_cell failed", "uid", req.UserID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Info("admin.cell_updated", "uid", req.UserID, "task_type", req.TaskTypeID, "week", req.Week)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Export handles GET /api/admin/grid/export — the grid as an .xlsx sheet.
func (h *AdminHandler) Export(c *gin.Context) {
	resp, err := h.grid(c)
	if errors.Is(err, service.ErrNoActiveCourse) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active course"})
		return
	}
	if err != nil {
		logger.Error("admin.export failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Grid"
	f.SetSheetName("Sheet1", sheet)

	headers := []interface{}{"First Name", "Last Name", "15/30", "PP Revenue"}
	for w := 1; w <= model.CourseWeeks; w++ {
		headers = append(headers, fmt.Sprintf("W %d", w))
	}
	headers = append(headers, "Status")
	f.SetSheetRow(sheet, "A1", &headers)

	for i, row := range resp.Rows {
		cells := []interface{}{row.FirstName, row.LastName, row.PipelineCount, row.PipelineRevenue}
		for _, v := range row.Weeks {
			cells = append(cells, v)
		}
		cells = append(cells, string(row.Status))
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetSheetRow(sheet, cell, &cells)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="grid.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		logger.Error("admin.export write failed", "err", err)
	}
}
