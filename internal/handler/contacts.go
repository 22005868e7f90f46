package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coachtrack/internal/logger"
	"coachtrack/internal/model"
	"coachtrack/internal/service"
	"coachtrack/internal/store"
)

type ContactsHandler struct {
	svc *service.ContactsService
}

func NewContactsHandler(svc *service.ContactsService) *ContactsHandler {
	return &ContactsHandler{svc: svc}
}

// List handles GET /api/contacts?client_type=
func (h *ContactsHandler) List(c *gin.Context) {
	uid := c.GetString("user_id")
	clients, err := h.svc.List(c.Request.Context(), uid, c.Query("client_type"))
	if err != nil {
		logger.Error("contacts.list failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if clients == nil {
		clients = []model.Client{}
	}
	c.JSON(http.StatusOK, clients)
}

// Create handles POST /api/contacts.
func (h *ContactsHandler) Create(c *gin.Context) {
	var req model.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := c.GetString("user_id")
	client, err := h.svc.Create(c.Request.Context(), uid, req)
	if err != nil {
		logger.Error("contacts.create failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Info("contacts.created", "uid", uid, "client", client.ID, "type", client.ClientType)
	c.JSON(http.StatusOK, client)
}

// Update handles PUT /api/contacts/:id — a partial edit of contact and
// pipeline fields.
func (h *ContactsHandler) Update(c *gin.Context) {
	var req model.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid, id := c.GetString("user_id"), c.Param("id")
	client, err := h.svc.Update(c.Request.Context(), uid, id, req)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}
	if err != nil {
		logger.Error("contacts.update failed", "uid", uid, "client", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, client)
}

// SetPipeline handles PUT /api/contacts/:id/pipeline.
func (h *ContactsHandler) SetPipeline(c *gin.Context) {
	var req model.SetPipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid, id := c.GetString("user_id"), c.Param("id")
	client, err := h.svc.SetPipeline(c.Request.Context(), uid, id, req.InPipeline)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}
	if err != nil {
		logger.Error("contacts.set_pipeline failed", "uid", uid, "client", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Info("contacts.pipeline_set", "uid", uid, "client", id, "in_pipeline", req.InPipeline)
	c.JSON(http.StatusOK, client)
}

// Delete handles DELETE /api/contacts/:id.
func (h *ContactsHandler) Delete(c *gin.Context) {
	uid, id := c.GetString("user_id"), c.Param("id")
	err := h.svc.Delete(c.Request.Context(), uid, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}
	if err != nil {
		logger.Error("contacts.delete failed", "uid", uid, "client", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
