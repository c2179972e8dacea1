package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tongcompany/intake-portal/internal/projects/domain"
	"github.com/tongcompany/intake-portal/internal/uploads"
)

type Handler struct {
	svc *uploads.Service
}

func New(svc *uploads.Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches upload routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.DELETE("/upload", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file is required"})
		return
	}

	projectID := c.PostForm("projectId")
	category := c.PostForm("category")
	if projectID == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "projectId and category are required"})
		return
	}

	info, err := h.svc.Upload(c.Request.Context(), projectID, category, file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		case errors.Is(err, domain.ErrFileTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file too large, maximum size is 10MB"})
		case errors.Is(err, domain.ErrUnsupportedType):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unsupported file type"})
		case errors.Is(err, domain.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid category"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "upload failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "file": info})
}

type deleteReq struct {
	ProjectID string `json:"projectId" binding:"required"`
	Path      string `json:"path" binding:"required"`
}

func (h *Handler) delete(c *gin.Context) {
	var req deleteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "projectId and path are required"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), req.ProjectID, req.Path); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		case errors.Is(err, domain.ErrFileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "file not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "delete failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
