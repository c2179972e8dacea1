package http

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tongcompany/intake-portal/internal/projects/domain"
	"github.com/tongcompany/intake-portal/internal/reminder"
)

type Handler struct {
	scanner    *reminder.Scanner
	cronSecret string
	staleDays  int
}

func New(scanner *reminder.Scanner, cronSecret string, staleDays int) *Handler {
	return &Handler{scanner: scanner, cronSecret: cronSecret, staleDays: staleDays}
}

// Register attaches reminder routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	// External cron services hit this with the shared secret.
	rg.GET("/cron/reminder", h.cronTrigger)
	rg.POST("/cron/reminder", h.cronTrigger)

	rg.POST("/notifications/reminder", h.scanNow)
	rg.PUT("/notifications/reminder", h.remindOne)
}

// cronTrigger runs the sweep after an exact bearer-token match. The
// check happens before any side effect.
func (h *Handler) cronTrigger(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if h.cronSecret == "" || !ok || subtle.ConstantTimeCompare([]byte(token), []byte(h.cronSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
		return
	}

	notified, results := h.scanner.Scan(c.Request.Context(), time.Now(), h.staleDays)

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"timestamp": time.Now().UTC(),
		"message":   fmt.Sprintf("%d reminder notifications sent", len(notified)),
		"results":   results,
	})
}

func (h *Handler) scanNow(c *gin.Context) {
	notified, results := h.scanner.Scan(c.Request.Context(), time.Now(), h.staleDays)

	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"message":       fmt.Sprintf("%d reminder notifications sent", len(notified)),
		"totalProjects": len(results),
		"results":       results,
	})
}

type remindOneReq struct {
	ProjectID string `json:"projectId" binding:"required"`
}

func (h *Handler) remindOne(c *gin.Context) {
	var req remindOneReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "projectId is required"})
		return
	}

	if err := h.scanner.RemindOne(c.Request.Context(), req.ProjectID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		case errors.Is(err, domain.ErrAlreadyCompleted):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "project is already completed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to send reminder"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "reminder notification sent"})
}
