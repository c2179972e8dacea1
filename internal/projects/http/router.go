package http

import (
	"github.com/gin-gonic/gin"

	"github.com/tongcompany/intake-portal/internal/projects/service"
)

type Handler struct {
	svc       *service.ProjectService
	staleDays int
}

func New(svc *service.ProjectService, staleDays int) *Handler {
	return &Handler{svc: svc, staleDays: staleDays}
}

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.POST("/:id/steps/:step", h.submitStep)
}
