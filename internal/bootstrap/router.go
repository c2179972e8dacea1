package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/tongcompany/intake-portal/internal/api/http"
	"github.com/tongcompany/intake-portal/internal/api/http/middleware"
	projecthttp "github.com/tongcompany/intake-portal/internal/projects/http"
	"github.com/tongcompany/intake-portal/internal/projects/service"
	"github.com/tongcompany/intake-portal/internal/reminder"
	reminderhttp "github.com/tongcompany/intake-portal/internal/reminder/http"
	"github.com/tongcompany/intake-portal/internal/uploads"
	uploadhttp "github.com/tongcompany/intake-portal/internal/uploads/http"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Projects    *service.ProjectService
	Uploads     *uploads.Service
	Scanner     *reminder.Scanner
	CronSecret  string
	StaleDays   int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	projectsGroup := api.Group("/projects")
	projecthttp.New(dep.Projects, dep.StaleDays).Register(projectsGroup)

	uploadhttp.New(dep.Uploads).Register(api)
	reminderhttp.New(dep.Scanner, dep.CronSecret, dep.StaleDays).Register(api)

	return r
}
