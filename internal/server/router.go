package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func registerRoutes(r *gin.Engine, h *handlers, auth gin.HandlerFunc) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")
	api.Use(auth)

	// Projects
	api.GET("/projects", h.listProjects)
	api.POST("/projects", h.createProject)
	api.GET("/projects/:id", h.getProject)
	api.PATCH("/projects/:id", h.updateProject)
	api.DELETE("/projects/:id", h.deleteProject)

	// Generation
	api.POST("/projects/:id/generate", h.generateAndSave)
	api.POST("/generate/:type", h.generateContent)
	api.POST("/preview", h.preview)

	// Videos and analyses
	api.POST("/projects/:id/videos", h.uploadVideo)
	api.GET("/projects/:id/videos", h.listVideos)
	api.POST("/projects/:id/analyses", h.analyzeProject)
	api.GET("/projects/:id/analyses", h.listAnalyses)

	// Generated content
	api.GET("/projects/:id/pull-requests", h.listPRs)
	api.PATCH("/pull-requests/:id", h.updatePR)
	api.GET("/projects/:id/flowcharts", h.listFlowcharts)
	api.PATCH("/flowcharts/:id", h.updateFlowchart)
	api.GET("/projects/:id/epics", h.listEpics)
	api.PATCH("/epics/:id", h.updateEpic)
	api.GET("/projects/:id/tasks", h.listTasks)
	api.PATCH("/tasks/:id", h.updateTask)
	api.PUT("/tasks/:id/status", h.setTaskStatus)

	// Prompt customization
	api.GET("/projects/:id/support-materials", h.listSupportMaterials)
	api.POST("/projects/:id/support-materials", h.createSupportMaterial)
	api.GET("/support-materials/defaults", h.listDefaultSupportMaterials)
	api.POST("/support-materials", h.createSupportMaterial)
	api.PATCH("/support-materials/:id", h.updateSupportMaterial)
	api.DELETE("/support-materials/:id", h.deleteSupportMaterial)
	api.GET("/global-prompts", h.listGlobalPrompts)
	api.POST("/global-prompts", h.createGlobalPrompt)
	api.PATCH("/global-prompts/:id", h.updateGlobalPrompt)
	api.DELETE("/global-prompts/:id", h.deleteGlobalPrompt)

	api.GET("/projects/:id/export", h.exportProject)
	api.GET("/ai/ping", h.pingAI)
}
