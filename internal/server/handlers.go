package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"briefy/internal/logger"
	"briefy/internal/models"
	"briefy/internal/services"
)

type handlers struct {
	svc    *services.Services
	pinger Pinger
	cfg    Config
	log    *logger.Logger
}

// bind decodes the JSON body into dst, answering 400 on failure.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return false
	}
	return true
}

// project loads the :id project for the caller, answering 404 when it is
// missing or owned by someone else.
func (h *handlers) project(c *gin.Context) (*models.Project, bool) {
	p, err := h.svc.Projects.Get(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return nil, false
	}
	return p, true
}

// owns answers 404 unless the caller owns projectID.
func (h *handlers) owns(c *gin.Context, projectID string) bool {
	if _, err := h.svc.Projects.Get(c.Request.Context(), ownerID(c), projectID); err != nil {
		RespondServiceError(c, err)
		return false
	}
	return true
}

func (h *handlers) listProjects(c *gin.Context) {
	list, err := h.svc.Projects.List(c.Request.Context(), ownerID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"projects": list})
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *handlers) createProject(c *gin.Context) {
	var req createProjectRequest
	if !bind(c, &req) {
		return
	}
	p, err := h.svc.Projects.Create(c.Request.Context(), ownerID(c), req.Name, req.Description)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) getProject(c *gin.Context) {
	p, ok := h.project(c)
	if !ok {
		return
	}
	RespondOK(c, p)
}

func (h *handlers) updateProject(c *gin.Context) {
	var patch services.ProjectPatch
	if !bind(c, &patch) {
		return
	}
	p, err := h.svc.Projects.Update(c.Request.Context(), ownerID(c), c.Param("id"), patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, p)
}

func (h *handlers) deleteProject(c *gin.Context) {
	if err := h.svc.Projects.Delete(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) pingAI(c *gin.Context) {
	if h.pinger == nil {
		RespondError(c, http.StatusServiceUnavailable, "ai_not_configured", errors.New("AI gateway not configured"))
		return
	}
	if err := h.pinger.Ping(c.Request.Context()); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "ok"})
}
