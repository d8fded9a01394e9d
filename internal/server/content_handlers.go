package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"briefy/internal/models"
	"briefy/internal/services"
)

// listFor answers a project-scoped list after checking the caller owns the
// project.
func listFor[T any](h *handlers, key string, list func(c *gin.Context, projectID string) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := h.project(c)
		if !ok {
			return
		}
		items, err := list(c, p.ID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		if items == nil {
			items = []T{}
		}
		RespondOK(c, gin.H{key: items})
	}
}

// projectOf names the project an :id row belongs to. An empty result marks a
// shared row with no owning project.
type projectOf func(ctx context.Context, id string) (string, error)

// guard answers 404 unless the caller owns the project behind the :id row.
func (h *handlers) guard(c *gin.Context, lookup projectOf) bool {
	projectID, err := lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return false
	}
	if projectID == "" {
		return true
	}
	return h.owns(c, projectID)
}

// patchFor decodes a patch body and applies it to the :id entity once the
// caller is known to own it.
func patchFor[P any, T any](h *handlers, lookup projectOf, update func(c *gin.Context, id string, patch P) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch P
		if !bind(c, &patch) {
			return
		}
		if !h.guard(c, lookup) {
			return
		}
		out, err := update(c, c.Param("id"), patch)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, out)
	}
}

func (h *handlers) prProject(ctx context.Context, id string) (string, error) {
	pr, err := h.svc.Content.GetPR(ctx, id)
	if err != nil {
		return "", err
	}
	return pr.ProjectID, nil
}

func (h *handlers) flowchartProject(ctx context.Context, id string) (string, error) {
	fc, err := h.svc.Content.GetFlowchart(ctx, id)
	if err != nil {
		return "", err
	}
	return fc.ProjectID, nil
}

func (h *handlers) epicProject(ctx context.Context, id string) (string, error) {
	e, err := h.svc.Content.GetEpic(ctx, id)
	if err != nil {
		return "", err
	}
	return e.ProjectID, nil
}

func (h *handlers) taskProject(ctx context.Context, id string) (string, error) {
	t, err := h.svc.Content.GetTask(ctx, id)
	if err != nil {
		return "", err
	}
	return t.ProjectID, nil
}

func (h *handlers) materialProject(ctx context.Context, id string) (string, error) {
	m, err := h.svc.SupportMaterials.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if m.ProjectID == nil {
		return "", nil
	}
	return *m.ProjectID, nil
}

func (h *handlers) listPRs(c *gin.Context) {
	listFor(h, "pull_requests", func(c *gin.Context, id string) ([]*models.PullRequest, error) {
		return h.svc.Content.ListPRs(c.Request.Context(), id)
	})(c)
}

func (h *handlers) listFlowcharts(c *gin.Context) {
	listFor(h, "flowcharts", func(c *gin.Context, id string) ([]*models.Flowchart, error) {
		return h.svc.Content.ListFlowcharts(c.Request.Context(), id)
	})(c)
}

func (h *handlers) listEpics(c *gin.Context) {
	listFor(h, "epics", func(c *gin.Context, id string) ([]*models.Epic, error) {
		return h.svc.Content.ListEpics(c.Request.Context(), id)
	})(c)
}

func (h *handlers) listTasks(c *gin.Context) {
	listFor(h, "tasks", func(c *gin.Context, id string) ([]*models.Task, error) {
		return h.svc.Content.ListTasks(c.Request.Context(), id)
	})(c)
}

func (h *handlers) updatePR(c *gin.Context) {
	patchFor(h, h.prProject, func(c *gin.Context, id string, p services.PRPatch) (*models.PullRequest, error) {
		return h.svc.Content.UpdatePR(c.Request.Context(), id, p)
	})(c)
}

func (h *handlers) updateFlowchart(c *gin.Context) {
	patchFor(h, h.flowchartProject, func(c *gin.Context, id string, p services.FlowchartPatch) (*models.Flowchart, error) {
		return h.svc.Content.UpdateFlowchart(c.Request.Context(), id, p)
	})(c)
}

func (h *handlers) updateEpic(c *gin.Context) {
	patchFor(h, h.epicProject, func(c *gin.Context, id string, p services.EpicPatch) (*models.Epic, error) {
		return h.svc.Content.UpdateEpic(c.Request.Context(), id, p)
	})(c)
}

func (h *handlers) updateTask(c *gin.Context) {
	patchFor(h, h.taskProject, func(c *gin.Context, id string, p services.TaskPatch) (*models.Task, error) {
		return h.svc.Content.UpdateTask(c.Request.Context(), id, p)
	})(c)
}

type taskStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

func (h *handlers) setTaskStatus(c *gin.Context) {
	patchFor(h, h.taskProject, func(c *gin.Context, id string, req taskStatusRequest) (*models.Task, error) {
		return h.svc.Content.SetTaskStatus(c.Request.Context(), id, req.Status)
	})(c)
}

func (h *handlers) listSupportMaterials(c *gin.Context) {
	listFor(h, "support_materials", func(c *gin.Context, id string) ([]*models.SupportMaterial, error) {
		return h.svc.SupportMaterials.List(c.Request.Context(), id)
	})(c)
}

func (h *handlers) listDefaultSupportMaterials(c *gin.Context) {
	list, err := h.svc.SupportMaterials.ListDefaults(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if list == nil {
		list = []*models.SupportMaterial{}
	}
	RespondOK(c, gin.H{"support_materials": list})
}

type supportMaterialRequest struct {
	Name      string             `json:"name"`
	Type      models.ContentType `json:"type"`
	Content   string             `json:"content"`
	IsDefault bool               `json:"is_default"`
}

// createSupportMaterial serves both the project route and the defaults
// route; without :id the material is a global default.
func (h *handlers) createSupportMaterial(c *gin.Context) {
	var req supportMaterialRequest
	if !bind(c, &req) {
		return
	}
	m := &models.SupportMaterial{
		Name:      req.Name,
		Type:      req.Type,
		Content:   req.Content,
		IsDefault: req.IsDefault,
	}
	if c.Param("id") != "" {
		p, ok := h.project(c)
		if !ok {
			return
		}
		m.ProjectID = &p.ID
	}
	out, err := h.svc.SupportMaterials.Create(c.Request.Context(), m)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *handlers) updateSupportMaterial(c *gin.Context) {
	patchFor(h, h.materialProject, func(c *gin.Context, id string, p services.SupportMaterialPatch) (*models.SupportMaterial, error) {
		return h.svc.SupportMaterials.Update(c.Request.Context(), id, p)
	})(c)
}

func (h *handlers) deleteSupportMaterial(c *gin.Context) {
	if !h.guard(c, h.materialProject) {
		return
	}
	if err := h.svc.SupportMaterials.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listGlobalPrompts(c *gin.Context) {
	list, err := h.svc.GlobalPrompts.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if list == nil {
		list = []*models.GlobalPrompt{}
	}
	RespondOK(c, gin.H{"global_prompts": list})
}

type globalPromptRequest struct {
	Type      models.ContentType `json:"type"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	IsDefault bool               `json:"is_default"`
	// IsActive defaults to true when omitted.
	IsActive *bool `json:"is_active"`
}

func (h *handlers) createGlobalPrompt(c *gin.Context) {
	var req globalPromptRequest
	if !bind(c, &req) {
		return
	}
	p := &models.GlobalPrompt{
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
		IsDefault: req.IsDefault,
		IsActive:  req.IsActive == nil || *req.IsActive,
	}
	out, err := h.svc.GlobalPrompts.Create(c.Request.Context(), p)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *handlers) updateGlobalPrompt(c *gin.Context) {
	patchFor(h, sharedRow, func(c *gin.Context, id string, p services.GlobalPromptPatch) (*models.GlobalPrompt, error) {
		return h.svc.GlobalPrompts.Update(c.Request.Context(), id, p)
	})(c)
}

// sharedRow marks rows every caller may edit.
func sharedRow(context.Context, string) (string, error) { return "", nil }

func (h *handlers) deleteGlobalPrompt(c *gin.Context) {
	if err := h.svc.GlobalPrompts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
