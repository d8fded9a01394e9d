package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"briefy/internal/events"
	"briefy/internal/models"
)

type generateRequest struct {
	Documents []models.Document `json:"documents"`
	Notes     string            `json:"notes"`
	// Options defaults to saving every kind.
	Options *models.SaveOptions `json:"options"`
}

type generateResponse struct {
	*models.ProcessResult
	Events []events.ProgressEvent `json:"events"`
}

func (h *handlers) generateAndSave(c *gin.Context) {
	var req generateRequest
	if !bind(c, &req) {
		return
	}
	p, ok := h.project(c)
	if !ok {
		return
	}
	opts := models.SaveAll()
	if req.Options != nil {
		opts = *req.Options
	}

	rec := &events.Recorder{}
	ctx := events.WithSession(rec.Bind(c.Request.Context()), p.ID)
	res, err := h.svc.Generation.ProcessAndSave(ctx, p.ID, req.Documents, req.Notes, opts)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, generateResponse{ProcessResult: res, Events: rec.Events()})
}

type contentRequest struct {
	Documents []models.Document `json:"documents"`
	Notes     string            `json:"notes"`
	ProjectID string            `json:"project_id"`
	// Options picks the kinds to preview; nil previews every kind.
	Options *models.SaveOptions `json:"options"`
}

func (r contentRequest) kinds() models.SaveOptions {
	if r.Options == nil {
		return models.SaveAll()
	}
	return *r.Options
}

func (h *handlers) generateContent(c *gin.Context) {
	var req contentRequest
	if !bind(c, &req) {
		return
	}
	if req.ProjectID != "" && !h.owns(c, req.ProjectID) {
		return
	}
	ct := models.ContentType(strings.ToLower(c.Param("type")))
	out, err := h.svc.Generation.GenerateContent(c.Request.Context(), models.ContentRequest{
		ContentType: ct,
		Documents:   req.Documents,
		Notes:       req.Notes,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"type": ct, "content": out})
}

func (h *handlers) preview(c *gin.Context) {
	var req contentRequest
	if !bind(c, &req) {
		return
	}
	if req.ProjectID != "" && !h.owns(c, req.ProjectID) {
		return
	}
	RespondOK(c, h.svc.Generation.ProcessDocuments(c.Request.Context(), req.Documents, req.Notes, req.ProjectID, req.kinds()))
}

type videoResponse struct {
	Extraction *models.VideoExtraction `json:"extraction"`
	Document   *models.Document        `json:"document"`
}

func (h *handlers) uploadVideo(c *gin.Context) {
	p, ok := h.project(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return
	}
	if fh.Size > h.cfg.MaxUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large",
			fmt.Errorf("video exceeds %d bytes", h.cfg.MaxUploadBytes))
		return
	}
	f, err := fh.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(f, h.cfg.MaxUploadBytes+1)); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return
	}
	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(buf.Bytes())
	}

	extraction, doc, err := h.svc.Videos.Analyze(c.Request.Context(), p.ID, fh.Filename, mimeType, buf.Bytes())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, videoResponse{Extraction: extraction, Document: doc})
}

func (h *handlers) listVideos(c *gin.Context) {
	p, ok := h.project(c)
	if !ok {
		return
	}
	list, err := h.svc.Videos.List(c.Request.Context(), p.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"videos": list})
}

type analysisRequest struct {
	Documents []models.Document `json:"documents"`
}

func (h *handlers) analyzeProject(c *gin.Context) {
	var req analysisRequest
	if !bind(c, &req) {
		return
	}
	p, ok := h.project(c)
	if !ok {
		return
	}
	a, err := h.svc.Analyses.AnalyzeProject(c.Request.Context(), p.ID, req.Documents)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *handlers) listAnalyses(c *gin.Context) {
	p, ok := h.project(c)
	if !ok {
		return
	}
	list, err := h.svc.Analyses.List(c.Request.Context(), p.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"analyses": list})
}

