package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"briefy/internal/export"
)

type exportFormat struct {
	prefix      string
	ext         string
	contentType string
	render      func(h *handlers, b *export.Bundle) ([]byte, error)
}

var exportFormats = map[string]exportFormat{
	"md": {"projeto", "md", "text/markdown; charset=utf-8", func(_ *handlers, b *export.Bundle) ([]byte, error) {
		return []byte(export.Markdown(b)), nil
	}},
	"csv": {"tasks", "csv", "text/csv; charset=utf-8", func(_ *handlers, b *export.Bundle) ([]byte, error) {
		var buf bytes.Buffer
		err := export.CSV(&buf, b.Tasks)
		return buf.Bytes(), err
	}},
	"json": {"projeto", "json", "application/json", func(_ *handlers, b *export.Bundle) ([]byte, error) {
		return export.JSON(b)
	}},
	"yaml": {"projeto", "yaml", "application/yaml", func(_ *handlers, b *export.Bundle) ([]byte, error) {
		return export.YAML(b)
	}},
	"figjam": {"figjam-fluxograma", "json", "application/json", func(_ *handlers, b *export.Bundle) ([]byte, error) {
		return export.FigJam(b, time.Now())
	}},
	"png": {"fluxograma", "png", "image/png", func(h *handlers, b *export.Bundle) ([]byte, error) {
		var buf bytes.Buffer
		err := export.FlowchartPNG(&buf, b.Flowchart, export.PNGOptions{FontPath: h.cfg.FontPath})
		return buf.Bytes(), err
	}},
}

func (h *handlers) exportProject(c *gin.Context) {
	name := strings.ToLower(c.DefaultQuery("format", "md"))
	format, known := exportFormats[name]
	if !known {
		RespondError(c, http.StatusBadRequest, "invalid_format", fmt.Errorf("unknown export format %q", name))
		return
	}
	p, ok := h.project(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	flowcharts, err := h.svc.Content.ListFlowcharts(ctx, p.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	epics, err := h.svc.Content.ListEpics(ctx, p.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	tasks, err := h.svc.Content.ListTasks(ctx, p.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	bundle := export.FromProject(p, flowcharts, epics, tasks)
	body, err := format.render(h, bundle)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	filename := export.Filename(format.prefix, bundle.Title, format.ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.contentType, body)
}
