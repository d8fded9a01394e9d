package prompts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"briefy/internal/logger"
	"briefy/internal/models"
	"briefy/internal/repositories"
)

const (
	headingDomain    = "\n\n--- CONTEXTO ESPECÍFICO DO DOMÍNIO ---\n"
	headingMaterial  = "\n\n--- MATERIAL DE APOIO PERSONALIZADO (%s) ---\n"
	headingDocuments = "\n\n--- CONTEÚDO DOS DOCUMENTOS ---\n"
	headingDocument  = "\n--- DOCUMENTO %d: %s ---\n"
	headingNotes     = "\n\n--- INFORMAÇÕES ADICIONAIS ---\n"
)

// OverrideSource yields the stored global prompts.
type OverrideSource interface {
	ListActive(ctx context.Context) ([]*models.GlobalPrompt, error)
}

// MaterialSource yields support materials for a content type.
type MaterialSource interface {
	FindForProject(ctx context.Context, projectID string, ct models.ContentType) (*models.SupportMaterial, error)
	FindDefault(ctx context.Context, ct models.ContentType) (*models.SupportMaterial, error)
}

// Composer assembles the final prompt for one content type. It never fails:
// lookups that error are logged and their section is left out.
type Composer struct {
	overrides OverrideSource
	materials MaterialSource
	cache     OverrideCache
	ttl       time.Duration
	log       *logger.Logger
}

func NewComposer(overrides OverrideSource, materials MaterialSource, cache OverrideCache, log *logger.Logger) *Composer {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Composer{
		overrides: overrides,
		materials: materials,
		cache:     cache,
		ttl:       DefaultCacheTTL,
		log:       log.With("component", "PromptComposer"),
	}
}

// SetTTL changes how long resolved overrides stay cached.
func (c *Composer) SetTTL(ttl time.Duration) {
	if ttl > 0 {
		c.ttl = ttl
	}
}

func (c *Composer) Compose(ctx context.Context, ct models.ContentType, documents []models.Document, notes, projectID string) string {
	base := Technical(ct)
	var b strings.Builder
	b.WriteString(base)

	if domain := c.Overrides(ctx)[ct]; domain != "" && strings.TrimSpace(domain) != strings.TrimSpace(base) {
		b.WriteString(headingDomain)
		b.WriteString(domain)
	}

	if material := c.supportMaterial(ctx, ct, projectID); material != "" {
		fmt.Fprintf(&b, headingMaterial, ct.Upper())
		b.WriteString(material)
	}

	if len(documents) > 0 {
		b.WriteString(headingDocuments)
		for i, doc := range documents {
			fmt.Fprintf(&b, headingDocument, i+1, doc.Name)
			b.WriteString(doc.Content)
			b.WriteString("\n")
		}
	}

	if strings.TrimSpace(notes) != "" {
		b.WriteString(headingNotes)
		b.WriteString(notes)
	}

	return b.String()
}

// Overrides resolves the active domain context per content type, serving
// from the cache while it is fresh. Rows flagged as default are ignored.
func (c *Composer) Overrides(ctx context.Context) Overrides {
	if cached, ok := c.cache.Get(ctx); ok {
		return cached
	}
	if c.overrides == nil {
		return Overrides{}
	}

	rows, err := c.overrides.ListActive(ctx)
	if err != nil {
		if repositories.IsMissingTable(err) {
			c.log.Warn("global_prompts table missing, using built-in prompts only")
			c.cache.Set(ctx, Overrides{}, c.ttl)
			return Overrides{}
		}
		c.log.Error("loading global prompts failed", "error", err)
		return Overrides{}
	}

	out := Overrides{}
	for _, row := range rows {
		if row == nil || row.IsDefault || !row.Type.Valid() {
			continue
		}
		if content := strings.TrimSpace(row.Content); content != "" {
			out[row.Type] = content
		}
	}
	c.cache.Set(ctx, out, c.ttl)
	return out
}

// Invalidate drops cached overrides so the next composition reloads them.
func (c *Composer) Invalidate(ctx context.Context) {
	c.cache.Invalidate(ctx)
}

func (c *Composer) supportMaterial(ctx context.Context, ct models.ContentType, projectID string) string {
	if projectID == "" || c.materials == nil {
		return ""
	}
	material, err := c.materials.FindForProject(ctx, projectID, ct)
	if err != nil {
		c.log.Warn("project support material lookup failed", "project_id", projectID, "type", ct, "error", err)
	}
	if material == nil {
		material, err = c.materials.FindDefault(ctx, ct)
		if err != nil {
			c.log.Warn("default support material lookup failed", "type", ct, "error", err)
		}
	}
	if material == nil {
		return ""
	}
	return material.Content
}
