package mocks

import (
	"context"

	"briefy/internal/models"
)

// PromptComposerMock returns the content type name as the prompt unless
// ComposeFunc is set, which makes it easy to route replies per kind.
type PromptComposerMock struct {
	ComposeFunc     func(ctx context.Context, ct models.ContentType, documents []models.Document, notes, projectID string) string
	InvalidateFunc  func(ctx context.Context)
	InvalidateCalls int
}

func (m *PromptComposerMock) Compose(ctx context.Context, ct models.ContentType, documents []models.Document, notes, projectID string) string {
	if m.ComposeFunc != nil {
		return m.ComposeFunc(ctx, ct, documents, notes, projectID)
	}
	return string(ct)
}

func (m *PromptComposerMock) Invalidate(ctx context.Context) {
	m.InvalidateCalls++
	if m.InvalidateFunc != nil {
		m.InvalidateFunc(ctx)
	}
}
