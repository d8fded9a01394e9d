package mocks

import (
	"context"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type VideoExtractionRepositoryMock struct {
	ListByProjectFunc   func(ctx context.Context, projectID string) ([]*models.VideoExtraction, error)
	CreateFunc          func(ctx context.Context, extraction *models.VideoExtraction) error
	DeleteByProjectFunc func(ctx context.Context, tx *gorm.DB, projectID string) error
}

func (m *VideoExtractionRepositoryMock) ListByProject(ctx context.Context, projectID string) ([]*models.VideoExtraction, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *VideoExtractionRepositoryMock) Create(ctx context.Context, extraction *models.VideoExtraction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, extraction)
	}
	return nil
}

func (m *VideoExtractionRepositoryMock) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error {
	if m.DeleteByProjectFunc != nil {
		return m.DeleteByProjectFunc(ctx, tx, projectID)
	}
	return nil
}
