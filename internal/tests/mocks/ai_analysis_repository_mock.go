package mocks

import (
	"context"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type AIAnalysisRepositoryMock struct {
	ListByProjectFunc   func(ctx context.Context, projectID string) ([]*models.AIAnalysis, error)
	CreateFunc          func(ctx context.Context, analysis *models.AIAnalysis) error
	DeleteByProjectFunc func(ctx context.Context, tx *gorm.DB, projectID string) error
}

func (m *AIAnalysisRepositoryMock) ListByProject(ctx context.Context, projectID string) ([]*models.AIAnalysis, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *AIAnalysisRepositoryMock) Create(ctx context.Context, analysis *models.AIAnalysis) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, analysis)
	}
	return nil
}

func (m *AIAnalysisRepositoryMock) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error {
	if m.DeleteByProjectFunc != nil {
		return m.DeleteByProjectFunc(ctx, tx, projectID)
	}
	return nil
}
