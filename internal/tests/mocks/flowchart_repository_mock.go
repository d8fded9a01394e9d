package mocks

import (
	"context"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type FlowchartRepositoryMock struct {
	GetFunc             func(ctx context.Context, id string) (*models.Flowchart, error)
	ListByProjectFunc   func(ctx context.Context, projectID string) ([]*models.Flowchart, error)
	CreateFunc          func(ctx context.Context, flowchart *models.Flowchart) error
	UpdateFunc          func(ctx context.Context, flowchart *models.Flowchart) error
	DeleteByProjectFunc func(ctx context.Context, tx *gorm.DB, projectID string) error
}

func (m *FlowchartRepositoryMock) Get(ctx context.Context, id string) (*models.Flowchart, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *FlowchartRepositoryMock) ListByProject(ctx context.Context, projectID string) ([]*models.Flowchart, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *FlowchartRepositoryMock) Create(ctx context.Context, flowchart *models.Flowchart) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, flowchart)
	}
	return nil
}

func (m *FlowchartRepositoryMock) Update(ctx context.Context, flowchart *models.Flowchart) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, flowchart)
	}
	return nil
}

func (m *FlowchartRepositoryMock) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error {
	if m.DeleteByProjectFunc != nil {
		return m.DeleteByProjectFunc(ctx, tx, projectID)
	}
	return nil
}
