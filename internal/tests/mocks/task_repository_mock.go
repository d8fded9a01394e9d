package mocks

import (
	"context"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type TaskRepositoryMock struct {
	GetFunc             func(ctx context.Context, id string) (*models.Task, error)
	ListByProjectFunc   func(ctx context.Context, projectID string) ([]*models.Task, error)
	CreateFunc          func(ctx context.Context, task *models.Task) error
	UpdateFunc          func(ctx context.Context, task *models.Task) error
	DeleteByProjectFunc func(ctx context.Context, tx *gorm.DB, projectID string) error
}

func (m *TaskRepositoryMock) Get(ctx context.Context, id string) (*models.Task, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *TaskRepositoryMock) ListByProject(ctx context.Context, projectID string) ([]*models.Task, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *TaskRepositoryMock) Create(ctx context.Context, task *models.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *TaskRepositoryMock) Update(ctx context.Context, task *models.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *TaskRepositoryMock) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error {
	if m.DeleteByProjectFunc != nil {
		return m.DeleteByProjectFunc(ctx, tx, projectID)
	}
	return nil
}
