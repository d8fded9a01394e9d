package mocks

import (
	"context"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type EpicRepositoryMock struct {
	GetFunc             func(ctx context.Context, id string) (*models.Epic, error)
	ListByProjectFunc   func(ctx context.Context, projectID string) ([]*models.Epic, error)
	CreateFunc          func(ctx context.Context, epic *models.Epic) error
	UpdateFunc          func(ctx context.Context, epic *models.Epic) error
	DeleteByProjectFunc func(ctx context.Context, tx *gorm.DB, projectID string) error
}

func (m *EpicRepositoryMock) Get(ctx context.Context, id string) (*models.Epic, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *EpicRepositoryMock) ListByProject(ctx context.Context, projectID string) ([]*models.Epic, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *EpicRepositoryMock) Create(ctx context.Context, epic *models.Epic) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, epic)
	}
	return nil
}

func (m *EpicRepositoryMock) Update(ctx context.Context, epic *models.Epic) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, epic)
	}
	return nil
}

func (m *EpicRepositoryMock) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error {
	if m.DeleteByProjectFunc != nil {
		return m.DeleteByProjectFunc(ctx, tx, projectID)
	}
	return nil
}
