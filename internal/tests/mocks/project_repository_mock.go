package mocks

import (
	"context"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type ProjectRepositoryMock struct {
	GetFunc         func(ctx context.Context, id string) (*models.Project, error)
	ListByOwnerFunc func(ctx context.Context, ownerID string) ([]*models.Project, error)
	CreateFunc      func(ctx context.Context, project *models.Project) error
	UpdateFunc      func(ctx context.Context, project *models.Project) error
	DeleteFunc      func(ctx context.Context, tx *gorm.DB, id string) error
}

func (m *ProjectRepositoryMock) Get(ctx context.Context, id string) (*models.Project, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *ProjectRepositoryMock) ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *ProjectRepositoryMock) Create(ctx context.Context, project *models.Project) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	return nil
}

func (m *ProjectRepositoryMock) Update(ctx context.Context, project *models.Project) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, project)
	}
	return nil
}

func (m *ProjectRepositoryMock) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	return nil
}
