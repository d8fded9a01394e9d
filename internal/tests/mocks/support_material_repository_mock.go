package mocks

import (
	"context"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type SupportMaterialRepositoryMock struct {
	GetFunc             func(ctx context.Context, id string) (*models.SupportMaterial, error)
	ListByProjectFunc   func(ctx context.Context, projectID string) ([]*models.SupportMaterial, error)
	ListDefaultsFunc    func(ctx context.Context) ([]*models.SupportMaterial, error)
	FindForProjectFunc  func(ctx context.Context, projectID string, ct models.ContentType) (*models.SupportMaterial, error)
	FindDefaultFunc     func(ctx context.Context, ct models.ContentType) (*models.SupportMaterial, error)
	CreateFunc          func(ctx context.Context, material *models.SupportMaterial) error
	UpdateFunc          func(ctx context.Context, material *models.SupportMaterial) error
	DeleteFunc          func(ctx context.Context, id string) error
	DeleteByProjectFunc func(ctx context.Context, tx *gorm.DB, projectID string) error
}

func (m *SupportMaterialRepositoryMock) Get(ctx context.Context, id string) (*models.SupportMaterial, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *SupportMaterialRepositoryMock) ListByProject(ctx context.Context, projectID string) ([]*models.SupportMaterial, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *SupportMaterialRepositoryMock) ListDefaults(ctx context.Context) ([]*models.SupportMaterial, error) {
	if m.ListDefaultsFunc != nil {
		return m.ListDefaultsFunc(ctx)
	}
	return nil, nil
}

func (m *SupportMaterialRepositoryMock) FindForProject(ctx context.Context, projectID string, ct models.ContentType) (*models.SupportMaterial, error) {
	if m.FindForProjectFunc != nil {
		return m.FindForProjectFunc(ctx, projectID, ct)
	}
	return nil, nil
}

func (m *SupportMaterialRepositoryMock) FindDefault(ctx context.Context, ct models.ContentType) (*models.SupportMaterial, error) {
	if m.FindDefaultFunc != nil {
		return m.FindDefaultFunc(ctx, ct)
	}
	return nil, nil
}

func (m *SupportMaterialRepositoryMock) Create(ctx context.Context, material *models.SupportMaterial) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, material)
	}
	return nil
}

func (m *SupportMaterialRepositoryMock) Update(ctx context.Context, material *models.SupportMaterial) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, material)
	}
	return nil
}

func (m *SupportMaterialRepositoryMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *SupportMaterialRepositoryMock) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error {
	if m.DeleteByProjectFunc != nil {
		return m.DeleteByProjectFunc(ctx, tx, projectID)
	}
	return nil
}
