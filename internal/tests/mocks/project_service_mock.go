package mocks

import (
	"context"

	"briefy/internal/models"
	"briefy/internal/services"
)

type ProjectServiceMock struct {
	GetFunc    func(ctx context.Context, ownerID, id string) (*models.Project, error)
	ListFunc   func(ctx context.Context, ownerID string) ([]*models.Project, error)
	CreateFunc func(ctx context.Context, ownerID, name, description string) (*models.Project, error)
	UpdateFunc func(ctx context.Context, ownerID, id string, patch services.ProjectPatch) (*models.Project, error)
	DeleteFunc func(ctx context.Context, ownerID, id string) error
	ExistsFunc func(ctx context.Context, id string) bool
}

func (m *ProjectServiceMock) Get(ctx context.Context, ownerID, id string) (*models.Project, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, ownerID, id)
	}
	return &models.Project{ID: id, UserID: ownerID}, nil
}

func (m *ProjectServiceMock) List(ctx context.Context, ownerID string) ([]*models.Project, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *ProjectServiceMock) Create(ctx context.Context, ownerID, name, description string) (*models.Project, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ownerID, name, description)
	}
	return &models.Project{Name: name, Description: description, UserID: ownerID}, nil
}

func (m *ProjectServiceMock) Update(ctx context.Context, ownerID, id string, patch services.ProjectPatch) (*models.Project, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ownerID, id, patch)
	}
	return &models.Project{ID: id, UserID: ownerID}, nil
}

func (m *ProjectServiceMock) Delete(ctx context.Context, ownerID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	return nil
}

func (m *ProjectServiceMock) Exists(ctx context.Context, id string) bool {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true
}
