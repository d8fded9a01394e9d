package mocks

import (
	"context"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type GlobalPromptRepositoryMock struct {
	GetFunc        func(ctx context.Context, id string) (*models.GlobalPrompt, error)
	ListFunc       func(ctx context.Context) ([]*models.GlobalPrompt, error)
	ListActiveFunc func(ctx context.Context) ([]*models.GlobalPrompt, error)
	CreateFunc     func(ctx context.Context, prompt *models.GlobalPrompt) error
	UpdateFunc     func(ctx context.Context, prompt *models.GlobalPrompt) error
	DeleteFunc     func(ctx context.Context, id string) error
}

func (m *GlobalPromptRepositoryMock) Get(ctx context.Context, id string) (*models.GlobalPrompt, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *GlobalPromptRepositoryMock) List(ctx context.Context) ([]*models.GlobalPrompt, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *GlobalPromptRepositoryMock) ListActive(ctx context.Context) ([]*models.GlobalPrompt, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *GlobalPromptRepositoryMock) Create(ctx context.Context, prompt *models.GlobalPrompt) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, prompt)
	}
	return nil
}

func (m *GlobalPromptRepositoryMock) Update(ctx context.Context, prompt *models.GlobalPrompt) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, prompt)
	}
	return nil
}

func (m *GlobalPromptRepositoryMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
