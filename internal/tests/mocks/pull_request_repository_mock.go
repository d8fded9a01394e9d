package mocks

import (
	"context"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type PullRequestRepositoryMock struct {
	GetFunc             func(ctx context.Context, id string) (*models.PullRequest, error)
	ListByProjectFunc   func(ctx context.Context, projectID string) ([]*models.PullRequest, error)
	CreateFunc          func(ctx context.Context, pr *models.PullRequest) error
	UpdateFunc          func(ctx context.Context, pr *models.PullRequest) error
	DeleteByProjectFunc func(ctx context.Context, tx *gorm.DB, projectID string) error
}

func (m *PullRequestRepositoryMock) Get(ctx context.Context, id string) (*models.PullRequest, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *PullRequestRepositoryMock) ListByProject(ctx context.Context, projectID string) ([]*models.PullRequest, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *PullRequestRepositoryMock) Create(ctx context.Context, pr *models.PullRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, pr)
	}
	return nil
}

func (m *PullRequestRepositoryMock) Update(ctx context.Context, pr *models.PullRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, pr)
	}
	return nil
}

func (m *PullRequestRepositoryMock) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error {
	if m.DeleteByProjectFunc != nil {
		return m.DeleteByProjectFunc(ctx, tx, projectID)
	}
	return nil
}
