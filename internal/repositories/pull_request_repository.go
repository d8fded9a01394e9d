package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type PullRequestRepository interface {
	Get(ctx context.Context, id string) (*models.PullRequest, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.PullRequest, error)
	Create(ctx context.Context, pr *models.PullRequest) error
	Update(ctx context.Context, pr *models.PullRequest) error
	DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error
}

type pullRequestRepository struct {
	db *gorm.DB
}

func NewPullRequestRepository(db *gorm.DB) PullRequestRepository {
	return &pullRequestRepository{db: db}
}

func (r *pullRequestRepository) Get(ctx context.Context, id string) (*models.PullRequest, error) {
	var pr models.PullRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pull request %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("getting pull request %s: %w", id, err)
	}
	return &pr, nil
}

func (r *pullRequestRepository) ListByProject(ctx context.Context, projectID string) ([]*models.PullRequest, error) {
	var list []*models.PullRequest
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing pull requests for project %s: %w", projectID, err)
	}
	return list, nil
}

func (r *pullRequestRepository) Create(ctx context.Context, pr *models.PullRequest) error {
	if err := r.db.WithContext(ctx).Create(pr).Error; err != nil {
		return fmt.Errorf("creating pull request: %w", err)
	}
	return nil
}

func (r *pullRequestRepository) Update(ctx context.Context, pr *models.PullRequest) error {
	if err := r.db.WithContext(ctx).Save(pr).Error; err != nil {
		return fmt.Errorf("updating pull request %s: %w", pr.ID, err)
	}
	return nil
}

func (r *pullRequestRepository) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error {
	if err := pick(ctx, r.db, tx).Where("project_id = ?", projectID).Delete(&models.PullRequest{}).Error; err != nil {
		return fmt.Errorf("deleting pull requests of project %s: %w", projectID, err)
	}
	return nil
}
