package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type EpicRepository interface {
	Get(ctx context.Context, id string) (*models.Epic, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.Epic, error)
	Create(ctx context.Context, epic *models.Epic) error
	Update(ctx context.Context, epic *models.Epic) error
	DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error
}

type epicRepository struct {
	db *gorm.DB
}

func NewEpicRepository(db *gorm.DB) EpicRepository {
	return &epicRepository{db: db}
}

func (r *epicRepository) Get(ctx context.Context, id string) (*models.Epic, error) {
	var epic models.Epic
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&epic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("epic %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("getting epic %s: %w", id, err)
	}
	return &epic, nil
}

func (r *epicRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Epic, error) {
	var list []*models.Epic
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing epics for project %s: %w", projectID, err)
	}
	return list, nil
}

func (r *epicRepository) Create(ctx context.Context, epic *models.Epic) error {
	if err := r.db.WithContext(ctx).Create(epic).Error; err != nil {
		return fmt.Errorf("creating epic: %w", err)
	}
	return nil
}

func (r *epicRepository) Update(ctx context.Context, epic *models.Epic) error {
	if err := r.db.WithContext(ctx).Save(epic).Error; err != nil {
		return fmt.Errorf("updating epic %s: %w", epic.ID, err)
	}
	return nil
}

func (r *epicRepository) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error {
	if err := pick(ctx, r.db, tx).Where("project_id = ?", projectID).Delete(&models.Epic{}).Error; err != nil {
		return fmt.Errorf("deleting epics of project %s: %w", projectID, err)
	}
	return nil
}
