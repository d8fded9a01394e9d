package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type VideoExtractionRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]*models.VideoExtraction, error)
	Create(ctx context.Context, extraction *models.VideoExtraction) error
	DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error
}

type videoExtractionRepository struct {
	db *gorm.DB
}

func NewVideoExtractionRepository(db *gorm.DB) VideoExtractionRepository {
	return &videoExtractionRepository{db: db}
}

func (r *videoExtractionRepository) ListByProject(ctx context.Context, projectID string) ([]*models.VideoExtraction, error) {
	var list []*models.VideoExtraction
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing video extractions for project %s: %w", projectID, err)
	}
	return list, nil
}

func (r *videoExtractionRepository) Create(ctx context.Context, extraction *models.VideoExtraction) error {
	if err := r.db.WithContext(ctx).Create(extraction).Error; err != nil {
		return fmt.Errorf("creating video extraction: %w", err)
	}
	return nil
}

func (r *videoExtractionRepository) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error {
	if err := pick(ctx, r.db, tx).Where("project_id = ?", projectID).Delete(&models.VideoExtraction{}).Error; err != nil {
		return fmt.Errorf("deleting video extractions of project %s: %w", projectID, err)
	}
	return nil
}
