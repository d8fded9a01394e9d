package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type AIAnalysisRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]*models.AIAnalysis, error)
	Create(ctx context.Context, analysis *models.AIAnalysis) error
	DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error
}

type aiAnalysisRepository struct {
	db *gorm.DB
}

func NewAIAnalysisRepository(db *gorm.DB) AIAnalysisRepository {
	return &aiAnalysisRepository{db: db}
}

func (r *aiAnalysisRepository) ListByProject(ctx context.Context, projectID string) ([]*models.AIAnalysis, error) {
	var list []*models.AIAnalysis
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing AI analyses for project %s: %w", projectID, err)
	}
	return list, nil
}

func (r *aiAnalysisRepository) Create(ctx context.Context, analysis *models.AIAnalysis) error {
	if err := r.db.WithContext(ctx).Create(analysis).Error; err != nil {
		return fmt.Errorf("creating AI analysis: %w", err)
	}
	return nil
}

func (r *aiAnalysisRepository) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error {
	if err := pick(ctx, r.db, tx).Where("project_id = ?", projectID).Delete(&models.AIAnalysis{}).Error; err != nil {
		return fmt.Errorf("deleting AI analyses of project %s: %w", projectID, err)
	}
	return nil
}
