package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type FlowchartRepository interface {
	Get(ctx context.Context, id string) (*models.Flowchart, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.Flowchart, error)
	Create(ctx context.Context, flowchart *models.Flowchart) error
	Update(ctx context.Context, flowchart *models.Flowchart) error
	DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error
}

type flowchartRepository struct {
	db *gorm.DB
}

func NewFlowchartRepository(db *gorm.DB) FlowchartRepository {
	return &flowchartRepository{db: db}
}

func (r *flowchartRepository) Get(ctx context.Context, id string) (*models.Flowchart, error) {
	var flowchart models.Flowchart
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&flowchart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("flowchart %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("getting flowchart %s: %w", id, err)
	}
	return &flowchart, nil
}

func (r *flowchartRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Flowchart, error) {
	var list []*models.Flowchart
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing flowcharts for project %s: %w", projectID, err)
	}
	return list, nil
}

func (r *flowchartRepository) Create(ctx context.Context, flowchart *models.Flowchart) error {
	if err := r.db.WithContext(ctx).Create(flowchart).Error; err != nil {
		return fmt.Errorf("creating flowchart: %w", err)
	}
	return nil
}

func (r *flowchartRepository) Update(ctx context.Context, flowchart *models.Flowchart) error {
	if err := r.db.WithContext(ctx).Save(flowchart).Error; err != nil {
		return fmt.Errorf("updating flowchart %s: %w", flowchart.ID, err)
	}
	return nil
}

func (r *flowchartRepository) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error {
	if err := pick(ctx, r.db, tx).Where("project_id = ?", projectID).Delete(&models.Flowchart{}).Error; err != nil {
		return fmt.Errorf("deleting flowcharts of project %s: %w", projectID, err)
	}
	return nil
}
