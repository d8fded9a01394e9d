package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type ProjectRepository interface {
	Get(ctx context.Context, id string) (*models.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	return &project, nil
}

// ListByOwner returns the owner's projects, newest first. System projects
// are never listed.
func (r *projectRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	var list []*models.Project
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_system = ?", ownerID, false).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("listing projects for %s: %w", ownerID, err)
	}
	return list, nil
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return fmt.Errorf("updating project %s: %w", project.ID, err)
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if err := pick(ctx, r.db, tx).Where("id = ?", id).Delete(&models.Project{}).Error; err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	return nil
}
