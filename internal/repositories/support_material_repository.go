package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type SupportMaterialRepository interface {
	Get(ctx context.Context, id string) (*models.SupportMaterial, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.SupportMaterial, error)
	ListDefaults(ctx context.Context) ([]*models.SupportMaterial, error)
	// FindForProject returns the newest material of the given type scoped to
	// the project, or nil when there is none.
	FindForProject(ctx context.Context, projectID string, ct models.ContentType) (*models.SupportMaterial, error)
	// FindDefault returns the newest default material of the given type, or
	// nil when there is none.
	FindDefault(ctx context.Context, ct models.ContentType) (*models.SupportMaterial, error)
	Create(ctx context.Context, material *models.SupportMaterial) error
	Update(ctx context.Context, material *models.SupportMaterial) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error
}

type supportMaterialRepository struct {
	db *gorm.DB
}

func NewSupportMaterialRepository(db *gorm.DB) SupportMaterialRepository {
	return &supportMaterialRepository{db: db}
}

func (r *supportMaterialRepository) Get(ctx context.Context, id string) (*models.SupportMaterial, error) {
	var material models.SupportMaterial
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&material).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("support material %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("getting support material %s: %w", id, err)
	}
	return &material, nil
}

func (r *supportMaterialRepository) ListByProject(ctx context.Context, projectID string) ([]*models.SupportMaterial, error) {
	var list []*models.SupportMaterial
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing support materials for project %s: %w", projectID, err)
	}
	return list, nil
}

func (r *supportMaterialRepository) ListDefaults(ctx context.Context) ([]*models.SupportMaterial, error) {
	var list []*models.SupportMaterial
	if err := r.db.WithContext(ctx).Where("is_default = ?", true).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing default support materials: %w", err)
	}
	return list, nil
}

func (r *supportMaterialRepository) FindForProject(ctx context.Context, projectID string, ct models.ContentType) (*models.SupportMaterial, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("project_id = ? AND type = ?", projectID, ct))
}

func (r *supportMaterialRepository) FindDefault(ctx context.Context, ct models.ContentType) (*models.SupportMaterial, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("is_default = ? AND type = ?", true, ct))
}

func (r *supportMaterialRepository) first(ctx context.Context, q *gorm.DB) (*models.SupportMaterial, error) {
	var material models.SupportMaterial
	if err := q.Order("created_at DESC").Limit(1).Take(&material).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding support material: %w", err)
	}
	return &material, nil
}

func (r *supportMaterialRepository) Create(ctx context.Context, material *models.SupportMaterial) error {
	if err := r.db.WithContext(ctx).Create(material).Error; err != nil {
		return fmt.Errorf("creating support material: %w", err)
	}
	return nil
}

func (r *supportMaterialRepository) Update(ctx context.Context, material *models.SupportMaterial) error {
	if err := r.db.WithContext(ctx).Save(material).Error; err != nil {
		return fmt.Errorf("updating support material %s: %w", material.ID, err)
	}
	return nil
}

func (r *supportMaterialRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SupportMaterial{}).Error; err != nil {
		return fmt.Errorf("deleting support material %s: %w", id, err)
	}
	return nil
}

func (r *supportMaterialRepository) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error {
	if err := pick(ctx, r.db, tx).Where("project_id = ?", projectID).Delete(&models.SupportMaterial{}).Error; err != nil {
		return fmt.Errorf("deleting support materials of project %s: %w", projectID, err)
	}
	return nil
}
