package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"briefy/internal/models"
)

type GlobalPromptRepository interface {
	Get(ctx context.Context, id string) (*models.GlobalPrompt, error)
	List(ctx context.Context) ([]*models.GlobalPrompt, error)
	ListActive(ctx context.Context) ([]*models.GlobalPrompt, error)
	Create(ctx context.Context, prompt *models.GlobalPrompt) error
	Update(ctx context.Context, prompt *models.GlobalPrompt) error
	Delete(ctx context.Context, id string) error
}

type globalPromptRepository struct {
	db *gorm.DB
}

func NewGlobalPromptRepository(db *gorm.DB) GlobalPromptRepository {
	return &globalPromptRepository{db: db}
}

func (r *globalPromptRepository) Get(ctx context.Context, id string) (*models.GlobalPrompt, error) {
	var prompt models.GlobalPrompt
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&prompt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("global prompt %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("getting global prompt %s: %w", id, err)
	}
	return &prompt, nil
}

func (r *globalPromptRepository) List(ctx context.Context) ([]*models.GlobalPrompt, error) {
	var list []*models.GlobalPrompt
	if err := r.db.WithContext(ctx).Order("type ASC").Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing global prompts: %w", err)
	}
	return list, nil
}

// ListActive returns active prompts, oldest first, so later rows win when a
// caller folds them by type. The driver error stays wrapped for
// IsMissingTable.
func (r *globalPromptRepository) ListActive(ctx context.Context) ([]*models.GlobalPrompt, error) {
	var list []*models.GlobalPrompt
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("updated_at ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing active global prompts: %w", err)
	}
	return list, nil
}

func (r *globalPromptRepository) Create(ctx context.Context, prompt *models.GlobalPrompt) error {
	if err := r.db.WithContext(ctx).Create(prompt).Error; err != nil {
		return fmt.Errorf("creating global prompt: %w", err)
	}
	return nil
}

func (r *globalPromptRepository) Update(ctx context.Context, prompt *models.GlobalPrompt) error {
	if err := r.db.WithContext(ctx).Save(prompt).Error; err != nil {
		return fmt.Errorf("updating global prompt %s: %w", prompt.ID, err)
	}
	return nil
}

func (r *globalPromptRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.GlobalPrompt{}).Error; err != nil {
		return fmt.Errorf("deleting global prompt %s: %w", id, err)
	}
	return nil
}
