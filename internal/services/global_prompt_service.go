package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"briefy/internal/models"
	"briefy/internal/repositories"
)

// OverrideInvalidator drops cached prompt overrides.
type OverrideInvalidator interface {
	Invalidate(ctx context.Context)
}

type GlobalPromptService interface {
	List(ctx context.Context) ([]*models.GlobalPrompt, error)
	Create(ctx context.Context, p *models.GlobalPrompt) (*models.GlobalPrompt, error)
	Update(ctx context.Context, id string, patch GlobalPromptPatch) (*models.GlobalPrompt, error)
	Delete(ctx context.Context, id string) error
}

type GlobalPromptPatch struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	IsActive  *bool   `json:"is_active"`
	IsDefault *bool   `json:"is_default"`
}

type globalPromptService struct {
	repo  repositories.GlobalPromptRepository
	cache OverrideInvalidator
}

func NewGlobalPromptService(repo repositories.GlobalPromptRepository, cache OverrideInvalidator) GlobalPromptService {
	return &globalPromptService{repo: repo, cache: cache}
}

func (s *globalPromptService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

var contentTypeOrder = map[models.ContentType]int{
	models.ContentPR:        0,
	models.ContentFlowchart: 1,
	models.ContentTasks:     2,
}

// List returns every prompt grouped by content type in generation order.
func (s *globalPromptService) List(ctx context.Context) ([]*models.GlobalPrompt, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: list global prompts: %w", err)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return contentTypeOrder[list[i].Type] < contentTypeOrder[list[j].Type]
	})
	return list, nil
}

func (s *globalPromptService) Create(ctx context.Context, p *models.GlobalPrompt) (*models.GlobalPrompt, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: global prompt is nil", ErrInvalidInput)
	}
	if !p.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentType, p.Type)
	}
	if strings.TrimSpace(p.Content) == "" {
		return nil, fmt.Errorf("%w: global prompt content is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Title) == "" {
		p.Title = "Prompt " + p.Type.Upper()
	}
	active := p.IsActive
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("service: create global prompt: %w", err)
	}
	// gorm applies the column default for a false bool on insert.
	if !active {
		p.IsActive = false
		if err := s.repo.Update(ctx, p); err != nil {
			return nil, fmt.Errorf("service: create global prompt: %w", err)
		}
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *globalPromptService) Update(ctx context.Context, id string, patch GlobalPromptPatch) (*models.GlobalPrompt, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "global prompt", id)
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return nil, fmt.Errorf("%w: global prompt content is required", ErrInvalidInput)
		}
		p.Content = *patch.Content
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if patch.IsDefault != nil {
		p.IsDefault = *patch.IsDefault
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("service: update global prompt %s: %w", id, err)
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *globalPromptService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: delete global prompt %s: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}
