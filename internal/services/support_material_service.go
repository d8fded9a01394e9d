package services

import (
	"context"
	"fmt"
	"strings"

	"briefy/internal/models"
	"briefy/internal/repositories"
)

type SupportMaterialService interface {
	List(ctx context.Context, projectID string) ([]*models.SupportMaterial, error)
	ListDefaults(ctx context.Context) ([]*models.SupportMaterial, error)
	Get(ctx context.Context, id string) (*models.SupportMaterial, error)
	// Resolve returns the project's material of the given type, falling back
	// to the newest default. Both absent gives nil, nil.
	Resolve(ctx context.Context, projectID string, ct models.ContentType) (*models.SupportMaterial, error)
	Create(ctx context.Context, m *models.SupportMaterial) (*models.SupportMaterial, error)
	Update(ctx context.Context, id string, patch SupportMaterialPatch) (*models.SupportMaterial, error)
	Delete(ctx context.Context, id string) error
}

type SupportMaterialPatch struct {
	Name      *string `json:"name"`
	Content   *string `json:"content"`
	IsDefault *bool   `json:"is_default"`
}

type supportMaterialService struct {
	repo repositories.SupportMaterialRepository
}

func NewSupportMaterialService(repo repositories.SupportMaterialRepository) SupportMaterialService {
	return &supportMaterialService{repo: repo}
}

func (s *supportMaterialService) List(ctx context.Context, projectID string) ([]*models.SupportMaterial, error) {
	list, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("service: list support materials: %w", err)
	}
	return list, nil
}

func (s *supportMaterialService) ListDefaults(ctx context.Context) ([]*models.SupportMaterial, error) {
	list, err := s.repo.ListDefaults(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: list default support materials: %w", err)
	}
	return list, nil
}

func (s *supportMaterialService) Get(ctx context.Context, id string) (*models.SupportMaterial, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "support material", id)
	}
	return m, nil
}

func (s *supportMaterialService) Resolve(ctx context.Context, projectID string, ct models.ContentType) (*models.SupportMaterial, error) {
	if projectID != "" {
		m, err := s.repo.FindForProject(ctx, projectID, ct)
		if err != nil {
			return nil, fmt.Errorf("service: find support material: %w", err)
		}
		if m != nil {
			return m, nil
		}
	}
	m, err := s.repo.FindDefault(ctx, ct)
	if err != nil {
		return nil, fmt.Errorf("service: find default support material: %w", err)
	}
	return m, nil
}

func (s *supportMaterialService) Create(ctx context.Context, m *models.SupportMaterial) (*models.SupportMaterial, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: support material is nil", ErrInvalidInput)
	}
	if strings.TrimSpace(m.Name) == "" {
		return nil, fmt.Errorf("%w: support material name is required", ErrInvalidInput)
	}
	if !m.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentType, m.Type)
	}
	if strings.TrimSpace(m.Content) == "" {
		return nil, fmt.Errorf("%w: support material content is required", ErrInvalidInput)
	}
	if m.ProjectID != nil && *m.ProjectID == "" {
		m.ProjectID = nil
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("service: create support material: %w", err)
	}
	return m, nil
}

func (s *supportMaterialService) Update(ctx context.Context, id string, patch SupportMaterialPatch) (*models.SupportMaterial, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "support material", id)
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("%w: support material name is required", ErrInvalidInput)
		}
		m.Name = *patch.Name
	}
	if patch.Content != nil {
		m.Content = *patch.Content
	}
	if patch.IsDefault != nil {
		m.IsDefault = *patch.IsDefault
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("service: update support material %s: %w", id, err)
	}
	return m, nil
}

func (s *supportMaterialService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: delete support material %s: %w", id, err)
	}
	return nil
}
