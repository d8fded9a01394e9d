package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"briefy/internal/logger"
	"briefy/internal/models"
	"briefy/internal/repositories"
)

type ProjectService interface {
	Get(ctx context.Context, ownerID, id string) (*models.Project, error)
	List(ctx context.Context, ownerID string) ([]*models.Project, error)
	Create(ctx context.Context, ownerID, name, description string) (*models.Project, error)
	Update(ctx context.Context, ownerID, id string, patch ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, ownerID, id string) error
	Exists(ctx context.Context, id string) bool
}

type ProjectPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// projectScoped is implemented by every repository whose rows hang off a
// project.
type projectScoped interface {
	DeleteByProject(ctx context.Context, tx *gorm.DB, projectID string) error
}

// ProjectCascade lists the dependent tables cleared when a project goes away.
type ProjectCascade struct {
	Tasks            projectScoped
	Flowcharts       projectScoped
	PullRequests     projectScoped
	SupportMaterials projectScoped
	VideoExtractions projectScoped
	AIAnalyses       projectScoped
	Epics            projectScoped
}

type projectService struct {
	repo    repositories.ProjectRepository
	cascade ProjectCascade
	tx      repositories.Transactor
	log     *logger.Logger
}

func NewProjectService(repo repositories.ProjectRepository, cascade ProjectCascade, tx repositories.Transactor, log *logger.Logger) ProjectService {
	if log == nil {
		log = logger.Nop()
	}
	return &projectService{repo: repo, cascade: cascade, tx: tx, log: log.With("service", "ProjectService")}
}

// Get returns the project when ownerID owns it. An empty ownerID skips the
// ownership check (CLI use). System projects are never returned.
func (s *projectService) Get(ctx context.Context, ownerID, id string) (*models.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: project id is required", ErrInvalidInput)
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("service: get project %s: %w", id, err)
	}
	if p.IsSystem || (ownerID != "" && p.UserID != ownerID) {
		return nil, ErrProjectNotFound
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context, ownerID string) ([]*models.Project, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service: list projects: %w", err)
	}
	return list, nil
}

func (s *projectService) Create(ctx context.Context, ownerID, name, description string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	p := &models.Project{Name: name, Description: strings.TrimSpace(description), UserID: ownerID}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("service: create project: %w", err)
	}
	return p, nil
}

func (s *projectService) Update(ctx context.Context, ownerID, id string, patch ProjectPatch) (*models.Project, error) {
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
		}
		p.Name = name
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("service: update project %s: %w", id, err)
	}
	return p, nil
}

// Delete removes the project and everything that references it in one
// transaction. Either all rows go or none do.
func (s *projectService) Delete(ctx context.Context, ownerID, id string) error {
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}

	steps := []struct {
		table string
		repo  projectScoped
	}{
		{"tasks", s.cascade.Tasks},
		{"flowcharts", s.cascade.Flowcharts},
		{"pull_requests", s.cascade.PullRequests},
		{"support_materials", s.cascade.SupportMaterials},
		{"video_extractions", s.cascade.VideoExtractions},
		{"ai_analyses", s.cascade.AIAnalyses},
		{"epics", s.cascade.Epics},
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		for _, step := range steps {
			if step.repo == nil {
				continue
			}
			if err := step.repo.DeleteByProject(ctx, tx, p.ID); err != nil {
				return fmt.Errorf("clearing %s: %w", step.table, err)
			}
		}
		return s.repo.Delete(ctx, tx, p.ID)
	})
	if err != nil {
		s.log.Error("project delete rolled back", "project_id", p.ID, "error", err)
		return fmt.Errorf("service: delete project %s: %w", p.ID, err)
	}
	s.log.Info("project deleted", "project_id", p.ID)
	return nil
}

func (s *projectService) Exists(ctx context.Context, id string) bool {
	if strings.TrimSpace(id) == "" {
		return false
	}
	p, err := s.repo.Get(ctx, id)
	return err == nil && p != nil
}
