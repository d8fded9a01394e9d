package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"briefy/internal/events"
	"briefy/internal/llm/client"
	"briefy/internal/llm/interpret"
	"briefy/internal/logger"
	"briefy/internal/models"
	"briefy/internal/prompts"
	"briefy/internal/repositories"
)

type AnalysisService interface {
	Analyze(ctx context.Context, projectID string, documents []models.Document, videos []*models.VideoExtraction, material string) (*models.AIAnalysis, error)
	// AnalyzeProject loads the project's stored videos and its tasks support
	// material before calling Analyze.
	AnalyzeProject(ctx context.Context, projectID string, documents []models.Document) (*models.AIAnalysis, error)
	List(ctx context.Context, projectID string) ([]*models.AIAnalysis, error)
}

type analysisService struct {
	gateway   AIGateway
	repo      repositories.AIAnalysisRepository
	videos    repositories.VideoExtractionRepository
	materials SupportMaterialService
	log       *logger.Logger
	now       func() time.Time
}

func NewAnalysisService(gateway AIGateway, repo repositories.AIAnalysisRepository, videos repositories.VideoExtractionRepository, materials SupportMaterialService, log *logger.Logger) AnalysisService {
	if log == nil {
		log = logger.Nop()
	}
	return &analysisService{
		gateway:   gateway,
		repo:      repo,
		videos:    videos,
		materials: materials,
		log:       log.With("service", "AnalysisService"),
		now:       time.Now,
	}
}

func analysisType(documents []models.Document, videos []*models.VideoExtraction) models.AnalysisType {
	switch {
	case len(documents) > 0 && len(videos) > 0:
		return models.AnalysisCombined
	case len(videos) > 0:
		return models.AnalysisVideo
	default:
		return models.AnalysisDocument
	}
}

func (s *analysisService) Analyze(ctx context.Context, projectID string, documents []models.Document, videos []*models.VideoExtraction, material string) (*models.AIAnalysis, error) {
	if len(documents) == 0 && len(videos) == 0 {
		return nil, ErrNothingToAnalyze
	}
	events.Emit(ctx, events.GenerationProgress, events.NewInfo(events.StageAnalyzingMaterial, "Analisando material com IA..."))

	raw, err := s.gateway.Invoke(ctx, prompts.Analysis(material, documents, videos), nil)
	if err != nil {
		err = client.Classify(err)
		s.log.Error("material analysis failed", "project_id", projectID, "error", err)
		return nil, err
	}
	obj, err := interpret.ExtractJSON(raw)
	if err != nil {
		s.log.Error("analysis reply not usable", append([]any{"project_id", projectID, "error", err}, replyFields(err, raw)...)...)
		return nil, err
	}
	content, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("service: encode analysis: %w", err)
	}

	analysis := &models.AIAnalysis{
		ProjectID:    projectID,
		Title:        "Análise - " + s.now().Format("02/01/2006"),
		Content:      content,
		AnalysisType: analysisType(documents, videos),
	}
	if projectID != "" {
		if err := s.repo.Create(ctx, analysis); err != nil {
			return nil, fmt.Errorf("service: save analysis: %w", err)
		}
	}
	events.Emit(ctx, events.GenerationProgress, events.NewSuccess(events.StageAnalyzingMaterial, "Análise concluída"))
	return analysis, nil
}

func (s *analysisService) AnalyzeProject(ctx context.Context, projectID string, documents []models.Document) (*models.AIAnalysis, error) {
	videos, err := s.videos.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("service: list video extractions: %w", err)
	}
	material, err := s.materials.Resolve(ctx, projectID, models.ContentTasks)
	if err != nil {
		s.log.Warn("support material unavailable", "project_id", projectID, "error", err)
	}
	content := ""
	if material != nil {
		content = material.Content
	}
	return s.Analyze(ctx, projectID, documents, videos, content)
}

func (s *analysisService) List(ctx context.Context, projectID string) ([]*models.AIAnalysis, error) {
	list, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("service: list analyses: %w", err)
	}
	return list, nil
}
