package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"briefy/internal/events"
	"briefy/internal/llm/client"
	"briefy/internal/llm/interpret"
	"briefy/internal/logger"
	"briefy/internal/models"
	"briefy/internal/prompts"
	"briefy/internal/repositories"
)

type VideoService interface {
	Analyze(ctx context.Context, projectID, fileName, mimeType string, data []byte) (*models.VideoExtraction, *models.Document, error)
	List(ctx context.Context, projectID string) ([]*models.VideoExtraction, error)
}

type videoService struct {
	gateway AIGateway
	repo    repositories.VideoExtractionRepository
	log     *logger.Logger
	now     func() time.Time
}

func NewVideoService(gateway AIGateway, repo repositories.VideoExtractionRepository, log *logger.Logger) VideoService {
	if log == nil {
		log = logger.Nop()
	}
	return &videoService{gateway: gateway, repo: repo, log: log.With("service", "VideoService"), now: time.Now}
}

// Analyze sends the video inline with the analysis prompt and turns the reply
// into an extraction plus a markdown document usable as generation input.
// The extraction is stored only when projectID is set.
func (s *videoService) Analyze(ctx context.Context, projectID, fileName, mimeType string, data []byte) (*models.VideoExtraction, *models.Document, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: video is empty", ErrInvalidInput)
	}
	if !strings.HasPrefix(mimeType, "video/") {
		return nil, nil, fmt.Errorf("%w: unsupported video type %q", ErrInvalidInput, mimeType)
	}
	events.Emit(ctx, events.GenerationProgress, events.NewInfo(events.StageAnalyzingVideo, "Analisando vídeo com IA..."))

	media := &models.InlineMedia{MimeType: mimeType, Base64Data: base64.StdEncoding.EncodeToString(data)}
	raw, err := s.gateway.Invoke(ctx, prompts.Video(), media)
	if err != nil {
		err = client.Classify(err)
		s.log.Error("video analysis failed", "file", fileName, "error", err)
		return nil, nil, fmt.Errorf("Falha no processamento: %w", err)
	}
	obj, err := interpret.ExtractJSON(raw)
	if err != nil {
		s.log.Error("video reply not usable", append([]any{"file", fileName, "error", err}, replyFields(err, raw)...)...)
		return nil, nil, fmt.Errorf("Falha no processamento: %w", err)
	}

	extraction := &models.VideoExtraction{
		ProjectID:     projectID,
		FileName:      fileName,
		ExtractedText: stringOr(obj["extractedText"], "Texto extraído do vídeo"),
		Transcription: stringOr(obj["transcription"], "Transcrição não disponível"),
		AnalysisData:  datatypes.NewJSONType(videoAnalysis(obj["analysis"])),
	}

	if projectID != "" {
		if err := s.repo.Create(ctx, extraction); err != nil {
			return nil, nil, fmt.Errorf("service: save video extraction: %w", err)
		}
	}

	doc := &models.Document{
		Name:    fileName + " (Contexto Extraído)",
		Content: s.contextDocument(extraction),
	}
	events.Emit(ctx, events.GenerationProgress, events.NewSuccess(events.StageAnalyzingVideo, "Processamento concluído!"))
	return extraction, doc, nil
}

func (s *videoService) List(ctx context.Context, projectID string) ([]*models.VideoExtraction, error) {
	list, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("service: list video extractions: %w", err)
	}
	return list, nil
}

func (s *videoService) contextDocument(v *models.VideoExtraction) string {
	a := v.AnalysisData.Data()
	var b strings.Builder
	fmt.Fprintf(&b, "# 🎥 CONTEXTO EXTRAÍDO DO VÍDEO: %s\n\n", v.FileName)
	fmt.Fprintf(&b, "## 📝 DESCRIÇÃO GERAL\n%s\n\n", v.ExtractedText)
	fmt.Fprintf(&b, "## 🎵 TRANSCRIÇÃO\n%s\n\n", v.Transcription)
	fmt.Fprintf(&b, "## 🏷️ TÓPICOS PRINCIPAIS\n%s\n\n", bullets(a.KeyTopics))
	fmt.Fprintf(&b, "## 📋 REQUISITOS IDENTIFICADOS\n%s\n\n", bullets(a.Requirements))
	fmt.Fprintf(&b, "## 🔧 DETALHES TÉCNICOS\n%s\n\n", bullets(a.TechnicalDetails))
	fmt.Fprintf(&b, "## 💼 CONTEXTO DE NEGÓCIO\n%s\n\n", bullets(a.BusinessContext))
	fmt.Fprintf(&b, "---\n*Processado em: %s*", s.now().Format("02/01/2006 15:04:05"))
	return b.String()
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it
	}
	return strings.Join(lines, "\n")
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func videoAnalysis(v any) models.VideoAnalysis {
	obj, _ := v.(map[string]any)
	return models.VideoAnalysis{
		KeyTopics:        stringList(obj["keyTopics"]),
		Requirements:     stringList(obj["requirements"]),
		TechnicalDetails: stringList(obj["technicalDetails"]),
		BusinessContext:  stringList(obj["businessContext"]),
	}
}

func stringList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
