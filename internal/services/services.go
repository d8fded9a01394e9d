package services

import (
	"time"

	"gorm.io/gorm"

	"briefy/internal/logger"
	"briefy/internal/prompts"
	"briefy/internal/repositories"
)

// Deps are the non-database collaborators of the service container.
type Deps struct {
	Gateway  AIGateway
	Cache    prompts.OverrideCache
	CacheTTL time.Duration
	Logger   *logger.Logger
}

// Services aggregates all domain services backed by the database.
type Services struct {
	Projects         ProjectService
	Content          ContentService
	Generation       GenerationService
	Videos           VideoService
	Analyses         AnalysisService
	SupportMaterials SupportMaterialService
	GlobalPrompts    GlobalPromptService
	Composer         *prompts.Composer
}

// NewServices constructs the service container using repositories backed by db.
func NewServices(db *gorm.DB, deps Deps) *Services {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	projectRepo := repositories.NewProjectRepository(db)
	prRepo := repositories.NewPullRequestRepository(db)
	flowchartRepo := repositories.NewFlowchartRepository(db)
	epicRepo := repositories.NewEpicRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	materialRepo := repositories.NewSupportMaterialRepository(db)
	promptRepo := repositories.NewGlobalPromptRepository(db)
	videoRepo := repositories.NewVideoExtractionRepository(db)
	analysisRepo := repositories.NewAIAnalysisRepository(db)

	composer := prompts.NewComposer(promptRepo, materialRepo, deps.Cache, log)
	composer.SetTTL(deps.CacheTTL)

	projects := NewProjectService(projectRepo, ProjectCascade{
		Tasks:            taskRepo,
		Flowcharts:       flowchartRepo,
		PullRequests:     prRepo,
		SupportMaterials: materialRepo,
		VideoExtractions: videoRepo,
		AIAnalyses:       analysisRepo,
		Epics:            epicRepo,
	}, repositories.NewTransactor(db), log)
	content := NewContentService(ContentRepos{
		PullRequests: prRepo,
		Flowcharts:   flowchartRepo,
		Epics:        epicRepo,
		Tasks:        taskRepo,
	}, log)
	materials := NewSupportMaterialService(materialRepo)

	return &Services{
		Projects:         projects,
		Content:          content,
		Generation:       NewGenerationService(deps.Gateway, composer, projects, content, log),
		Videos:           NewVideoService(deps.Gateway, videoRepo, log),
		Analyses:         NewAnalysisService(deps.Gateway, analysisRepo, videoRepo, materials, log),
		SupportMaterials: materials,
		GlobalPrompts:    NewGlobalPromptService(promptRepo, composer),
		Composer:         composer,
	}
}
