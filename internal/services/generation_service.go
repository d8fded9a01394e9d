package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"briefy/internal/events"
	"briefy/internal/llm/client"
	"briefy/internal/llm/interpret"
	"briefy/internal/logger"
	"briefy/internal/models"
	"briefy/internal/observability"
	"briefy/internal/sanitize"
)

// AIGateway is the slice of *client.Gateway the services depend on.
type AIGateway interface {
	Invoke(ctx context.Context, prompt string, media *models.InlineMedia) (string, error)
}

type PromptComposer interface {
	Compose(ctx context.Context, ct models.ContentType, documents []models.Document, notes, projectID string) string
}

type GenerationService interface {
	GenerateContent(ctx context.Context, req models.ContentRequest) (any, error)
	ProcessAndSave(ctx context.Context, projectID string, documents []models.Document, notes string, opts models.SaveOptions) (*models.ProcessResult, error)
	ProcessDocuments(ctx context.Context, documents []models.Document, notes, projectID string, opts models.SaveOptions) *models.ProjectScope
}

type generationService struct {
	gateway  AIGateway
	composer PromptComposer
	projects ProjectService
	content  ContentService
	log      *logger.Logger
}

func NewGenerationService(gateway AIGateway, composer PromptComposer, projects ProjectService, content ContentService, log *logger.Logger) GenerationService {
	if log == nil {
		log = logger.Nop()
	}
	return &generationService{
		gateway:  gateway,
		composer: composer,
		projects: projects,
		content:  content,
		log:      log.With("service", "GenerationService"),
	}
}

// GenerateContent composes the prompt for one kind, calls the model and
// interprets the reply. The PR kind yields a string; the others yield the
// decoded JSON object.
func (s *generationService) GenerateContent(ctx context.Context, req models.ContentRequest) (any, error) {
	if !req.ContentType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentType, req.ContentType)
	}
	ctx, span := observability.StartSpan(ctx, "generate."+string(req.ContentType),
		observability.Attr("project_id", req.ProjectID))
	var err error
	defer func() { observability.EndSpan(span, err) }()

	_, composeSpan := observability.StartSpan(ctx, "prompt.compose")
	prompt := s.composer.Compose(ctx, req.ContentType, req.Documents, req.Notes, req.ProjectID)
	observability.EndSpan(composeSpan, nil)

	invokeCtx, invokeSpan := observability.StartSpan(ctx, "ai.invoke")
	raw, err := s.gateway.Invoke(invokeCtx, prompt, nil)
	if err != nil {
		err = client.Classify(err)
		observability.EndSpan(invokeSpan, err)
		s.log.Error("generation failed", "type", req.ContentType, "error", err)
		return nil, err
	}
	observability.EndSpan(invokeSpan, nil)

	_, interpretSpan := observability.StartSpan(ctx, "ai.interpret")
	res, err := interpret.Interpret(req.ContentType, raw)
	observability.EndSpan(interpretSpan, err)
	if err != nil {
		s.log.Error("model reply not usable", append([]any{"type", req.ContentType, "error", err}, replyFields(err, raw)...)...)
		return nil, err
	}
	return res.Value(), nil
}

// replyFields carries the model text that failed to interpret into the log
// entry, plus the extracted candidate when it was malformed JSON.
func replyFields(err error, raw string) []any {
	fields := []any{"raw", raw}
	var malformed *interpret.MalformedJSONError
	if errors.As(err, &malformed) {
		fields = append(fields, "candidate", malformed.Text)
	}
	return fields
}

var generationStages = map[models.ContentType]struct {
	stage   events.Stage
	message string
}{
	models.ContentPR:        {events.StageGeneratingPR, "Gerando documento técnico..."},
	models.ContentFlowchart: {events.StageGeneratingFlowchart, "Gerando fluxograma..."},
	models.ContentTasks:     {events.StageGeneratingTasks, "Gerando épicos e tasks..."},
}

func (s *generationService) ProcessAndSave(ctx context.Context, projectID string, documents []models.Document, notes string, opts models.SaveOptions) (*models.ProcessResult, error) {
	emit := func(evt events.ProgressEvent) {
		if evt.Metadata == nil {
			evt.Metadata = map[string]string{}
		}
		evt.Metadata["project_id"] = projectID
		events.Emit(ctx, events.GenerationProgress, evt)
	}

	emit(events.NewInfo(events.StagePreparing, "Validando projeto..."))
	if !s.projects.Exists(ctx, projectID) {
		emit(events.NewError(events.StageFailed, ErrProjectNotFound.Error()))
		return nil, ErrProjectNotFound
	}

	generated := s.generateAll(ctx, projectID, documents, notes, opts, emit)

	emit(events.NewInfo(events.StageSaving, "Salvando conteúdo no projeto..."))
	saved := s.content.Persist(ctx, projectID, generated, opts)

	result := &models.ProcessResult{SaveResult: *saved, Generated: generated}
	done := events.NewSuccess(events.StageCompleted, "Conteúdo gerado e salvo com sucesso")
	if !result.Success {
		done = events.NewWarn(events.StageCompleted, fmt.Sprintf("Concluído com %d erro(s)", len(result.Errors)))
	}
	done.Metadata = map[string]string{"project_id": projectID}
	events.Emit(ctx, events.GenerationDone, done)

	s.log.Info("process and save finished", "project_id", projectID, "success", result.Success, "errors", len(result.Errors))
	return result, nil
}

// generateAll runs the enabled kinds one after another. A failed kind keeps
// its message in the matching error field and does not stop the others.
func (s *generationService) generateAll(ctx context.Context, projectID string, documents []models.Document, notes string, opts models.SaveOptions, emit func(events.ProgressEvent)) *models.GeneratedContent {
	out := &models.GeneratedContent{}
	enabled := map[models.ContentType]bool{
		models.ContentPR:        opts.SavePR,
		models.ContentFlowchart: opts.SaveFlowchart,
		models.ContentTasks:     opts.SaveTasks,
	}

	for _, ct := range models.ContentTypes() {
		if !enabled[ct] {
			continue
		}
		st := generationStages[ct]
		emit(events.NewInfo(st.stage, st.message))

		value, err := s.GenerateContent(ctx, models.ContentRequest{
			ContentType: ct,
			Documents:   documents,
			Notes:       notes,
			ProjectID:   projectID,
		})
		if err != nil {
			emit(events.NewError(st.stage, err.Error()))
		}

		switch ct {
		case models.ContentPR:
			if err != nil {
				out.PRError = err.Error()
				continue
			}
			out.PR, _ = value.(string)
		case models.ContentFlowchart:
			if err != nil {
				out.FlowchartError = err.Error()
				continue
			}
			out.Flowchart = value
		case models.ContentTasks:
			if err != nil {
				out.TasksError = err.Error()
				continue
			}
			if obj, ok := value.(map[string]any); ok {
				out.Epics = obj["epics"]
				out.Tasks = obj["tasks"]
			}
		}
	}
	return out
}

// ProcessDocuments generates the kinds enabled in opts and returns a
// sanitized preview without saving anything.
func (s *generationService) ProcessDocuments(ctx context.Context, documents []models.Document, notes, projectID string, opts models.SaveOptions) *models.ProjectScope {
	generated := s.generateAll(ctx, projectID, documents, notes, opts, func(evt events.ProgressEvent) {
		events.Emit(ctx, events.GenerationProgress, evt)
	})

	scope := &models.ProjectScope{Title: "Projeto", Epics: []models.EpicDraft{}, Tasks: []models.TaskDraft{}}
	if len(documents) > 0 && strings.TrimSpace(documents[0].Name) != "" {
		scope.Title = documents[0].Name
	}

	if opts.SavePR {
		pr := generated.PR
		if generated.PRError != "" {
			pr = genPRPrefix + generated.PRError
		}
		scope.Description = summary(pr, 200)
	}

	if generated.FlowchartError == "" {
		if graph := sanitize.Flowchart(generated.Flowchart); graph != nil {
			scope.Flowchart = graph
		}
	}
	if generated.TasksError == "" {
		scope.Epics, scope.Tasks = sanitize.EpicsAndTasks(generated.Epics, generated.Tasks)
	}
	return scope
}
