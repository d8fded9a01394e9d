package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"briefy/internal/logger"
	"briefy/internal/models"
	"briefy/internal/observability"
	"briefy/internal/repositories"
	"briefy/internal/sanitize"
)

// ContentService persists generated artifacts and lets users edit them
// afterwards.
type ContentService interface {
	Persist(ctx context.Context, projectID string, content *models.GeneratedContent, opts models.SaveOptions) *models.SaveResult

	SavePR(ctx context.Context, projectID, content, title string) (*models.PullRequest, error)
	SaveFlowchart(ctx context.Context, projectID string, raw any, title string) (*models.Flowchart, error)
	SaveEpicsAndTasks(ctx context.Context, projectID string, rawEpics, rawTasks any) ([]*models.Epic, []*models.Task, error)

	ListPRs(ctx context.Context, projectID string) ([]*models.PullRequest, error)
	ListFlowcharts(ctx context.Context, projectID string) ([]*models.Flowchart, error)
	ListEpics(ctx context.Context, projectID string) ([]*models.Epic, error)
	ListTasks(ctx context.Context, projectID string) ([]*models.Task, error)

	GetPR(ctx context.Context, id string) (*models.PullRequest, error)
	GetFlowchart(ctx context.Context, id string) (*models.Flowchart, error)
	GetEpic(ctx context.Context, id string) (*models.Epic, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)

	UpdatePR(ctx context.Context, id string, patch PRPatch) (*models.PullRequest, error)
	UpdateFlowchart(ctx context.Context, id string, patch FlowchartPatch) (*models.Flowchart, error)
	UpdateEpic(ctx context.Context, id string, patch EpicPatch) (*models.Epic, error)
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*models.Task, error)
	SetTaskStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error)
}

type PRPatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Content     *string          `json:"content"`
	Status      *models.PRStatus `json:"status"`
}

type FlowchartPatch struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Graph       *models.FlowchartGraph `json:"graph"`
}

type EpicPatch struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Priority    *models.Priority   `json:"priority"`
	Status      *models.EpicStatus `json:"status"`
}

type TaskPatch struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	StoryPoints *int               `json:"story_points"`
	Category    *models.Category   `json:"category"`
	Status      *models.TaskStatus `json:"status"`
	Priority    *models.Priority   `json:"priority"`
	EpicID      *string            `json:"epic_id"`
	Criteria    []string           `json:"criteria"`
}

type ContentRepos struct {
	PullRequests repositories.PullRequestRepository
	Flowcharts   repositories.FlowchartRepository
	Epics        repositories.EpicRepository
	Tasks        repositories.TaskRepository
}

type contentService struct {
	repos ContentRepos
	log   *logger.Logger
	now   func() time.Time
}

func NewContentService(repos ContentRepos, log *logger.Logger) ContentService {
	if log == nil {
		log = logger.Nop()
	}
	return &contentService{repos: repos, log: log.With("service", "ContentService"), now: time.Now}
}

// NewContentServiceWithClock is NewContentService with a fixed clock for
// default titles.
func NewContentServiceWithClock(repos ContentRepos, log *logger.Logger, now func() time.Time) ContentService {
	s := NewContentService(repos, log).(*contentService)
	s.now = now
	return s
}

const (
	genPRPrefix         = "Erro ao gerar PR: "
	genFlowchartPrefix  = "Erro ao gerar fluxograma: "
	genTasksPrefix      = "Erro ao gerar tasks: "
	savePRPrefix        = "Erro ao salvar PR: "
	saveFlowchartPrefix = "Erro ao salvar fluxograma: "
	saveTasksPrefix     = "Erro ao salvar tasks: "
)

// saveStep is one unit of the persistence saga. Steps never roll each other
// back; each one reports its own outcome.
type saveStep struct {
	kind       models.ContentType
	enabled    bool
	genErr     string
	genPrefix  string
	savePrefix string
	empty      bool
	run        func(ctx context.Context, res *models.SaveResult) error
}

func (s *contentService) Persist(ctx context.Context, projectID string, content *models.GeneratedContent, opts models.SaveOptions) *models.SaveResult {
	res := &models.SaveResult{Errors: []string{}}
	if content == nil {
		content = &models.GeneratedContent{}
	}

	steps := []saveStep{
		{
			kind:       models.ContentPR,
			enabled:    opts.SavePR,
			genErr:     content.PRError,
			genPrefix:  genPRPrefix,
			savePrefix: savePRPrefix,
			run: func(ctx context.Context, res *models.SaveResult) error {
				pr, err := s.SavePR(ctx, projectID, content.PR, opts.PRTitle)
				res.PR = pr
				return err
			},
		},
		{
			kind:       models.ContentFlowchart,
			enabled:    opts.SaveFlowchart,
			genErr:     content.FlowchartError,
			genPrefix:  genFlowchartPrefix,
			savePrefix: saveFlowchartPrefix,
			empty:      content.Flowchart == nil,
			run: func(ctx context.Context, res *models.SaveResult) error {
				fc, err := s.SaveFlowchart(ctx, projectID, content.Flowchart, opts.FlowchartTitle)
				res.Flowchart = fc
				return err
			},
		},
		{
			kind:       models.ContentTasks,
			enabled:    opts.SaveTasks,
			genErr:     content.TasksError,
			genPrefix:  genTasksPrefix,
			savePrefix: saveTasksPrefix,
			empty:      content.Tasks == nil && content.Epics == nil,
			run: func(ctx context.Context, res *models.SaveResult) error {
				epics, tasks, err := s.SaveEpicsAndTasks(ctx, projectID, content.Epics, content.Tasks)
				res.Epics, res.Tasks = epics, tasks
				return err
			},
		},
	}

	for _, step := range steps {
		switch {
		case !step.enabled:
			res.Steps = append(res.Steps, models.StepResult{Kind: step.kind, Status: models.StepSkipped})
		case step.genErr != "":
			msg := step.genPrefix + step.genErr
			res.Errors = append(res.Errors, msg)
			res.Steps = append(res.Steps, models.StepResult{Kind: step.kind, Status: models.StepFailed, Error: msg})
		case step.empty:
			res.Steps = append(res.Steps, models.StepResult{Kind: step.kind, Status: models.StepSkipped})
		default:
			stepCtx, span := observability.StartSpan(ctx, "persist."+string(step.kind),
				observability.Attr("project_id", projectID))
			err := step.run(stepCtx, res)
			observability.EndSpan(span, err)
			if err != nil {
				msg := step.savePrefix + err.Error()
				s.log.Error("persist step failed", "project_id", projectID, "kind", step.kind, "error", err)
				res.Errors = append(res.Errors, msg)
				res.Steps = append(res.Steps, models.StepResult{Kind: step.kind, Status: models.StepFailed, Error: msg})
				continue
			}
			res.Steps = append(res.Steps, models.StepResult{Kind: step.kind, Status: models.StepSaved})
		}
	}

	res.Success = len(res.Errors) == 0
	return res
}

func (s *contentService) date() string {
	return s.now().Format("02/01/2006")
}

func (s *contentService) SavePR(ctx context.Context, projectID, content, title string) (*models.PullRequest, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyPR
	}
	if strings.TrimSpace(title) == "" {
		title = "Documento Técnico - " + s.date()
	}
	pr := &models.PullRequest{
		ProjectID:   projectID,
		Title:       title,
		Description: summary(content, 200),
		Content:     content,
		Status:      models.PRDraft,
	}
	if err := s.repos.PullRequests.Create(ctx, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

func summary(content string, n int) string {
	r := []rune(content)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}

func (s *contentService) SaveFlowchart(ctx context.Context, projectID string, raw any, title string) (*models.Flowchart, error) {
	generic, err := toGeneric(raw)
	if err != nil {
		return nil, ErrInvalidFlowchart
	}
	graph, warnings := sanitize.FlowchartWithWarnings(generic)
	for _, w := range warnings {
		s.log.Warn("flowchart sanitized", "project_id", projectID, "detail", w)
	}
	if graph == nil {
		return nil, ErrInvalidFlowchart
	}
	if strings.TrimSpace(title) == "" {
		title = "Fluxograma - " + s.date()
	}
	fc := &models.Flowchart{
		ProjectID:   projectID,
		Title:       title,
		Description: fmt.Sprintf("Fluxograma gerado automaticamente com %d nós e %d conexões", len(graph.Nodes), len(graph.Edges)),
		Nodes:       graph.Nodes,
		Edges:       graph.Edges,
	}
	if err := s.repos.Flowcharts.Create(ctx, fc); err != nil {
		return nil, err
	}
	return fc, nil
}

// SaveEpicsAndTasks writes epics then tasks one row at a time. A failed row
// is logged and skipped. The error is non-nil only when there was something
// to save and nothing made it.
func (s *contentService) SaveEpicsAndTasks(ctx context.Context, projectID string, rawEpics, rawTasks any) ([]*models.Epic, []*models.Task, error) {
	genericEpics, err := toGeneric(rawEpics)
	if err != nil {
		return nil, nil, fmt.Errorf("epics: %w", err)
	}
	genericTasks, err := toGeneric(rawTasks)
	if err != nil {
		return nil, nil, fmt.Errorf("tasks: %w", err)
	}
	epicDrafts, taskDrafts := sanitize.EpicsAndTasks(genericEpics, genericTasks)

	// slots keeps draft positions so epic_index lines up even when an
	// earlier epic failed to save.
	slots := make([]*models.Epic, len(epicDrafts))
	epics := make([]*models.Epic, 0, len(epicDrafts))
	var lastErr error
	for i, d := range epicDrafts {
		e := &models.Epic{
			ProjectID:   projectID,
			Title:       d.Title,
			Description: d.Description,
			Priority:    d.Priority,
			Status:      models.EpicPending,
		}
		if err := s.repos.Epics.Create(ctx, e); err != nil {
			s.log.Error("epic not saved", "project_id", projectID, "index", i, "error", err)
			lastErr = err
			continue
		}
		slots[i] = e
		epics = append(epics, e)
	}

	tasks := make([]*models.Task, 0, len(taskDrafts))
	for i, d := range taskDrafts {
		t := &models.Task{
			ProjectID:   projectID,
			Title:       d.Title,
			Description: d.Description,
			StoryPoints: d.StoryPoints,
			Status:      models.TaskPending,
			Category:    d.Category,
			Criteria:    d.AcceptanceCriteria,
			Priority:    d.Priority,
		}
		if d.EpicIndex >= 0 && d.EpicIndex < len(slots) && slots[d.EpicIndex] != nil {
			id := slots[d.EpicIndex].ID
			t.EpicID = &id
		}
		if err := s.repos.Tasks.Create(ctx, t); err != nil {
			s.log.Error("task not saved", "project_id", projectID, "index", i, "error", err)
			lastErr = err
			continue
		}
		tasks = append(tasks, t)
	}

	drafted := len(epicDrafts) + len(taskDrafts)
	if drafted > 0 && len(epics)+len(tasks) == 0 && lastErr != nil {
		return epics, tasks, lastErr
	}
	return epics, tasks, nil
}

// toGeneric turns typed values into the map/slice shapes the sanitizer
// reads. Values that already are generic pass through.
func toGeneric(v any) (any, error) {
	switch v.(type) {
	case nil, map[string]any, []any:
		return v, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *contentService) ListPRs(ctx context.Context, projectID string) ([]*models.PullRequest, error) {
	list, err := s.repos.PullRequests.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("service: list pull requests: %w", err)
	}
	return list, nil
}

func (s *contentService) ListFlowcharts(ctx context.Context, projectID string) ([]*models.Flowchart, error) {
	list, err := s.repos.Flowcharts.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("service: list flowcharts: %w", err)
	}
	return list, nil
}

func (s *contentService) ListEpics(ctx context.Context, projectID string) ([]*models.Epic, error) {
	list, err := s.repos.Epics.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("service: list epics: %w", err)
	}
	return list, nil
}

func (s *contentService) ListTasks(ctx context.Context, projectID string) ([]*models.Task, error) {
	list, err := s.repos.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("service: list tasks: %w", err)
	}
	return list, nil
}

func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("service: %s %s: %w", what, id, gorm.ErrRecordNotFound)
	}
	return fmt.Errorf("service: get %s %s: %w", what, id, err)
}

func (s *contentService) GetPR(ctx context.Context, id string) (*models.PullRequest, error) {
	pr, err := s.repos.PullRequests.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "pull request", id)
	}
	return pr, nil
}

func (s *contentService) GetFlowchart(ctx context.Context, id string) (*models.Flowchart, error) {
	fc, err := s.repos.Flowcharts.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "flowchart", id)
	}
	return fc, nil
}

func (s *contentService) GetEpic(ctx context.Context, id string) (*models.Epic, error) {
	e, err := s.repos.Epics.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "epic", id)
	}
	return e, nil
}

func (s *contentService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	t, err := s.repos.Tasks.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "task", id)
	}
	return t, nil
}

func (s *contentService) UpdatePR(ctx context.Context, id string, patch PRPatch) (*models.PullRequest, error) {
	pr, err := s.repos.PullRequests.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "pull request", id)
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *patch.Status)
		}
		pr.Status = *patch.Status
	}
	if patch.Title != nil {
		pr.Title = *patch.Title
	}
	if patch.Description != nil {
		pr.Description = *patch.Description
	}
	if patch.Content != nil {
		pr.Content = *patch.Content
	}
	if err := s.repos.PullRequests.Update(ctx, pr); err != nil {
		return nil, fmt.Errorf("service: update pull request %s: %w", id, err)
	}
	return pr, nil
}

func (s *contentService) UpdateFlowchart(ctx context.Context, id string, patch FlowchartPatch) (*models.Flowchart, error) {
	fc, err := s.repos.Flowcharts.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "flowchart", id)
	}
	if patch.Graph != nil {
		generic, err := toGeneric(patch.Graph)
		if err != nil {
			return nil, ErrInvalidFlowchart
		}
		graph := sanitize.Flowchart(generic)
		if graph == nil {
			return nil, ErrInvalidFlowchart
		}
		fc.Nodes, fc.Edges = graph.Nodes, graph.Edges
	}
	if patch.Title != nil {
		fc.Title = *patch.Title
	}
	if patch.Description != nil {
		fc.Description = *patch.Description
	}
	if err := s.repos.Flowcharts.Update(ctx, fc); err != nil {
		return nil, fmt.Errorf("service: update flowchart %s: %w", id, err)
	}
	return fc, nil
}

func (s *contentService) UpdateEpic(ctx context.Context, id string, patch EpicPatch) (*models.Epic, error) {
	e, err := s.repos.Epics.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "epic", id)
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, *patch.Priority)
		}
		e.Priority = *patch.Priority
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *patch.Status)
		}
		e.Status = *patch.Status
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if err := s.repos.Epics.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("service: update epic %s: %w", id, err)
	}
	return e, nil
}

func (s *contentService) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*models.Task, error) {
	t, err := s.repos.Tasks.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "task", id)
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *patch.Status)
		}
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, *patch.Priority)
		}
		t.Priority = *patch.Priority
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return nil, fmt.Errorf("%w: category %q", ErrInvalidInput, *patch.Category)
		}
		t.Category = *patch.Category
	}
	if patch.StoryPoints != nil {
		if !models.ValidStoryPoints(*patch.StoryPoints) {
			return nil, fmt.Errorf("%w: story points %d", ErrInvalidInput, *patch.StoryPoints)
		}
		t.StoryPoints = *patch.StoryPoints
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.EpicID != nil {
		if *patch.EpicID == "" {
			t.EpicID = nil
		} else {
			epic, err := s.repos.Epics.Get(ctx, *patch.EpicID)
			if err != nil {
				return nil, notFound(err, "epic", *patch.EpicID)
			}
			if epic.ProjectID != t.ProjectID {
				return nil, fmt.Errorf("%w: epic %s belongs to another project", ErrInvalidInput, epic.ID)
			}
			t.EpicID = &epic.ID
		}
	}
	if patch.Criteria != nil {
		t.Criteria = patch.Criteria
	}
	if err := s.repos.Tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("service: update task %s: %w", id, err)
	}
	return t, nil
}

func (s *contentService) SetTaskStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error) {
	return s.UpdateTask(ctx, id, TaskPatch{Status: &status})
}
