package unit_tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"briefy/internal/events"
	"briefy/internal/llm/client"
	"briefy/internal/llm/interpret"
	"briefy/internal/logger"
	"briefy/internal/models"
	"briefy/internal/services"
	"briefy/internal/tests/mocks"
)

const tasksReply = "Segue:\n```json\n{\"epics\":[{\"title\":\"A\"},{\"title\":\"B\"}],\"tasks\":[{\"title\":\"T\",\"epic_index\":1,\"story_points\":5}]}\n```"

const flowchartReply = `{"nodes":[{"id":"a","type":"input","label":"Início","position":{"x":0,"y":0}}],"edges":[]}`

// replies routes the mock composer's prompt (the content type name) to a
// canned model answer or error.
func replies(answers map[string]string, failures map[string]error) *mocks.AIGatewayMock {
	return &mocks.AIGatewayMock{
		InvokeFunc: func(ctx context.Context, prompt string, media *models.InlineMedia) (string, error) {
			if err, ok := failures[prompt]; ok {
				return "", err
			}
			return answers[prompt], nil
		},
	}
}

func newGenerationService(gateway services.AIGateway, store *contentStore, projects services.ProjectService) services.GenerationService {
	content := services.NewContentServiceWithClock(store.repos(), nil, fixedNow)
	return services.NewGenerationService(gateway, &mocks.PromptComposerMock{}, projects, content, nil)
}

func TestGenerationService_GenerateContent_PRIsTrimmedText(t *testing.T) {
	gateway := replies(map[string]string{"pr": "\n  # Documento  \n"}, nil)
	service := newGenerationService(gateway, &contentStore{}, &mocks.ProjectServiceMock{})

	out, err := service.GenerateContent(context.Background(), models.ContentRequest{ContentType: models.ContentPR})
	require.NoError(t, err)
	assert.Equal(t, "# Documento", out)
}

func TestGenerationService_GenerateContent_FlowchartIsObject(t *testing.T) {
	gateway := replies(map[string]string{"flowchart": flowchartReply}, nil)
	service := newGenerationService(gateway, &contentStore{}, &mocks.ProjectServiceMock{})

	out, err := service.GenerateContent(context.Background(), models.ContentRequest{ContentType: models.ContentFlowchart})
	require.NoError(t, err)
	obj, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Len(t, obj["nodes"], 1)
}

func TestGenerationService_GenerateContent_ClassifiesGatewayErrors(t *testing.T) {
	gateway := replies(nil, map[string]error{"tasks": errors.New("RESOURCE_EXHAUSTED: quota exceeded")})
	service := newGenerationService(gateway, &contentStore{}, &mocks.ProjectServiceMock{})

	_, err := service.GenerateContent(context.Background(), models.ContentRequest{ContentType: models.ContentTasks})
	assert.ErrorIs(t, err, client.ErrQuotaProblem)
	assert.Len(t, gateway.Prompts, 1)
}

func TestGenerationService_GenerateContent_ReplyWithoutJSON(t *testing.T) {
	gateway := replies(map[string]string{"flowchart": "não consegui"}, nil)
	service := newGenerationService(gateway, &contentStore{}, &mocks.ProjectServiceMock{})

	_, err := service.GenerateContent(context.Background(), models.ContentRequest{ContentType: models.ContentFlowchart})
	assert.ErrorIs(t, err, interpret.ErrNoJSON)
}

func TestGenerationService_GenerateContent_RejectsUnknownType(t *testing.T) {
	gateway := &mocks.AIGatewayMock{}
	service := newGenerationService(gateway, &contentStore{}, &mocks.ProjectServiceMock{})

	_, err := service.GenerateContent(context.Background(), models.ContentRequest{ContentType: "video"})
	assert.ErrorIs(t, err, services.ErrInvalidContentType)
	assert.Empty(t, gateway.Prompts)
}

func TestGenerationService_ProcessAndSave_FlowchartFailureIsIsolated(t *testing.T) {
	gateway := replies(
		map[string]string{"pr": "# PR", "tasks": tasksReply},
		map[string]error{"flowchart": errors.New("dial tcp: connection refused")},
	)
	store := &contentStore{}
	service := newGenerationService(gateway, store, &mocks.ProjectServiceMock{})

	rec := &events.Recorder{}
	ctx := rec.Bind(context.Background())
	res, err := service.ProcessAndSave(ctx, "p1", []models.Document{{Name: "doc", Content: "x"}}, "", models.SaveAll())
	require.NoError(t, err)

	assert.False(t, res.Success)
	require.NotNil(t, res.PR)
	assert.Nil(t, res.Flowchart)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "epic-B", *res.Tasks[0].EpicID)
	assert.Equal(t, 5, res.Tasks[0].StoryPoints)
	assert.Equal(t, []string{"Erro ao gerar fluxograma: " + client.ErrNetworkProblem.Error()}, res.Errors)
	assert.Empty(t, store.flowcharts)

	stages := map[events.Stage]bool{}
	for _, evt := range rec.Events() {
		stages[evt.Stage] = true
		assert.Equal(t, "p1", evt.Metadata["project_id"])
	}
	for _, st := range []events.Stage{
		events.StagePreparing, events.StageGeneratingPR, events.StageGeneratingFlowchart,
		events.StageGeneratingTasks, events.StageSaving, events.StageCompleted,
	} {
		assert.True(t, stages[st], "missing stage %s", st)
	}
}

func TestGenerationService_ProcessAndSave_UnknownProject(t *testing.T) {
	gateway := &mocks.AIGatewayMock{}
	projects := &mocks.ProjectServiceMock{ExistsFunc: func(ctx context.Context, id string) bool { return false }}
	service := newGenerationService(gateway, &contentStore{}, projects)

	res, err := service.ProcessAndSave(context.Background(), "ghost", nil, "", models.SaveAll())
	assert.Nil(t, res)
	assert.EqualError(t, err, "Projeto não encontrado")
	assert.Empty(t, gateway.Prompts)
}

func TestGenerationService_ProcessAndSave_OnlyEnabledKindsAreGenerated(t *testing.T) {
	gateway := replies(map[string]string{"pr": "# PR"}, nil)
	store := &contentStore{}
	service := newGenerationService(gateway, store, &mocks.ProjectServiceMock{})

	res, err := service.ProcessAndSave(context.Background(), "p1", nil, "", models.SaveOptions{SavePR: true})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, []string{"pr"}, gateway.Prompts)
	assert.Len(t, store.prs, 1)
}

func TestGenerationService_ProcessDocuments_BuildsPreview(t *testing.T) {
	gateway := replies(map[string]string{"pr": "# PR", "flowchart": flowchartReply, "tasks": tasksReply}, nil)
	store := &contentStore{}
	service := newGenerationService(gateway, store, &mocks.ProjectServiceMock{})

	scope := service.ProcessDocuments(context.Background(), []models.Document{{Name: "Briefing.md", Content: "x"}}, "", "", models.SaveAll())
	assert.Equal(t, "Briefing.md", scope.Title)
	assert.Equal(t, "# PR...", scope.Description)
	require.NotNil(t, scope.Flowchart)
	assert.Len(t, scope.Flowchart.Nodes, 1)
	assert.Len(t, scope.Epics, 2)
	assert.Len(t, scope.Tasks, 1)
	assert.Empty(t, store.prs)
}

func TestGenerationService_ProcessDocuments_ErrorsDegradeToEmptyParts(t *testing.T) {
	gateway := replies(nil, map[string]error{
		"pr":        errors.New("boom"),
		"flowchart": errors.New("boom"),
		"tasks":     errors.New("boom"),
	})
	service := newGenerationService(gateway, &contentStore{}, &mocks.ProjectServiceMock{})

	scope := service.ProcessDocuments(context.Background(), nil, "", "", models.SaveAll())
	assert.Equal(t, "Projeto", scope.Title)
	assert.Equal(t, "Erro ao gerar PR: Falha ao gerar conteúdo: boom...", scope.Description)
	assert.Nil(t, scope.Flowchart)
	assert.Empty(t, scope.Epics)
	assert.Empty(t, scope.Tasks)
}

// observed returns a logger whose entries land in the returned recorder.
func observed() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestGenerationService_GenerateContent_LogsUnusableReply(t *testing.T) {
	cases := []struct {
		name      string
		reply     string
		candidate bool
	}{
		{"no json", "sorry, no json here MARKER1", false},
		{"malformed", `{"nodes": [MARKER2 }`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log, logs := observed()
			gateway := replies(map[string]string{"flowchart": tc.reply}, nil)
			content := services.NewContentService((&contentStore{}).repos(), nil)
			service := services.NewGenerationService(gateway, &mocks.PromptComposerMock{}, &mocks.ProjectServiceMock{}, content, log)

			_, err := service.GenerateContent(context.Background(), models.ContentRequest{ContentType: models.ContentFlowchart})
			require.Error(t, err)

			entries := logs.FilterMessage("model reply not usable").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, tc.reply, fields["raw"])
			if tc.candidate {
				assert.Equal(t, tc.reply, fields["candidate"])
			} else {
				assert.NotContains(t, fields, "candidate")
			}
		})
	}
}

func TestGenerationService_ProcessDocuments_OnlyEnabledKinds(t *testing.T) {
	gateway := replies(map[string]string{"flowchart": flowchartReply}, nil)
	service := newGenerationService(gateway, &contentStore{}, &mocks.ProjectServiceMock{})

	scope := service.ProcessDocuments(context.Background(), nil, "", "", models.SaveOptions{SaveFlowchart: true})
	assert.Equal(t, []string{"flowchart"}, gateway.Prompts)
	assert.Empty(t, scope.Description)
	require.NotNil(t, scope.Flowchart)
	assert.Empty(t, scope.Tasks)
}
