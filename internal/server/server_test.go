package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefy/internal/database"
	"briefy/internal/models"
	"briefy/internal/prompts"
	"briefy/internal/services"
	"briefy/internal/tests/mocks"
)

const testSecret = "test-secret"

const (
	prReply        = "# Documento Técnico\n\nLoja virtual com checkout."
	flowchartReply = `{"nodes":[{"id":"a","type":"input","label":"Início","position":{"x":0,"y":0}},{"id":"b","type":"output","label":"Fim","position":{"x":0,"y":120}}],"edges":[{"id":"e1","source":"a","target":"b"}]}`
	tasksReply     = "```json\n{\"epics\":[{\"title\":\"Checkout\",\"priority\":\"high\"}],\"tasks\":[{\"title\":\"Tela de pagamento\",\"epic_index\":0,\"story_points\":5,\"category\":\"frontend\"}]}\n```"
	videoReply     = `{"extractedText":"Tela de login","transcription":"Vamos começar","keyPoints":["login"],"visualElements":["formulário"]}`
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// modelReplies answers by the kind the real prompt templates ask for.
func modelReplies() *mocks.AIGatewayMock {
	return &mocks.AIGatewayMock{
		InvokeFunc: func(ctx context.Context, prompt string, media *models.InlineMedia) (string, error) {
			switch {
			case media != nil:
				return videoReply, nil
			case strings.Contains(prompt, "FLUXOGRAMA"):
				return flowchartReply, nil
			case strings.Contains(prompt, "ÉPICOS e TASKS"):
				return tasksReply, nil
			default:
				return prReply, nil
			}
		},
	}
}

var dbName = regexp.MustCompile(`[^a-zA-Z0-9]+`)

func newTestServer(t *testing.T, secret string, gateway services.AIGateway, pinger Pinger) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName.ReplaceAllString(t.Name(), "_"))
	db, err := database.Init(database.Config{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	svc := services.NewServices(db, services.Deps{Gateway: gateway, Cache: prompts.NewMemoryCache()})
	return New(Config{JWTSecret: secret}, svc, pinger, nil)
}

func token(t *testing.T, subject string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, srv *Server, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	srv.Engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func createProject(t *testing.T, srv *Server, bearer, name string) *models.Project {
	t.Helper()
	w := do(t, srv, http.MethodPost, "/api/projects", bearer, gin.H{"name": name, "description": "Projeto de teste"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[*models.Project](t, w)
}

func TestHealthz_NoAuth(t *testing.T) {
	srv := newTestServer(t, testSecret, &mocks.AIGatewayMock{}, nil)

	w := do(t, srv, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestAuth_RejectsMissingAndForgedTokens(t *testing.T) {
	srv := newTestServer(t, testSecret, &mocks.AIGatewayMock{}, nil)

	w := do(t, srv, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode[ErrorEnvelope](t, w)
	assert.Equal(t, "unauthorized", env.Error.Code)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "mallory"})
	signed, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	w = do(t, srv, http.MethodGet, "/api/projects", signed, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProjects_ScopedToTokenSubject(t *testing.T) {
	srv := newTestServer(t, testSecret, &mocks.AIGatewayMock{}, nil)
	alice, bob := token(t, "alice"), token(t, "bob")

	p := createProject(t, srv, alice, "Loja")
	assert.Equal(t, "alice", p.UserID)

	w := do(t, srv, http.MethodGet, "/api/projects/"+p.ID, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode[ErrorEnvelope](t, w).Error.Code)

	w = do(t, srv, http.MethodGet, "/api/projects", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Projects []*models.Project `json:"projects"`
	}](t, w)
	require.Len(t, list.Projects, 1)
	assert.Equal(t, "Loja", list.Projects[0].Name)

	w = do(t, srv, http.MethodPatch, "/api/projects/"+p.ID, alice, gin.H{"name": "Loja 2"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Loja 2", decode[*models.Project](t, w).Name)

	w = do(t, srv, http.MethodDelete, "/api/projects/"+p.ID, alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, srv, http.MethodGet, "/api/projects/"+p.ID, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjects_CreateValidatesName(t *testing.T) {
	srv := newTestServer(t, "", &mocks.AIGatewayMock{}, nil)

	w := do(t, srv, http.MethodPost, "/api/projects", "", gin.H{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode[ErrorEnvelope](t, w).Error.Code)
}

func TestGenerateAndExport(t *testing.T) {
	srv := newTestServer(t, "", modelReplies(), nil)
	p := createProject(t, srv, "", "Minha Loja")

	w := do(t, srv, http.MethodPost, "/api/projects/"+p.ID+"/generate", "", gin.H{
		"documents": []models.Document{{Name: "briefing.md", Content: "Uma loja virtual"}},
		"notes":     "foco em mobile",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[struct {
		Success bool                `json:"success"`
		Errors  []string            `json:"errors"`
		Tasks   []*models.Task      `json:"tasks"`
		Events  []map[string]any    `json:"events"`
		Steps   []models.StepResult `json:"steps"`
	}](t, w)
	assert.True(t, res.Success, res.Errors)
	require.Len(t, res.Tasks, 1)
	assert.NotNil(t, res.Tasks[0].EpicID)
	assert.NotEmpty(t, res.Events)
	assert.Len(t, res.Steps, 3)

	w = do(t, srv, http.MethodGet, "/api/projects/"+p.ID+"/tasks", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tela de pagamento")

	w = do(t, srv, http.MethodGet, "/api/projects/"+p.ID+"/export?format=md", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tela de pagamento")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "projeto-minha-loja.md")

	w = do(t, srv, http.MethodGet, "/api/projects/"+p.ID+"/export?format=csv", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Status,Titulo,Descricao,Pontos,Categoria"))

	w = do(t, srv, http.MethodGet, "/api/projects/"+p.ID+"/export?format=png", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = do(t, srv, http.MethodGet, "/api/projects/"+p.ID+"/export?format=docx", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExport_FigJamWithoutFlowchart(t *testing.T) {
	srv := newTestServer(t, "", &mocks.AIGatewayMock{}, nil)
	p := createProject(t, srv, "", "Vazio")

	w := do(t, srv, http.MethodGet, "/api/projects/"+p.ID+"/export?format=figjam", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "no_flowchart", decode[ErrorEnvelope](t, w).Error.Code)
}

func TestGenerateContent_ErrorMapping(t *testing.T) {
	gateway := &mocks.AIGatewayMock{
		InvokeFunc: func(ctx context.Context, prompt string, media *models.InlineMedia) (string, error) {
			return "", errors.New("RESOURCE_EXHAUSTED: quota exceeded")
		},
	}
	srv := newTestServer(t, "", gateway, nil)

	w := do(t, srv, http.MethodPost, "/api/generate/pr", "", gin.H{"documents": []models.Document{{Name: "a", Content: "b"}}})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "ai_quota", decode[ErrorEnvelope](t, w).Error.Code)

	w = do(t, srv, http.MethodPost, "/api/generate/diagram", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_content_type", decode[ErrorEnvelope](t, w).Error.Code)
}

func TestGenerateContent_ReturnsParsedContent(t *testing.T) {
	srv := newTestServer(t, "", modelReplies(), nil)

	w := do(t, srv, http.MethodPost, "/api/generate/flowchart", "", gin.H{"documents": []models.Document{{Name: "a", Content: "b"}}})
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[struct {
		Type    string         `json:"type"`
		Content map[string]any `json:"content"`
	}](t, w)
	assert.Equal(t, "flowchart", out.Type)
	assert.Len(t, out.Content["nodes"], 2)
}

func TestPreview(t *testing.T) {
	srv := newTestServer(t, "", modelReplies(), nil)

	w := do(t, srv, http.MethodPost, "/api/preview", "", gin.H{"documents": []models.Document{{Name: "Briefing", Content: "x"}}})
	require.Equal(t, http.StatusOK, w.Code)
	scope := decode[models.ProjectScope](t, w)
	assert.Equal(t, "Briefing", scope.Title)
	assert.Len(t, scope.Tasks, 1)
	require.NotNil(t, scope.Flowchart)
}

func TestUploadVideo(t *testing.T) {
	srv := newTestServer(t, "", modelReplies(), nil)
	p := createProject(t, srv, "", "Video")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="demo.mp4"`)
	header.Set("Content-Type", "video/mp4")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake video bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/projects/"+p.ID+"/videos", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.Engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "demo.mp4 (Contexto Extraído)")

	w = do(t, srv, http.MethodGet, "/api/projects/"+p.ID+"/videos", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tela de login")
}

func TestTaskEditing(t *testing.T) {
	srv := newTestServer(t, "", modelReplies(), nil)
	p := createProject(t, srv, "", "Edição")
	w := do(t, srv, http.MethodPost, "/api/projects/"+p.ID+"/generate", "", gin.H{
		"documents": []models.Document{{Name: "a", Content: "b"}},
		"options":   models.SaveOptions{SaveTasks: true},
	})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[models.SaveResult](t, w)
	require.Len(t, res.Tasks, 1)
	id := res.Tasks[0].ID

	w = do(t, srv, http.MethodPut, "/api/tasks/"+id+"/status", "", gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.TaskApproved, decode[*models.Task](t, w).Status)

	w = do(t, srv, http.MethodPatch, "/api/tasks/"+id, "", gin.H{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPatch, "/api/tasks/missing", "", gin.H{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGlobalPrompts_InactiveOnCreate(t *testing.T) {
	srv := newTestServer(t, "", &mocks.AIGatewayMock{}, nil)

	w := do(t, srv, http.MethodPost, "/api/global-prompts", "", gin.H{"type": "pr", "content": "Escreva em inglês", "is_active": false})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[*models.GlobalPrompt](t, w)
	assert.False(t, created.IsActive)
	assert.Equal(t, "Prompt PR", created.Title)

	w = do(t, srv, http.MethodGet, "/api/global-prompts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Escreva em inglês")
}

func TestSupportMaterials(t *testing.T) {
	srv := newTestServer(t, "", &mocks.AIGatewayMock{}, nil)
	p := createProject(t, srv, "", "Materiais")

	w := do(t, srv, http.MethodPost, "/api/projects/"+p.ID+"/support-materials", "", gin.H{"name": "Guia", "type": "tasks", "content": "Use pontos Fibonacci"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	m := decode[*models.SupportMaterial](t, w)
	require.NotNil(t, m.ProjectID)
	assert.Equal(t, p.ID, *m.ProjectID)

	w = do(t, srv, http.MethodPost, "/api/support-materials", "", gin.H{"name": "Padrão", "type": "pr", "content": "Modelo", "is_default": true})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, srv, http.MethodGet, "/api/support-materials/defaults", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Padrão")

	w = do(t, srv, http.MethodDelete, "/api/support-materials/"+m.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPingAI(t *testing.T) {
	srv := newTestServer(t, "", &mocks.AIGatewayMock{}, nil)
	w := do(t, srv, http.MethodGet, "/api/ai/ping", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	srv = newTestServer(t, "", &mocks.AIGatewayMock{}, pingerFunc(func(ctx context.Context) error { return nil }))
	w = do(t, srv, http.MethodGet, "/api/ai/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestByIDRoutes_OnlyTheOwnerMayChangeRows(t *testing.T) {
	srv := newTestServer(t, testSecret, modelReplies(), nil)
	alice, bob := token(t, "alice"), token(t, "bob")
	p := createProject(t, srv, alice, "Da Alice")

	w := do(t, srv, http.MethodPost, "/api/projects/"+p.ID+"/generate", alice, gin.H{
		"documents": []models.Document{{Name: "a", Content: "b"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[models.SaveResult](t, w)
	require.NotNil(t, res.PR)
	require.NotNil(t, res.Flowchart)
	require.NotEmpty(t, res.Epics)
	require.NotEmpty(t, res.Tasks)

	w = do(t, srv, http.MethodPost, "/api/projects/"+p.ID+"/support-materials", alice,
		gin.H{"name": "Guia", "type": "tasks", "content": "Segredo da Alice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	material := decode[*models.SupportMaterial](t, w)

	attempts := []struct {
		method, path string
		body         any
	}{
		{http.MethodPatch, "/api/pull-requests/" + res.PR.ID, gin.H{"title": "hacked by bob"}},
		{http.MethodPatch, "/api/flowcharts/" + res.Flowchart.ID, gin.H{"title": "hacked by bob"}},
		{http.MethodPatch, "/api/epics/" + res.Epics[0].ID, gin.H{"title": "hacked by bob"}},
		{http.MethodPatch, "/api/tasks/" + res.Tasks[0].ID, gin.H{"title": "hacked by bob"}},
		{http.MethodPut, "/api/tasks/" + res.Tasks[0].ID + "/status", gin.H{"status": "approved"}},
		{http.MethodPatch, "/api/support-materials/" + material.ID, gin.H{"name": "hacked by bob"}},
		{http.MethodDelete, "/api/support-materials/" + material.ID, nil},
		{http.MethodPost, "/api/generate/tasks", gin.H{"project_id": p.ID}},
		{http.MethodPost, "/api/preview", gin.H{"project_id": p.ID}},
	}
	for _, a := range attempts {
		w := do(t, srv, a.method, a.path, bob, a.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s: %s", a.method, a.path, w.Body.String())
	}

	w = do(t, srv, http.MethodGet, "/api/projects/"+p.ID+"/tasks", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "hacked by bob")
	assert.Contains(t, w.Body.String(), `"status":"pending"`)

	w = do(t, srv, http.MethodGet, "/api/projects/"+p.ID+"/support-materials", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Segredo da Alice")

	w = do(t, srv, http.MethodPatch, "/api/tasks/"+res.Tasks[0].ID, alice, gin.H{"title": "renomeada"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "renomeada", decode[*models.Task](t, w).Title)
}
