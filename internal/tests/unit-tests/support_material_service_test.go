package unit_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefy/internal/models"
	"briefy/internal/services"
	"briefy/internal/tests/mocks"
)

func TestSupportMaterialService_Resolve_PrefersProjectMaterial(t *testing.T) {
	repo := &mocks.SupportMaterialRepositoryMock{
		FindForProjectFunc: func(ctx context.Context, projectID string, ct models.ContentType) (*models.SupportMaterial, error) {
			return &models.SupportMaterial{Name: "projeto"}, nil
		},
		FindDefaultFunc: func(ctx context.Context, ct models.ContentType) (*models.SupportMaterial, error) {
			t.Fatal("default lookup should not run")
			return nil, nil
		},
	}
	service := services.NewSupportMaterialService(repo)

	m, err := service.Resolve(context.Background(), "p1", models.ContentPR)
	require.NoError(t, err)
	assert.Equal(t, "projeto", m.Name)
}

func TestSupportMaterialService_Resolve_FallsBackToDefault(t *testing.T) {
	repo := &mocks.SupportMaterialRepositoryMock{
		FindDefaultFunc: func(ctx context.Context, ct models.ContentType) (*models.SupportMaterial, error) {
			return &models.SupportMaterial{Name: "padrão", IsDefault: true}, nil
		},
	}
	service := services.NewSupportMaterialService(repo)

	m, err := service.Resolve(context.Background(), "p1", models.ContentTasks)
	require.NoError(t, err)
	assert.Equal(t, "padrão", m.Name)
}

func TestSupportMaterialService_Create_Validates(t *testing.T) {
	service := services.NewSupportMaterialService(&mocks.SupportMaterialRepositoryMock{})

	_, err := service.Create(context.Background(), &models.SupportMaterial{Name: "x", Type: "video", Content: "c"})
	assert.ErrorIs(t, err, services.ErrInvalidContentType)

	_, err = service.Create(context.Background(), &models.SupportMaterial{Name: "", Type: models.ContentPR, Content: "c"})
	assert.Error(t, err)

	_, err = service.Create(context.Background(), &models.SupportMaterial{Name: "x", Type: models.ContentPR, Content: " "})
	assert.Error(t, err)
}

func TestSupportMaterialService_Create_BlankProjectBecomesGlobal(t *testing.T) {
	var created *models.SupportMaterial
	repo := &mocks.SupportMaterialRepositoryMock{
		CreateFunc: func(ctx context.Context, m *models.SupportMaterial) error {
			created = m
			return nil
		},
	}
	service := services.NewSupportMaterialService(repo)

	blank := ""
	_, err := service.Create(context.Background(), &models.SupportMaterial{ProjectID: &blank, Name: "x", Type: models.ContentFlowchart, Content: "c", IsDefault: true})
	require.NoError(t, err)
	assert.Nil(t, created.ProjectID)
}

func TestSupportMaterialService_Update_Error(t *testing.T) {
	repo := &mocks.SupportMaterialRepositoryMock{
		GetFunc: func(ctx context.Context, id string) (*models.SupportMaterial, error) {
			return &models.SupportMaterial{ID: id, Name: "x"}, nil
		},
		UpdateFunc: func(ctx context.Context, m *models.SupportMaterial) error {
			return assert.AnError
		},
	}
	service := services.NewSupportMaterialService(repo)

	content := "novo"
	result, err := service.Update(context.Background(), "m1", services.SupportMaterialPatch{Content: &content})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, result)
}
