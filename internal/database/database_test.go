package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefy/internal/models"
)

func TestConfigDriver(t *testing.T) {
	assert.Equal(t, "sqlite", Config{Path: "x.db"}.Driver())
	assert.Equal(t, "sqlite", Config{DSN: "   "}.Driver())
	assert.Equal(t, "postgres", Config{DSN: "postgres://u:p@localhost:5432/briefy"}.Driver())
}

func TestInit_InMemoryMigratesAllTables(t *testing.T) {
	db, err := Init(Config{Path: "file:dbinit?mode=memory&cache=shared"})
	require.NoError(t, err)

	for _, m := range []interface{}{
		&models.Project{}, &models.PullRequest{}, &models.Flowchart{}, &models.Epic{},
		&models.Task{}, &models.SupportMaterial{}, &models.GlobalPrompt{},
		&models.VideoExtraction{}, &models.AIAnalysis{},
	} {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasTable("ai_analyses"))
}
