package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs_RedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"api_key", "AIzaSecret", "project_id", "p1", "Authorization", "Bearer x"})
	assert.Equal(t, []interface{}{"api_key", "[REDACTED]", "project_id", "p1", "Authorization", "[REDACTED]"}, out)
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"stage", "saving", "dangling"})
	assert.Equal(t, []interface{}{"stage", "saving", "dangling"}, out)
}

func TestNew_ModeSelection(t *testing.T) {
	l, err := New("prod")
	assert.NoError(t, err)
	assert.NotNil(t, l.SugaredLogger)

	l, err = New("")
	assert.NoError(t, err)
	assert.NotNil(t, l.SugaredLogger)
}
