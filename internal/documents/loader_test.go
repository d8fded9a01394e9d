package documents

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefy/internal/events"
)

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string][]byte{
		"briefing.md":          []byte("# Briefing"),
		"notes.txt":            []byte("anotações"),
		"specs/api.md":         []byte("GET /health"),
		"specs/deep/flows.md":  []byte("fluxos"),
		"assets/logo.png":      {0x89, 'P', 'N', 'G'},
		"specs/deep/dump.data": {0x00, 0x01, 0x02},
	}
	for name, content := range files {
		full := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, content, 0o644))
	}
	return root
}

func TestLoader_DoubleStarMatchesNestedFiles(t *testing.T) {
	root := setupTree(t)

	docs, skipped, err := NewLoader(root).Load(context.Background(), "**/*.md")
	require.NoError(t, err)
	assert.Empty(t, skipped)

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"briefing.md", "specs/api.md", "specs/deep/flows.md"}, names)
	assert.Equal(t, "# Briefing", docs[0].Content)
}

func TestLoader_SkipsBinaryFiles(t *testing.T) {
	root := setupTree(t)

	rec := &events.Recorder{}
	docs, skipped, err := NewLoader(root).Load(rec.Bind(context.Background()), "**/*")
	require.NoError(t, err)
	assert.Len(t, docs, 4)
	assert.Len(t, skipped, 2)
	for _, s := range skipped {
		assert.Equal(t, "binary file", s.Reason)
	}
	assert.NotEmpty(t, rec.Events())
}

func TestLoader_DeduplicatesOverlappingPatterns(t *testing.T) {
	root := setupTree(t)

	docs, _, err := NewLoader(root).Load(context.Background(), "*.md", "briefing.md")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestLoader_RespectsLimitAndSize(t *testing.T) {
	root := setupTree(t)

	l := NewLoader(root)
	l.Limit = 1
	docs, skipped, err := l.Load(context.Background(), "**/*.md")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Len(t, skipped, 2)

	l = NewLoader(root)
	l.MaxBytes = 5
	_, skipped, err = l.Load(context.Background(), "briefing.md")
	assert.ErrorIs(t, err, ErrNoMatches)
	require.Len(t, skipped, 1)
}

func TestLoader_RejectsEscapingPatterns(t *testing.T) {
	root := setupTree(t)

	_, _, err := NewLoader(filepath.Join(root, "specs")).Load(context.Background(), "../*.md")
	assert.ErrorIs(t, err, ErrEscapesRoot)
}

func TestLoader_NoMatches(t *testing.T) {
	root := setupTree(t)

	_, _, err := NewLoader(root).Load(context.Background(), "*.pdf")
	assert.ErrorIs(t, err, ErrNoMatches)

	_, _, err = NewLoader(root).Load(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyPattern)
}

func TestIsBinaryFile(t *testing.T) {
	root := setupTree(t)

	bin, err := isBinaryFile(filepath.Join(root, "specs/deep/dump.data"))
	require.NoError(t, err)
	assert.True(t, bin)

	bin, err = isBinaryFile(filepath.Join(root, "notes.txt"))
	require.NoError(t, err)
	assert.False(t, bin)
}
