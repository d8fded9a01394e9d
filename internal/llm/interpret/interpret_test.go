package interpret

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefy/internal/models"
)

func TestInterpret_PRIsTrimmedVerbatim(t *testing.T) {
	res, err := Interpret(models.ContentPR, "\n  # Documento {não é json}\n\n")
	require.NoError(t, err)
	assert.Equal(t, "# Documento {não é json}", res.Text)
	assert.Nil(t, res.Object)
}

func TestInterpret_FencedFlowchart(t *testing.T) {
	raw := "Here you go:\n```json\n{\"nodes\":[{\"id\":\"a\",\"type\":\"input\",\"label\":\"Start\",\"position\":{\"x\":1,\"y\":1}}],\"edges\":[]}\n```"

	res, err := Interpret(models.ContentFlowchart, raw)
	require.NoError(t, err)

	nodes := res.Object["nodes"].([]any)
	require.Len(t, nodes, 1)
	assert.Equal(t, "a", nodes[0].(map[string]any)["id"])
	assert.Equal(t, []any{}, res.Object["edges"])
}

func TestInterpret_FenceWinsOverSurroundingBraces(t *testing.T) {
	raw := "Formato {ignorado}\n```\n{\"epics\":[],\"tasks\":[]}\n```\nfim }"
	res, err := Interpret(models.ContentTasks, raw)
	require.NoError(t, err)
	assert.Contains(t, res.Object, "epics")
}

func TestInterpret_GreedyBraceFallback(t *testing.T) {
	raw := `Claro! {"epics":[{"title":"A"}],"tasks":[{"meta":{"x":1}}]} Espero ter ajudado.`
	res, err := Interpret(models.ContentTasks, raw)
	require.NoError(t, err)
	assert.Len(t, res.Object["tasks"], 1)
}

func TestInterpret_NoJSON(t *testing.T) {
	_, err := Interpret(models.ContentFlowchart, "desculpe, não consigo")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestInterpret_MalformedNamesText(t *testing.T) {
	_, err := Interpret(models.ContentTasks, `resultado: {"epics": [1,}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedJSON)

	var mErr *MalformedJSONError
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, `{"epics": [1,}`, mErr.Text)
}

func TestInterpret_UnsupportedType(t *testing.T) {
	_, err := Interpret("video", "{}")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestInterpret_Idempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"nodes\":[],\"edges\":[]}\n```",
		`texto {"a":{"b":[1,2]}} mais`,
		"nada aqui",
	}
	for _, raw := range inputs {
		for _, ct := range models.ContentTypes() {
			r1, e1 := Interpret(ct, raw)
			r2, e2 := Interpret(ct, raw)
			assert.Equal(t, r1, r2)
			assert.Equal(t, e1 == nil, e2 == nil)
		}
	}
}

func TestExtractJSON_IgnoresFences(t *testing.T) {
	out, err := ExtractJSON("```json\n{\"extractedText\":\"x\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "x", out["extractedText"])
}
