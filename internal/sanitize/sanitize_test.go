package sanitize

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefy/internal/models"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestPolicyTable(t *testing.T) {
	assert.Equal(t, Rule{Malformed: Drop, InvalidFields: Repair}, Policy[EntityNode])
	assert.Equal(t, Rule{Malformed: Drop, InvalidFields: Repair}, Policy[EntityEdge])
	assert.Equal(t, Rule{Malformed: Repair, InvalidFields: Repair}, Policy[EntityEpic])
	assert.Equal(t, Rule{Malformed: Drop, InvalidFields: Repair}, Policy[EntityTask])
}

// withPolicy swaps one Policy row for the duration of a test.
func withPolicy(t *testing.T, e Entity, r Rule) {
	t.Helper()
	prev := Policy[e]
	Policy[e] = r
	t.Cleanup(func() { Policy[e] = prev })
}

func TestPolicy_InvalidFieldsDropSkipsNodes(t *testing.T) {
	withPolicy(t, EntityNode, Rule{Malformed: Drop, InvalidFields: Drop})

	g, warnings := FlowchartWithWarnings(decode(t, `{"nodes":[{"id":"a"},{"id":"b","type":"bogus"}],"edges":[{"source":"a","target":"b"}]}`))
	require.NotNil(t, g)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "a", g.Nodes[0].ID)
	assert.Empty(t, g.Edges)
	assert.Contains(t, warnings, "node 1 has invalid [type], skipped")
}

func TestPolicy_MalformedRepairKeepsNodes(t *testing.T) {
	withPolicy(t, EntityNode, Rule{Malformed: Repair, InvalidFields: Repair})

	g := Flowchart(decode(t, `{"nodes":[7]}`))
	require.NotNil(t, g)
	assert.Equal(t, "node_0", g.Nodes[0].ID)
}

func TestPolicy_InvalidFieldsDropSkipsEdges(t *testing.T) {
	withPolicy(t, EntityEdge, Rule{Malformed: Drop, InvalidFields: Drop})

	g := Flowchart(decode(t, `{"nodes":[{"id":"a"},{"id":"b"}],"edges":[
		{"id":"e1","source":"a","target":"b","label":42},
		{"source":"b","target":"a"}
	]}`))
	require.NotNil(t, g)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "edge_1", g.Edges[0].ID)
}

func TestPolicy_EpicAndTaskRows(t *testing.T) {
	withPolicy(t, EntityEpic, Rule{Malformed: Drop, InvalidFields: Drop})
	withPolicy(t, EntityTask, Rule{Malformed: Repair, InvalidFields: Drop})

	epics, tasks := EpicsAndTasks(
		decode(t, `["lixo",{"title":"A"},{"title":"B","priority":"urgent"}]`),
		decode(t, `["solta",{"title":"T","story_points":4},{"title":"U","story_points":5}]`))
	require.Len(t, epics, 1)
	assert.Equal(t, "A", epics[0].Title)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Task 1", tasks[0].Title)
	assert.Equal(t, "U", tasks[1].Title)
}

func TestFlowchart_RejectsNonObjectsAndEmptyGraphs(t *testing.T) {
	for _, raw := range []any{nil, "x", 3.0, []any{}, map[string]any{}, decode(t, `{"nodes":[1,"a",null],"edges":[]}`)} {
		assert.Nil(t, Flowchart(raw), "%v", raw)
	}
}

func TestFlowchart_RepairsNodes(t *testing.T) {
	g := Flowchart(decode(t, `{"nodes":[
		{"id":"a","type":"decision","label":"Ok?","position":{"x":10.4,"y":20.5}},
		{"type":"bogus"},
		7,
		{"id":"c","label":"C","position":{"x":"1","y":2}}
	]}`))
	require.NotNil(t, g)
	require.Len(t, g.Nodes, 3)

	assert.Equal(t, models.FlowchartNode{ID: "a", Type: models.NodeDecision, Label: "Ok?", Position: models.Position{X: 10, Y: 21}}, g.Nodes[0])
	assert.Equal(t, models.FlowchartNode{ID: "node_1", Type: models.NodeProcess, Label: "Nó 2", Position: models.Position{X: 300, Y: 100}}, g.Nodes[1])
	assert.Equal(t, models.FlowchartNode{ID: "c", Type: models.NodeProcess, Label: "C", Position: models.Position{X: 700, Y: 100}}, g.Nodes[2])
	assert.Empty(t, g.Edges)
}

func TestFlowchart_DropsDanglingEdges(t *testing.T) {
	g := Flowchart(decode(t, `{
		"nodes":[{"id":"a","type":"input","label":"A","position":{"x":1,"y":1}},{"id":"b"}],
		"edges":[
			{"id":"e1","source":"x","target":"a"},
			{"source":"a","target":"b","label":""},
			"junk",
			{"id":"e3","source":"b","target":"a","label":"volta"}
		]}`))
	require.NotNil(t, g)
	require.Len(t, g.Edges, 2)
	assert.Equal(t, models.FlowchartEdge{ID: "edge_1", Source: "a", Target: "b"}, g.Edges[0])
	assert.Equal(t, models.FlowchartEdge{ID: "e3", Source: "b", Target: "a", Label: "volta"}, g.Edges[1])
}

func TestFlowchart_NonArrayNodesAndEdges(t *testing.T) {
	g, warnings := FlowchartWithWarnings(map[string]any{"nodes": "nope", "edges": 1})
	assert.Nil(t, g)
	assert.Contains(t, warnings, "nodes is not an array, using empty list")
	assert.Contains(t, warnings, "edges is not an array, using empty list")
}

func TestFlowchart_DuplicateIDsMadeUnique(t *testing.T) {
	g := Flowchart(decode(t, `{"nodes":[{"id":"a"},{"id":"a"}],"edges":[{"id":"e","source":"a","target":"a"},{"id":"e","source":"a","target":"a_1"}]}`))
	require.NotNil(t, g)
	assert.Equal(t, "a", g.Nodes[0].ID)
	assert.Equal(t, "a_1", g.Nodes[1].ID)
	require.Len(t, g.Edges, 2)
	assert.NotEqual(t, g.Edges[0].ID, g.Edges[1].ID)
}

// Random graphs must never leave an edge pointing outside the node set.
func TestFlowchart_NoDanglingEdgesProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 500; round++ {
		var nodes, edges []any
		nodeCount, edgeCount := rng.Intn(6), rng.Intn(8)
		for i := 0; i < nodeCount; i++ {
			switch rng.Intn(4) {
			case 0:
				nodes = append(nodes, "broken")
			case 1:
				nodes = append(nodes, map[string]any{})
			default:
				nodes = append(nodes, map[string]any{"id": fmt.Sprintf("n%d", rng.Intn(4))})
			}
		}
		for i := 0; i < edgeCount; i++ {
			edges = append(edges, map[string]any{
				"source": fmt.Sprintf("n%d", rng.Intn(6)),
				"target": fmt.Sprintf("node_%d", rng.Intn(6)),
			})
		}

		g := Flowchart(map[string]any{"nodes": nodes, "edges": edges})
		if g == nil {
			continue
		}
		require.NotEmpty(t, g.Nodes)
		ids := map[string]bool{}
		for _, n := range g.Nodes {
			ids[n.ID] = true
		}
		for _, e := range g.Edges {
			assert.True(t, ids[e.Source] && ids[e.Target], "dangling edge %+v", e)
		}
	}
}

func TestEpicsAndTasks_Defaults(t *testing.T) {
	epics, tasks := EpicsAndTasks(
		decode(t, `[{"title":"A","priority":"high"},"lixo",{"priority":"urgent"}]`),
		decode(t, `[
			{"title":"T1","story_points":4,"category":"backend","epic_index":5,"acceptance_criteria":["ok",2],"priority":"low"},
			"dropped",
			{"story_points":"8","category":"quantum","epic_index":-1,"acceptance_criteria":"x"},
			{"story_points":13,"epic_index":2.0},
			{"epic_index":1.5}
		]`))

	require.Len(t, epics, 3)
	assert.Equal(t, models.EpicDraft{Title: "A", Description: "Sem descrição", Priority: models.PriorityHigh}, epics[0])
	assert.Equal(t, models.EpicDraft{Title: "Épico 2", Description: "Épico criado automaticamente", Priority: models.PriorityMedium}, epics[1])
	assert.Equal(t, models.EpicDraft{Title: "Épico 3", Description: "Sem descrição", Priority: models.PriorityMedium}, epics[2])

	require.Len(t, tasks, 4)
	assert.Equal(t, models.TaskDraft{
		Title: "T1", Description: "Sem descrição", StoryPoints: 3, Category: models.CategoryBackend,
		EpicIndex: 0, AcceptanceCriteria: []string{"ok"}, Priority: models.PriorityLow,
	}, tasks[0])
	assert.Equal(t, models.TaskDraft{
		Title: "Task 3", Description: "Sem descrição", StoryPoints: 3, Category: models.CategoryFrontend,
		EpicIndex: 0, AcceptanceCriteria: []string{}, Priority: models.PriorityMedium,
	}, tasks[1])
	assert.Equal(t, 13, tasks[2].StoryPoints)
	assert.Equal(t, 2, tasks[2].EpicIndex)
	assert.Equal(t, 0, tasks[3].EpicIndex)
}

func TestEpicsAndTasks_StoryPointsNeverRounded(t *testing.T) {
	for _, sp := range []float64{0, 4, 6, 7, 12, 14, 100, -3, 2.5} {
		_, tasks := EpicsAndTasks(nil, []any{map[string]any{"story_points": sp}})
		require.Len(t, tasks, 1)
		assert.Equal(t, 3, tasks[0].StoryPoints, "story points %v", sp)
	}
	for _, sp := range models.StoryPoints {
		_, tasks := EpicsAndTasks(nil, []any{map[string]any{"story_points": float64(sp)}})
		assert.Equal(t, sp, tasks[0].StoryPoints)
	}
}

func TestEpicsAndTasks_EpicIndexClampedWithoutEpics(t *testing.T) {
	_, tasks := EpicsAndTasks("not a list", []any{map[string]any{"epic_index": 0.0}, map[string]any{"epic_index": 3.0}})
	require.Len(t, tasks, 2)
	assert.Equal(t, 0, tasks[0].EpicIndex)
	assert.Equal(t, 0, tasks[1].EpicIndex)
}

func TestEpicsAndTasks_NonArrays(t *testing.T) {
	epics, tasks := EpicsAndTasks(map[string]any{}, 42)
	assert.Empty(t, epics)
	assert.Empty(t, tasks)
}
