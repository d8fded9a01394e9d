package sanitize

import (
	"fmt"
	"strings"

	"briefy/internal/models"
)

// Flowchart normalizes a decoded flowchart object. It returns nil when raw
// is not an object or when no node survives.
func Flowchart(raw any) *models.FlowchartGraph {
	g, _ := FlowchartWithWarnings(raw)
	return g
}

// FlowchartWithWarnings is Flowchart plus a note for every repair or drop.
func FlowchartWithWarnings(raw any) (*models.FlowchartGraph, []string) {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	obj, ok := object(raw)
	if !ok {
		warn("flowchart is not an object")
		return nil, warnings
	}

	rawNodes, ok := list(obj["nodes"])
	if !ok {
		warn("nodes is not an array, using empty list")
	}
	rawEdges, ok := list(obj["edges"])
	if !ok {
		warn("edges is not an array, using empty list")
	}

	nodes := make([]models.FlowchartNode, 0, len(rawNodes))
	ids := make(map[string]struct{}, len(rawNodes))
	for i, rn := range rawNodes {
		n, ok := object(rn)
		if !ok && malformed(EntityNode) == Drop {
			warn("node %d is not an object, skipped", i)
			continue
		}
		node, fields := sanitizeNode(n, i)
		if !fields.clean() {
			if invalidFields(EntityNode) == Drop {
				warn("node %d has invalid %v, skipped", i, fields.invalid)
				continue
			}
			warn("node %d has invalid %v, using defaults", i, fields.invalid)
		}
		if id := unique(node.ID, i, ids); id != node.ID {
			warn("node %d has a duplicate id, renamed to %s", i, id)
			node.ID = id
		}
		ids[node.ID] = struct{}{}
		nodes = append(nodes, node)
	}

	// Edges must reference surviving nodes. An endpoint has no default, so
	// an edge without both is never kept whatever Policy says.
	edges := make([]models.FlowchartEdge, 0, len(rawEdges))
	edgeIDs := make(map[string]struct{}, len(rawEdges))
	for i, re := range rawEdges {
		e, ok := object(re)
		if !ok && malformed(EntityEdge) == Drop {
			warn("edge %d is not an object, skipped", i)
			continue
		}
		source, _ := text(e["source"])
		target, _ := text(e["target"])
		_, okSource := ids[source]
		_, okTarget := ids[target]
		if !okSource || !okTarget {
			warn("edge %d references a missing node, skipped", i)
			continue
		}
		fields := &fieldCheck{obj: e}
		id, okID := text(e["id"])
		fields.check("id", okID)
		if !okID {
			id = fmt.Sprintf("edge_%d", i)
		}
		edge := models.FlowchartEdge{ID: id, Source: source, Target: target}
		label, isString := e["label"].(string)
		fields.check("label", isString)
		if isString && strings.TrimSpace(label) != "" {
			edge.Label = label
		}
		if !fields.clean() {
			if invalidFields(EntityEdge) == Drop {
				warn("edge %d has invalid %v, skipped", i, fields.invalid)
				continue
			}
			warn("edge %d has invalid %v, using defaults", i, fields.invalid)
		}
		edge.ID = unique(edge.ID, i, edgeIDs)
		edgeIDs[edge.ID] = struct{}{}
		edges = append(edges, edge)
	}

	if len(nodes) == 0 {
		warn("flowchart has no nodes")
		return nil, warnings
	}
	return &models.FlowchartGraph{Nodes: nodes, Edges: edges}, warnings
}

func sanitizeNode(n map[string]any, i int) (models.FlowchartNode, *fieldCheck) {
	fields := &fieldCheck{obj: n}
	id, ok := text(n["id"])
	fields.check("id", ok)
	if !ok {
		id = fmt.Sprintf("node_%d", i)
	}
	label, ok := text(n["label"])
	fields.check("label", ok)
	if !ok {
		label = fmt.Sprintf("Nó %d", i+1)
	}
	node := models.FlowchartNode{
		ID:       id,
		Type:     models.NodeProcess,
		Label:    label,
		Position: models.Position{X: float64(100 + i*200), Y: 100},
	}
	t, ok := n["type"].(string)
	ok = ok && models.NodeType(t).Valid()
	fields.check("type", ok)
	if ok {
		node.Type = models.NodeType(t)
	}
	pos, ok := object(n["position"])
	if ok {
		x, okX := number(pos["x"])
		y, okY := number(pos["y"])
		ok = okX && okY
		if ok {
			node.Position = models.Position{X: round(x), Y: round(y)}
		}
	}
	fields.check("position", ok)
	return node, fields
}

// unique suffixes id with the entry index until it no longer collides.
func unique(id string, i int, seen map[string]struct{}) string {
	for {
		if _, dup := seen[id]; !dup {
			return id
		}
		id = fmt.Sprintf("%s_%d", id, i)
	}
}
