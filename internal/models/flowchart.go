package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NodeType string

const (
	NodeInput    NodeType = "input"
	NodeProcess  NodeType = "process"
	NodeOutput   NodeType = "output"
	NodeDecision NodeType = "decision"
)

func (t NodeType) Valid() bool {
	switch t {
	case NodeInput, NodeProcess, NodeOutput, NodeDecision:
		return true
	}
	return false
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type FlowchartNode struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Label    string   `json:"label"`
	Position Position `json:"position"`
}

type FlowchartEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// FlowchartGraph is a sanitized graph: every edge references existing nodes
// and there is at least one node.
type FlowchartGraph struct {
	Nodes []FlowchartNode `json:"nodes"`
	Edges []FlowchartEdge `json:"edges"`
}

type Flowchart struct {
	ID          string                             `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID   string                             `gorm:"type:varchar(36);index;not null" json:"project_id"`
	Title       string                             `gorm:"size:255;not null" json:"title"`
	Description string                             `gorm:"type:text" json:"description"`
	Nodes       datatypes.JSONSlice[FlowchartNode] `json:"nodes"`
	Edges       datatypes.JSONSlice[FlowchartEdge] `json:"edges"`
	CreatedAt   time.Time                          `json:"created_at"`
	UpdatedAt   time.Time                          `json:"updated_at"`
}

func (f *Flowchart) BeforeCreate(tx *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}

// Graph returns the stored nodes and edges as a FlowchartGraph.
func (f *Flowchart) Graph() *FlowchartGraph {
	return &FlowchartGraph{Nodes: []FlowchartNode(f.Nodes), Edges: []FlowchartEdge(f.Edges)}
}
