package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"briefy/internal/models"
)

var ErrNoFlowchart = errors.New("Não há fluxograma para exportar. Gere um fluxograma primeiro.")

type nodeColor struct {
	hex  string
	name string
}

var nodeColors = map[models.NodeType]nodeColor{
	models.NodeInput:    {"#d1fae5", "Verde claro"},
	models.NodeProcess:  {"#dbeafe", "Azul claro"},
	models.NodeOutput:   {"#e9d5ff", "Roxo claro"},
	models.NodeDecision: {"#fef3c7", "Amarelo claro"},
}

var fallbackColor = nodeColor{"#f3f4f6", "Cinza claro"}

func colorFor(t models.NodeType) nodeColor {
	if c, ok := nodeColors[t]; ok {
		return c
	}
	return fallbackColor
}

type figjamDocument struct {
	Version      string             `json:"version"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Metadata     figjamMetadata     `json:"metadata"`
	Nodes        []figjamNode       `json:"nodes"`
	Connections  []figjamConnection `json:"connections"`
	Instructions []string           `json:"instructions"`
}

type figjamMetadata struct {
	ExportedFrom     string `json:"exportedFrom"`
	ExportDate       string `json:"exportDate"`
	TotalNodes       int    `json:"totalNodes"`
	TotalConnections int    `json:"totalConnections"`
}

type figjamNode struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Label    string          `json:"label"`
	Position models.Position `json:"position"`
	Order    int             `json:"order"`
	Style    figjamNodeStyle `json:"style"`
}

type figjamNodeStyle struct {
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	BorderColor     string `json:"borderColor"`
	BorderWidth     int    `json:"borderWidth"`
}

type figjamConnection struct {
	ID    string          `json:"id"`
	From  string          `json:"from"`
	To    string          `json:"to"`
	Label string          `json:"label"`
	Type  string          `json:"type"`
	Style figjamLineStyle `json:"style"`
}

type figjamLineStyle struct {
	StrokeColor string `json:"strokeColor"`
	StrokeWidth int    `json:"strokeWidth"`
	LineType    string `json:"lineType"`
}

var figjamInstructions = []string{
	"📋 Como importar no Figjam:",
	"1. Abra o Figjam e crie um novo quadro",
	"2. Use este arquivo como referência para recriar o diagrama",
	"3. Para cada nó, crie um sticky note com o texto correspondente",
	"4. Posicione os sticky notes aproximadamente nas coordenadas indicadas",
	"5. Conecte os nós conforme especificado na seção 'connections'",
	"6. Ajuste cores e estilos conforme desejado",
}

// FigJam produces a JSON document describing the flowchart as sticky notes
// and connectors.
func FigJam(b *Bundle, now time.Time) ([]byte, error) {
	if b.Flowchart == nil || len(b.Flowchart.Nodes) == 0 {
		return nil, ErrNoFlowchart
	}
	g := b.Flowchart
	doc := figjamDocument{
		Version:     "1.0",
		Name:        b.Title + " - Fluxograma",
		Description: b.Description,
		Metadata: figjamMetadata{
			ExportedFrom:     "Briefy",
			ExportDate:       now.UTC().Format(time.RFC3339),
			TotalNodes:       len(g.Nodes),
			TotalConnections: len(g.Edges),
		},
		Nodes:        make([]figjamNode, 0, len(g.Nodes)),
		Connections:  make([]figjamConnection, 0, len(g.Edges)),
		Instructions: figjamInstructions,
	}
	for i, n := range g.Nodes {
		doc.Nodes = append(doc.Nodes, figjamNode{
			ID:       n.ID,
			Type:     strings.ToUpper(string(n.Type)),
			Label:    n.Label,
			Position: n.Position,
			Order:    i + 1,
			Style: figjamNodeStyle{
				BackgroundColor: colorFor(n.Type).hex,
				TextColor:       "#000000",
				BorderColor:     "#333333",
				BorderWidth:     2,
			},
		})
	}
	for _, e := range g.Edges {
		doc.Connections = append(doc.Connections, figjamConnection{
			ID:    e.ID,
			From:  e.Source,
			To:    e.Target,
			Label: e.Label,
			Type:  "ARROW",
			Style: figjamLineStyle{StrokeColor: "#666666", StrokeWidth: 2, LineType: "BEZIER"},
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FigJamText is a plain-text walkthrough for recreating the flowchart by hand.
func FigJamText(b *Bundle) (string, error) {
	if b.Flowchart == nil || len(b.Flowchart.Nodes) == 0 {
		return "", ErrNoFlowchart
	}
	g := b.Flowchart
	labels := make(map[string]string, len(g.Nodes))
	for _, n := range g.Nodes {
		labels[n.ID] = n.Label
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 FLUXOGRAMA: %s\n", b.Title)
	fmt.Fprintf(&sb, "📝 Descrição: %s\n\n", b.Description)
	sb.WriteString("🏗️ ELEMENTOS DO FLUXOGRAMA:\n\n")
	for i, n := range g.Nodes {
		c := colorFor(n.Type)
		fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, strings.ToUpper(string(n.Type)), n.Label)
		fmt.Fprintf(&sb, "   📍 Posição: x=%g, y=%g\n", n.Position.X, n.Position.Y)
		fmt.Fprintf(&sb, "   🎨 Cor sugerida: %s (%s)\n\n", c.name, c.hex)
	}
	sb.WriteString("🔗 CONEXÕES:\n\n")
	for i, e := range g.Edges {
		fmt.Fprintf(&sb, "%d. %s → %s\n", i+1, labels[e.Source], labels[e.Target])
		if e.Label != "" {
			fmt.Fprintf(&sb, "   📋 Rótulo: %q\n", e.Label)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("📋 COMO RECRIAR NO FIGJAM:\n\n")
	sb.WriteString("1. ✨ Crie um novo quadro no Figjam\n")
	sb.WriteString("2. 📌 Para cada elemento acima, crie um sticky note\n")
	sb.WriteString("3. 🔗 Conecte os sticky notes conforme as conexões listadas\n")
	sb.WriteString("4. 🎨 Ajuste o layout e cores conforme necessário\n")
	return sb.String(), nil
}
