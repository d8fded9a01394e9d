package export

import (
	"fmt"
	"strings"

	"briefy/internal/models"
)

func statusIcon(s models.TaskStatus) string {
	switch s {
	case models.TaskApproved:
		return "✅"
	case models.TaskRejected:
		return "❌"
	default:
		return "⏳"
	}
}

func Markdown(b *Bundle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", b.Title)
	fmt.Fprintf(&sb, "%s\n\n", b.Description)

	nodes, edges := 0, 0
	if b.Flowchart != nil {
		nodes, edges = len(b.Flowchart.Nodes), len(b.Flowchart.Edges)
	}
	sb.WriteString("## Fluxograma\n\n")
	fmt.Fprintf(&sb, "**Nós:** %d\n", nodes)
	fmt.Fprintf(&sb, "**Conexões:** %d\n\n", edges)

	sb.WriteString("## Tasks\n\n")
	sb.WriteString("| Status | Título | Descrição | Pontos | Categoria |\n")
	sb.WriteString("|--------|--------|------------|---------|-----------|\n")
	for _, t := range b.Tasks {
		fmt.Fprintf(&sb, "| %s | %s | %s | %d | %s |\n",
			statusIcon(t.Status), cell(t.Title), cell(t.Description), t.StoryPoints, t.Category)
	}
	return sb.String()
}

// cell keeps a value on one table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
