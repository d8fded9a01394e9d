package prompts

import (
	"fmt"
	"strings"

	"briefy/internal/models"
)

// Analysis builds the prompt for a structured analysis of every document and
// processed video of a project.
func Analysis(material string, documents []models.Document, videos []*models.VideoExtraction) string {
	var docs strings.Builder
	for i, doc := range documents {
		fmt.Fprintf(&docs, "\n=== DOCUMENTO %d: %s ===\n%s\n", i+1, doc.Name, doc.Content)
	}

	var vids strings.Builder
	for i, v := range videos {
		a := v.AnalysisData.Data()
		fmt.Fprintf(&vids, "\n=== CONTEXTO DE VÍDEO %d: %s ===\n", i+1, v.FileName)
		fmt.Fprintf(&vids, "Descrição: %s\n", v.ExtractedText)
		fmt.Fprintf(&vids, "Transcrição: %s\n", v.Transcription)
		fmt.Fprintf(&vids, "Tópicos: %s\n", strings.Join(a.KeyTopics, ", "))
		fmt.Fprintf(&vids, "Requisitos: %s\n", strings.Join(a.Requirements, ", "))
		fmt.Fprintf(&vids, "Detalhes Técnicos: %s\n", strings.Join(a.TechnicalDetails, ", "))
		fmt.Fprintf(&vids, "Contexto de Negócio: %s\n", strings.Join(a.BusinessContext, ", "))
	}

	var b strings.Builder
	b.WriteString("Analise todo o material fornecido (documentos + contextos de vídeo) e gere uma análise completa e estruturada.\n")
	b.WriteString("\n## 📋 MATERIAL DE APOIO PARA ANÁLISE\n")
	b.WriteString(material)
	b.WriteString("\n\n## 📚 CONTEÚDO DOS DOCUMENTOS\n")
	b.WriteString(docs.String())
	b.WriteString("\n\n## 🎥 CONTEXTO DOS VÍDEOS\n")
	b.WriteString(vids.String())
	b.WriteString("\n\n")
	b.WriteString(analysisTemplate)
	return b.String()
}
