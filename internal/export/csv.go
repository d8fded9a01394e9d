package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"briefy/internal/models"
)

var csvHeader = []string{"Status", "Titulo", "Descricao", "Pontos", "Categoria"}

func statusLabel(s models.TaskStatus) string {
	switch s {
	case models.TaskApproved:
		return "Aprovada"
	case models.TaskRejected:
		return "Rejeitada"
	default:
		return "Pendente"
	}
}

func CSV(w io.Writer, tasks []*models.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		row := []string{
			statusLabel(t.Status),
			t.Title,
			t.Description,
			strconv.Itoa(t.StoryPoints),
			string(t.Category),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
