// Package export renders a project's generated content into the formats the
// product offers for download: markdown, CSV, JSON, YAML, FigJam and PNG.
package export

import (
	"regexp"
	"strings"

	"briefy/internal/models"
)

// Bundle is everything an export can draw from. Persisted projects and
// unsaved previews both convert into it.
type Bundle struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Flowchart   *models.FlowchartGraph `json:"flowchart,omitempty"`
	Epics       []*models.Epic         `json:"epics"`
	Tasks       []*models.Task         `json:"tasks"`
}

// FromScope converts a preview. Tasks have not been reviewed yet so they are
// all pending.
func FromScope(scope *models.ProjectScope) *Bundle {
	b := &Bundle{Epics: []*models.Epic{}, Tasks: []*models.Task{}}
	if scope == nil {
		return b
	}
	b.Title = scope.Title
	b.Description = scope.Description
	b.Flowchart = scope.Flowchart
	for _, e := range scope.Epics {
		b.Epics = append(b.Epics, &models.Epic{
			Title:       e.Title,
			Description: e.Description,
			Priority:    e.Priority,
			Status:      models.EpicPending,
		})
	}
	for _, t := range scope.Tasks {
		b.Tasks = append(b.Tasks, &models.Task{
			Title:       t.Title,
			Description: t.Description,
			StoryPoints: t.StoryPoints,
			Status:      models.TaskPending,
			Category:    t.Category,
			Criteria:    t.AcceptanceCriteria,
			Priority:    t.Priority,
		})
	}
	return b
}

// FromProject converts stored content. The newest flowchart wins.
func FromProject(project *models.Project, flowcharts []*models.Flowchart, epics []*models.Epic, tasks []*models.Task) *Bundle {
	b := &Bundle{Epics: epics, Tasks: tasks}
	if b.Epics == nil {
		b.Epics = []*models.Epic{}
	}
	if b.Tasks == nil {
		b.Tasks = []*models.Task{}
	}
	if project != nil {
		b.Title = project.Name
		b.Description = project.Description
	}
	var newest *models.Flowchart
	for _, fc := range flowcharts {
		if newest == nil || fc.CreatedAt.After(newest.CreatedAt) {
			newest = fc
		}
	}
	if newest != nil {
		b.Flowchart = newest.Graph()
	}
	return b
}

var spaces = regexp.MustCompile(`\s+`)

// Filename builds the download name, e.g. projeto-minha-loja.md.
func Filename(prefix, title, ext string) string {
	slug := spaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	if slug == "" {
		slug = "projeto"
	}
	return prefix + "-" + slug + "." + ext
}
