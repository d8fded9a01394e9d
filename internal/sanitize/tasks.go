package sanitize

import (
	"fmt"

	"briefy/internal/models"
)

const (
	placeholderDescription = "Sem descrição"
	autoEpicDescription    = "Épico criado automaticamente"
)

// EpicsAndTasks normalizes the epics and tasks arrays of a tasks response.
// Non-array inputs yield empty lists.
func EpicsAndTasks(rawEpics, rawTasks any) ([]models.EpicDraft, []models.TaskDraft) {
	epicList, _ := list(rawEpics)
	taskList, _ := list(rawTasks)

	epics := make([]models.EpicDraft, 0, len(epicList))
	for i, re := range epicList {
		e, ok := object(re)
		if !ok {
			if malformed(EntityEpic) == Drop {
				continue
			}
			epics = append(epics, models.EpicDraft{
				Title:       fmt.Sprintf("Épico %d", i+1),
				Description: autoEpicDescription,
				Priority:    models.PriorityMedium,
			})
			continue
		}
		epic, fields := sanitizeEpic(e, i)
		if !fields.clean() && invalidFields(EntityEpic) == Drop {
			continue
		}
		epics = append(epics, epic)
	}

	tasks := make([]models.TaskDraft, 0, len(taskList))
	for i, rt := range taskList {
		t, ok := object(rt)
		if !ok && malformed(EntityTask) == Drop {
			continue
		}
		task, fields := sanitizeTask(t, i, len(epics))
		if !fields.clean() && invalidFields(EntityTask) == Drop {
			continue
		}
		tasks = append(tasks, task)
	}
	return epics, tasks
}

func sanitizeEpic(e map[string]any, i int) (models.EpicDraft, *fieldCheck) {
	fields := &fieldCheck{obj: e}
	title, ok := text(e["title"])
	fields.check("title", ok)
	if !ok {
		title = fmt.Sprintf("Épico %d", i+1)
	}
	description, ok := text(e["description"])
	fields.check("description", ok)
	if !ok {
		description = placeholderDescription
	}
	p, ok := priority(e["priority"])
	fields.check("priority", ok)
	return models.EpicDraft{Title: title, Description: description, Priority: p}, fields
}

func sanitizeTask(t map[string]any, i, epicsCount int) (models.TaskDraft, *fieldCheck) {
	fields := &fieldCheck{obj: t}
	task := models.TaskDraft{
		Title:              fmt.Sprintf("Task %d", i+1),
		Description:        placeholderDescription,
		StoryPoints:        models.DefaultStoryPoints,
		Category:           models.CategoryFrontend,
		EpicIndex:          0,
		AcceptanceCriteria: []string{},
	}
	title, ok := text(t["title"])
	fields.check("title", ok)
	if ok {
		task.Title = title
	}
	description, ok := text(t["description"])
	fields.check("description", ok)
	if ok {
		task.Description = description
	}
	sp, ok := integer(t["story_points"])
	ok = ok && models.ValidStoryPoints(sp)
	fields.check("story_points", ok)
	if ok {
		task.StoryPoints = sp
	}
	c, ok := t["category"].(string)
	ok = ok && models.Category(c).Valid()
	fields.check("category", ok)
	if ok {
		task.Category = models.Category(c)
	}
	idx, ok := integer(t["epic_index"])
	ok = ok && idx >= 0 && idx < epicsCount
	fields.check("epic_index", ok)
	if ok {
		task.EpicIndex = idx
	}
	criteria, ok := list(t["acceptance_criteria"])
	for _, c := range criteria {
		s, isString := c.(string)
		if !isString {
			ok = false
			continue
		}
		task.AcceptanceCriteria = append(task.AcceptanceCriteria, s)
	}
	fields.check("acceptance_criteria", ok)
	task.Priority, ok = priority(t["priority"])
	fields.check("priority", ok)
	return task, fields
}

// priority returns the parsed priority, or medium with ok false.
func priority(v any) (models.Priority, bool) {
	if s, ok := v.(string); ok && models.Priority(s).Valid() {
		return models.Priority(s), true
	}
	return models.PriorityMedium, false
}
