package models

import "strings"

// ContentType identifies one of the three generated artifacts.
type ContentType string

const (
	ContentPR        ContentType = "pr"
	ContentFlowchart ContentType = "flowchart"
	ContentTasks     ContentType = "tasks"
)

// ContentTypes returns the content types in generation order.
func ContentTypes() []ContentType {
	return []ContentType{ContentPR, ContentFlowchart, ContentTasks}
}

func (c ContentType) Valid() bool {
	switch c {
	case ContentPR, ContentFlowchart, ContentTasks:
		return true
	}
	return false
}

func (c ContentType) Upper() string {
	return strings.ToUpper(string(c))
}

// Document is a named piece of text handed to the generator.
type Document struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// InlineMedia is a binary attachment sent next to a prompt.
type InlineMedia struct {
	MimeType   string `json:"mime_type"`
	Base64Data string `json:"base64_data"`
}

type ContentRequest struct {
	ContentType ContentType `json:"content_type"`
	Documents   []Document  `json:"documents"`
	Notes       string      `json:"notes"`
	ProjectID   string      `json:"project_id,omitempty"`
}

// GeneratedContent carries the outcome of one generation run. A kind that
// failed to generate has its message in the matching error field.
type GeneratedContent struct {
	PR             string `json:"pr,omitempty"`
	Flowchart      any    `json:"flowchart,omitempty"`
	Epics          any    `json:"epics,omitempty"`
	Tasks          any    `json:"tasks,omitempty"`
	PRError        string `json:"pr_error,omitempty"`
	FlowchartError string `json:"flowchart_error,omitempty"`
	TasksError     string `json:"tasks_error,omitempty"`
}

type SaveOptions struct {
	SavePR         bool   `json:"save_pr"`
	SaveFlowchart  bool   `json:"save_flowchart"`
	SaveTasks      bool   `json:"save_tasks"`
	PRTitle        string `json:"pr_title,omitempty"`
	FlowchartTitle string `json:"flowchart_title,omitempty"`
}

// SaveAll enables every kind.
func SaveAll() SaveOptions {
	return SaveOptions{SavePR: true, SaveFlowchart: true, SaveTasks: true}
}

type StepStatus string

const (
	StepSaved   StepStatus = "saved"
	StepSkipped StepStatus = "skipped"
	StepFailed  StepStatus = "failed"
)

// StepResult records what happened to one kind during persistence.
type StepResult struct {
	Kind   ContentType `json:"kind"`
	Status StepStatus  `json:"status"`
	Error  string      `json:"error,omitempty"`
}

type SaveResult struct {
	Success   bool         `json:"success"`
	PR        *PullRequest `json:"pr,omitempty"`
	Flowchart *Flowchart   `json:"flowchart,omitempty"`
	Epics     []*Epic      `json:"epics,omitempty"`
	Tasks     []*Task      `json:"tasks,omitempty"`
	Errors    []string     `json:"errors"`
	Steps     []StepResult `json:"steps,omitempty"`
}

// ProcessResult is a SaveResult plus the raw generation output it came from.
type ProcessResult struct {
	SaveResult
	Generated *GeneratedContent `json:"generated,omitempty"`
}

// ProjectScope is a generation preview that is not persisted.
type ProjectScope struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Flowchart   *FlowchartGraph `json:"flowchart,omitempty"`
	Epics       []EpicDraft     `json:"epics"`
	Tasks       []TaskDraft     `json:"tasks"`
}
