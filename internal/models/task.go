package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskPending  TaskStatus = "pending"
	TaskApproved TaskStatus = "approved"
	TaskRejected TaskStatus = "rejected"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskApproved, TaskRejected:
		return true
	}
	return false
}

type Category string

const (
	CategoryFrontend       Category = "frontend"
	CategoryBackend        Category = "backend"
	CategoryDesign         Category = "design"
	CategoryTesting        Category = "testing"
	CategoryDevops         Category = "devops"
	CategoryDatabase       Category = "database"
	CategorySecurity       Category = "security"
	CategoryDocumentation  Category = "documentation"
	CategoryInfrastructure Category = "infrastructure"
	CategoryMobile         Category = "mobile"
	CategoryAPI            Category = "api"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFrontend, CategoryBackend, CategoryDesign, CategoryTesting,
		CategoryDevops, CategoryDatabase, CategorySecurity, CategoryDocumentation,
		CategoryInfrastructure, CategoryMobile, CategoryAPI:
		return true
	}
	return false
}

// StoryPoints lists the accepted effort scale in ascending order.
var StoryPoints = []int{1, 2, 3, 5, 8, 13}

const DefaultStoryPoints = 3

func ValidStoryPoints(n int) bool {
	for _, sp := range StoryPoints {
		if sp == n {
			return true
		}
	}
	return false
}

type Task struct {
	ID          string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID   string                      `gorm:"type:varchar(36);index;not null" json:"project_id"`
	EpicID      *string                     `gorm:"type:varchar(36);index" json:"epic_id"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	StoryPoints int                         `gorm:"not null;default:3" json:"story_points"`
	Status      TaskStatus                  `gorm:"size:32;not null;default:pending" json:"status"`
	Category    Category                    `gorm:"size:32;not null;default:frontend" json:"category"`
	Criteria    datatypes.JSONSlice[string] `json:"criteria"`
	Priority    Priority                    `gorm:"size:16;not null;default:medium" json:"priority"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

// TaskDraft is a sanitized task. EpicIndex points into the epic drafts of
// the same generation run.
type TaskDraft struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	StoryPoints        int      `json:"story_points"`
	Category           Category `json:"category"`
	EpicIndex          int      `json:"epic_index"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
	Priority           Priority `json:"priority"`
}
