package models

import (
	"time"

	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type EpicStatus string

const (
	EpicPending    EpicStatus = "pending"
	EpicInProgress EpicStatus = "in_progress"
	EpicCompleted  EpicStatus = "completed"
)

func (s EpicStatus) Valid() bool {
	switch s {
	case EpicPending, EpicInProgress, EpicCompleted:
		return true
	}
	return false
}

type Epic struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID   string     `gorm:"type:varchar(36);index;not null" json:"project_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Priority    Priority   `gorm:"size:16;not null;default:medium" json:"priority"`
	Status      EpicStatus `gorm:"size:32;not null;default:pending" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (e *Epic) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}

// EpicDraft is a sanitized epic that has not been persisted yet.
type EpicDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}
