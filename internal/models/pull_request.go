package models

import (
	"time"

	"gorm.io/gorm"
)

type PRStatus string

const (
	PRDraft    PRStatus = "draft"
	PRPending  PRStatus = "pending"
	PRApproved PRStatus = "approved"
	PRMerged   PRStatus = "merged"
)

func (s PRStatus) Valid() bool {
	switch s {
	case PRDraft, PRPending, PRApproved, PRMerged:
		return true
	}
	return false
}

// PullRequest is the generated technical document. The name is historical and
// has nothing to do with version control.
type PullRequest struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID   string    `gorm:"type:varchar(36);index;not null" json:"project_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Status      PRStatus  `gorm:"size:32;not null;default:draft" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *PullRequest) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
