package models

import (
	"time"

	"gorm.io/gorm"
)

// SupportMaterial is text injected into a prompt to steer generation. A nil
// ProjectID with IsDefault set makes it the fallback for every project.
type SupportMaterial struct {
	ID        string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID *string     `gorm:"type:varchar(36);index" json:"project_id"`
	Name      string      `gorm:"size:255;not null" json:"name"`
	Type      ContentType `gorm:"size:16;not null;index" json:"type"`
	Content   string      `gorm:"type:text;not null" json:"content"`
	IsDefault bool        `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (m *SupportMaterial) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
