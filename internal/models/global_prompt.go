package models

import (
	"time"

	"gorm.io/gorm"
)

// GlobalPrompt holds domain context appended to the technical instructions
// of one content type. Rows flagged IsDefault mirror the built-in template
// and never count as an override.
type GlobalPrompt struct {
	ID        string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Type      ContentType `gorm:"size:16;not null;index" json:"type"`
	Title     string      `gorm:"size:255;not null" json:"title"`
	Content   string      `gorm:"type:text;not null" json:"content"`
	IsDefault bool        `gorm:"not null;default:false" json:"is_default"`
	IsActive  bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (g *GlobalPrompt) BeforeCreate(tx *gorm.DB) error {
	ensureID(&g.ID)
	return nil
}
