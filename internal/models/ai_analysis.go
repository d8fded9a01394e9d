package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AnalysisType string

const (
	AnalysisDocument AnalysisType = "document"
	AnalysisVideo    AnalysisType = "video"
	AnalysisCombined AnalysisType = "combined"
)

type AIAnalysis struct {
	ID           string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID    string         `gorm:"type:varchar(36);index;not null" json:"project_id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Content      datatypes.JSON `json:"content"`
	AnalysisType AnalysisType   `gorm:"size:16;not null" json:"analysis_type"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (AIAnalysis) TableName() string { return "ai_analyses" }

func (a *AIAnalysis) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
