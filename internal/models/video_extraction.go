package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VideoAnalysis struct {
	KeyTopics        []string `json:"keyTopics"`
	Requirements     []string `json:"requirements"`
	TechnicalDetails []string `json:"technicalDetails"`
	BusinessContext  []string `json:"businessContext"`
}

type VideoExtraction struct {
	ID            string                            `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID     string                            `gorm:"type:varchar(36);index;not null" json:"project_id"`
	FileName      string                            `gorm:"size:255;not null" json:"file_name"`
	ExtractedText string                            `gorm:"type:text" json:"extracted_text"`
	Transcription string                            `gorm:"type:text" json:"transcription"`
	Duration      *float64                          `json:"duration,omitempty"`
	ThumbnailURL  string                            `gorm:"size:1024" json:"thumbnail_url,omitempty"`
	AnalysisData  datatypes.JSONType[VideoAnalysis] `json:"analysis_data"`
	CreatedAt     time.Time                         `json:"created_at"`
	UpdatedAt     time.Time                         `json:"updated_at"`
}

func (v *VideoExtraction) BeforeCreate(tx *gorm.DB) error {
	ensureID(&v.ID)
	return nil
}
